package buildcfg

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"threatplane/theme"
)

func newTestDescriptor(t *testing.T) Descriptor {
	t.Helper()
	return New(t.TempDir(), theme.Default())
}

func TestDefaultDescriptorIsValid(t *testing.T) {
	t.Parallel()

	d := newTestDescriptor(t)
	require.NoError(t, d.Validate())
	assert.Equal(t, 4096, d.AssetsInlineLimit)
	assert.False(t, d.Sourcemap)
	assert.True(t, filepath.IsAbs(d.Root))
	for _, a := range d.Aliases {
		assert.True(t, filepath.IsAbs(a.Replacement), a.Find)
	}
}

func TestAliasKeysAreUnique(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, a := range newTestDescriptor(t).Aliases {
		require.False(t, seen[a.Find], "duplicate alias %s", a.Find)
		seen[a.Find] = true
	}
}

func TestChunkModulesAreUnique(t *testing.T) {
	t.Parallel()

	owner := map[string]string{}
	for _, c := range newTestDescriptor(t).Chunks {
		for _, m := range c.Modules {
			prev, dup := owner[m]
			require.False(t, dup, "%s in both %s and %s", m, prev, c.Name)
			owner[m] = c.Name
		}
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	t.Parallel()

	d := newTestDescriptor(t)
	d.Aliases = append(d.Aliases, Alias{Find: "@", Replacement: "/elsewhere"}, Alias{Find: "", Replacement: "/x"})
	d.Chunks = append(d.Chunks,
		ChunkGroup{Name: "extra", Modules: []string{"echarts"}},
		ChunkGroup{Name: "vendor", Modules: []string{"new-lib"}},
	)
	d.Proxy = append(d.Proxy,
		ProxyRule{Prefix: "api/bad", Target: "https://example.com"},
		ProxyRule{Prefix: "/api/ftp", Target: "ftp://example.com"},
		ProxyRule{Prefix: "/api/nvd", Target: "https://example.com", RewriteTo: "nope"},
	)
	d.Variables = append(d.Variables, Variable{Name: "empty"})
	d.AssetsInlineLimit = -1

	err := d.Validate()
	require.Error(t, err)
	for _, want := range []string{
		`duplicate alias "@"`,
		"alias with empty key",
		`module "echarts" is in chunk groups "charts" and "extra"`,
		`duplicate chunk group "vendor"`,
		`proxy prefix "api/bad" must start with /`,
		`target "ftp://example.com" is not an http(s) origin`,
		`duplicate proxy prefix "/api/nvd"`,
		`rewrite "nope" must start with /`,
		`empty preprocessor variable "empty"`,
		"negative assets inline limit",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestResolveAlias(t *testing.T) {
	t.Parallel()

	d := newTestDescriptor(t)
	src := filepath.Join(d.Root, "src")

	tests := []struct {
		importPath string
		want       string
		ok         bool
	}{
		{importPath: "@/main.js", want: filepath.Join(src, "main.js"), ok: true},
		{importPath: "@", want: src, ok: true},
		{importPath: "@components/Map.vue", want: filepath.Join(src, "components", "Map.vue"), ok: true},
		{importPath: "@engines/correlationEngine.js", want: filepath.Join(src, "engines", "correlationEngine.js"), ok: true},
		{importPath: "@componentsX/a.vue", ok: false},
		{importPath: "vue", ok: false},
		{importPath: "@vicons/ionicons5", ok: false},
	}
	for _, tt := range tests {
		got, ok := d.ResolveAlias(tt.importPath)
		assert.Equal(t, tt.ok, ok, tt.importPath)
		assert.Equal(t, tt.want, got, tt.importPath)
	}
}

func TestChunkFor(t *testing.T) {
	t.Parallel()

	d := newTestDescriptor(t)
	name, ok := d.ChunkFor("echarts")
	require.True(t, ok)
	assert.Equal(t, "charts", name)

	name, ok = d.ChunkFor("./src/engines/correlationEngine.js")
	require.True(t, ok)
	assert.Equal(t, "analytics", name)

	_, ok = d.ChunkFor("react")
	assert.False(t, ok)
}

func TestVariablesCopyTheme(t *testing.T) {
	t.Parallel()

	p := theme.DefaultPalette()
	p.Brand["primary"] = "#abcdef"
	reg, err := theme.New(p)
	require.NoError(t, err)

	d := New(t.TempDir(), reg)
	want := make([]Variable, 0)
	for _, v := range reg.PreprocessorVariables() {
		want = append(want, Variable{Name: v.Name, Value: v.Value})
	}
	if diff := cmp.Diff(want, d.Variables); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, d.SCSSPreamble(), "$primary-color: #abcdef;\n")
}

func TestWithProxyOverrides(t *testing.T) {
	t.Parallel()

	d := newTestDescriptor(t)
	got := d.WithProxyOverrides(
		map[string]string{"/api/nvd": "http://nvd-mirror.local:8080", "/api/unknown": "http://x"},
		map[string]map[string]string{"/api/ipinfo": {"Authorization": "Bearer t0ken"}},
	)

	nvd, ok := got.MatchProxy("/api/nvd/x")
	require.True(t, ok)
	assert.Equal(t, "http://nvd-mirror.local:8080", nvd.Target)
	assert.Equal(t, "/rest/json/cves/2.0/x", nvd.Rewrite("/api/nvd/x"))

	ip, ok := got.MatchProxy("/api/ipinfo/8.8.8.8")
	require.True(t, ok)
	assert.Equal(t, "Bearer t0ken", ip.Headers["Authorization"])

	// Original untouched.
	orig, _ := d.MatchProxy("/api/nvd/x")
	assert.Equal(t, "https://services.nvd.nist.gov", orig.Target)
	assert.Empty(t, d.Proxy[1].Headers)
	require.NoError(t, got.Validate())
}

func TestEncode(t *testing.T) {
	t.Parallel()

	d := newTestDescriptor(t)

	var js bytes.Buffer
	require.NoError(t, d.Encode(&js, FormatJSON))
	var fromJSON Descriptor
	require.NoError(t, json.Unmarshal(js.Bytes(), &fromJSON))
	assert.Equal(t, d.Chunks, fromJSON.Chunks)
	assert.Contains(t, js.String(), `"assetsInlineLimit": 4096`)

	var ym bytes.Buffer
	require.NoError(t, d.Encode(&ym, FormatYAML))
	var fromYAML Descriptor
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	assert.Equal(t, d.Aliases, fromYAML.Aliases)
	assert.Equal(t, "/rest/json/cves/2.0", fromYAML.Proxy[0].RewriteTo)

	var sc bytes.Buffer
	require.NoError(t, d.Encode(&sc, FormatSCSS))
	assert.Equal(t, d.SCSSPreamble(), sc.String())
	assert.Equal(t, len(d.Variables), strings.Count(sc.String(), "\n"))

	assert.Error(t, d.Encode(&bytes.Buffer{}, "toml"))
}
