package theme

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryBuilds(t *testing.T) {
	t.Parallel()

	reg, err := New(DefaultPalette())
	require.NoError(t, err)
	assert.Same(t, Default(), Default())

	for _, f := range Families {
		assert.NotEmpty(t, reg.Tokens(f), "family %s", f)
	}
	assert.Len(t, reg.Composites(), len(compositeRecipes))
	assert.Len(t, reg.PreprocessorVariables(), len(preprocessorVariables))
}

func TestNewRejectsInvalidColors(t *testing.T) {
	t.Parallel()

	p := DefaultPalette()
	p.Brand["primary"] = "blue"
	p.Protocol["tcp"] = "#12345"
	p.Attack["botnet"] = "#ggg"

	_, err := New(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidColor))
	for _, want := range []string{"brand.primary", "protocol.tcp", "attack.botnet"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestNewAcceptsHexForms(t *testing.T) {
	t.Parallel()

	p := DefaultPalette()
	p.Brand["primary"] = "#0af"
	p.Brand["secondary"] = "#7C3AEDcc"

	reg, err := New(p)
	require.NoError(t, err)

	glow, ok := reg.Composite("shadow-glow")
	require.True(t, ok)
	assert.Equal(t, "0 0 20px #00aaff33", glow)

	grad, _ := reg.Composite("gradient-primary")
	assert.Contains(t, grad, "#7C3AEDcc")
}

func TestNewRequiresReferencedTokens(t *testing.T) {
	t.Parallel()

	p := DefaultPalette()
	delete(p.Brand, "secondary")

	_, err := New(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownToken))
	assert.Contains(t, err.Error(), "gradient-primary")
}

func TestNewRequiresClassifierTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		family Family
		name   string
	}{
		{FamilySeverity, "info"},
		{FamilySeverity, "low"},
		{FamilyStatus, "success"},
		{FamilyStatus, "error"},
	}
	for _, tt := range tests {
		p := DefaultPalette()
		delete(p.family(tt.family), tt.name)

		_, err := New(p)
		require.Error(t, err, "%s.%s", tt.family, tt.name)
		assert.True(t, errors.Is(err, ErrUnknownToken))
		assert.Contains(t, err.Error(), string(tt.family)+"."+tt.name)
	}
}

func TestInvalidInputFallsBackToInfoToken(t *testing.T) {
	t.Parallel()

	reg, err := New(DefaultPalette())
	require.NoError(t, err)

	got := reg.SeverityColor("not a number")
	assert.Equal(t, Token{Name: "info", Family: FamilySeverity, Value: "#3b82f6"}, got)
}

func TestNewRejectsUnsafeTokenNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"x: red; } body {background: red",
		"Primary",
		"has space",
		`quote"`,
		"",
	} {
		p := DefaultPalette()
		p.Attack[name] = "#ff0000"

		_, err := New(p)
		require.Error(t, err, "%q", name)
		assert.True(t, errors.Is(err, ErrInvalidName), "%q", name)
	}

	p := DefaultPalette()
	p.Attack["dns-amp2"] = "#ff0000"
	reg, err := New(p)
	require.NoError(t, err)
	assert.Contains(t, reg.CSS(), "--attack-dns-amp2: #ff0000;")
}

func TestCompositesContainBaseValues(t *testing.T) {
	t.Parallel()

	reg := Default()
	for _, recipe := range compositeRecipes {
		value, ok := reg.Composite(recipe.name)
		require.True(t, ok, recipe.name)
		for _, ref := range recipe.refs {
			base, ok := reg.Token(ref.Family, ref.Name)
			require.True(t, ok)
			assert.Contains(t, value, base.Value, "%s should embed %s", recipe.name, ref)
		}
	}
}

func TestRebuildTracksBaseChanges(t *testing.T) {
	t.Parallel()

	p := DefaultPalette()
	p.Brand["primary"] = "#123456"
	p.Severity["critical"] = "#abcdef"

	reg, err := New(p)
	require.NoError(t, err)

	for _, name := range []string{"gradient-primary", "shadow-glow", "border-focus"} {
		v, _ := reg.Composite(name)
		assert.Contains(t, v, "#123456", name)
		assert.NotContains(t, v, "#00d4ff", name)
	}
	for _, name := range []string{"gradient-danger", "gradient-threat-scale", "shadow-glow-critical"} {
		v, _ := reg.Composite(name)
		assert.Contains(t, v, "#abcdef", name)
	}
	assert.Contains(t, reg.CSS(), "--brand-primary: #123456;")
	assert.Equal(t, "#123456", reg.UIOverrides().Common.PrimaryColor)

	// The default registry is untouched.
	v, _ := Default().Composite("gradient-primary")
	assert.Contains(t, v, "#00d4ff")
}

func TestPreprocessorVariablesCopyTokens(t *testing.T) {
	t.Parallel()

	reg := Default()
	for i, v := range reg.PreprocessorVariables() {
		want, err := reg.Resolve(preprocessorVariables[i].ref)
		require.NoError(t, err)
		assert.Equal(t, want, v.Value, v.Name)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	reg, err := New(DefaultPalette())
	require.NoError(t, err)

	snap := reg.Snapshot()
	snap.Families[FamilyBrand]["primary"] = "#000000"
	snap.Composites["shadow-glow"] = "none"

	tok, _ := reg.Token(FamilyBrand, "primary")
	assert.Equal(t, "#00d4ff", tok.Value)
	glow, _ := reg.Composite("shadow-glow")
	assert.NotEqual(t, "none", glow)

	comps := reg.Composites()
	comps[0].Value = "mutated"
	assert.NotEqual(t, "mutated", reg.Composites()[0].Value)
}

func TestCSS(t *testing.T) {
	t.Parallel()

	css := Default().CSS()
	assert.True(t, strings.HasPrefix(css, ":root {\n"))
	assert.Contains(t, css, "  --brand-primary: #00d4ff;\n")
	assert.Contains(t, css, "  --severity-critical: #dc2626;\n")
	assert.Contains(t, css, "  --attack-volumetric: #ef4444;\n")
	assert.Contains(t, css, "  --protocol-udp: #8b5cf6;\n")
	assert.Contains(t, css, "  --gradient-primary: linear-gradient(135deg, #00d4ff 0%, #7c3aed 100%);\n")
	assert.Contains(t, css, `[data-severity="high"] { --tone: var(--severity-high); }`)
}

func TestPaletteMerge(t *testing.T) {
	t.Parallel()

	base := DefaultPalette()
	merged := base.Merge(Palette{
		Brand:    map[string]string{"primary": "#111111"},
		Protocol: map[string]string{"quic": "#222222"},
	})

	assert.Equal(t, "#111111", merged.Brand["primary"])
	assert.Equal(t, "#222222", merged.Protocol["quic"])
	assert.Equal(t, "#00d4ff", base.Brand["primary"])
	_, ok := base.Protocol["quic"]
	assert.False(t, ok)
}

func TestTokenRefString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "brand.primary", TokenRef{Family: FamilyBrand, Name: "primary"}.String())
	assert.Equal(t, "brand.primary/33", TokenRef{Family: FamilyBrand, Name: "primary", Alpha: "33"}.String())
}

func TestResolveRejectsBadAlpha(t *testing.T) {
	t.Parallel()

	_, err := Default().Resolve(TokenRef{Family: FamilyBrand, Name: "primary", Alpha: "zz"})
	assert.ErrorIs(t, err, ErrInvalidColor)

	_, err = Default().Resolve(TokenRef{Family: FamilyBrand, Name: "missing"})
	assert.ErrorIs(t, err, ErrUnknownToken)
}
