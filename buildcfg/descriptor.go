// Package buildcfg describes how the dashboard's front-end is bundled:
// import aliases, manual chunk groups, output naming, dev-server proxy
// rules and the stylesheet variables injected from the theme.
//
// The descriptor is assembled once and handed to the external bundler
// (see Encode); the Go dev server reuses its proxy rules.
package buildcfg

import (
	"path/filepath"
	"strings"

	"threatplane/theme"
)

// Alias maps a logical import prefix to a directory.
type Alias struct {
	Find        string `json:"find" yaml:"find"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

// ChunkGroup names one output chunk and the modules forced into it.
type ChunkGroup struct {
	Name    string   `json:"name" yaml:"name"`
	Modules []string `json:"modules" yaml:"modules"`
}

// Variable is a stylesheet preprocessor variable.
type Variable struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Descriptor is the complete bundler configuration.
type Descriptor struct {
	Root              string       `json:"root" yaml:"root"`
	OutDir            string       `json:"outDir" yaml:"outDir"`
	Aliases           []Alias      `json:"aliases" yaml:"aliases"`
	Chunks            []ChunkGroup `json:"chunks" yaml:"chunks"`
	Naming            Naming       `json:"naming" yaml:"naming"`
	Proxy             []ProxyRule  `json:"proxy" yaml:"proxy"`
	Variables         []Variable   `json:"variables" yaml:"variables"`
	AssetsInlineLimit int          `json:"assetsInlineLimit" yaml:"assetsInlineLimit"`
	Sourcemap         bool         `json:"sourcemap" yaml:"sourcemap"`
	DevPort           int          `json:"devPort" yaml:"devPort"`
}

// DefaultProxyRules are the two third-party APIs the dashboard calls
// during development.
func DefaultProxyRules() []ProxyRule {
	return []ProxyRule{
		{
			Prefix:       "/api/nvd",
			Target:       "https://services.nvd.nist.gov",
			ChangeOrigin: true,
			RewriteTo:    "/rest/json/cves/2.0",
		},
		{
			Prefix:       "/api/ipinfo",
			Target:       "https://ipinfo.io",
			ChangeOrigin: true,
			RewriteTo:    "",
		},
	}
}

// New assembles the dashboard descriptor. Alias targets are made absolute
// against root; preprocessor variables are copied out of reg.
func New(root string, reg *theme.Registry) Descriptor {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	src := filepath.Join(root, "src")

	vars := reg.PreprocessorVariables()
	variables := make([]Variable, 0, len(vars))
	for _, v := range vars {
		variables = append(variables, Variable{Name: v.Name, Value: v.Value})
	}

	return Descriptor{
		Root:   root,
		OutDir: filepath.Join(root, "dist"),
		Aliases: []Alias{
			{Find: "@", Replacement: src},
			{Find: "@components", Replacement: filepath.Join(src, "components")},
			{Find: "@views", Replacement: filepath.Join(src, "views")},
			{Find: "@services", Replacement: filepath.Join(src, "services")},
			{Find: "@engines", Replacement: filepath.Join(src, "engines")},
			{Find: "@stores", Replacement: filepath.Join(src, "stores")},
			{Find: "@utils", Replacement: filepath.Join(src, "utils")},
			{Find: "@styles", Replacement: filepath.Join(src, "styles")},
			{Find: "@assets", Replacement: filepath.Join(src, "assets")},
		},
		Chunks: []ChunkGroup{
			{Name: "vendor", Modules: []string{"vue", "vue-router", "pinia"}},
			{Name: "ui", Modules: []string{"naive-ui", "@vicons/ionicons5"}},
			{Name: "charts", Modules: []string{"echarts", "vue-echarts"}},
			{Name: "maps", Modules: []string{"leaflet", "@vue-leaflet/vue-leaflet"}},
			{Name: "utils", Modules: []string{"axios", "dayjs", "lodash-es"}},
			{Name: "analytics", Modules: []string{
				"./src/engines/correlationEngine.js",
				"./src/engines/geoIntelligence.js",
				"./src/engines/attackClassifier.js",
			}},
			{Name: "api", Modules: []string{
				"./src/services/apiOrchestrator.js",
				"./src/services/nvdService.js",
				"./src/services/ipinfoService.js",
			}},
		},
		Naming:            DefaultNaming(),
		Proxy:             DefaultProxyRules(),
		Variables:         variables,
		AssetsInlineLimit: 4096,
		Sourcemap:         false,
		DevPort:           3000,
	}
}

// ResolveAlias rewrites an import specifier through the longest alias
// whose key matches at a path-segment boundary. Target existence is the
// bundler's concern.
func (d Descriptor) ResolveAlias(importPath string) (string, bool) {
	best := -1
	for i, a := range d.Aliases {
		if importPath != a.Find && !strings.HasPrefix(importPath, a.Find+"/") {
			continue
		}
		if best == -1 || len(a.Find) > len(d.Aliases[best].Find) {
			best = i
		}
	}
	if best == -1 {
		return "", false
	}
	a := d.Aliases[best]
	rest := strings.TrimPrefix(importPath, a.Find)
	return filepath.Join(a.Replacement, filepath.FromSlash(rest)), true
}

// ChunkFor returns the chunk group a module specifier is pinned to.
func (d Descriptor) ChunkFor(importPath string) (string, bool) {
	for _, c := range d.Chunks {
		for _, m := range c.Modules {
			if m == importPath {
				return c.Name, true
			}
		}
	}
	return "", false
}

// MatchProxy returns the first proxy rule whose prefix matches path.
func (d Descriptor) MatchProxy(path string) (ProxyRule, bool) {
	for _, r := range d.Proxy {
		if r.Matches(path) {
			return r, true
		}
	}
	return ProxyRule{}, false
}

// WithProxyOverrides returns a copy whose rules use the given target
// origins and carry extra headers, both keyed by prefix.
func (d Descriptor) WithProxyOverrides(targets map[string]string, headers map[string]map[string]string) Descriptor {
	rules := make([]ProxyRule, len(d.Proxy))
	for i, r := range d.Proxy {
		if t, ok := targets[r.Prefix]; ok && t != "" {
			r.Target = t
		}
		if h := headers[r.Prefix]; len(h) > 0 {
			merged := make(map[string]string, len(r.Headers)+len(h))
			for k, v := range r.Headers {
				merged[k] = v
			}
			for k, v := range h {
				merged[k] = v
			}
			r.Headers = merged
		}
		rules[i] = r
	}
	d.Proxy = rules
	return d
}
