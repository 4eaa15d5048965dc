package buildcfg

import "strings"

// ProxyRule forwards dev-server requests under Prefix to Target, replacing
// the prefix with RewriteTo.
type ProxyRule struct {
	Prefix       string            `json:"prefix" yaml:"prefix"`
	Target       string            `json:"target" yaml:"target"`
	ChangeOrigin bool              `json:"changeOrigin" yaml:"changeOrigin"`
	RewriteTo    string            `json:"rewriteTo" yaml:"rewriteTo"`
	Headers      map[string]string `json:"-" yaml:"-"`
}

// Matches reports whether path starts with the rule's prefix.
func (r ProxyRule) Matches(path string) bool {
	return strings.HasPrefix(path, r.Prefix)
}

// Rewrite strips the prefix and prepends RewriteTo. A path that does not
// match is returned unchanged; an empty result becomes "/".
func (r ProxyRule) Rewrite(path string) string {
	if !r.Matches(path) {
		return path
	}
	out := r.RewriteTo + strings.TrimPrefix(path, r.Prefix)
	if out == "" {
		return "/"
	}
	return out
}
