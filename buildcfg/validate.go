package buildcfg

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the structural invariants the bundler does not enforce
// itself: unique alias keys, unique chunk names, each module pinned to at
// most one chunk, well-formed proxy rules and non-empty variables. Every
// problem found is reported.
func (d Descriptor) Validate() error {
	var errs []error

	aliases := make(map[string]bool, len(d.Aliases))
	for _, a := range d.Aliases {
		if a.Find == "" {
			errs = append(errs, errors.New("alias with empty key"))
			continue
		}
		if aliases[a.Find] {
			errs = append(errs, fmt.Errorf("duplicate alias %q", a.Find))
		}
		aliases[a.Find] = true
		if a.Replacement == "" {
			errs = append(errs, fmt.Errorf("alias %q has no target", a.Find))
		}
	}

	chunks := make(map[string]bool, len(d.Chunks))
	owner := make(map[string]string)
	for _, c := range d.Chunks {
		if chunks[c.Name] {
			errs = append(errs, fmt.Errorf("duplicate chunk group %q", c.Name))
		}
		chunks[c.Name] = true
		for _, m := range c.Modules {
			if prev, ok := owner[m]; ok {
				errs = append(errs, fmt.Errorf("module %q is in chunk groups %q and %q", m, prev, c.Name))
				continue
			}
			owner[m] = c.Name
		}
	}

	prefixes := make(map[string]bool, len(d.Proxy))
	for _, r := range d.Proxy {
		if !strings.HasPrefix(r.Prefix, "/") {
			errs = append(errs, fmt.Errorf("proxy prefix %q must start with /", r.Prefix))
		}
		if prefixes[r.Prefix] {
			errs = append(errs, fmt.Errorf("duplicate proxy prefix %q", r.Prefix))
		}
		prefixes[r.Prefix] = true
		if r.RewriteTo != "" && !strings.HasPrefix(r.RewriteTo, "/") {
			errs = append(errs, fmt.Errorf("proxy %s: rewrite %q must start with /", r.Prefix, r.RewriteTo))
		}
		u, err := url.Parse(r.Target)
		if err != nil {
			errs = append(errs, fmt.Errorf("proxy %s: target: %w", r.Prefix, err))
			continue
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("proxy %s: target %q is not an http(s) origin", r.Prefix, r.Target))
		}
	}

	for _, v := range d.Variables {
		if v.Name == "" || v.Value == "" {
			errs = append(errs, fmt.Errorf("empty preprocessor variable %q", v.Name))
		}
	}

	if d.AssetsInlineLimit < 0 {
		errs = append(errs, fmt.Errorf("negative assets inline limit %d", d.AssetsInlineLimit))
	}

	return errors.Join(errs...)
}
