// Package devproxy forwards dashboard API calls to third-party services
// according to the build descriptor's proxy rules.
package devproxy

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"threatplane/buildcfg"
)

// RequestIDHeader is set on forwarded requests that do not carry one.
const RequestIDHeader = "X-Request-Id"

type route struct {
	rule   buildcfg.ProxyRule
	target *url.URL
	proxy  *httputil.ReverseProxy
}

// Proxy routes requests by prefix. Rules are tried in order; the first
// match wins.
type Proxy struct {
	routes []route
	log    *zap.SugaredLogger
}

// New builds one reverse proxy per rule.
func New(rules []buildcfg.ProxyRule, log *zap.SugaredLogger) (*Proxy, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	p := &Proxy{log: log}
	for _, rule := range rules {
		target, err := url.Parse(rule.Target)
		if err != nil {
			return nil, fmt.Errorf("proxy %s: parse target: %w", rule.Prefix, err)
		}
		if target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("proxy %s: target %q is not an origin", rule.Prefix, rule.Target)
		}
		p.routes = append(p.routes, p.newRoute(rule, target))
	}
	return p, nil
}

func (p *Proxy) newRoute(rule buildcfg.ProxyRule, target *url.URL) route {
	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Path = rule.Rewrite(pr.In.URL.Path)
			pr.Out.URL.RawPath = ""
			pr.SetURL(target)
			if !rule.ChangeOrigin {
				pr.Out.Host = pr.In.Host
			}
			pr.SetXForwarded()
			for k, v := range rule.Headers {
				pr.Out.Header.Set(k, v)
			}
			if pr.Out.Header.Get(RequestIDHeader) == "" {
				pr.Out.Header.Set(RequestIDHeader, uuid.NewString())
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			p.log.Errorw("proxy upstream failed",
				"prefix", rule.Prefix,
				"target", rule.Target,
				"path", r.URL.Path,
				"error", err,
			)
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
		},
	}
	return route{rule: rule, target: target, proxy: rp}
}

// Match returns the rule that would handle path.
func (p *Proxy) Match(path string) (buildcfg.ProxyRule, bool) {
	if rt, ok := p.match(path); ok {
		return rt.rule, true
	}
	return buildcfg.ProxyRule{}, false
}

func (p *Proxy) match(path string) (route, bool) {
	for _, rt := range p.routes {
		if rt.rule.Matches(path) {
			return rt, true
		}
	}
	return route{}, false
}

// ServeHTTP forwards a request; unmatched paths get 404.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.Wrap(http.NotFoundHandler()).ServeHTTP(w, r)
}

// Wrap sends matching requests upstream and everything else to next.
func (p *Proxy) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rt, ok := p.match(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rt.proxy.ServeHTTP(w, r)
		p.log.Debugw("proxied",
			"method", r.Method,
			"path", r.URL.Path,
			"upstream", rt.target.Host+rt.rule.Rewrite(r.URL.Path),
			"elapsed", time.Since(start),
		)
	})
}
