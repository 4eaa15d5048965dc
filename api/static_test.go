package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDist(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":            "<html>dashboard</html>",
		"js/index-B1c2D3e4.js":  "console.log(1)",
		"img/logo-a1b2c3d4.png": "png",
		"robots.txt":            "User-agent: *",
	}
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return dir
}

func TestStaticHandler(t *testing.T) {
	h := StaticHandler(newDist(t))

	tests := []struct {
		path   string
		method string
		code   int
		cache  string
		body   string
	}{
		{path: "/js/index-B1c2D3e4.js", code: http.StatusOK, cache: "public, max-age=31536000, immutable", body: "console.log(1)"},
		{path: "/img/logo-a1b2c3d4.png", code: http.StatusOK, cache: "public, max-age=31536000, immutable"},
		{path: "/robots.txt", code: http.StatusOK, cache: "no-cache"},
		{path: "/", code: http.StatusOK, cache: "no-cache", body: "<html>dashboard</html>"},
		{path: "/attacks/live", code: http.StatusOK, cache: "no-cache", body: "<html>dashboard</html>"},
		{path: "/js/missing.js", code: http.StatusNotFound},
		{path: "/../secret.txt", code: http.StatusNotFound},
		{path: "/", method: http.MethodPost, code: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		method := tt.method
		if method == "" {
			method = http.MethodGet
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, tt.path, nil))
		assert.Equal(t, tt.code, rec.Code, tt.path)
		if tt.cache != "" {
			assert.Equal(t, tt.cache, rec.Header().Get("Cache-Control"), tt.path)
		}
		if tt.body != "" {
			assert.Equal(t, tt.body, rec.Body.String(), tt.path)
		}
	}
}

func TestStaticHandlerWithoutIndex(t *testing.T) {
	h := StaticHandler(t.TempDir())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
