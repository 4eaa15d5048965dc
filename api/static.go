package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"threatplane/buildcfg"
)

// StaticHandler serves the built dashboard from dir. Unknown paths without
// an extension fall back to index.html so client-side routes resolve.
func StaticHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		clean := path.Clean("/" + r.URL.Path)
		full := filepath.Join(dir, filepath.FromSlash(clean))
		info, err := os.Stat(full)
		switch {
		case err == nil && !info.IsDir():
			w.Header().Set("Cache-Control", cacheControl(clean))
			files.ServeHTTP(w, r)
		case err == nil && info.IsDir(), path.Ext(clean) == "":
			serveIndex(w, r, dir)
		default:
			http.NotFound(w, r)
		}
	})
}

func cacheControl(p string) string {
	top := strings.SplitN(strings.TrimPrefix(p, "/"), "/", 2)[0]
	switch top {
	case "js", "css", "img":
		if buildcfg.IsHashed(p) {
			return "public, max-age=31536000, immutable"
		}
	}
	return "no-cache"
}

func serveIndex(w http.ResponseWriter, r *http.Request, dir string) {
	f, err := os.Open(filepath.Join(dir, "index.html"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, "failed to read index", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "index.html", info.ModTime(), f)
}
