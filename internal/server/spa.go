package server

import (
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// handleSPA serves the participant front end from dir. Paths that don't
// name a file get index.html so client-side routes still load.
func handleSPA(dir string) http.HandlerFunc {
	root := os.DirFS(dir)
	fileServer := http.FileServerFS(root)

	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if info, err := fs.Stat(root, name); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFileFS(w, r, root, "index.html")
	}
}
