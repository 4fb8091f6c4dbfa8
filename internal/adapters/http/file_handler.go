package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/kaffe/internal/core"
)

// FileHandler serves files below root. Directories are not listed.
type FileHandler struct {
	root string
}

func NewFileHandler(root string) http.Handler {
	return &FileHandler{root: root}
}

func (h *FileHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+req.URL.Path), "/")
	if name == "" {
		http.NotFound(w, req)
		return
	}
	serveFile(w, req, filepath.Join(h.root, filepath.FromSlash(name)))
}

func serveFile(w http.ResponseWriter, req *http.Request, fullPath string) {
	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		http.NotFound(w, req)
		return
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		http.NotFound(w, req)
		return
	}

	etag := core.ETag(data)
	w.Header().Set("ETag", etag)
	if req.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", core.GetContentType(fullPath))
	if req.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(data)
}
