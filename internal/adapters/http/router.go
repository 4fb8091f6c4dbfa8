package http

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("kaffe.http")
}

// NewRouter serves a build output directory. When pages is non-nil it
// handles "/" instead of the prebuilt index.html.
func NewRouter(outputDir string, pages http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestTrace)

	r.Handle("/static/*", http.StripPrefix("/static", NewFileHandler(filepath.Join(outputDir, "static"))))

	if pages != nil {
		r.Handle("/", pages)
	} else {
		index := filepath.Join(outputDir, "index.html")
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			serveFile(w, req, index)
		})
		r.Head("/", func(w http.ResponseWriter, req *http.Request) {
			serveFile(w, req, index)
		})
	}

	r.NotFound(NewFileHandler(outputDir).ServeHTTP)
	return r
}

func requestTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		tracer().Debugf("%s %s -> %d", req.Method, req.URL.Path, ww.Status())
	})
}
