package http

import (
	"bytes"
	"context"
	"html"
	"net/http"

	"github.com/3-lines-studio/kaffe/internal/core"
	"github.com/3-lines-studio/kaffe/internal/usecase"
)

type pageServer interface {
	ServePage(ctx context.Context, input usecase.ServePageInput) usecase.ServePageOutput
}

// PageHandler rebuilds the page on every request.
type PageHandler struct {
	service pageServer
	config  core.Config
	isDev   bool
}

func NewPageHandler(service pageServer, config core.Config) http.Handler {
	return &PageHandler{
		service: service,
		config:  config,
		isDev:   config.Mode == core.ModeDev,
	}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	output := h.service.ServePage(req.Context(), usecase.ServePageInput{
		Config:      h.config,
		RequestPath: req.URL.Path,
	})

	if output.Error != nil {
		h.serveError(w, output.Error)
		return
	}
	h.serveHTML(w, req, output.HTML)
}

func (h *PageHandler) serveHTML(w http.ResponseWriter, req *http.Request, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if req.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(page))
}

func (h *PageHandler) serveError(w http.ResponseWriter, err error) {
	var buf bytes.Buffer
	if renderErr := core.RenderError(&buf, err.Error(), h.isDev); renderErr != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<!doctype html><html><body><pre>" + html.EscapeString(err.Error()) + "</pre></body></html>"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(buf.Bytes())
}
