package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/3-lines-studio/kaffe/internal/core"
	"github.com/3-lines-studio/kaffe/internal/usecase"
)

func writeOutput(t *testing.T) string {
	t.Helper()
	out := t.TempDir()
	files := map[string]string{
		"index.html":       "<!doctype html><div id=\"app\">hi</div>",
		"manifest.json":    "{}",
		"static/bundle.js": "console.log('bundle')",
	}
	for name, content := range files {
		path := filepath.Join(out, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return out
}

func TestRouterServesOutput(t *testing.T) {
	router := NewRouter(writeOutput(t), nil)

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantType    string
		wantContain string
	}{
		{name: "index", path: "/", wantStatus: http.StatusOK, wantType: "text/html; charset=utf-8", wantContain: "id=\"app\""},
		{name: "static bundle", path: "/static/bundle.js", wantStatus: http.StatusOK, wantType: "application/javascript", wantContain: "bundle"},
		{name: "other output file", path: "/manifest.json", wantStatus: http.StatusOK, wantType: "application/json", wantContain: "{}"},
		{name: "missing static", path: "/static/missing.js", wantStatus: http.StatusNotFound},
		{name: "directory is not listed", path: "/static/", wantStatus: http.StatusNotFound},
		{name: "missing page", path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("GET %s status = %d, want %d", tt.path, rec.Code, tt.wantStatus)
			}
			if tt.wantType != "" && rec.Header().Get("Content-Type") != tt.wantType {
				t.Errorf("GET %s Content-Type = %q, want %q", tt.path, rec.Header().Get("Content-Type"), tt.wantType)
			}
			if tt.wantContain != "" && !strings.Contains(rec.Body.String(), tt.wantContain) {
				t.Errorf("GET %s body = %q, want it to contain %q", tt.path, rec.Body.String(), tt.wantContain)
			}
		})
	}
}

func TestRouterETag(t *testing.T) {
	router := NewRouter(writeOutput(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/static/bundle.js", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	etag := rec.Header().Get("ETag")
	if etag != core.ETag([]byte("console.log('bundle')")) {
		t.Fatalf("ETag = %q", etag)
	}

	req = httptest.NewRequest(http.MethodGet, "/static/bundle.js", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Errorf("conditional GET status = %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Error("304 response should have no body")
	}
}

func TestFileHandlerStaysInRoot(t *testing.T) {
	out := writeOutput(t)
	handler := NewFileHandler(filepath.Join(out, "static"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = "/../index.html"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("escaping path status = %d, want 404", rec.Code)
	}
}

type fakePages struct {
	output usecase.ServePageOutput
	got    usecase.ServePageInput
}

func (f *fakePages) ServePage(ctx context.Context, input usecase.ServePageInput) usecase.ServePageOutput {
	f.got = input
	return f.output
}

func TestPageHandler(t *testing.T) {
	t.Run("rebuilt page is served", func(t *testing.T) {
		pages := &fakePages{output: usecase.ServePageOutput{HTML: "<p>fresh</p>"}}
		cfg := core.DefaultConfig()
		router := NewRouter(writeOutput(t), NewPageHandler(pages, cfg))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if rec.Body.String() != "<p>fresh</p>" {
			t.Errorf("body = %q", rec.Body.String())
		}
		if rec.Header().Get("Cache-Control") != "no-store" {
			t.Error("dev page should not be cached")
		}
		if pages.got.RequestPath != "/" {
			t.Errorf("RequestPath = %q", pages.got.RequestPath)
		}
	})

	t.Run("dev error shows message", func(t *testing.T) {
		pages := &fakePages{output: usecase.ServePageOutput{Error: errors.New("failed to parse markup at offset 9")}}
		cfg := core.DefaultConfig()
		cfg.Mode = core.ModeDev

		rec := httptest.NewRecorder()
		NewPageHandler(pages, cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "offset 9") {
			t.Errorf("dev error page should include the message, got %q", rec.Body.String())
		}
	})

	t.Run("prod error hides message", func(t *testing.T) {
		pages := &fakePages{output: usecase.ServePageOutput{Error: errors.New("secret path /home/me")}}

		rec := httptest.NewRecorder()
		NewPageHandler(pages, core.DefaultConfig()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "secret") {
			t.Error("prod error page leaked the message")
		}
	})
}
