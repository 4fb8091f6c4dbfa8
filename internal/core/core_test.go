package core

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/3-lines-studio/kaffe/internal/core/markup"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "port zero picks a free port", mutate: func(c *Config) { c.ServerPort = 0 }},
		{name: "empty markdown path", mutate: func(c *Config) { c.MarkdownPath = "" }, wantErr: true},
		{name: "negative port", mutate: func(c *Config) { c.ServerPort = -1 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.ServerPort = 70000 }, wantErr: true},
		{name: "empty output dir", mutate: func(c *Config) { c.OutputDir = "" }, wantErr: true},
		{name: "empty client dir", mutate: func(c *Config) { c.ClientDir = "" }, wantErr: true},
		{name: "empty render function", mutate: func(c *Config) { c.RenderFunc = "" }, wantErr: true},
		{name: "custom order", mutate: func(c *Config) { c.Order = "heading, paragraph, text" }},
		{name: "unknown recognizer", mutate: func(c *Config) { c.Order = "heading,table" }, wantErr: true},
		{name: "duplicate recognizer", mutate: func(c *Config) { c.Order = "text,text" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := DefaultConfig()

	if got, want := cfg.ServerBundlePath(), filepath.Join("client", "dist", "ssr.js"); got != want {
		t.Errorf("ServerBundlePath() = %q, want %q", got, want)
	}
	if got, want := cfg.ClientBundlePath(), filepath.Join("client", "dist", "bundle.js"); got != want {
		t.Errorf("ClientBundlePath() = %q, want %q", got, want)
	}
	if got, want := cfg.IndexPath(), filepath.Join("output", "index.html"); got != want {
		t.Errorf("IndexPath() = %q, want %q", got, want)
	}
	if got, want := cfg.StaticDir(), filepath.Join("output", "static"); got != want {
		t.Errorf("StaticDir() = %q, want %q", got, want)
	}
	if got := cfg.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
	if got := cfg.BundlerArgs(); len(got) != 2 || got[0] != "node" || got[1] != "build.cjs" {
		t.Errorf("BundlerArgs() = %v", got)
	}

	cfg.Bundler = "   "
	if got := cfg.BundlerArgs(); len(got) != 0 {
		t.Errorf("blank bundler should disable bundling, got %v", got)
	}
}

func TestRenderEntry(t *testing.T) {
	art := markup.Artifact{
		HTML:       "<Chart></Chart>\n",
		Imports:    []string{"import Chart from './Chart';", "import { A, B } from './x';"},
		Components: []string{"Chart", "A", "B"},
	}

	template := "%{{ REPLACE_IMPORTS }}%\nconst components = { %{{ REPLACE_COMPONENTS }}% };\n<div>%{{ REPLACE_CONTENT }}%</div>"
	want := "import Chart from './Chart';\nimport { A, B } from './x';\nconst components = { Chart, A, B };\n<div><Chart></Chart>\n</div>"

	if got := RenderEntry(template, art); got != want {
		t.Errorf("RenderEntry() = %q, want %q", got, want)
	}
}

func TestRenderEntrySinglePass(t *testing.T) {
	art := markup.Artifact{HTML: "<p>%{{ REPLACE_IMPORTS }}%</p>\n"}
	got := RenderEntry("%{{ REPLACE_CONTENT }}%", art)
	if got != art.HTML {
		t.Errorf("placeholder inside content was substituted: %q", got)
	}
}

func TestRenderEntryEmptyArtifact(t *testing.T) {
	got := RenderEntry("[%{{ REPLACE_IMPORTS }}%][%{{ REPLACE_COMPONENTS }}%][%{{ REPLACE_CONTENT }}%]", markup.Artifact{})
	if got != "[][][]" {
		t.Errorf("RenderEntry() = %q", got)
	}
}

func TestRenderPage(t *testing.T) {
	template := "<title>{{TITLE}}</title><div id=\"app\">{{SSR_CONTENT}}</div><script src=\"{{CLIENT_BUNDLE_PATH}}\"></script>"
	got := RenderPage(template, PageData{Content: "<h1>x</h1>", BundlePath: "/static/bundle.js", Title: "doc.mdx"})
	want := "<title>doc.mdx</title><div id=\"app\"><h1>x</h1></div><script src=\"/static/bundle.js\"></script>"
	if got != want {
		t.Errorf("RenderPage() = %q, want %q", got, want)
	}
}

func TestTitleFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "examples/example_with_react.mdx", want: "example_with_react.mdx"},
		{path: "doc.mdx", want: "doc.mdx"},
		{path: "", wantErr: true},
		{path: ".", wantErr: true},
		{path: "/", wantErr: true},
		{path: "..", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := TitleFromPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrNoFileName) {
					t.Errorf("TitleFromPath(%q) error = %v, want ErrNoFileName", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("TitleFromPath(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("TitleFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDocumentTitle(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{name: "first h1 wins", fragment: "<h2>Sub</h2>\n<h1> Main </h1>\n<h1>Other</h1>\n", want: "Main"},
		{name: "no h1", fragment: "<p>text</p>\n", want: "fallback.mdx"},
		{name: "empty h1", fragment: "<h1></h1>\n", want: "fallback.mdx"},
		{name: "empty fragment", fragment: "", want: "fallback.mdx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DocumentTitle(tt.fragment, "fallback.mdx"); got != tt.want {
				t.Errorf("DocumentTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetContentType(t *testing.T) {
	tests := map[string]string{
		"index.html":     "text/html; charset=utf-8",
		"bundle.js":      "application/javascript",
		"bundle.js.map":  "application/json",
		"style.CSS":      "text/css",
		"logo.svg":       "image/svg+xml",
		"archive.tar.gz": "application/octet-stream",
	}
	for path, want := range tests {
		if got := GetContentType(path); got != want {
			t.Errorf("GetContentType(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestHashContent(t *testing.T) {
	a := HashContent([]byte("bundle"))
	b := HashContent([]byte("bundle"))
	c := HashContent([]byte("bundlf"))

	if a != b {
		t.Errorf("hash not deterministic: %s != %s", a, b)
	}
	if a == c {
		t.Error("different content produced the same hash")
	}
	if got := ETag([]byte("bundle")); got != `"`+a+`"` {
		t.Errorf("ETag() = %s", got)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	m := &Manifest{
		Source:     "doc.mdx",
		Title:      "Doc",
		Imports:    []string{"import A from './A';"},
		Components: []string{"A"},
		Bundle:     "/static/bundle.js",
		BundleHash: "42",
		HTMLHash:   "7",
		SSR:        true,
	}

	data, err := m.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("manifest should end with a newline")
	}

	parsed, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	if parsed.Title != "Doc" || parsed.BundleHash != "42" || !parsed.SSR || len(parsed.Components) != 1 {
		t.Errorf("ParseManifest() = %+v", parsed)
	}

	if _, err := ParseManifest([]byte("{")); err == nil {
		t.Error("expected error for truncated manifest")
	}
}

func TestRenderError(t *testing.T) {
	var dev bytes.Buffer
	if err := RenderError(&dev, "parse <failed>", true); err != nil {
		t.Fatalf("RenderError() error = %v", err)
	}
	if !strings.Contains(dev.String(), "parse &lt;failed&gt;") {
		t.Errorf("dev error page should show the escaped message, got %q", dev.String())
	}

	var prod bytes.Buffer
	if err := RenderError(&prod, "secret", false); err != nil {
		t.Fatalf("RenderError() error = %v", err)
	}
	if strings.Contains(prod.String(), "secret") {
		t.Error("prod error page leaked the message")
	}
}
