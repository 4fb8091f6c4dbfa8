package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/kaffe/internal/core/markup"
)

type Mode int

const (
	ModeProd Mode = iota
	ModeDev
)

func (m Mode) String() string {
	if m == ModeDev {
		return "dev"
	}
	return "prod"
}

const (
	DefaultMarkdownPath   = "examples/example_with_react.mdx"
	DefaultServerPort     = 8080
	DefaultComponentDir   = "client/src/components"
	DefaultClientBuildDir = "client/dist/components"
	DefaultOutputDir      = "output"
	DefaultClientDir      = "client"
	DefaultBundler        = "node build.cjs"
	DefaultRenderFunc     = "renderToString"
	BundleName            = "bundle.js"
	ServerBundleName      = "ssr.js"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds every path the build pipeline touches. Relative paths are
// resolved against the working directory.
type Config struct {
	MarkdownPath   string
	ServerPort     int
	ComponentDir   string
	ClientBuildDir string
	OutputDir      string
	ClientDir      string
	Bundler        string
	Title          string
	RenderFunc     string
	// Order lists recognizer kinds by priority, e.g. "import,heading,text".
	// Empty uses markup.DefaultOrder.
	Order string
	Mode  Mode
}

func DefaultConfig() Config {
	return Config{
		MarkdownPath:   DefaultMarkdownPath,
		ServerPort:     DefaultServerPort,
		ComponentDir:   DefaultComponentDir,
		ClientBuildDir: DefaultClientBuildDir,
		OutputDir:      DefaultOutputDir,
		ClientDir:      DefaultClientDir,
		Bundler:        DefaultBundler,
		RenderFunc:     DefaultRenderFunc,
		Mode:           ModeProd,
	}
}

func (c Config) Validate() error {
	if c.MarkdownPath == "" {
		return fmt.Errorf("%w: markdown path cannot be empty", ErrInvalidConfig)
	}
	if c.ServerPort < 0 || c.ServerPort > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.ServerPort)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output dir cannot be empty", ErrInvalidConfig)
	}
	if c.ClientDir == "" {
		return fmt.Errorf("%w: client dir cannot be empty", ErrInvalidConfig)
	}
	if c.RenderFunc == "" {
		return fmt.Errorf("%w: render function cannot be empty", ErrInvalidConfig)
	}
	if _, err := c.RecognizerOrder(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// BundlerArgs splits the bundler command line on whitespace. An empty
// command disables bundling.
func (c Config) BundlerArgs() []string {
	return strings.Fields(c.Bundler)
}

func (c Config) DistDir() string {
	return filepath.Join(c.ClientDir, "dist")
}

func (c Config) ServerEntryPath() string {
	return filepath.Join(c.DistDir(), "server-entry.tsx")
}

func (c Config) ClientEntryPath() string {
	return filepath.Join(c.DistDir(), "client-entry.tsx")
}

func (c Config) ServerBundlePath() string {
	return filepath.Join(c.DistDir(), ServerBundleName)
}

func (c Config) ClientBundlePath() string {
	return filepath.Join(c.DistDir(), BundleName)
}

func (c Config) StaticDir() string {
	return filepath.Join(c.OutputDir, "static")
}

func (c Config) IndexPath() string {
	return filepath.Join(c.OutputDir, "index.html")
}

func (c Config) ManifestPath() string {
	return filepath.Join(c.OutputDir, "manifest.json")
}

// Template paths a client directory may provide to override the built-in
// defaults.
func (c Config) ServerEntryTemplatePath() string {
	return filepath.Join(c.ClientDir, "src", "server-entry.template.tsx")
}

func (c Config) ClientEntryTemplatePath() string {
	return filepath.Join(c.ClientDir, "src", "client-entry.template.tsx")
}

func (c Config) PageTemplatePath() string {
	return filepath.Join(c.ClientDir, "template.html")
}

func (c Config) Addr() string {
	return fmt.Sprintf("127.0.0.1:%d", c.ServerPort)
}

func (c Config) RecognizerOrder() ([]markup.Kind, error) {
	if c.Order == "" {
		return markup.DefaultOrder, nil
	}
	return markup.ParseOrder(c.Order)
}
