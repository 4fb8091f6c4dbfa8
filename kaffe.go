package kaffe

import (
	"context"
	"io"
	"net/http"

	"github.com/3-lines-studio/kaffe/internal/adapters"
	"github.com/3-lines-studio/kaffe/internal/adapters/cli"
	"github.com/3-lines-studio/kaffe/internal/adapters/engine"
	"github.com/3-lines-studio/kaffe/internal/adapters/fs"
	kafhttp "github.com/3-lines-studio/kaffe/internal/adapters/http"
	"github.com/3-lines-studio/kaffe/internal/adapters/process"
	"github.com/3-lines-studio/kaffe/internal/core"
	"github.com/3-lines-studio/kaffe/internal/core/markup"
	"github.com/3-lines-studio/kaffe/internal/usecase"
)

type Artifact = markup.Artifact

type ParseFailure = markup.ParseFailure

type Config = core.Config

type Manifest = core.Manifest

var ErrParse = markup.ErrParse

const (
	ModeProd = core.ModeProd
	ModeDev  = core.ModeDev
)

// Compile turns a markup document into its HTML fragment, import lines and
// component names.
func Compile(src string) (Artifact, error) {
	return markup.Compile(src)
}

func DefaultConfig() Config {
	return core.DefaultConfig()
}

type Option func(*App)

// WithOutput sends build reports to the given writers instead of the
// terminal.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.output = cli.NewOutputTo(stdout, stderr)
	}
}

// Quiet suppresses the build report.
func Quiet() Option {
	return func(a *App) {
		a.quiet = true
	}
}

type App struct {
	config  Config
	output  *cli.Output
	quiet   bool
	service *usecase.BuildService
}

func New(cfg Config, opts ...Option) *App {
	app := &App{config: cfg}
	for _, opt := range opts {
		opt(app)
	}
	if app.output == nil {
		app.output = cli.NewOutput()
	}

	osfs := fs.NewOSFileSystem()
	var bundler usecase.Bundler
	if args := cfg.BundlerArgs(); len(args) > 0 {
		bundler = process.NewBundler(args, cfg.ClientDir)
	}
	newEngine := func() (usecase.ScriptEngine, error) {
		return engine.NewGoja()
	}
	app.service = usecase.NewBuildService(bundler, newEngine, adapters.NewTemplateSource(osfs), osfs, app.output)
	return app
}

// Build runs the full pipeline and writes the page to the output directory.
func (a *App) Build(ctx context.Context) (*Manifest, error) {
	if err := a.config.Validate(); err != nil {
		return nil, err
	}
	result := a.service.Build(ctx, usecase.BuildInput{Config: a.config, Quiet: a.quiet})
	if result.Error != nil {
		return nil, result.Error
	}
	return result.Manifest, nil
}

// Handler serves the output directory. In dev mode "/" is rebuilt on every
// request.
func (a *App) Handler() http.Handler {
	var pages http.Handler
	if a.config.Mode == core.ModeDev {
		pages = kafhttp.NewPageHandler(usecase.NewPageService(a.service), a.config)
	}
	return kafhttp.NewRouter(a.config.OutputDir, pages)
}
