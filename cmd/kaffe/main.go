package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/pflag"

	"github.com/3-lines-studio/kaffe/internal/adapters"
	"github.com/3-lines-studio/kaffe/internal/adapters/cli"
	"github.com/3-lines-studio/kaffe/internal/adapters/engine"
	"github.com/3-lines-studio/kaffe/internal/adapters/env"
	"github.com/3-lines-studio/kaffe/internal/adapters/fs"
	kafhttp "github.com/3-lines-studio/kaffe/internal/adapters/http"
	"github.com/3-lines-studio/kaffe/internal/adapters/process"
	"github.com/3-lines-studio/kaffe/internal/core"
	"github.com/3-lines-studio/kaffe/internal/usecase"
)

var traceKeys = []string{"kaffe.usecase", "kaffe.engine", "kaffe.process", "kaffe.http"}

func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

type options struct {
	noServe     bool
	compileOnly bool
	initProject bool
}

func parseFlags(cfg *core.Config, args []string) (options, error) {
	var opts options
	flags := pflag.NewFlagSet("kaffe", pflag.ContinueOnError)
	flags.StringVarP(&cfg.MarkdownPath, "markdown-path", "m", cfg.MarkdownPath, "Markup document to compile")
	flags.IntVarP(&cfg.ServerPort, "server-port", "p", cfg.ServerPort, "Port to serve the page on (0 picks a free port)")
	flags.StringVarP(&cfg.ComponentDir, "client-component-directory", "c", cfg.ComponentDir, "Directory holding the UI components")
	flags.StringVarP(&cfg.ClientBuildDir, "client-build-dir", "b", cfg.ClientBuildDir, "Where components are copied for bundling")
	flags.StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "Directory for the built page")
	flags.StringVar(&cfg.ClientDir, "client-dir", cfg.ClientDir, "Client project the bundler runs in")
	flags.StringVar(&cfg.Bundler, "bundler", cfg.Bundler, "Bundler command line (empty skips bundling)")
	flags.StringVar(&cfg.Title, "title", cfg.Title, "Page title (defaults to the first heading)")
	flags.StringVar(&cfg.RenderFunc, "render-func", cfg.RenderFunc, "Global render function exported by the server bundle")
	flags.StringVar(&cfg.Order, "order", cfg.Order, "Recognizer priority as comma separated kinds (empty uses the default)")
	flags.BoolVar(&opts.noServe, "no-serve", false, "Build and exit without serving")
	flags.BoolVar(&opts.compileOnly, "compile-only", false, "Print the compiled artifact as JSON and exit")
	flags.BoolVar(&opts.initProject, "init", false, "Write the built-in templates and a starter document, then exit")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kaffe [flags]\n\nFlags:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	return opts, cfg.Validate()
}

func main() {
	output := cli.NewOutput()

	if err := setupTracing(env.TraceLevel()); err != nil {
		output.PrintError("Failed to configure tracing: %v", err)
		os.Exit(1)
	}

	cfg := core.DefaultConfig()
	if err := env.ApplyEnv(&cfg); err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
	opts, err := parseFlags(&cfg, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		output.PrintError("%v", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	osfs := fs.NewOSFileSystem()
	templateSource := adapters.NewTemplateSource(osfs)
	if opts.initProject {
		result := usecase.NewInitService(templateSource, osfs, output).Init(usecase.InitInput{Config: cfg})
		if result.Error != nil {
			output.PrintError("%v", result.Error)
			os.Exit(1)
		}
		return
	}

	var bundler usecase.Bundler
	if args := cfg.BundlerArgs(); len(args) > 0 {
		bundler = process.NewBundler(args, cfg.ClientDir)
	}
	newEngine := func() (usecase.ScriptEngine, error) {
		return engine.NewGoja()
	}
	service := usecase.NewBuildService(bundler, newEngine, templateSource, osfs, output)

	if opts.compileOnly {
		os.Exit(compileOnly(ctx, service, cfg, output))
	}

	output.PrintHeader("Kaffe")
	result := service.Build(ctx, usecase.BuildInput{Config: cfg})
	if result.Error != nil {
		os.Exit(1)
	}
	if opts.noServe {
		return
	}

	var pages http.Handler
	if cfg.Mode == core.ModeDev {
		pages = kafhttp.NewPageHandler(usecase.NewPageService(service), cfg)
	}
	if err := serve(ctx, cfg, kafhttp.NewRouter(cfg.OutputDir, pages), output); err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
}

func compileOnly(ctx context.Context, service *usecase.BuildService, cfg core.Config, output *cli.Output) int {
	result := service.CompileOnly(ctx, usecase.BuildInput{Config: cfg})
	if result.Error != nil {
		output.PrintError("%v", result.Error)
		return 1
	}
	enc := json.NewEncoder(output.Stdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.Artifact); err != nil {
		output.PrintError("Failed to encode artifact: %v", err)
		return 1
	}
	return 0
}

func serve(ctx context.Context, cfg core.Config, handler http.Handler, output *cli.Output) error {
	listener, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr(), err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	output.PrintURL("http://" + listener.Addr().String())
	if cfg.Mode == core.ModeDev {
		output.PrintStep("", "Dev mode: the page is rebuilt on every request")
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(listener)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
