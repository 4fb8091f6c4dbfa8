package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/npillmayer/schuko/tracing"

	"github.com/3-lines-studio/kaffe/internal/adapters/cli"
	"github.com/3-lines-studio/kaffe/internal/core"
	"github.com/3-lines-studio/kaffe/internal/core/markup"
	"github.com/3-lines-studio/kaffe/internal/templates"
)

const renderTimeout = 10 * time.Second

// BundlePath is where the page loads the client bundle from.
const BundlePath = "/static/" + core.BundleName

func tracer() tracing.Trace {
	return tracing.Select("kaffe.usecase")
}

type BuildInput struct {
	Config   core.Config
	Location string
	Quiet    bool
}

type BuildResult struct {
	Artifact markup.Artifact
	Manifest *core.Manifest
	Page     string
	Files    []string
	Warnings []string
	SSR      bool
	Error    error
}

type BuildService struct {
	bundler   Bundler
	newEngine EngineFactory
	templates TemplateLoader
	fs        FileSystem
	cli       CLIOutput
}

// NewBuildService wires the pipeline. bundler and newEngine may be nil, in
// which case those stages are skipped and the raw fragment is served.
func NewBuildService(bundler Bundler, newEngine EngineFactory, templates TemplateLoader, fs FileSystem, cli CLIOutput) *BuildService {
	return &BuildService{
		bundler:   bundler,
		newEngine: newEngine,
		templates: templates,
		fs:        fs,
		cli:       cli,
	}
}

func (s *BuildService) HasBundler() bool {
	return s.bundler != nil
}

type source struct {
	artifact markup.Artifact
	title    string
}

func (s *BuildService) compile(cfg core.Config) (source, error) {
	data, err := s.fs.ReadFile(cfg.MarkdownPath)
	if err != nil {
		return source{}, fmt.Errorf("failed to read markdown: %w", err)
	}

	fileTitle, err := core.TitleFromPath(cfg.MarkdownPath)
	if err != nil {
		return source{}, fmt.Errorf("failed to derive title from %q: %w", cfg.MarkdownPath, err)
	}

	order, err := cfg.RecognizerOrder()
	if err != nil {
		return source{}, err
	}
	doc, err := markup.ParseWithOrder(string(data), order)
	if err != nil {
		return source{}, fmt.Errorf("failed to compile %s: %w", cfg.MarkdownPath, err)
	}
	art := markup.Generate(doc)

	title := cfg.Title
	if title == "" {
		title = core.DocumentTitle(art.HTML, fileTitle)
	}
	return source{artifact: art, title: title}, nil
}

// CompileOnly parses the document and wraps the fragment in the default
// page shell. Nothing is written and no script runs.
func (s *BuildService) CompileOnly(ctx context.Context, input BuildInput) BuildResult {
	if err := ctx.Err(); err != nil {
		return BuildResult{Error: err}
	}

	src, err := s.compile(input.Config)
	if err != nil {
		return BuildResult{Error: err}
	}

	page := core.RenderHTMLShell(core.PageData{Content: src.artifact.HTML, Title: src.title})
	manifest := s.manifest(input.Config, src, "", false)
	manifest.HTMLHash = core.HashContent([]byte(page))
	return BuildResult{
		Artifact: src.artifact,
		Page:     page,
		Manifest: manifest,
	}
}

func (s *BuildService) Build(ctx context.Context, input BuildInput) BuildResult {
	cfg := input.Config
	location := input.Location
	if location == "" {
		location = "/"
	}

	report := cli.NewBuildReport(s.cli, cfg.MarkdownPath, cfg.OutputDir)
	result := BuildResult{}
	fail := func(err error) BuildResult {
		result.Error = err
		if !input.Quiet {
			report.AddError("Build", err.Error(), nil)
			report.Render()
		}
		return result
	}
	warn := func(stage, message string, err error) {
		tracer().Infof("%s: %s: %v", stage, message, err)
		report.AddWarning(stage, message, []string{err.Error()})
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", message, err))
	}

	step := report.StartStep("Compiling markup")
	src, err := s.compile(cfg)
	if err != nil {
		report.EndStep(step, false, err.Error())
		return fail(err)
	}
	report.EndStep(step, true, "")
	result.Artifact = src.artifact

	step = report.StartStep("Writing entry files")
	if err := s.writeEntries(cfg, src.artifact, report, &result); err != nil {
		report.EndStep(step, false, err.Error())
		return fail(err)
	}
	report.EndStep(step, true, "")

	step = report.StartStep("Copying components")
	n, err := s.fs.CopyDir(cfg.ComponentDir, cfg.ClientBuildDir)
	if err != nil {
		warn("Components", "Failed to copy components", err)
	} else {
		tracer().Debugf("copied %d components to %s", n, cfg.ClientBuildDir)
	}
	report.EndStep(step, true, "")

	bundled := false
	if s.bundler != nil {
		step = report.StartStep("Running bundler")
		out, err := s.bundler.Bundle(ctx)
		if err != nil {
			report.EndStep(step, false, err.Error())
			return fail(fmt.Errorf("failed to bundle client: %w", err))
		}
		if out.Stderr != "" {
			tracer().Infof("bundler stderr: %s", out.Stderr)
		}
		report.EndStep(step, true, "")
		bundled = true
	}

	content := src.artifact.HTML
	if s.newEngine != nil && s.fs.FileExists(cfg.ServerBundlePath()) {
		step = report.StartStep("Rendering on the server")
		rendered, err := s.render(ctx, cfg, location)
		if err != nil {
			warn("SSR", "Server render failed, serving the static fragment", err)
		} else {
			content = rendered
			result.SSR = true
		}
		report.EndStep(step, true, "")
	}

	step = report.StartStep("Writing page")
	bundlePath := ""
	if bundled || s.fs.FileExists(cfg.ClientBundlePath()) {
		staticBundle := filepath.Join(cfg.StaticDir(), core.BundleName)
		if err := s.fs.CopyFile(cfg.ClientBundlePath(), staticBundle); err != nil {
			warn("Bundle", "Failed to publish client bundle", err)
		} else {
			data, _ := s.fs.ReadFile(staticBundle)
			report.AddFile(staticBundle, len(data))
			result.Files = append(result.Files, staticBundle)
			bundlePath = BundlePath
		}
	}

	page := core.PageData{Content: content, BundlePath: bundlePath, Title: src.title}
	if bundlePath == "" {
		result.Page = core.RenderHTMLShell(page)
	} else {
		pageTemplate, err := s.templates.Load(cfg.PageTemplatePath(), templates.Page)
		if err != nil {
			report.EndStep(step, false, err.Error())
			return fail(err)
		}
		result.Page = core.RenderPage(pageTemplate, page)
	}
	if err := s.write(cfg.IndexPath(), []byte(result.Page), report, &result); err != nil {
		report.EndStep(step, false, err.Error())
		return fail(err)
	}

	result.Manifest = s.manifest(cfg, src, bundlePath, result.SSR)
	result.Manifest.HTMLHash = core.HashContent([]byte(result.Page))
	if bundlePath != "" {
		if data, err := s.fs.ReadFile(cfg.ClientBundlePath()); err == nil {
			result.Manifest.BundleHash = core.HashContent(data)
		}
	}
	manifestData, err := result.Manifest.Marshal()
	if err != nil {
		report.EndStep(step, false, err.Error())
		return fail(fmt.Errorf("failed to marshal manifest: %w", err))
	}
	if err := s.write(cfg.ManifestPath(), manifestData, report, &result); err != nil {
		report.EndStep(step, false, err.Error())
		return fail(err)
	}
	report.EndStep(step, true, "")

	if !input.Quiet {
		report.Render()
	}
	return result
}

func (s *BuildService) writeEntries(cfg core.Config, art markup.Artifact, report *cli.BuildReport, result *BuildResult) error {
	entries := []struct {
		override string
		name     string
		dest     string
	}{
		{cfg.ServerEntryTemplatePath(), templates.ServerEntry, cfg.ServerEntryPath()},
		{cfg.ClientEntryTemplatePath(), templates.ClientEntry, cfg.ClientEntryPath()},
	}

	for _, e := range entries {
		tpl, err := s.templates.Load(e.override, e.name)
		if err != nil {
			return err
		}
		if err := s.write(e.dest, []byte(core.RenderEntry(tpl, art)), report, result); err != nil {
			return err
		}
	}
	return nil
}

func (s *BuildService) render(ctx context.Context, cfg core.Config, location string) (string, error) {
	engine, err := s.newEngine()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	if err := engine.Load(ctx, cfg.ServerBundlePath()); err != nil {
		return "", err
	}
	return engine.Render(ctx, cfg.RenderFunc, location)
}

func (s *BuildService) write(path string, data []byte, report *cli.BuildReport, result *BuildResult) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := s.fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	report.AddFile(path, len(data))
	result.Files = append(result.Files, path)
	return nil
}

func (s *BuildService) manifest(cfg core.Config, src source, bundlePath string, ssr bool) *core.Manifest {
	return &core.Manifest{
		Source:     cfg.MarkdownPath,
		Title:      src.title,
		Imports:    src.artifact.Imports,
		Components: src.artifact.Components,
		Bundle:     bundlePath,
		SSR:        ssr,
	}
}

// IsParseFailure reports whether err came from the markup parser.
func IsParseFailure(err error) bool {
	return errors.Is(err, markup.ErrParse)
}
