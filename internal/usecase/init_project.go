package usecase

import (
	"fmt"
	"path/filepath"

	"github.com/3-lines-studio/kaffe/internal/core"
	"github.com/3-lines-studio/kaffe/internal/templates"
)

const starterDocument = "# Welcome\n\nThis page was compiled by kaffe. Edit the document and build again.\n\n"

const componentKeep = "# Components placed here are copied next to the generated entries.\n"

type InitInput struct {
	Config core.Config
}

type InitResult struct {
	Created []string
	Skipped []string
	Error   error
}

// InitService writes the built-in templates and a starter document so a
// project can customize them. Existing files are left untouched.
type InitService struct {
	templates TemplateLoader
	fs        FileSystem
	cli       CLIOutput
}

func NewInitService(templates TemplateLoader, fs FileSystem, cli CLIOutput) *InitService {
	return &InitService{
		templates: templates,
		fs:        fs,
		cli:       cli,
	}
}

func (s *InitService) Init(input InitInput) InitResult {
	cfg := input.Config
	s.cli.PrintHeader("Kaffe Init")

	var result InitResult
	files := []struct {
		path     string
		template string
		content  string
	}{
		{path: cfg.ServerEntryTemplatePath(), template: templates.ServerEntry},
		{path: cfg.ClientEntryTemplatePath(), template: templates.ClientEntry},
		{path: cfg.PageTemplatePath(), template: templates.Page},
		{path: filepath.Join(cfg.ComponentDir, ".gitkeep"), content: componentKeep},
		{path: cfg.MarkdownPath, content: starterDocument},
	}

	for _, f := range files {
		if s.fs.FileExists(f.path) {
			result.Skipped = append(result.Skipped, f.path)
			s.cli.PrintStep("", "%s exists, skipped", f.path)
			continue
		}

		content := f.content
		if f.template != "" {
			tpl, err := s.templates.Load("", f.template)
			if err != nil {
				result.Error = err
				return result
			}
			content = tpl
		}

		if err := s.fs.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
			result.Error = fmt.Errorf("failed to create directory %s: %w", filepath.Dir(f.path), err)
			return result
		}
		if err := s.fs.WriteFile(f.path, []byte(content), 0644); err != nil {
			result.Error = fmt.Errorf("failed to write file %s: %w", f.path, err)
			return result
		}
		s.cli.PrintFile(f.path)
		result.Created = append(result.Created, f.path)
	}

	s.cli.PrintDone(fmt.Sprintf("Created %d files", len(result.Created)))
	return result
}
