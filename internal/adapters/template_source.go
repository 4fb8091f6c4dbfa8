package adapters

import (
	"fmt"

	"github.com/3-lines-studio/kaffe/internal/adapters/fs"
	"github.com/3-lines-studio/kaffe/internal/templates"
)

// TemplateSource prefers a template provided by the client directory and
// falls back to the built-in one of the same name.
type TemplateSource struct {
	client   fs.FileSystem
	defaults fs.FileSystem
}

func NewTemplateSource(client fs.FileSystem) *TemplateSource {
	return &TemplateSource{
		client:   client,
		defaults: fs.NewEmbedFileSystem(templates.FS()),
	}
}

func (t *TemplateSource) Load(overridePath string, name string) (string, error) {
	if !templates.IsValid(name) {
		return "", fmt.Errorf("%w: %s", templates.ErrInvalidTemplate, name)
	}

	if overridePath != "" && t.client.FileExists(overridePath) {
		data, err := t.client.ReadFile(overridePath)
		if err != nil {
			return "", fmt.Errorf("failed to read template %s: %w", overridePath, err)
		}
		return string(data), nil
	}

	data, err := t.defaults.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read built-in template %s: %w", name, err)
	}
	return string(data), nil
}
