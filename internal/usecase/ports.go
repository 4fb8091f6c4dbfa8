package usecase

import (
	"context"
	"io"

	"github.com/3-lines-studio/kaffe/internal/adapters/fs"
	"github.com/3-lines-studio/kaffe/internal/adapters/process"
)

type Bundler interface {
	Bundle(ctx context.Context) (process.BundleOutput, error)
}

type ScriptEngine interface {
	Load(ctx context.Context, path string) error
	Render(ctx context.Context, fn string, location string) (string, error)
}

// EngineFactory returns a fresh engine for each build so a rebuilt bundle
// never sees globals left by the previous one.
type EngineFactory func() (ScriptEngine, error)

type TemplateLoader interface {
	Load(overridePath string, name string) (string, error)
}

type CLIOutput interface {
	PrintHeader(msg string)
	PrintStep(emoji, msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	Stdout() io.Writer
	Stderr() io.Writer
}

type FileSystem = fs.FileSystem
