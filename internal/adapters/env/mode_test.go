package env

import (
	"errors"
	"testing"

	"github.com/3-lines-studio/kaffe/internal/core"
)

func TestDetectMode(t *testing.T) {
	t.Setenv("KAFFE_DEV", "1")
	if got := DetectMode(); got != core.ModeDev {
		t.Errorf("DetectMode() = %v, want dev", got)
	}

	t.Setenv("KAFFE_DEV", "0")
	if got := DetectMode(); got != core.ModeProd {
		t.Errorf("DetectMode() = %v, want prod", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("KAFFE_DEV", "")
	t.Setenv("KAFFE_MARKDOWN_PATH", "docs/index.mdx")
	t.Setenv("KAFFE_PORT", "9090")
	t.Setenv("KAFFE_BUNDLER", "")
	t.Setenv("KAFFE_ORDER", "heading,text")

	cfg := core.DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.MarkdownPath != "docs/index.mdx" {
		t.Errorf("MarkdownPath = %q", cfg.MarkdownPath)
	}
	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d", cfg.ServerPort)
	}
	if cfg.Bundler != "" {
		t.Errorf("set but empty KAFFE_BUNDLER should clear the bundler, got %q", cfg.Bundler)
	}
	if cfg.Order != "heading,text" {
		t.Errorf("Order = %q", cfg.Order)
	}
	if cfg.OutputDir != core.DefaultOutputDir {
		t.Errorf("unset variable changed OutputDir to %q", cfg.OutputDir)
	}
}

func TestApplyEnvBadPort(t *testing.T) {
	t.Setenv("KAFFE_PORT", "eighty")

	cfg := core.DefaultConfig()
	err := ApplyEnv(&cfg)
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("ApplyEnv() error = %v, want ErrInvalidConfig", err)
	}
}

func TestTraceLevel(t *testing.T) {
	t.Setenv("KAFFE_TRACE", "")
	if got := TraceLevel(); got != "Error" {
		t.Errorf("TraceLevel() = %q", got)
	}
	t.Setenv("KAFFE_TRACE", "Debug")
	if got := TraceLevel(); got != "Debug" {
		t.Errorf("TraceLevel() = %q", got)
	}
}
