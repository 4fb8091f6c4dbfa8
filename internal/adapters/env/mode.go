package env

import (
	"fmt"
	"os"
	"strconv"

	"github.com/3-lines-studio/kaffe/internal/core"
)

func DetectMode() core.Mode {
	if os.Getenv("KAFFE_DEV") == "1" {
		return core.ModeDev
	}
	return core.ModeProd
}

// ApplyEnv overrides cfg with any KAFFE_* variables that are set. Flags
// given on the command line are applied afterwards and win.
func ApplyEnv(cfg *core.Config) error {
	cfg.Mode = DetectMode()

	fields := map[string]*string{
		"KAFFE_MARKDOWN_PATH":    &cfg.MarkdownPath,
		"KAFFE_COMPONENT_DIR":    &cfg.ComponentDir,
		"KAFFE_CLIENT_BUILD_DIR": &cfg.ClientBuildDir,
		"KAFFE_OUTPUT_DIR":       &cfg.OutputDir,
		"KAFFE_CLIENT_DIR":       &cfg.ClientDir,
		"KAFFE_BUNDLER":          &cfg.Bundler,
		"KAFFE_TITLE":            &cfg.Title,
		"KAFFE_RENDER_FUNC":      &cfg.RenderFunc,
		"KAFFE_ORDER":            &cfg.Order,
	}
	for key, field := range fields {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}

	if v, ok := os.LookupEnv("KAFFE_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: KAFFE_PORT=%q is not a number", core.ErrInvalidConfig, v)
		}
		cfg.ServerPort = port
	}
	return nil
}

// TraceLevel is the schuko trace level requested through KAFFE_TRACE.
func TraceLevel() string {
	if v := os.Getenv("KAFFE_TRACE"); v != "" {
		return v
	}
	return "Error"
}
