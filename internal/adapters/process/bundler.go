package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

var (
	ErrBundlerMissing = errors.New("bundler command not found")
	ErrBundlerFailed  = errors.New("bundler failed")
)

func tracer() tracing.Trace {
	return tracing.Select("kaffe.process")
}

// Bundler runs the external JavaScript bundler that turns the generated
// entry files into the client and server bundles.
type Bundler struct {
	args []string
	dir  string
}

func NewBundler(args []string, dir string) *Bundler {
	return &Bundler{args: args, dir: dir}
}

type BundleOutput struct {
	Stdout string
	Stderr string
}

func (b *Bundler) Bundle(ctx context.Context) (BundleOutput, error) {
	if len(b.args) == 0 {
		return BundleOutput{}, ErrBundlerMissing
	}

	path, err := exec.LookPath(b.args[0])
	if err != nil {
		return BundleOutput{}, fmt.Errorf("%w: %s", ErrBundlerMissing, b.args[0])
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, b.args[1:]...)
	cmd.Dir = b.dir
	cmd.Env = append(os.Environ(), "NODE_ENV=production")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	tracer().Infof("running %s in %s", strings.Join(b.args, " "), b.dir)
	err = cmd.Run()
	out := BundleOutput{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, fmt.Errorf("%w: %w", ErrBundlerFailed, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, fmt.Errorf("%w with %s\nstdout:\n%s\nstderr:\n%s", ErrBundlerFailed, exitErr.ProcessState, out.Stdout, out.Stderr)
		}
		return out, fmt.Errorf("%w: %w", ErrBundlerFailed, err)
	}
	return out, nil
}
