package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dop251/goja"
	"github.com/npillmayer/schuko/tracing"
)

var (
	ErrNotLoaded          = errors.New("no server bundle loaded")
	ErrRenderFuncMissing  = errors.New("render function not defined by bundle")
	ErrRenderResultNotStr = errors.New("render function did not return a string")
)

func tracer() tracing.Trace {
	return tracing.Select("kaffe.engine")
}

const prelude = `var module = { exports: {} };
var exports = module.exports;
`

// Goja evaluates the server bundle and calls its render function. A single
// runtime is not safe for concurrent use, so calls are serialized.
type Goja struct {
	mu     sync.Mutex
	vm     *goja.Runtime
	loaded bool
}

func NewGoja() (*Goja, error) {
	vm := goja.New()
	g := &Goja{vm: vm}
	if err := g.installShims(); err != nil {
		return nil, fmt.Errorf("failed to install runtime shims: %w", err)
	}
	return g, nil
}

func (g *Goja) installShims() error {
	console := g.vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error", "debug"} {
		err := console.Set(level, func(call goja.FunctionCall) goja.Value {
			parts := make([]string, 0, len(call.Arguments))
			for _, arg := range call.Arguments {
				parts = append(parts, arg.String())
			}
			msg := strings.Join(parts, " ")
			if level == "error" || level == "warn" {
				tracer().Errorf("console.%s: %s", level, msg)
			} else {
				tracer().Debugf("console.%s: %s", level, msg)
			}
			return goja.Undefined()
		})
		if err != nil {
			return err
		}
	}
	if err := g.vm.Set("console", console); err != nil {
		return err
	}

	if err := g.vm.Set("process", map[string]any{
		"env": map[string]any{"NODE_ENV": "production"},
	}); err != nil {
		return err
	}

	if err := g.vm.Set("require", func(call goja.FunctionCall) goja.Value {
		tracer().Debugf("require(%s) stubbed", call.Argument(0).String())
		return g.vm.NewObject()
	}); err != nil {
		return err
	}

	_, err := g.vm.RunString(prelude)
	return err
}

// Load evaluates the bundle at path.
func (g *Goja) Load(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read server bundle: %w", err)
	}
	return g.LoadSource(ctx, path, string(src))
}

func (g *Goja) LoadSource(ctx context.Context, name string, src string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, err := g.run(ctx, func() (goja.Value, error) {
		return g.vm.RunScript(name, src)
	})
	if err != nil {
		return fmt.Errorf("failed to evaluate %s: %w", name, err)
	}
	g.loaded = true
	tracer().Infof("loaded server bundle %s", name)
	return nil
}

// Render calls fn(location) and returns its string result. fn is looked up
// on the global object first, then on module.exports.
func (g *Goja) Render(ctx context.Context, fn string, location string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.loaded {
		return "", ErrNotLoaded
	}

	call, ok := g.lookup(fn)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRenderFuncMissing, fn)
	}

	result, err := g.run(ctx, func() (goja.Value, error) {
		return call(goja.Undefined(), g.vm.ToValue(location))
	})
	if err != nil {
		return "", fmt.Errorf("%s(%q) failed: %w", fn, location, err)
	}

	s, ok := result.Export().(string)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRenderResultNotStr, fn)
	}
	return s, nil
}

func (g *Goja) lookup(fn string) (goja.Callable, bool) {
	if call, ok := goja.AssertFunction(g.vm.Get(fn)); ok {
		return call, true
	}
	module := g.vm.Get("module")
	if module == nil || goja.IsUndefined(module) || goja.IsNull(module) {
		return nil, false
	}
	exports := module.ToObject(g.vm).Get("exports")
	if exports == nil || goja.IsUndefined(exports) || goja.IsNull(exports) {
		return nil, false
	}
	return goja.AssertFunction(exports.ToObject(g.vm).Get(fn))
}

// run executes f and interrupts the VM if ctx ends first.
func (g *Goja) run(ctx context.Context, f func() (goja.Value, error)) (goja.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	watcher := make(chan struct{})
	go func() {
		defer close(watcher)
		select {
		case <-ctx.Done():
			g.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	v, err := f()
	close(done)
	<-watcher
	g.vm.ClearInterrupt()

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if cause, ok := interrupted.Value().(error); ok {
			return nil, cause
		}
		return nil, ctx.Err()
	}
	return v, err
}
