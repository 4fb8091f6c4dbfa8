package process

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestBundlerSuccess(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()

	out, err := NewBundler([]string{"sh", "-c", "pwd; echo $NODE_ENV"}, dir).Bundle(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.Stdout, "production")
}

func TestBundlerFailureCarriesStatusAndOutput(t *testing.T) {
	requireShell(t)

	_, err := NewBundler([]string{"sh", "-c", "echo built; echo broken >&2; exit 3"}, t.TempDir()).Bundle(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBundlerFailed))
	assert.Contains(t, err.Error(), "exit status 3")
	assert.Contains(t, err.Error(), "built")
	assert.Contains(t, err.Error(), "broken")
}

func TestBundlerMissing(t *testing.T) {
	_, err := NewBundler([]string{"kaffe-no-such-bundler"}, "").Bundle(context.Background())
	assert.True(t, errors.Is(err, ErrBundlerMissing))

	_, err = NewBundler(nil, "").Bundle(context.Background())
	assert.True(t, errors.Is(err, ErrBundlerMissing))
}

func TestBundlerCanceled(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBundler([]string{"sh", "-c", "sleep 5"}, t.TempDir()).Bundle(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBundlerFailed))
	assert.True(t, errors.Is(err, context.Canceled))
}
