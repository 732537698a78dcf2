package tts

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	gotName  string
	gotArgs  []string
	gotStdin string
	stdout   []byte
	stderr   []byte
	err      error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	f.gotName = name
	f.gotArgs = args
	if stdin != nil {
		b, _ := io.ReadAll(stdin)
		f.gotStdin = string(b)
	}

	// Honor context cancellation like a real subprocess would.
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	default:
	}

	return f.stdout, f.stderr, f.err
}

func TestExecutor_Execute(t *testing.T) {
	runner := &fakeRunner{stdout: []byte("ok")}
	e := NewExecutorWithRunner("/usr/bin/espeak-ng", 5*time.Second, runner)

	stdout, stderr, err := e.Execute(context.Background(), []string{"--stdin", "-s", "180"}, strings.NewReader("hello"))
	require.NoError(t, err)

	assert.Equal(t, "ok", string(stdout))
	assert.Empty(t, stderr)
	assert.Equal(t, "/usr/bin/espeak-ng", runner.gotName)
	assert.Equal(t, []string{"--stdin", "-s", "180"}, runner.gotArgs)
	assert.Equal(t, "hello", runner.gotStdin)
}

func TestExecutor_ExecuteCanceledContext(t *testing.T) {
	runner := &fakeRunner{}
	e := NewExecutorWithRunner("/usr/bin/espeak-ng", 5*time.Second, runner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := e.Execute(ctx, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewExecutor_MissingBinary(t *testing.T) {
	_, err := NewExecutor("definitely-not-a-real-binary-name", time.Second)
	assert.Error(t, err)

	_, err = NewExecutor("/nonexistent/path/to/binary", time.Second)
	assert.Error(t, err)
}
