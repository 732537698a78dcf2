package xfs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"slash path", "~/models/voice.onnx", filepath.Join(home, "models", "voice.onnx")},
		{"bare tilde", "~", home},
		{"tilde user untouched", "~foo/bar", "~foo/bar"},
		{"absolute untouched", "/var/lib/echoverse", "/var/lib/echoverse"},
		{"relative untouched", "models/voice.onnx", "models/voice.onnx"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandTilde(tt.in))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir), "existing directory is fine")
}
