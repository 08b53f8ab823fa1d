package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNew_WritesConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log, cleanup, err := New(Options{Level: "info", Output: &buf})
	require.NoError(t, err)

	log.Infow("moved mod", "id", "Foo.Bar")
	log.Debug("hidden")
	cleanup()

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "moved mod")
	assert.Contains(t, out, "Foo.Bar")
	assert.NotContains(t, out, "hidden")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "svmm.log")
	log, cleanup, err := New(Options{Level: "warn", File: path})
	require.NoError(t, err)

	log.Warn("something odd")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "something odd")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := Nop()
	assert.Same(t, l, OrNop(l))
}
