package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info("booking id=%d created", 42)
	log.Warn("slot %s taken", "10:00")

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, "booking id=42 created")
	assert.Contains(t, out, "slot 10:00 taken")
}

func TestNew_FileAndLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "warn")
	require.NoError(t, err)
	defer log.Close()

	log.Info("hidden")
	log.Error("visible")
	assert.FileExists(t, path)
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}
