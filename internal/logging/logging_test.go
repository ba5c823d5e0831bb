package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSONToWriterAndFile(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "run.jsonl")

	logger, cleanup, err := Setup(&buf, Options{File: file, Level: slog.LevelInfo})
	require.NoError(t, err)
	logger.Info("catalogue built", "definitions", 3)
	logger.Debug("hidden")
	cleanup()

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "catalogue built", rec["msg"])
	assert.Equal(t, float64(3), rec["definitions"])

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(data))
}

func TestSetup_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := Setup(&buf, Options{Format: "text", Level: slog.LevelDebug})
	require.NoError(t, err)
	defer cleanup()

	logger.Debug("shape computed", "decl", "Map")
	assert.Contains(t, buf.String(), "msg=\"shape computed\" decl=Map")
}

func TestSetup_BadFormat(t *testing.T) {
	_, _, err := Setup(&bytes.Buffer{}, Options{Format: "xml"})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}
