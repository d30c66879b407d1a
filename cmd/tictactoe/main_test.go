package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_TerminalFailureReturnsError(t *testing.T) {
	prevLogger, prevScreen := slog.Default(), newScreen
	t.Cleanup(func() {
		slog.SetDefault(prevLogger)
		newScreen = prevScreen
	})
	newScreen = func() (tcell.Screen, error) { return nil, errors.New("no tty") }

	logPath := filepath.Join(t.TempDir(), "ttt.log")
	t.Setenv("TTT_LOG_FILE", logPath)
	t.Setenv("TTT_SEED", "7")

	err := run("")
	require.Error(t, err)
	assert.ErrorContains(t, err, "no tty")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Terminal UI failed")
}

func TestRun_BadConfig(t *testing.T) {
	err := run(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "failed to load config")
}
