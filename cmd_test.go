package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmd_Flags(t *testing.T) {
	f := &flags{}
	cmd := newCmd(f)

	// When: flags are parsed with an underscore spelling
	require.NoError(t, cmd.ParseFlags([]string{"--log_level", "debug", "-c", "/tmp/rooms.yml"}))

	// Then: both flags are bound
	assert.Equal(t, "debug", f.logLevel)
	assert.Equal(t, "/tmp/rooms.yml", f.configPath)
	assert.True(t, cmd.Flags().Changed("log-level"))
}

func TestNewCmd_Version(t *testing.T) {
	cmd := newCmd(&flags{})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	// When: the version flag is given
	require.NoError(t, cmd.Execute())

	// Then: the version is printed without running the server
	assert.Equal(t, "tictactoe-rooms v"+releaseVersion+"\n", out.String())
}

func TestNewCmd_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("events:\n  driver: kafka\n"), 0o600))

	cmd := newCmd(&flags{})
	cmd.SetArgs([]string{"--config", path})

	// When: the config names an unknown events driver
	err := cmd.Execute()

	// Then: the command fails before anything starts
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown events driver")
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		warn  bool
	}{
		{level: "debug", debug: true, warn: true},
		{level: "info", debug: false, warn: true},
		{level: "error", debug: false, warn: false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := initLogger(tt.level)

			assert.Equal(t, tt.debug, logger.Enabled(context.Background(), slog.LevelDebug))
			assert.Equal(t, tt.warn, logger.Enabled(context.Background(), slog.LevelWarn))
		})
	}
}
