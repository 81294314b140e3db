package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"bogus", log.WarnLevel},
		{"", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestConfigure_FlagBeatsEnvironment(t *testing.T) {
	t.Setenv("HOARD_LOG_LEVEL", "error")

	require.NoError(t, Configure("debug", ""))
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())

	require.NoError(t, Configure("", ""))
	assert.Equal(t, log.ErrorLevel, Logger.GetLevel())
}

func TestConfigure_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hoard.log")

	require.NoError(t, Configure("info", path))
	Info("stored command", "command", "deploy")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stored command")
	assert.Contains(t, string(data), "deploy")

	require.NoError(t, Configure("warn", ""))
}

func TestTroveOperation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Configure("debug", ""))
	SetOutput(&buf)
	defer func() { _ = Configure("warn", "") }()

	TroveOperation("add", "command", "ops/deploy")
	assert.Contains(t, buf.String(), "Trove operation")
	assert.Contains(t, buf.String(), "ops/deploy")
}

func TestNewStyledLogger_MatchesGlobalLevel(t *testing.T) {
	require.NoError(t, Configure("error", ""))
	defer func() { _ = Configure("warn", "") }()

	component := NewStyledLogger("store")
	assert.Equal(t, log.ErrorLevel, component.GetLevel())
}

func TestNewStyledLogger_FollowsOutput(t *testing.T) {
	require.NoError(t, Configure("debug", ""))
	defer func() { _ = Configure("warn", "") }()

	var buf bytes.Buffer
	SetOutput(&buf)
	NewStyledLogger("store").Debug("component line")

	assert.Contains(t, buf.String(), "component line")
}

func TestApplyConfigLevel(t *testing.T) {
	defer func() { _ = Configure("warn", "") }()

	t.Run("config level applies without flag or env", func(t *testing.T) {
		t.Setenv("HOARD_LOG_LEVEL", "")
		require.NoError(t, Configure("", ""))
		ApplyConfigLevel("debug")
		assert.Equal(t, log.DebugLevel, Logger.GetLevel())
	})

	t.Run("flag wins over config", func(t *testing.T) {
		require.NoError(t, Configure("error", ""))
		ApplyConfigLevel("debug")
		assert.Equal(t, log.ErrorLevel, Logger.GetLevel())
	})

	t.Run("environment wins over config", func(t *testing.T) {
		t.Setenv("HOARD_LOG_LEVEL", "info")
		require.NoError(t, Configure("", ""))
		ApplyConfigLevel("debug")
		assert.Equal(t, log.InfoLevel, Logger.GetLevel())
	})

	t.Run("empty config level keeps default", func(t *testing.T) {
		t.Setenv("HOARD_LOG_LEVEL", "")
		require.NoError(t, Configure("", ""))
		ApplyConfigLevel("  ")
		assert.Equal(t, log.WarnLevel, Logger.GetLevel())
	})
}

func TestSetLevel(t *testing.T) {
	original := Logger
	defer func() { Logger = original }()

	var buf bytes.Buffer
	Logger = log.New(&buf)
	SetLevel("error")

	Warn("hidden")
	Error("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
