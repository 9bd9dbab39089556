package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/onsenkatsu/internal/config"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-03-%02d_10-00-00", i))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o600))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, LogFileRetentionCount)
	assert.Contains(t, names, "notes.txt")
	assert.Contains(t, names, "session_2026-03-12_10-00-00.log")
	assert.NotContains(t, names, "session_2026-03-04_10-00-00.log")
}

func TestSetupLogger_WritesIntoStateDir(t *testing.T) {
	cfg := &config.Config{
		LogLevel:    "debug",
		LogFormat:   "json",
		Environment: "test",
		Version:     "1.0.0",
		StateDir:    t.TempDir(),
	}

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgLoggingInitialized)
	assert.Equal(t, cfg.LogDir(), filepath.Dir(f.Name()))
}
