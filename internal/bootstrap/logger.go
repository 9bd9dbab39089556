package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/onsenkatsu/internal/config"
	"github.com/osse101/onsenkatsu/internal/logger"
)

// SetupLogger points slog at a timestamped file in the state directory so log
// lines never mix with screen output. Old files beyond the retention count are
// removed. The caller must close the returned file.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	logDir := cfg.LogDir()
	if err := os.MkdirAll(logDir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
	}

	cleanupLogs(logDir, LogFileRetentionCount)

	timestamp := time.Now().Format(LogFileTimestampFormat)
	logFileName := filepath.Join(logDir, fmt.Sprintf(LogFileNamePattern, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenLogFile, err)
	}

	logCfg := logger.ForEnvironment(cfg.Environment)
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	logCfg.Version = cfg.Version
	logger.InitLoggerWithWriter(logCfg, logFile)

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "file", logFileName)
	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"state_dir", cfg.StateDir,
		"client_exp", cfg.CompanionClientExp)

	return logFile, nil
}

// cleanupLogs removes the oldest log files so that keep-1 remain before the
// new file is created
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry.Name())
		}
	}
	// Timestamped names sort chronologically
	sort.Strings(logFiles)

	if len(logFiles) < keep {
		return
	}
	for _, name := range logFiles[:len(logFiles)-keep+1] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}
