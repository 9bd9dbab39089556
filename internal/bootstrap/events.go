package bootstrap

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/osse101/onsenkatsu/internal/config"
	"github.com/osse101/onsenkatsu/internal/event"
	"github.com/osse101/onsenkatsu/internal/metrics"
)

// InitializeEventSystem creates the in-process bus and attaches its
// subscribers: the metrics collector and the on-disk journal the debug screen
// reads. The caller must close the returned journal.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.Journal, error) {
	if err := os.MkdirAll(cfg.StateDir, DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenJournal, err)
	}

	eventBus := event.NewMemoryBus()

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(eventBus); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Debug(LogMsgMetricsCollectorRegistered)

	journal, err := event.OpenJournal(cfg.JournalPath())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenJournal, err)
	}
	journal.Attach(eventBus)
	slog.Debug(LogMsgJournalAttached, "path", cfg.JournalPath())

	slog.Info(LogMsgEventSystemInitialized)
	return eventBus, journal, nil
}
