package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/osse101/onsenkatsu/internal/logger"
)

// Journal appends every published event to a JSON-lines file so the debug
// screen can show recent activity across CLI invocations.
type Journal struct {
	file *os.File
	mu   sync.Mutex
}

// JournalEntry is one line of the journal
type JournalEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
}

// OpenJournal opens (creating if needed) the journal at path for appending
func OpenJournal(path string) (*Journal, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, JournalFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open event journal: %w", err)
	}
	return &Journal{file: f}, nil
}

// Attach subscribes the journal to all event types on bus
func (j *Journal) Attach(bus Bus) {
	SubscribeAll(bus, j.Handle, AllTypes...)
}

// Handle is an event Handler. Journal failures are logged, never returned,
// so a full disk cannot fail a visit.
func (j *Journal) Handle(ctx context.Context, evt Event) error {
	if err := j.Write(evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgJournalWriteFailed, "event_type", evt.Type, "error", err)
	}
	return nil
}

// Write appends one event
func (j *Journal) Write(evt Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := JournalEntry{
		SchemaVersion: JournalSchemaVersion,
		Timestamp:     time.Now(),
		Event:         evt,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = j.file.Write(append(data, '\n'))
	return err
}

// Close closes the journal file
func (j *Journal) Close() error {
	return j.file.Close()
}

// ReadRecent returns up to limit most recent entries, oldest first.
// A missing journal yields no entries. Malformed lines are skipped.
func ReadRecent(path string, limit int) ([]JournalEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []JournalEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry JournalEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) > limit {
			entries = entries[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
