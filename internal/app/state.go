package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/screen"
	"github.com/osse101/onsenkatsu/internal/visit"
)

// State is the client's local, non-authoritative memory between invocations.
// Losing it costs at most an in-progress bathing session.
type State struct {
	Screen      screen.Screen       `json:"screen"`
	PendingName string              `json:"pending_name,omitempty"`
	Session     *visit.Session      `json:"session,omitempty"`
	Companion   *domain.Companion   `json:"companion,omitempty"`
	CompanionAt time.Time           `json:"companion_at,omitempty"`
	LastResult  *domain.VisitResult `json:"last_result,omitempty"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func newState() *State {
	return &State{Screen: screen.Title}
}

// StateStore persists State
type StateStore interface {
	Load() (*State, error)
	Save(s *State) error
}

// FileStateStore keeps State as JSON next to the auth session
type FileStateStore struct {
	path string
}

// NewFileStateStore creates a store backed by path
func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

// Load returns a fresh Title state when no file exists yet
func (f *FileStateStore) Load() (*State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return newState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	s := newState()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", f.path, err)
	}
	return s, nil
}

func (f *FileStateStore) Save(s *State) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, StateDirMode); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, StateFileMode); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
