package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// SessionStore persists the auth session between invocations
type SessionStore interface {
	// Load returns nil, nil when nobody is signed in
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// FileStore keeps the session as JSON in a private file
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", f.path, err)
	}
	if s.AccessToken == "" {
		return nil, nil
	}
	return &s, nil
}

// Save writes via a temp file and rename so a crash never leaves half a token
func (f *FileStore) Save(s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(SessionFileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
