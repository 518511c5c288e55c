// Package state remembers where a reader stopped in each book.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const stateFileName = "reading_positions.json"

// ReadingState is the saved position in one book. Chunk is authoritative;
// Position is only used when the chunk no longer exists.
type ReadingState struct {
	Chunk     string    `json:"chunk"`
	Position  int       `json:"position"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StateStore manages persistent reading state
type StateStore struct {
	path string
	data map[string]ReadingState
	mu   sync.RWMutex
}

// NewStateStore creates or loads state from XDG_STATE_HOME/bcc/
func NewStateStore() (*StateStore, error) {
	return Open(getStateDir())
}

// Open creates or loads the state file in dir.
func Open(dir string) (*StateStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	store := &StateStore{
		path: filepath.Join(dir, stateFileName),
		data: make(map[string]ReadingState),
	}
	if err := store.load(); err != nil {
		// Non-fatal - start with empty state
		store.data = make(map[string]ReadingState)
	}
	return store, nil
}

// getStateDir returns XDG_STATE_HOME/bcc or ~/.local/state/bcc
func getStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "bcc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "bcc")
}

// Path returns the location of the state file.
func (s *StateStore) Path() string { return s.path }

// Get returns the saved state for a book slug.
func (s *StateStore) Get(slug string) (ReadingState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.data[slug]
	return st, ok
}

// Set saves the position for a book slug.
func (s *StateStore) Set(slug string, st ReadingState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = time.Now().UTC()
	}
	s.data[slug] = st
	return s.save()
}

// Clear removes the saved position for a book slug.
func (s *StateStore) Clear(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, slug)
	return s.save()
}

func (s *StateStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &s.data); err != nil {
		return err
	}
	// A file holding null decodes to a nil map.
	if s.data == nil {
		s.data = make(map[string]ReadingState)
	}
	return nil
}

func (s *StateStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
