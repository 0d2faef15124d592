package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"taredo/internal/logging"
	"taredo/internal/owner"
	"taredo/internal/pool"
)

// Store reads and writes the snapshot file.
type Store struct {
	path string
	log  *logging.Logger
}

// New creates a store over the given snapshot file path.
func New(path string, log *logging.Logger) *Store {
	return &Store{path: path, log: log}
}

// Path returns the snapshot file path.
func (s *Store) Path() string { return s.path }

// Load reads the snapshot and materializes the roster and the task pool.
// A missing file is not an error: a fresh installation starts empty.
func (s *Store) Load() (*owner.Roster, *pool.Pool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.log.Info("no snapshot file, starting empty", "path", s.path)
		return owner.NewRoster(nil, nil), pool.New(nil), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	roster, p, err := decode(snap)
	if err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}
	s.log.Info("snapshot loaded", "path", s.path, "users", len(roster.Users()), "groups", len(roster.Groups()), "tasks", p.Len())
	return roster, p, nil
}

// Save writes the current state to the snapshot file. The write is
// atomic: data goes to a temporary file first, then is renamed into
// place, so a crash mid-write never leaves a torn snapshot. An
// exclusive file lock serializes writers when several taredo processes
// share the data directory.
func (s *Store) Save(roster *owner.Roster, p *pool.Pool) error {
	data, err := yaml.Marshal(encode(roster, p))
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	fl := NewFileLock(filepath.Dir(s.path))
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("lock data directory: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}

	s.log.Info("snapshot saved", "path", s.path, "tasks", p.Len())
	return nil
}

// Changed reports whether the given in-memory state diverged from what
// the snapshot file holds, by re-loading the file and comparing the three
// collections structurally. A missing file counts as changed whenever the
// in-memory state is non-empty.
func (s *Store) Changed(roster *owner.Roster, p *pool.Pool) (bool, error) {
	stored, storedPool, err := s.Load()
	if err != nil {
		return false, err
	}
	return !stored.Equal(roster) || !storedPool.Equal(p), nil
}
