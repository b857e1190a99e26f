package profile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/career-pilot/internal/types"
)

// Snapshot is the persisted session layout: the profile map, the current
// profile id, and the roadmap-task cache keyed by serialized profile hash.
type Snapshot struct {
	Profiles     map[string]types.UserProfile   `json:"users"`
	CurrentID    string                         `json:"currentUser"`
	RoadmapTasks map[string][]types.RoadmapItem `json:"roadmapTasks,omitempty"`
}

// Persistence mirrors session state to a durable medium. Load returning an
// error means the persisted state is unusable; callers treat that as an
// empty session.
type Persistence interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
	Reset() error
}

// MemoryPersistence holds the snapshot in memory. Used in tests and as the
// default when no session directory or database is configured.
type MemoryPersistence struct {
	mu   sync.Mutex
	snap *Snapshot
}

// NewMemoryPersistence creates an empty in-memory adapter.
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

// Load returns the last saved snapshot.
func (m *MemoryPersistence) Load() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return Snapshot{}, nil
	}
	return *m.snap, nil
}

// Save stores the snapshot.
func (m *MemoryPersistence) Save(s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := s
	m.snap = &copied
	return nil
}

// Reset discards the stored snapshot.
func (m *MemoryPersistence) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = nil
	return nil
}

// FilePersistence stores the snapshot as a JSON file under a session
// directory, the server-side equivalent of the browser session storage.
type FilePersistence struct {
	path string
	mu   sync.Mutex
}

// NewFilePersistence creates an adapter writing to dir/session.json.
func NewFilePersistence(dir string) *FilePersistence {
	return &FilePersistence{path: filepath.Join(dir, "session.json")}
}

// Load reads and parses the session file. A missing file is an empty
// session, not an error.
func (f *FilePersistence) Load() (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, nil
		}
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Save writes the snapshot atomically (temp file + rename).
func (f *FilePersistence) Save(s Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Reset removes the session file.
func (f *FilePersistence) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
