// Package profile holds session-scoped user profile state with pluggable persistence.
package profile

import (
	"fmt"
	"log"
	"sync"

	"github.com/jonathan/career-pilot/internal/types"
)

// Store keeps the profile map and the current-profile pointer for one
// session. Every mutation is mirrored synchronously to the persistence
// adapter. Exactly one profile is current at a time.
type Store struct {
	mu      sync.RWMutex
	persist Persistence
	state   Snapshot
}

// New creates a store backed by the given persistence adapter. Corrupt or
// absent persisted state initializes the store empty; it never fails.
func New(persist Persistence) *Store {
	s := &Store{persist: persist}
	snap, err := persist.Load()
	if err != nil {
		log.Printf("profile store: discarding unreadable session state: %v", err)
		snap = Snapshot{}
	}
	if snap.Profiles == nil {
		snap.Profiles = make(map[string]types.UserProfile)
	}
	if snap.RoadmapTasks == nil {
		snap.RoadmapTasks = make(map[string][]types.RoadmapItem)
	}
	s.state = snap
	return s
}

// Add validates and inserts the profile and makes it current.
func (s *Store) Add(p types.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.state.Profiles[p.ID]; exists {
		return fmt.Errorf("profile %s already exists", p.ID)
	}
	s.state.Profiles[p.ID] = p.Clone()
	s.state.CurrentID = p.ID
	s.save()
	return nil
}

// Get returns a detached copy of the profile with the given id. Callers may
// mutate the copy; only Update and AppendChat change stored state.
func (s *Store) Get(id string) (types.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.Profiles[id]
	if !ok {
		return types.UserProfile{}, false
	}
	return p.Clone(), true
}

// List returns detached copies of all stored profiles.
func (s *Store) List() []types.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.UserProfile, 0, len(s.state.Profiles))
	for _, p := range s.state.Profiles {
		out = append(out, p.Clone())
	}
	return out
}

// Update merges the partial update into the stored profile. The current
// pointer sees the same merged profile since both read from the map.
func (s *Store) Update(id string, upd types.ProfileUpdate) (types.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.Profiles[id]
	if !ok {
		return types.UserProfile{}, &NotFoundError{ID: id}
	}
	if err := p.Apply(upd); err != nil {
		return types.UserProfile{}, err
	}
	// Store a clone so the map never aliases caller-owned slices.
	p = p.Clone()
	s.state.Profiles[id] = p
	s.save()
	return p.Clone(), nil
}

// AppendChat appends a message to the profile's chat history. Timestamps are
// kept non-decreasing: a message stamped before the current tail is clamped
// to the tail's timestamp.
func (s *Store) AppendChat(id string, msg types.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.Profiles[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	if n := len(p.ChatHistory); n > 0 && msg.Timestamp.Before(p.ChatHistory[n-1].Timestamp) {
		msg.Timestamp = p.ChatHistory[n-1].Timestamp
	}
	p.ChatHistory = append(p.ChatHistory, msg)
	s.state.Profiles[id] = p
	s.save()
	return nil
}

// SetCurrentByID switches the active profile.
func (s *Store) SetCurrentByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.Profiles[id]; !ok {
		return &NotFoundError{ID: id}
	}
	s.state.CurrentID = id
	s.save()
	return nil
}

// Current returns the active profile. When the current pointer is stale it
// falls back to any stored profile rather than reporting an empty session.
func (s *Store) Current() (types.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.state.Profiles[s.state.CurrentID]; ok {
		return p.Clone(), true
	}
	for _, p := range s.state.Profiles {
		return p.Clone(), true
	}
	return types.UserProfile{}, false
}

// Clear wipes all session state, including persisted state. Used on logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Snapshot{
		Profiles:     make(map[string]types.UserProfile),
		RoadmapTasks: make(map[string][]types.RoadmapItem),
	}
	if err := s.persist.Reset(); err != nil {
		return fmt.Errorf("failed to reset persisted session: %w", err)
	}
	return nil
}

// save mirrors the in-memory state to the adapter. A failed mirror is logged
// but does not fail the mutation; the in-memory state stays authoritative.
func (s *Store) save() {
	if err := s.persist.Save(s.state); err != nil {
		log.Printf("profile store: failed to persist session state: %v", err)
	}
}

// NotFoundError indicates a profile id with no stored profile.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile not found: %s", e.ID)
}
