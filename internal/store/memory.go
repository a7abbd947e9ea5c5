// internal/store/memory.go
//
// In-memory session store for running games.
// Sessions live only for the process lifetime; finished daily sessions are
// kept so a returning player sees their board until the day rolls over.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Secondary index by (user, mode, date) for resuming the day's game.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Prune drops sessions started before a cutoff.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/trongtricoder/Footy-Feud/internal/game"
)

var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Session, error)

	// FindLatest returns the most recent session the user started for mode
	// on date, or ErrNotFound.
	FindLatest(ctx context.Context, userKey string, mode game.Mode, date string) (*game.Session, error)

	// Delete removes a session; missing IDs are ignored.
	Delete(ctx context.Context, id string) error
}

type slot struct {
	user string
	mode game.Mode
	date string
}

// Memory is the map-backed Store.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session // keyed by Session.ID
	latest   map[slot]string          // (user, mode, date) -> Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{
		sessions: make(map[string]*game.Session),
		latest:   make(map[slot]string),
	}
}

func (m *Memory) Save(_ context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	m.latest[slot{s.UserKey, s.Mode, s.Date}] = s.ID
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) FindLatest(_ context.Context, userKey string, mode game.Mode, date string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.latest[slot{userKey, mode, date}]
	if !ok {
		return nil, ErrNotFound
	}
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil
	}
	delete(m.sessions, id)
	k := slot{s.UserKey, s.Mode, s.Date}
	if m.latest[k] == id {
		delete(m.latest, k)
	}
	return nil
}

// Prune deletes sessions started before cutoff and returns how many went.
func (m *Memory) Prune(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.StartedAt.Before(cutoff) {
			delete(m.sessions, id)
			k := slot{s.UserKey, s.Mode, s.Date}
			if m.latest[k] == id {
				delete(m.latest, k)
			}
			n++
		}
	}
	return n
}
