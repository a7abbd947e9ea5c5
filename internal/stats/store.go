// internal/stats/store.go
//
// Statistics storage.
// Defines:
//   - Store: get/put of PlayerStats by (user, mode); absence is not an error.
//   - MemoryStore: process-local implementation (thread-safe, no persistence).

package stats

import (
	"context"
	"sync"

	"github.com/trongtricoder/Footy-Feud/internal/game"
)

type Store interface {
	// Get returns the stats for the pair and whether they exist.
	Get(ctx context.Context, userKey string, mode game.Mode) (PlayerStats, bool, error)
	Put(ctx context.Context, userKey string, mode game.Mode, s PlayerStats) error
}

type memKey struct {
	user string
	mode game.Mode
}

// MemoryStore keeps stats in a map guarded by an RWMutex.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[memKey]PlayerStats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[memKey]PlayerStats)}
}

func (s *MemoryStore) Get(_ context.Context, userKey string, mode game.Mode) (PlayerStats, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[memKey{userKey, mode}]
	if !ok {
		return PlayerStats{}, false, nil
	}
	return v.Clone(), true, nil
}

func (s *MemoryStore) Put(_ context.Context, userKey string, mode game.Mode, ps PlayerStats) error {
	s.mu.Lock()
	s.m[memKey{userKey, mode}] = ps.Clone()
	s.mu.Unlock()
	return nil
}
