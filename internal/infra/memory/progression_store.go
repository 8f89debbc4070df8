package memory

import (
	"context"
	"sync"
)

// ProgressionStore keeps per-player frontier levels in process memory.
type ProgressionStore struct {
	mu     sync.RWMutex
	levels map[string]int
}

func NewProgressionStore() *ProgressionStore {
	return &ProgressionStore{levels: make(map[string]int)}
}

func (s *ProgressionStore) UnlockedLevel(_ context.Context, playerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if level, ok := s.levels[playerID]; ok {
		return level, nil
	}
	return 1, nil
}

// SetUnlockedLevel stores the frontier, refusing to move it backwards.
func (s *ProgressionStore) SetUnlockedLevel(_ context.Context, playerID string, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level > s.levels[playerID] {
		s.levels[playerID] = level
	}
	return nil
}
