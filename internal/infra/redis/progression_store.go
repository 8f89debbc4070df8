package redis

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ProgressionStore keeps each player's frontier level in Redis so unlocks
// survive restarts. Keys carry no TTL: progression is permanent.
type ProgressionStore struct {
	client *redis.Client
}

func NewProgressionStore(client *redis.Client) *ProgressionStore {
	return &ProgressionStore{client: client}
}

func (s *ProgressionStore) UnlockedLevel(ctx context.Context, playerID string) (int, error) {
	raw, err := s.client.Get(ctx, s.key(playerID)).Result()
	if err == redis.Nil {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	level, err := strconv.Atoi(raw)
	if err != nil || level < 1 {
		return 1, nil
	}
	return level, nil
}

// SetUnlockedLevel writes the frontier, refusing to move it backwards.
// Sessions per player are sequential, so read-then-set is sufficient.
func (s *ProgressionStore) SetUnlockedLevel(ctx context.Context, playerID string, level int) error {
	current, err := s.UnlockedLevel(ctx, playerID)
	if err != nil {
		return err
	}
	if level <= current {
		return nil
	}
	return s.client.Set(ctx, s.key(playerID), strconv.Itoa(level), 0).Err()
}

func (s *ProgressionStore) key(playerID string) string {
	return "player:" + playerID + ":frontier"
}
