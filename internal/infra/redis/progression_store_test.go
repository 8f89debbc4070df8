package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestProgressionStoreDefaultsToLevelOne(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewProgressionStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	level, err := store.UnlockedLevel(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unlocked level: %v", err)
	}
	if level != 1 {
		t.Fatalf("expected default frontier 1, got %d", level)
	}
}

func TestProgressionStorePersistsAndStaysMonotonic(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewProgressionStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	if err := store.SetUnlockedLevel(ctx, "p1", 4); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("player:p1:frontier") {
		t.Fatalf("expected frontier key to be set")
	}

	if err := store.SetUnlockedLevel(ctx, "p1", 2); err != nil {
		t.Fatalf("set lower: %v", err)
	}

	level, err := store.UnlockedLevel(ctx, "p1")
	if err != nil {
		t.Fatalf("unlocked level: %v", err)
	}
	if level != 4 {
		t.Fatalf("expected frontier to stay at 4, got %d", level)
	}
}
