package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"vocab-quiz-service/internal/app"
	"vocab-quiz-service/internal/domain"
	"vocab-quiz-service/internal/infra/words"
)

type countingSource struct {
	app.WordSource
	calls int
}

func (s *countingSource) FetchWords(ctx context.Context, level int) ([]domain.WordPair, error) {
	s.calls++
	return s.WordSource.FetchWords(ctx, level)
}

func TestCachingSourceCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	source := &countingSource{WordSource: words.NewStaticSource(words.DefaultLists())}
	cache := NewCachingSource(source, client, time.Minute)

	first, err := cache.FetchWords(context.Background(), 1)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(first) == 0 {
		t.Fatalf("expected words")
	}
	if source.calls != 1 {
		t.Fatalf("expected source called once, got %d", source.calls)
	}
	if !mr.Exists("words:level:1") {
		t.Fatalf("expected redis hash to be populated")
	}

	second, err := cache.FetchWords(context.Background(), 1)
	if err != nil {
		t.Fatalf("fetch 2: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected cache hit, calls=%d", source.calls)
	}

	// The hash loses list order; compare as sets.
	if len(second) != len(first) {
		t.Fatalf("expected %d cached pairs, got %d", len(first), len(second))
	}
	byWord := map[string]string{}
	for _, pair := range first {
		byWord[pair.Word] = pair.Translation
	}
	for _, pair := range second {
		if byWord[pair.Word] != pair.Translation {
			t.Fatalf("cached pair mismatch for %q", pair.Word)
		}
	}
}

func TestCachingSourceSkipsEmptyResults(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	source := &countingSource{WordSource: words.NewStaticSource(words.DefaultLists())}
	cache := NewCachingSource(source, client, time.Minute)

	pairs, err := cache.FetchWords(context.Background(), 8)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("expected empty result for uncovered level")
	}
	if mr.Exists("words:level:8") {
		t.Fatalf("expected no hash for empty result")
	}
}
