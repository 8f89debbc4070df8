package redis

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"vocab-quiz-service/internal/app"
	"vocab-quiz-service/internal/domain"
)

// CachingSource caches per-level word lists in a Redis hash and falls back
// to the wrapped source on a miss. Lists are stored as:
// HSET words:level:{n} {word} {translation}
// Distractor generation passes through to the wrapped source.
type CachingSource struct {
	app.WordSource
	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCachingSource(source app.WordSource, client *redis.Client, ttl time.Duration) *CachingSource {
	return &CachingSource{
		WordSource: source,
		client:     client,
		ttl:        ttl,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CachingSource) FetchWords(ctx context.Context, level int) ([]domain.WordPair, error) {
	key := c.key(level)

	cached, err := c.client.HGetAll(ctx, key).Result()
	if err == nil && len(cached) > 0 {
		return pairsFromHash(cached), nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled the hash.
		cached, err := c.client.HGetAll(ctx, key).Result()
		if err == nil && len(cached) > 0 {
			return pairsFromHash(cached), nil
		}

		pairs, err := c.WordSource.FetchWords(ctx, level)
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			return pairs, nil
		}

		pipe := c.client.Pipeline()
		for _, pair := range pairs {
			pipe.HSet(ctx, key, pair.Word, pair.Translation)
		}
		if ttl := c.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		// Cache write is best-effort; the fetched list is returned either way.
		_, _ = pipe.Exec(ctx)

		return pairs, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.WordPair), nil
}

func (c *CachingSource) key(level int) string {
	return "words:level:" + strconv.Itoa(level)
}

func pairsFromHash(hash map[string]string) []domain.WordPair {
	pairs := make([]domain.WordPair, 0, len(hash))
	for word, translation := range hash {
		pairs = append(pairs, domain.WordPair{Word: word, Translation: translation})
	}
	return pairs
}

func (c *CachingSource) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
