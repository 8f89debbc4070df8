package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"vocab-quiz-service/internal/app"
	"vocab-quiz-service/internal/domain"
)

// CachingSource wraps a word source and caches fetched word lists per level
// with a TTL, collapsing concurrent misses with singleflight. Distractor
// generation passes straight through to the wrapped source.
type CachingSource struct {
	app.WordSource
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand

	mu    sync.RWMutex
	cache map[int]cachedList
}

type cachedList struct {
	pairs     []domain.WordPair
	expiresAt time.Time
}

func NewCachingSource(source app.WordSource, ttl time.Duration) *CachingSource {
	return &CachingSource{
		WordSource: source,
		ttl:        ttl,
		clock:      time.Now,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:      make(map[int]cachedList),
	}
}

func (c *CachingSource) FetchWords(ctx context.Context, level int) ([]domain.WordPair, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[level]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.pairs, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(strconv.Itoa(level), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[level]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.pairs, nil
		}
		c.mu.RUnlock()

		pairs, err := c.WordSource.FetchWords(ctx, level)
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			// Empty means "try the next source"; not worth caching.
			return pairs, nil
		}

		c.mu.Lock()
		c.cache[level] = cachedList{
			pairs:     pairs,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return pairs, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.WordPair), nil
}

func (c *CachingSource) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
