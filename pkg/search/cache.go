package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Akm1923/FutureProof-AI/pkg/metrics"
)

// Cached wraps a Searcher with a Redis snippet cache so repeated interest
// queries do not hammer the search endpoint. Cache errors fall through to
// the live searcher; a nil client disables caching entirely.
type Cached struct {
	next   Searcher
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewCached(next Searcher, client *redis.Client, ttl time.Duration, log *zap.Logger) *Cached {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cached{next: next, client: client, ttl: ttl, log: log}
}

func cacheKey(query string, limit int) string {
	return fmt.Sprintf("search:%d:%s", limit, query)
}

func (c *Cached) Search(ctx context.Context, query string, limit int) ([]Snippet, error) {
	if c.client == nil {
		return c.next.Search(ctx, query, limit)
	}
	key := cacheKey(query, limit)

	if raw, err := c.client.Get(ctx, key).Result(); err == nil {
		var cached []Snippet
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			metrics.SearchLookups.WithLabelValues("cache_hit").Inc()
			return cached, nil
		}
	}

	out, err := c.next.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(out); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Debug("search cache write failed", zap.Error(err))
		}
	}
	return out, nil
}
