package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingSearcher struct {
	calls    int
	snippets []Snippet
	err      error
}

func (c *countingSearcher) Search(context.Context, string, int) ([]Snippet, error) {
	c.calls++
	return c.snippets, c.err
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCached_SecondLookupHitsCache(t *testing.T) {
	next := &countingSearcher{snippets: []Snippet{{Title: "Go 1.24", Body: "release notes"}}}
	c := NewCached(next, newTestRedis(t), time.Minute, zap.NewNop())

	first, err := c.Search(context.Background(), "golang backend", 10)
	require.NoError(t, err)
	second, err := c.Search(context.Background(), "golang backend", 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
}

func TestCached_DifferentQueriesMissCache(t *testing.T) {
	next := &countingSearcher{snippets: []Snippet{{Title: "x"}}}
	c := NewCached(next, newTestRedis(t), time.Minute, zap.NewNop())

	_, err := c.Search(context.Background(), "rust", 10)
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "zig", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	next := &countingSearcher{err: errors.New("upstream down")}
	c := NewCached(next, newTestRedis(t), time.Minute, zap.NewNop())

	_, err := c.Search(context.Background(), "ai agents", 5)
	assert.Error(t, err)
	_, err = c.Search(context.Background(), "ai agents", 5)
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCached_NilClientPassesThrough(t *testing.T) {
	next := &countingSearcher{snippets: []Snippet{{Title: "x"}}}
	c := NewCached(next, nil, time.Minute, nil)

	_, err := c.Search(context.Background(), "ml", 5)
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "ml", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}
