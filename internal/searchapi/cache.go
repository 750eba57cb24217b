package searchapi

import (
	"context"
	"encoding/json"
	"time"

	"github.com/0xZaitsev/polaris/pkg/kvkeys"
	"github.com/redis/go-redis/v9"
)

// resultCacheTTL bounds how long a cached find_songs result can outlive
// the index generation it was computed against, on top of the buildID
// namespacing kvkeys.SearchResult already provides.
const resultCacheTTL = 10 * time.Minute

// ResultCache memoises find_songs results in Redis, keyed by the index's
// current build ID and the raw query string. A nil *ResultCache is a
// valid no-op cache — callers don't need to nil-check before using it.
type ResultCache struct {
	rdb *redis.Client
}

// NewResultCache wraps an existing redis client.
func NewResultCache(rdb *redis.Client) *ResultCache {
	return &ResultCache{rdb: rdb}
}

// Get returns a previously cached result for (buildID, query), if present.
func (c *ResultCache) Get(ctx context.Context, buildID, query string) ([]string, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, kvkeys.SearchResult(buildID, query)).Bytes()
	if err != nil {
		return nil, false
	}
	var paths []string
	if err := json.Unmarshal(raw, &paths); err != nil {
		return nil, false
	}
	return paths, true
}

// Set stores a result for (buildID, query).
func (c *ResultCache) Set(ctx context.Context, buildID, query string, paths []string) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(paths)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, kvkeys.SearchResult(buildID, query), raw, resultCacheTTL).Err()
}
