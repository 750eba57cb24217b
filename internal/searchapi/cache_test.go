package searchapi

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *ResultCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewResultCache(rdb)
}

func TestResultCacheMissThenHit(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "build-1", "agon"); ok {
		t.Fatal("expected a miss on an empty cache")
	}

	c.Set(ctx, "build-1", "agon", []string{"seasons.mp3", "potd.mp3"})

	got, ok := c.Get(ctx, "build-1", "agon")
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if len(got) != 2 || got[0] != "seasons.mp3" || got[1] != "potd.mp3" {
		t.Fatalf("unexpected cached results: %v", got)
	}
}

func TestResultCacheIsScopedByBuildID(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "build-1", "agon", []string{"seasons.mp3"})

	if _, ok := c.Get(ctx, "build-2", "agon"); ok {
		t.Fatal("expected a miss for a different build id")
	}
}

func TestNilResultCacheIsANoOp(t *testing.T) {
	var c *ResultCache
	ctx := context.Background()

	if _, ok := c.Get(ctx, "build-1", "agon"); ok {
		t.Fatal("expected nil cache to always miss")
	}
	c.Set(ctx, "build-1", "agon", []string{"seasons.mp3"}) // must not panic
}
