package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tya/internal/catalog"
)

type memoryCache struct {
	entries map[string]catalog.Identity
	getErr  error
	sets    int
}

func (c *memoryCache) Get(_ context.Context, key string) (catalog.Identity, bool, error) {
	if c.getErr != nil {
		return catalog.Identity{}, false, c.getErr
	}
	id, ok := c.entries[key]
	return id, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, id catalog.Identity, _ time.Duration) error {
	c.entries[key] = id
	c.sets++
	return nil
}

func TestCachedReusesIdentity(t *testing.T) {
	calls := 0
	next := ValidatorFunc(func(_ context.Context, token string) (catalog.Identity, error) {
		calls++
		if token == "bad" {
			return catalog.Identity{}, ErrUnauthorized
		}
		return catalog.Identity{UserID: 3, Username: "lia"}, nil
	})
	cache := &memoryCache{entries: map[string]catalog.Identity{}}
	v := Cached(next, cache, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id, err := v.Validate(ctx, "good")
		if err != nil || id.UserID != 3 {
			t.Fatalf("Validate: %+v, %v", id, err)
		}
	}
	if calls != 1 || cache.sets != 1 {
		t.Fatalf("expected one upstream call and one cache write, got %d and %d", calls, cache.sets)
	}

	for i := 0; i < 2; i++ {
		if _, err := v.Validate(ctx, "bad"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	}
	if calls != 3 {
		t.Fatalf("rejections must not be cached, got %d upstream calls", calls)
	}
}

func TestCachedFallsThroughOnCacheError(t *testing.T) {
	next := ValidatorFunc(func(context.Context, string) (catalog.Identity, error) {
		return catalog.Identity{UserID: 8}, nil
	})
	cache := &memoryCache{entries: map[string]catalog.Identity{}, getErr: errors.New("connection refused")}

	id, err := Cached(next, cache, time.Minute).Validate(context.Background(), "token")
	if err != nil || id.UserID != 8 {
		t.Fatalf("expected fallthrough identity, got %+v, %v", id, err)
	}
}

func TestCacheKeyHidesToken(t *testing.T) {
	key := cacheKey("super-secret-token")
	if strings.Contains(key, "super-secret-token") {
		t.Fatalf("cache key leaks the token: %s", key)
	}
	if key != cacheKey("super-secret-token") || key == cacheKey("other") {
		t.Fatal("cache key is not a stable digest")
	}
}
