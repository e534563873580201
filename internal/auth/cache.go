package auth

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"tya/internal/catalog"
)

// Cache stores validated identities by key.
type Cache interface {
	Get(ctx context.Context, key string) (catalog.Identity, bool, error)
	Set(ctx context.Context, key string, id catalog.Identity, ttl time.Duration) error
}

// Cached wraps next so successful validations are reused for ttl. Cache
// failures fall through to next; rejections are never cached.
func Cached(next Validator, cache Cache, ttl time.Duration) Validator {
	return ValidatorFunc(func(ctx context.Context, token string) (catalog.Identity, error) {
		if token == "" {
			return catalog.Identity{}, ErrUnauthorized
		}
		key := cacheKey(token)

		id, ok, err := cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Msg("auth cache read failed")
		}
		if ok {
			return id, nil
		}

		id, err = next.Validate(ctx, token)
		if err != nil {
			return catalog.Identity{}, err
		}
		if err := cache.Set(ctx, key, id, ttl); err != nil {
			log.Warn().Err(err).Msg("auth cache write failed")
		}
		return id, nil
	})
}

// cacheKey never exposes the raw token.
func cacheKey(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return "tya:auth:" + hex.EncodeToString(sum[:])
}

// RedisCache keeps identities as JSON values in Redis.
type RedisCache struct {
	client redis.Cmdable
}

func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

type cachedIdentity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

func (c *RedisCache) Get(ctx context.Context, key string) (catalog.Identity, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return catalog.Identity{}, false, nil
	}
	if err != nil {
		return catalog.Identity{}, false, err
	}
	var v cachedIdentity
	if err := json.Unmarshal(raw, &v); err != nil {
		return catalog.Identity{}, false, err
	}
	return catalog.Identity{UserID: v.UserID, Username: v.Username}, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, id catalog.Identity, ttl time.Duration) error {
	raw, err := json.Marshal(cachedIdentity{UserID: id.UserID, Username: id.Username})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}
