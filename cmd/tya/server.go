package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"tya/internal/app/albums"
	"tya/internal/app/artists"
	"tya/internal/app/merch"
	"tya/internal/app/songs"
	"tya/internal/auth"
	"tya/internal/config"
	"tya/internal/http/middleware"
	"tya/internal/httpapi"
	"tya/internal/store"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store, validator auth.Validator) http.Handler {
	api := httpapi.New(
		songs.New(dataStore),
		albums.New(dataStore),
		merch.New(dataStore),
		artists.New(dataStore),
		middleware.RequireIdentity(validator, cfg.Auth.CookieName),
	)

	handler := api.Routes()
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	return middleware.Recovery()(handler)
}

// newValidator builds the token validator for the configured mode, wrapped in
// a Redis cache when REDIS_URL is set. The returned func releases the cache
// connection.
func newValidator(ctx context.Context, cfg *config.Config) (auth.Validator, func(), error) {
	var v auth.Validator
	switch cfg.Auth.Mode {
	case "jwt":
		v = auth.NewJWTValidator(cfg.Auth.JWTSecret)
	case "remote":
		v = auth.NewRemoteValidator(cfg.Auth.ServiceURL, cfg.Auth.Timeout)
	default:
		return nil, nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}

	if cfg.Redis.URL == "" {
		return v, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// Cache errors fall through to the validator.
		log.Warn().Err(err).Msg("redis unreachable, token cache degraded")
	}

	log.Info().Dur("ttl", cfg.Auth.CacheTTL).Msg("token validation cache enabled")
	return auth.Cached(v, auth.NewRedisCache(client), cfg.Auth.CacheTTL), func() { _ = client.Close() }, nil
}
