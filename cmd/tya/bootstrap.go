package main

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"tya/internal/auth"
	"tya/internal/catalog"
	"tya/internal/config"
	"tya/internal/store"
)

var demoIdentity = catalog.Identity{UserID: 1, Username: "demo"}

// bootstrapDemoData seeds a demo artist, one album with its songs and a merch
// item. It does nothing when the catalog already holds artists.
func bootstrapDemoData(ctx context.Context, cfg *config.Config, dataStore *store.Store) error {
	existing, err := dataStore.SearchArtists(ctx, "")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info().Int("artists", len(existing)).Msg("catalog not empty, skipping demo seed")
		return nil
	}

	artist, err := dataStore.CreateArtist(ctx, catalog.Artist{
		ArtisticName:      "The Demo Tapes",
		ArtisticBiography: "A house band for trying out the catalog.",
		ArtisticEmail:     "demo@example.com",
		UserID:            demoIdentity.UserID,
	})
	if err != nil {
		return fmt.Errorf("seed artist: %w", err)
	}

	album, err := dataStore.CreateAlbum(ctx, demoIdentity, catalog.Album{
		Title:       "First Pressing",
		Price:       14.99,
		ReleaseDate: "2024-03-01",
	})
	if err != nil {
		return fmt.Errorf("seed album: %w", err)
	}

	tracks := []struct {
		title    string
		genres   []int64
		duration int
	}{
		{"Needle Drop", []int64{1}, 212},
		{"Side B", []int64{1, 3}, 187},
		{"Run-out Groove", []int64{3}, 245},
	}
	for i, track := range tracks {
		order := i + 1
		_, err := dataStore.CreateSong(ctx, demoIdentity, catalog.Song{
			Title:      track.title,
			Genres:     track.genres,
			Price:      0.99,
			TrackID:    int64(100 + order),
			Duration:   track.duration,
			AlbumID:    &album.ID,
			AlbumOrder: &order,
		})
		if err != nil {
			return fmt.Errorf("seed song %q: %w", track.title, err)
		}
	}

	if _, err := dataStore.CreateMerch(ctx, demoIdentity, catalog.Merch{
		Title:       "Tour Shirt",
		Description: "Black, front print.",
		Price:       25,
	}); err != nil {
		return fmt.Errorf("seed merch: %w", err)
	}

	log.Info().Int64("artist_id", artist.ID).Int64("album_id", album.ID).Msg("demo catalog seeded")

	if cfg.Auth.Mode == "jwt" {
		token, err := auth.NewJWTValidator(cfg.Auth.JWTSecret).Sign(demoIdentity, jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		})
		if err != nil {
			return fmt.Errorf("sign demo token: %w", err)
		}
		log.Info().Str("token", token).Msg("demo token for the seeded artist")
	}
	return nil
}
