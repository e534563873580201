package catalog

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// References answers existence questions for cross-record checks.
type References interface {
	AlbumExists(id int64) bool
	SongExists(id int64) bool
}

// ValidateSong checks the local shape of a song record.
func ValidateSong(s Song) error {
	switch {
	case strings.TrimSpace(s.Title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case s.Price <= 0:
		return fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	case s.AlbumID != nil && s.AlbumOrder == nil:
		return fmt.Errorf("%w: albumOrder is required when albumId is set", ErrValidation)
	case s.AlbumID == nil && s.AlbumOrder != nil:
		return fmt.Errorf("%w: albumOrder requires albumId", ErrValidation)
	case s.AlbumOrder != nil && *s.AlbumOrder < 1:
		return fmt.Errorf("%w: albumOrder must be positive", ErrValidation)
	case s.Duration <= 0:
		return fmt.Errorf("%w: duration must be greater than zero", ErrValidation)
	case len(s.Genres) == 0:
		return fmt.Errorf("%w: at least one genre is required", ErrValidation)
	}
	for _, g := range s.Genres {
		if !KnownGenre(g) {
			return fmt.Errorf("%w: unknown genre %d", ErrValidation, g)
		}
	}
	return validateDate(s.ReleaseDate)
}

// ValidateSongRefs checks that the primary album of s exists.
func ValidateSongRefs(s Song, refs References) error {
	if s.AlbumID != nil && !refs.AlbumExists(*s.AlbumID) {
		return fmt.Errorf("%w: album %d", ErrReferential, *s.AlbumID)
	}
	return nil
}

// ValidateAlbum checks the local shape of an album record.
func ValidateAlbum(a Album) error {
	switch {
	case strings.TrimSpace(a.Title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case a.Price <= 0:
		return fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	return validateDate(a.ReleaseDate)
}

// ValidateAlbumRefs checks that every listed member song exists.
func ValidateAlbumRefs(a Album, refs References) error {
	for _, id := range a.Songs {
		if !refs.SongExists(id) {
			return fmt.Errorf("%w: song %d", ErrReferential, id)
		}
	}
	return nil
}

// ValidateMerch checks the local shape of a merch record.
func ValidateMerch(m Merch) error {
	switch {
	case strings.TrimSpace(m.Title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case m.Price <= 0:
		return fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	return nil
}

// ValidateArtist checks the identity fields of an artist profile.
func ValidateArtist(a Artist) error {
	switch {
	case strings.TrimSpace(a.ArtisticName) == "":
		return fmt.Errorf("%w: artisticName is required", ErrValidation)
	case a.UserID <= 0:
		return fmt.Errorf("%w: userId must be positive", ErrValidation)
	case a.ArtisticEmail != "" && !strings.Contains(a.ArtisticEmail, "@"):
		return fmt.Errorf("%w: artisticEmail is not an address", ErrValidation)
	}
	return nil
}

func validateDate(raw string) error {
	if raw == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return fmt.Errorf("%w: releaseDate must be YYYY-MM-DD", ErrValidation)
	}
	return nil
}
