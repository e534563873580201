package store

import (
	"context"
	"fmt"

	"tya/internal/catalog"
)

// CreateArtist stores an explicit artist profile. Each account owns at most
// one artist.
func (s *Store) CreateArtist(ctx context.Context, a catalog.Artist) (catalog.Artist, error) {
	if err := catalog.ValidateArtist(a); err != nil {
		return catalog.Artist{}, err
	}

	unlockUser := s.locks.Lock(userKey(a.UserID))
	defer unlockUser()

	if id, ok := s.index.artistFor(a.UserID); ok && s.artists.has(id) {
		return catalog.Artist{}, fmt.Errorf("%w: user %d already has artist %d", catalog.ErrValidation, a.UserID, id)
	}
	a.ID = s.seq.artist.Add(1)

	unlock := s.locks.Lock(artistKey(a.ID))
	defer unlock()

	if err := s.persist.Commit(ctx, Batch{Artists: []catalog.Artist{a}}); err != nil {
		return catalog.Artist{}, fmt.Errorf("persist artist: %w", err)
	}
	s.adoptArtist(a)
	return s.artistView(a), nil
}

// Artist returns the artist with its owner sets.
func (s *Store) Artist(ctx context.Context, id int64) (catalog.Artist, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Artist{}, err
	}
	return s.readArtist(id)
}

func (s *Store) readArtist(id int64) (catalog.Artist, error) {
	unlock := s.locks.RLock(artistKey(id))
	defer unlock()
	a, ok := s.artists.get(id)
	if !ok {
		return catalog.Artist{}, fmt.Errorf("%w: artist %d", catalog.ErrNotFound, id)
	}
	return s.artistView(a), nil
}

func (s *Store) UpdateArtist(ctx context.Context, id int64, patch catalog.ArtistPatch) (catalog.Artist, error) {
	unlock := s.locks.Lock(artistKey(id))
	defer unlock()

	current, ok := s.artists.get(id)
	if !ok {
		return catalog.Artist{}, fmt.Errorf("%w: artist %d", catalog.ErrNotFound, id)
	}
	merged := patch.Apply(current)
	if err := catalog.ValidateArtist(merged); err != nil {
		return catalog.Artist{}, err
	}
	if err := s.persist.Commit(ctx, Batch{Artists: []catalog.Artist{merged}}); err != nil {
		return catalog.Artist{}, fmt.Errorf("persist artist: %w", err)
	}
	s.artists.put(id, merged)
	return s.artistView(merged), nil
}

// DeleteArtist removes the artist and its owner sets. Records it owned keep
// their artistId.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	a, ok := s.artists.get(id)
	if !ok {
		return fmt.Errorf("%w: artist %d", catalog.ErrNotFound, id)
	}
	// UserID never changes, so the key pair is stable.
	unlock := s.locks.Lock(userKey(a.UserID), artistKey(id))
	defer unlock()

	if !s.artists.has(id) {
		return fmt.Errorf("%w: artist %d", catalog.ErrNotFound, id)
	}
	if err := s.persist.Commit(ctx, Batch{Removals: []Removal{{Kind: catalog.KindArtist, ID: id}}}); err != nil {
		return fmt.Errorf("persist artist removal: %w", err)
	}
	s.artists.remove(id)
	s.index.dropArtist(id, a.UserID)
	return nil
}

// artistView fills the owner sets. The artist key must be held.
func (s *Store) artistView(a catalog.Artist) catalog.Artist {
	a.OwnerSongs = s.index.ownedBy(catalog.KindSong, a.ID)
	a.OwnerAlbums = s.index.ownedBy(catalog.KindAlbum, a.ID)
	a.OwnerMerch = s.index.ownedBy(catalog.KindMerch, a.ID)
	return a
}
