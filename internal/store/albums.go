package store

import (
	"context"
	"fmt"

	"tya/internal/catalog"
)

// CreateAlbum validates and stores an album owned by the caller's artist and
// registers it in the membership of every listed song.
func (s *Store) CreateAlbum(ctx context.Context, caller catalog.Identity, album catalog.Album) (catalog.Album, error) {
	if err := catalog.ValidateAlbum(album); err != nil {
		return catalog.Album{}, err
	}

	unlockUser := s.locks.Lock(userKey(caller.UserID))
	defer unlockUser()

	artist, provisioned, err := s.callerArtist(caller)
	if err != nil {
		return catalog.Album{}, err
	}
	album.ID = s.seq.album.Add(1)
	album.ArtistID = artist.ID

	keys := []lockKey{albumKey(album.ID), artistKey(artist.ID)}
	for _, id := range album.Songs {
		keys = append(keys, songKey(id))
	}
	unlock := s.locks.Lock(keys...)
	defer unlock()

	if err := catalog.ValidateAlbumRefs(album, refs{s}); err != nil {
		return catalog.Album{}, err
	}

	batch := Batch{Albums: []catalog.Album{album}}
	if provisioned {
		batch.Artists = []catalog.Artist{artist}
	}
	if err := s.persist.Commit(ctx, batch); err != nil {
		return catalog.Album{}, fmt.Errorf("persist album: %w", err)
	}

	if provisioned {
		s.adoptArtist(artist)
	}
	s.albums.put(album.ID, album)
	s.index.addMembers(album.ID, album.Songs...)
	s.index.addOwned(catalog.KindAlbum, artist.ID, album.ID)
	return s.albumView(album), nil
}

// Album returns the album with its membership list.
func (s *Store) Album(ctx context.Context, id int64) (catalog.Album, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Album{}, err
	}
	return s.readAlbum(id)
}

func (s *Store) readAlbum(id int64) (catalog.Album, error) {
	unlock := s.locks.RLock(albumKey(id))
	defer unlock()
	album, ok := s.albums.get(id)
	if !ok {
		return catalog.Album{}, fmt.Errorf("%w: album %d", catalog.ErrNotFound, id)
	}
	return s.albumView(album), nil
}

// UpdateAlbum merges the patch and re-validates the result. Membership is
// not patchable.
func (s *Store) UpdateAlbum(ctx context.Context, id int64, patch catalog.AlbumPatch) (catalog.Album, error) {
	unlock := s.locks.Lock(albumKey(id))
	defer unlock()

	current, ok := s.albums.get(id)
	if !ok {
		return catalog.Album{}, fmt.Errorf("%w: album %d", catalog.ErrNotFound, id)
	}
	merged := patch.Apply(current)
	if err := catalog.ValidateAlbum(merged); err != nil {
		return catalog.Album{}, err
	}
	merged.Songs = s.index.membersOf(id)
	if err := s.persist.Commit(ctx, Batch{Albums: []catalog.Album{merged}}); err != nil {
		return catalog.Album{}, fmt.Errorf("persist album: %w", err)
	}
	s.albums.put(id, merged)
	return s.albumView(merged), nil
}

// DeleteAlbum removes the album and its memberships. Songs whose primary
// album it was lose their albumId and albumOrder.
func (s *Store) DeleteAlbum(ctx context.Context, id int64) error {
	for {
		album, ok := s.albums.get(id)
		if !ok {
			return fmt.Errorf("%w: album %d", catalog.ErrNotFound, id)
		}
		members := s.index.membersOf(id)

		keys := []lockKey{albumKey(id), artistKey(album.ArtistID)}
		for _, song := range members {
			keys = append(keys, songKey(song))
		}
		unlock := s.locks.Lock(keys...)

		if !s.albums.has(id) {
			unlock()
			return fmt.Errorf("%w: album %d", catalog.ErrNotFound, id)
		}
		if !sameIDs(members, s.index.membersOf(id)) {
			unlock()
			continue
		}

		err := s.deleteLockedAlbum(ctx, album, members)
		unlock()
		return err
	}
}

func (s *Store) deleteLockedAlbum(ctx context.Context, album catalog.Album, members []int64) error {
	batch := Batch{Removals: []Removal{{Kind: catalog.KindAlbum, ID: album.ID}}}
	for _, id := range members {
		song, ok := s.songs.get(id)
		if !ok || song.AlbumID == nil || *song.AlbumID != album.ID {
			continue
		}
		song.AlbumID, song.AlbumOrder = nil, nil
		batch.Songs = append(batch.Songs, song)
	}
	if err := s.persist.Commit(ctx, batch); err != nil {
		return fmt.Errorf("persist album removal: %w", err)
	}

	for _, song := range batch.Songs {
		s.songs.put(song.ID, song)
	}
	s.albums.remove(album.ID)
	s.index.dropAlbum(album.ID)
	s.index.removeOwned(catalog.KindAlbum, album.ArtistID, album.ID)
	return nil
}

// albumView fills the membership list. The album key must be held.
func (s *Store) albumView(album catalog.Album) catalog.Album {
	album.Songs = s.index.membersOf(album.ID)
	return album
}
