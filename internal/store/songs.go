package store

import (
	"context"
	"fmt"

	"tya/internal/catalog"
)

// CreateSong validates and stores a song owned by the caller's artist. A song
// with a primary album joins that album's membership.
func (s *Store) CreateSong(ctx context.Context, caller catalog.Identity, song catalog.Song) (catalog.Song, error) {
	if err := catalog.ValidateSong(song); err != nil {
		return catalog.Song{}, err
	}

	unlockUser := s.locks.Lock(userKey(caller.UserID))
	defer unlockUser()

	artist, provisioned, err := s.callerArtist(caller)
	if err != nil {
		return catalog.Song{}, err
	}
	song.ID = s.seq.song.Add(1)
	song.ArtistID = artist.ID

	keys := []lockKey{songKey(song.ID), artistKey(artist.ID)}
	if song.AlbumID != nil {
		keys = append(keys, albumKey(*song.AlbumID))
	}
	unlock := s.locks.Lock(keys...)
	defer unlock()

	if err := catalog.ValidateSongRefs(song, refs{s}); err != nil {
		return catalog.Song{}, err
	}

	batch := Batch{Songs: []catalog.Song{song}}
	if provisioned {
		batch.Artists = []catalog.Artist{artist}
	}
	if song.AlbumID != nil {
		album, _ := s.albums.get(*song.AlbumID)
		album.Songs = append(s.index.membersOf(album.ID), song.ID)
		batch.Albums = []catalog.Album{album}
	}
	if err := s.persist.Commit(ctx, batch); err != nil {
		return catalog.Song{}, fmt.Errorf("persist song: %w", err)
	}

	if provisioned {
		s.adoptArtist(artist)
	}
	s.songs.put(song.ID, song)
	if song.AlbumID != nil {
		s.index.addMembers(*song.AlbumID, song.ID)
	}
	s.index.addOwned(catalog.KindSong, artist.ID, song.ID)
	return s.songView(song), nil
}

// Song returns the song with its linked albums.
func (s *Store) Song(ctx context.Context, id int64) (catalog.Song, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Song{}, err
	}
	return s.readSong(id)
}

func (s *Store) readSong(id int64) (catalog.Song, error) {
	unlock := s.locks.RLock(songKey(id))
	defer unlock()
	song, ok := s.songs.get(id)
	if !ok {
		return catalog.Song{}, fmt.Errorf("%w: song %d", catalog.ErrNotFound, id)
	}
	return s.songView(song), nil
}

// UpdateSong merges the patch and re-validates the result.
func (s *Store) UpdateSong(ctx context.Context, id int64, patch catalog.SongPatch) (catalog.Song, error) {
	unlock := s.locks.Lock(songKey(id))
	defer unlock()

	current, ok := s.songs.get(id)
	if !ok {
		return catalog.Song{}, fmt.Errorf("%w: song %d", catalog.ErrNotFound, id)
	}
	merged := patch.Apply(current)
	if err := catalog.ValidateSong(merged); err != nil {
		return catalog.Song{}, err
	}
	if err := s.persist.Commit(ctx, Batch{Songs: []catalog.Song{merged}}); err != nil {
		return catalog.Song{}, fmt.Errorf("persist song: %w", err)
	}
	s.songs.put(id, merged)
	return s.songView(merged), nil
}

// DeleteSong removes the song, its album memberships and its ownership entry.
func (s *Store) DeleteSong(ctx context.Context, id int64) error {
	for {
		song, ok := s.songs.get(id)
		if !ok {
			return fmt.Errorf("%w: song %d", catalog.ErrNotFound, id)
		}
		albums := s.index.albumsOf(id)

		keys := []lockKey{songKey(id), artistKey(song.ArtistID)}
		for _, a := range albums {
			keys = append(keys, albumKey(a))
		}
		unlock := s.locks.Lock(keys...)

		if !s.songs.has(id) {
			unlock()
			return fmt.Errorf("%w: song %d", catalog.ErrNotFound, id)
		}
		if !sameIDs(albums, s.index.albumsOf(id)) {
			// Membership moved before the locks were taken.
			unlock()
			continue
		}

		err := s.deleteLockedSong(ctx, song, albums)
		unlock()
		return err
	}
}

func (s *Store) deleteLockedSong(ctx context.Context, song catalog.Song, albums []int64) error {
	batch := Batch{Removals: []Removal{{Kind: catalog.KindSong, ID: song.ID}}}
	for _, id := range albums {
		album, ok := s.albums.get(id)
		if !ok {
			continue
		}
		album.Songs = without(s.index.membersOf(id), song.ID)
		batch.Albums = append(batch.Albums, album)
	}
	if err := s.persist.Commit(ctx, batch); err != nil {
		return fmt.Errorf("persist song removal: %w", err)
	}

	s.songs.remove(song.ID)
	s.index.dropSong(song.ID)
	s.index.removeOwned(catalog.KindSong, song.ArtistID, song.ID)
	return nil
}

// songView fills the derived fields. The song key must be held.
func (s *Store) songView(song catalog.Song) catalog.Song {
	song.LinkedAlbums = make([]int64, 0)
	for _, a := range s.index.albumsOf(song.ID) {
		if song.AlbumID != nil && *song.AlbumID == a {
			continue
		}
		song.LinkedAlbums = append(song.LinkedAlbums, a)
	}
	if song.Genres == nil {
		song.Genres = make([]int64, 0)
	}
	return song
}
