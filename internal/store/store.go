// Package store holds the authoritative catalog state in memory and keeps the
// album membership and artist ownership indices consistent with every write.
package store

import (
	"context"
	"fmt"
	"sync/atomic"

	"tya/internal/catalog"
)

// Store serves all four entity kinds. Writes lock only the records they touch.
type Store struct {
	locks   *lockTable
	persist Persister

	songs   *table[catalog.Song]
	albums  *table[catalog.Album]
	merch   *table[catalog.Merch]
	artists *table[catalog.Artist]
	index   *index

	seq struct {
		song, album, merch, artist atomic.Int64
	}
}

// New builds an empty Store. A nil Persister keeps the state in memory only.
func New(p Persister) *Store {
	if p == nil {
		p = nopPersister{}
	}
	return &Store{
		locks:   newLockTable(),
		persist: p,
		songs:   newTable(cloneSong),
		albums:  newTable(cloneAlbum),
		merch:   newTable(func(m catalog.Merch) catalog.Merch { return m }),
		artists: newTable(cloneArtist),
		index:   newIndex(),
	}
}

// Load hydrates an empty Store from its Persister and rebuilds the indices.
func (s *Store) Load(ctx context.Context) error {
	snap, err := s.persist.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	for _, a := range snap.Artists {
		s.artists.put(a.ID, a)
		s.index.setUserArtist(a.UserID, a.ID)
		bump(&s.seq.artist, a.ID)
	}
	for _, song := range snap.Songs {
		s.songs.put(song.ID, song)
		if s.artists.has(song.ArtistID) {
			s.index.addOwned(catalog.KindSong, song.ArtistID, song.ID)
		}
		bump(&s.seq.song, song.ID)
	}
	for _, a := range snap.Albums {
		s.albums.put(a.ID, a)
		for _, id := range a.Songs {
			if s.songs.has(id) {
				s.index.addMembers(a.ID, id)
			}
		}
		if s.artists.has(a.ArtistID) {
			s.index.addOwned(catalog.KindAlbum, a.ArtistID, a.ID)
		}
		bump(&s.seq.album, a.ID)
	}
	for _, m := range snap.Merch {
		s.merch.put(m.ID, m)
		if s.artists.has(m.ArtistID) {
			s.index.addOwned(catalog.KindMerch, m.ArtistID, m.ID)
		}
		bump(&s.seq.merch, m.ID)
	}

	bump(&s.seq.song, snap.Sequences[catalog.KindSong])
	bump(&s.seq.album, snap.Sequences[catalog.KindAlbum])
	bump(&s.seq.merch, snap.Sequences[catalog.KindMerch])
	bump(&s.seq.artist, snap.Sequences[catalog.KindArtist])
	return nil
}

// refs answers existence checks for the validation rules.
type refs struct{ s *Store }

func (r refs) AlbumExists(id int64) bool { return r.s.albums.has(id) }
func (r refs) SongExists(id int64) bool  { return r.s.songs.has(id) }

// callerArtist returns the artist of caller, or a new unsaved one when the
// account has none yet. The caller's user key must be held.
func (s *Store) callerArtist(caller catalog.Identity) (catalog.Artist, bool, error) {
	if id, ok := s.index.artistFor(caller.UserID); ok {
		if a, ok := s.artists.get(id); ok {
			return a, false, nil
		}
	}
	name := caller.Username
	if name == "" {
		name = fmt.Sprintf("artist-%d", caller.UserID)
	}
	a := catalog.Artist{ArtisticName: name, UserID: caller.UserID}
	if err := catalog.ValidateArtist(a); err != nil {
		return catalog.Artist{}, false, err
	}
	a.ID = s.seq.artist.Add(1)
	return a, true, nil
}

// adoptArtist records a provisioned artist once its batch is durable.
func (s *Store) adoptArtist(a catalog.Artist) {
	s.artists.put(a.ID, a)
	s.index.setUserArtist(a.UserID, a.ID)
}

func bump(counter *atomic.Int64, id int64) {
	for {
		cur := counter.Load()
		if id <= cur || counter.CompareAndSwap(cur, id) {
			return
		}
	}
}

func cloneSong(s catalog.Song) catalog.Song {
	s.Genres = append([]int64(nil), s.Genres...)
	if s.AlbumID != nil {
		v := *s.AlbumID
		s.AlbumID = &v
	}
	if s.AlbumOrder != nil {
		v := *s.AlbumOrder
		s.AlbumOrder = &v
	}
	s.LinkedAlbums = nil
	return s
}

func cloneAlbum(a catalog.Album) catalog.Album {
	a.Songs = nil
	return a
}

func cloneArtist(a catalog.Artist) catalog.Artist {
	a.OwnerSongs, a.OwnerAlbums, a.OwnerMerch = nil, nil, nil
	return a
}
