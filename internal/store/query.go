package store

import (
	"context"
	"sort"
	"strings"

	"tya/internal/catalog"
)

// sortKey carries the fields a filter can order by.
type sortKey struct {
	id    int64
	title string
	price float64
}

// page orders the matches and cuts out the filter's page.
func page(keys []sortKey, f catalog.Filter) []int64 {
	less := func(a, b sortKey) bool { return a.id < b.id }
	switch f.Order {
	case catalog.OrderTitle:
		less = func(a, b sortKey) bool {
			if a.title != b.title {
				return a.title < b.title
			}
			return a.id < b.id
		}
	case catalog.OrderPrice:
		less = func(a, b sortKey) bool {
			if a.price != b.price {
				return a.price < b.price
			}
			return a.id < b.id
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if f.Descending {
			return less(keys[j], keys[i])
		}
		return less(keys[i], keys[j])
	})

	out := make([]int64, 0, catalog.PageSize)
	for i := f.Offset(); i < len(keys) && len(out) < catalog.PageSize; i++ {
		out = append(out, keys[i].id)
	}
	return out
}

type idSet map[int64]struct{}

func newIDSet(ids []int64) idSet {
	if len(ids) == 0 {
		return nil
	}
	set := make(idSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// admits reports whether id passes the set. A nil set admits everything.
func (s idSet) admits(id int64) bool {
	if s == nil {
		return true
	}
	_, ok := s[id]
	return ok
}

// anyOf reports whether any of ids passes the set.
func (s idSet) anyOf(ids []int64) bool {
	if s == nil {
		return true
	}
	for _, id := range ids {
		if _, ok := s[id]; ok {
			return true
		}
	}
	return false
}

func matches(field, q string) bool {
	return strings.Contains(strings.ToLower(field), q)
}

// collect resolves ids with get, keeping request order and dropping repeats
// and misses.
func collect[T any](ids []int64, get func(int64) (T, error)) []T {
	out := make([]T, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		v, err := get(id)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// artistGenres returns the genres of every song the artist owns.
func (s *Store) artistGenres(artist int64) []int64 {
	var out []int64
	for _, id := range s.index.ownedBy(catalog.KindSong, artist) {
		if song, ok := s.songs.get(id); ok {
			out = append(out, song.Genres...)
		}
	}
	return out
}

// ListSongs returns the existing songs among ids.
func (s *Store) ListSongs(ctx context.Context, ids []int64) ([]catalog.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return collect(ids, s.readSong), nil
}

func (s *Store) ListAlbums(ctx context.Context, ids []int64) ([]catalog.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return collect(ids, s.readAlbum), nil
}

func (s *Store) ListMerch(ctx context.Context, ids []int64) ([]catalog.Merch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return collect(ids, s.readMerch), nil
}

func (s *Store) ListArtists(ctx context.Context, ids []int64) ([]catalog.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return collect(ids, s.readArtist), nil
}

// FilterSongs returns one page of songs matching the filter.
func (s *Store) FilterSongs(ctx context.Context, f catalog.Filter) ([]catalog.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	genres, artists := newIDSet(f.Genres), newIDSet(f.Artists)
	var keys []sortKey
	for _, song := range s.songs.all() {
		if !genres.anyOf(song.Genres) || !artists.admits(song.ArtistID) {
			continue
		}
		keys = append(keys, sortKey{id: song.ID, title: strings.ToLower(song.Title), price: song.Price})
	}
	return collect(page(keys, f), s.readSong), nil
}

// FilterAlbums returns one page of album ids. An album's genres are those of
// its member songs.
func (s *Store) FilterAlbums(ctx context.Context, f catalog.Filter) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	genres, artists := newIDSet(f.Genres), newIDSet(f.Artists)
	var keys []sortKey
	for _, album := range s.albums.all() {
		if !artists.admits(album.ArtistID) {
			continue
		}
		if genres != nil && !genres.anyOf(s.memberGenres(album.ID)) {
			continue
		}
		keys = append(keys, sortKey{id: album.ID, title: strings.ToLower(album.Title), price: album.Price})
	}
	return page(keys, f), nil
}

func (s *Store) memberGenres(album int64) []int64 {
	var out []int64
	for _, id := range s.index.membersOf(album) {
		if song, ok := s.songs.get(id); ok {
			out = append(out, song.Genres...)
		}
	}
	return out
}

// FilterMerch returns one page of merch ids. Merch takes the genres of its
// artist's songs.
func (s *Store) FilterMerch(ctx context.Context, f catalog.Filter) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	genres, artists := newIDSet(f.Genres), newIDSet(f.Artists)
	var keys []sortKey
	for _, m := range s.merch.all() {
		if !artists.admits(m.ArtistID) {
			continue
		}
		if genres != nil && !genres.anyOf(s.artistGenres(m.ArtistID)) {
			continue
		}
		keys = append(keys, sortKey{id: m.ID, title: strings.ToLower(m.Title), price: m.Price})
	}
	return page(keys, f), nil
}

// FilterArtists returns one page of artist ids. The artists parameter
// selects artist ids directly.
func (s *Store) FilterArtists(ctx context.Context, f catalog.Filter) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	genres, artists := newIDSet(f.Genres), newIDSet(f.Artists)
	var keys []sortKey
	for _, a := range s.artists.all() {
		if !artists.admits(a.ID) {
			continue
		}
		if genres != nil && !genres.anyOf(s.artistGenres(a.ID)) {
			continue
		}
		keys = append(keys, sortKey{id: a.ID, title: strings.ToLower(a.ArtisticName)})
	}
	return page(keys, f), nil
}

// SearchSongs matches q case-insensitively against song titles. An empty q
// matches every song.
func (s *Store) SearchSongs(ctx context.Context, q string) ([]catalog.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	var ids []int64
	for _, song := range s.songs.all() {
		if matches(song.Title, q) {
			ids = append(ids, song.ID)
		}
	}
	return collect(ids, s.readSong), nil
}

func (s *Store) SearchAlbums(ctx context.Context, q string) ([]catalog.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	var ids []int64
	for _, a := range s.albums.all() {
		if matches(a.Title, q) {
			ids = append(ids, a.ID)
		}
	}
	return collect(ids, s.readAlbum), nil
}

func (s *Store) SearchMerch(ctx context.Context, q string) ([]catalog.Merch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	var ids []int64
	for _, m := range s.merch.all() {
		if matches(m.Title, q) {
			ids = append(ids, m.ID)
		}
	}
	return collect(ids, s.readMerch), nil
}

// SearchArtists matches q against artistic names.
func (s *Store) SearchArtists(ctx context.Context, q string) ([]catalog.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	var ids []int64
	for _, a := range s.artists.all() {
		if matches(a.ArtisticName, q) {
			ids = append(ids, a.ID)
		}
	}
	return collect(ids, s.readArtist), nil
}
