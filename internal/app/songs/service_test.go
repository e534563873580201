package songs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tya/internal/catalog"
)

type fakeStore struct {
	created []catalog.Song
	deleted []int64
}

func (f *fakeStore) CreateSong(_ context.Context, caller catalog.Identity, song catalog.Song) (catalog.Song, error) {
	song.ID = int64(len(f.created) + 1)
	song.ArtistID = caller.UserID
	f.created = append(f.created, song)
	return song, nil
}

func (f *fakeStore) Song(context.Context, int64) (catalog.Song, error) {
	return catalog.Song{}, catalog.ErrNotFound
}

func (f *fakeStore) UpdateSong(_ context.Context, id int64, patch catalog.SongPatch) (catalog.Song, error) {
	return patch.Apply(catalog.Song{ID: id}), nil
}

func (f *fakeStore) DeleteSong(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) ListSongs(context.Context, []int64) ([]catalog.Song, error) { return nil, nil }

func (f *fakeStore) FilterSongs(context.Context, catalog.Filter) ([]catalog.Song, error) {
	return nil, nil
}

func (f *fakeStore) SearchSongs(context.Context, string) ([]catalog.Song, error) { return nil, nil }

func ptr[T any](v T) *T { return &v }

func TestCreateConvertsUpload(t *testing.T) {
	store := &fakeStore{}
	svc := New(store)
	caller := catalog.Identity{UserID: 7, Username: "u"}

	_, err := svc.Create(context.Background(), caller, catalog.SongUpload{Title: "x", Genres: []int64{1}})
	if !errors.Is(err, catalog.ErrValidation) {
		t.Fatalf("expected validation error for missing price, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatalf("store should not be reached, got %d creates", len(store.created))
	}

	song, err := svc.Create(context.Background(), caller, catalog.SongUpload{
		Title:    "x",
		Genres:   []int64{1},
		Price:    ptr(1.5),
		TrackID:  ptr(int64(3)),
		Duration: ptr(60),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if song.ID != 1 || song.ArtistID != 7 || song.Price != 1.5 || song.Duration != 60 {
		t.Fatalf("unexpected song: %+v", song)
	}
}

func TestCanceledContext(t *testing.T) {
	store := &fakeStore{}
	svc := New(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.Delete(ctx, catalog.Identity{UserID: 1}, 4); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := svc.Get(ctx, 4); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Fatalf("delete reached the store")
	}
}

func TestMutationsLogCaller(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	defer func() { log.Logger = previous }()
	log.Logger = zerolog.New(&buf)

	svc := New(&fakeStore{})
	if err := svc.Delete(context.Background(), catalog.Identity{UserID: 7}, 4); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["message"] != "song deleted" || entry["song_id"] != float64(4) || entry["caller_id"] != float64(7) {
		t.Fatalf("unexpected log entry %v", entry)
	}
}
