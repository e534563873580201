package songs

import (
	"context"

	"tya/internal/catalog"
	"tya/internal/logging"
)

// Store captures the persistence needs for song workflows.
type Store interface {
	CreateSong(ctx context.Context, caller catalog.Identity, song catalog.Song) (catalog.Song, error)
	Song(ctx context.Context, id int64) (catalog.Song, error)
	UpdateSong(ctx context.Context, id int64, patch catalog.SongPatch) (catalog.Song, error)
	DeleteSong(ctx context.Context, id int64) error
	ListSongs(ctx context.Context, ids []int64) ([]catalog.Song, error)
	FilterSongs(ctx context.Context, f catalog.Filter) ([]catalog.Song, error)
	SearchSongs(ctx context.Context, q string) ([]catalog.Song, error)
}

// Service exposes song-centric operations.
type Service interface {
	Create(ctx context.Context, caller catalog.Identity, upload catalog.SongUpload) (catalog.Song, error)
	Get(ctx context.Context, id int64) (catalog.Song, error)
	Update(ctx context.Context, caller catalog.Identity, id int64, patch catalog.SongPatch) (catalog.Song, error)
	Delete(ctx context.Context, caller catalog.Identity, id int64) error
	List(ctx context.Context, ids []int64) ([]catalog.Song, error)
	Filter(ctx context.Context, f catalog.Filter) ([]catalog.Song, error)
	Search(ctx context.Context, q string) ([]catalog.Song, error)
}

type service struct {
	store Store
}

// New constructs a song Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, caller catalog.Identity, upload catalog.SongUpload) (catalog.Song, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Song{}, err
	}
	song, err := upload.Song()
	if err != nil {
		return catalog.Song{}, err
	}
	created, err := s.store.CreateSong(ctx, caller, song)
	if err != nil {
		return catalog.Song{}, err
	}
	logging.WithContext(ctx).Info().
		Int64("song_id", created.ID).
		Int64("artist_id", created.ArtistID).
		Msg("song created")
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (catalog.Song, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Song{}, err
	}
	return s.store.Song(ctx, id)
}

func (s *service) Update(ctx context.Context, caller catalog.Identity, id int64, patch catalog.SongPatch) (catalog.Song, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Song{}, err
	}
	updated, err := s.store.UpdateSong(ctx, id, patch)
	if err != nil {
		return catalog.Song{}, err
	}
	logging.WithContext(ctx).Info().Int64("song_id", id).Int64("caller_id", caller.UserID).Msg("song updated")
	return updated, nil
}

func (s *service) Delete(ctx context.Context, caller catalog.Identity, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteSong(ctx, id); err != nil {
		return err
	}
	logging.WithContext(ctx).Info().Int64("song_id", id).Int64("caller_id", caller.UserID).Msg("song deleted")
	return nil
}

func (s *service) List(ctx context.Context, ids []int64) ([]catalog.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongs(ctx, ids)
}

func (s *service) Filter(ctx context.Context, f catalog.Filter) ([]catalog.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.FilterSongs(ctx, f)
}

func (s *service) Search(ctx context.Context, q string) ([]catalog.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchSongs(ctx, q)
}
