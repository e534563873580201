package albums

import (
	"context"

	"tya/internal/catalog"
	"tya/internal/logging"
)

// Store captures the persistence needs for album workflows.
type Store interface {
	CreateAlbum(ctx context.Context, caller catalog.Identity, album catalog.Album) (catalog.Album, error)
	Album(ctx context.Context, id int64) (catalog.Album, error)
	UpdateAlbum(ctx context.Context, id int64, patch catalog.AlbumPatch) (catalog.Album, error)
	DeleteAlbum(ctx context.Context, id int64) error
	ListAlbums(ctx context.Context, ids []int64) ([]catalog.Album, error)
	FilterAlbums(ctx context.Context, f catalog.Filter) ([]int64, error)
	SearchAlbums(ctx context.Context, q string) ([]catalog.Album, error)
}

// Service coordinates album-related operations.
type Service interface {
	Create(ctx context.Context, caller catalog.Identity, upload catalog.AlbumUpload) (catalog.Album, error)
	Get(ctx context.Context, id int64) (catalog.Album, error)
	Update(ctx context.Context, caller catalog.Identity, id int64, patch catalog.AlbumPatch) (catalog.Album, error)
	Delete(ctx context.Context, caller catalog.Identity, id int64) error
	List(ctx context.Context, ids []int64) ([]catalog.Album, error)
	Filter(ctx context.Context, f catalog.Filter) ([]int64, error)
	Search(ctx context.Context, q string) ([]catalog.Album, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, caller catalog.Identity, upload catalog.AlbumUpload) (catalog.Album, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Album{}, err
	}
	album, err := upload.Album()
	if err != nil {
		return catalog.Album{}, err
	}
	created, err := s.store.CreateAlbum(ctx, caller, album)
	if err != nil {
		return catalog.Album{}, err
	}
	logging.WithContext(ctx).Info().
		Int64("album_id", created.ID).
		Int("songs", len(created.Songs)).
		Msg("album created")
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (catalog.Album, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Album{}, err
	}
	return s.store.Album(ctx, id)
}

func (s *service) Update(ctx context.Context, caller catalog.Identity, id int64, patch catalog.AlbumPatch) (catalog.Album, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Album{}, err
	}
	updated, err := s.store.UpdateAlbum(ctx, id, patch)
	if err != nil {
		return catalog.Album{}, err
	}
	logging.WithContext(ctx).Info().Int64("album_id", id).Int64("caller_id", caller.UserID).Msg("album updated")
	return updated, nil
}

func (s *service) Delete(ctx context.Context, caller catalog.Identity, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteAlbum(ctx, id); err != nil {
		return err
	}
	logging.WithContext(ctx).Info().Int64("album_id", id).Int64("caller_id", caller.UserID).Msg("album deleted")
	return nil
}

func (s *service) List(ctx context.Context, ids []int64) ([]catalog.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListAlbums(ctx, ids)
}

func (s *service) Filter(ctx context.Context, f catalog.Filter) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.FilterAlbums(ctx, f)
}

func (s *service) Search(ctx context.Context, q string) ([]catalog.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchAlbums(ctx, q)
}
