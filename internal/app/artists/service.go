package artists

import (
	"context"

	"tya/internal/catalog"
	"tya/internal/logging"
)

// Store captures the persistence needs for artist workflows.
type Store interface {
	CreateArtist(ctx context.Context, a catalog.Artist) (catalog.Artist, error)
	Artist(ctx context.Context, id int64) (catalog.Artist, error)
	UpdateArtist(ctx context.Context, id int64, patch catalog.ArtistPatch) (catalog.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error
	ListArtists(ctx context.Context, ids []int64) ([]catalog.Artist, error)
	FilterArtists(ctx context.Context, f catalog.Filter) ([]int64, error)
	SearchArtists(ctx context.Context, q string) ([]catalog.Artist, error)
}

// Service provides artist-centric operations.
type Service interface {
	Create(ctx context.Context, caller catalog.Identity, upload catalog.ArtistUpload) (catalog.Artist, error)
	Get(ctx context.Context, id int64) (catalog.Artist, error)
	Update(ctx context.Context, caller catalog.Identity, id int64, patch catalog.ArtistPatch) (catalog.Artist, error)
	Delete(ctx context.Context, caller catalog.Identity, id int64) error
	List(ctx context.Context, ids []int64) ([]catalog.Artist, error)
	Filter(ctx context.Context, f catalog.Filter) ([]int64, error)
	Search(ctx context.Context, q string) ([]catalog.Artist, error)
}

type service struct {
	store Store
}

// New constructs an artist Service backed by the supplied Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, caller catalog.Identity, upload catalog.ArtistUpload) (catalog.Artist, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Artist{}, err
	}
	created, err := s.store.CreateArtist(ctx, upload.Artist(caller))
	if err != nil {
		return catalog.Artist{}, err
	}
	logging.WithContext(ctx).Info().
		Int64("artist_id", created.ID).
		Int64("owner_user_id", created.UserID).
		Msg("artist created")
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (catalog.Artist, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Artist{}, err
	}
	return s.store.Artist(ctx, id)
}

func (s *service) Update(ctx context.Context, caller catalog.Identity, id int64, patch catalog.ArtistPatch) (catalog.Artist, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Artist{}, err
	}
	updated, err := s.store.UpdateArtist(ctx, id, patch)
	if err != nil {
		return catalog.Artist{}, err
	}
	logging.WithContext(ctx).Info().Int64("artist_id", id).Int64("caller_id", caller.UserID).Msg("artist updated")
	return updated, nil
}

func (s *service) Delete(ctx context.Context, caller catalog.Identity, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteArtist(ctx, id); err != nil {
		return err
	}
	logging.WithContext(ctx).Info().Int64("artist_id", id).Int64("caller_id", caller.UserID).Msg("artist deleted")
	return nil
}

func (s *service) List(ctx context.Context, ids []int64) ([]catalog.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx, ids)
}

func (s *service) Filter(ctx context.Context, f catalog.Filter) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.FilterArtists(ctx, f)
}

func (s *service) Search(ctx context.Context, q string) ([]catalog.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchArtists(ctx, q)
}
