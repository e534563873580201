package merch

import (
	"context"

	"tya/internal/catalog"
	"tya/internal/logging"
)

// Store captures the persistence needs for merch workflows.
type Store interface {
	CreateMerch(ctx context.Context, caller catalog.Identity, m catalog.Merch) (catalog.Merch, error)
	Merch(ctx context.Context, id int64) (catalog.Merch, error)
	UpdateMerch(ctx context.Context, id int64, patch catalog.MerchPatch) (catalog.Merch, error)
	DeleteMerch(ctx context.Context, id int64) error
	ListMerch(ctx context.Context, ids []int64) ([]catalog.Merch, error)
	FilterMerch(ctx context.Context, f catalog.Filter) ([]int64, error)
	SearchMerch(ctx context.Context, q string) ([]catalog.Merch, error)
}

// Service coordinates merchandise operations.
type Service interface {
	Create(ctx context.Context, caller catalog.Identity, upload catalog.MerchUpload) (catalog.Merch, error)
	Get(ctx context.Context, id int64) (catalog.Merch, error)
	Update(ctx context.Context, caller catalog.Identity, id int64, patch catalog.MerchPatch) (catalog.Merch, error)
	Delete(ctx context.Context, caller catalog.Identity, id int64) error
	List(ctx context.Context, ids []int64) ([]catalog.Merch, error)
	Filter(ctx context.Context, f catalog.Filter) ([]int64, error)
	Search(ctx context.Context, q string) ([]catalog.Merch, error)
}

type service struct {
	store Store
}

func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, caller catalog.Identity, upload catalog.MerchUpload) (catalog.Merch, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Merch{}, err
	}
	m, err := upload.Merch()
	if err != nil {
		return catalog.Merch{}, err
	}
	created, err := s.store.CreateMerch(ctx, caller, m)
	if err != nil {
		return catalog.Merch{}, err
	}
	logging.WithContext(ctx).Info().Int64("merch_id", created.ID).Msg("merch created")
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (catalog.Merch, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Merch{}, err
	}
	return s.store.Merch(ctx, id)
}

func (s *service) Update(ctx context.Context, caller catalog.Identity, id int64, patch catalog.MerchPatch) (catalog.Merch, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Merch{}, err
	}
	updated, err := s.store.UpdateMerch(ctx, id, patch)
	if err != nil {
		return catalog.Merch{}, err
	}
	logging.WithContext(ctx).Info().Int64("merch_id", id).Int64("caller_id", caller.UserID).Msg("merch updated")
	return updated, nil
}

func (s *service) Delete(ctx context.Context, caller catalog.Identity, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteMerch(ctx, id); err != nil {
		return err
	}
	logging.WithContext(ctx).Info().Int64("merch_id", id).Int64("caller_id", caller.UserID).Msg("merch deleted")
	return nil
}

func (s *service) List(ctx context.Context, ids []int64) ([]catalog.Merch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListMerch(ctx, ids)
}

func (s *service) Filter(ctx context.Context, f catalog.Filter) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.FilterMerch(ctx, f)
}

func (s *service) Search(ctx context.Context, q string) ([]catalog.Merch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchMerch(ctx, q)
}
