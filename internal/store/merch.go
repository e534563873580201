package store

import (
	"context"
	"fmt"

	"tya/internal/catalog"
)

// CreateMerch validates and stores a merch item owned by the caller's artist.
func (s *Store) CreateMerch(ctx context.Context, caller catalog.Identity, m catalog.Merch) (catalog.Merch, error) {
	if err := catalog.ValidateMerch(m); err != nil {
		return catalog.Merch{}, err
	}

	unlockUser := s.locks.Lock(userKey(caller.UserID))
	defer unlockUser()

	artist, provisioned, err := s.callerArtist(caller)
	if err != nil {
		return catalog.Merch{}, err
	}
	m.ID = s.seq.merch.Add(1)
	m.ArtistID = artist.ID

	unlock := s.locks.Lock(merchKey(m.ID), artistKey(artist.ID))
	defer unlock()

	batch := Batch{Merch: []catalog.Merch{m}}
	if provisioned {
		batch.Artists = []catalog.Artist{artist}
	}
	if err := s.persist.Commit(ctx, batch); err != nil {
		return catalog.Merch{}, fmt.Errorf("persist merch: %w", err)
	}

	if provisioned {
		s.adoptArtist(artist)
	}
	s.merch.put(m.ID, m)
	s.index.addOwned(catalog.KindMerch, artist.ID, m.ID)
	return m, nil
}

func (s *Store) Merch(ctx context.Context, id int64) (catalog.Merch, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Merch{}, err
	}
	return s.readMerch(id)
}

func (s *Store) readMerch(id int64) (catalog.Merch, error) {
	unlock := s.locks.RLock(merchKey(id))
	defer unlock()
	m, ok := s.merch.get(id)
	if !ok {
		return catalog.Merch{}, fmt.Errorf("%w: merch %d", catalog.ErrNotFound, id)
	}
	return m, nil
}

func (s *Store) UpdateMerch(ctx context.Context, id int64, patch catalog.MerchPatch) (catalog.Merch, error) {
	unlock := s.locks.Lock(merchKey(id))
	defer unlock()

	current, ok := s.merch.get(id)
	if !ok {
		return catalog.Merch{}, fmt.Errorf("%w: merch %d", catalog.ErrNotFound, id)
	}
	merged := patch.Apply(current)
	if err := catalog.ValidateMerch(merged); err != nil {
		return catalog.Merch{}, err
	}
	if err := s.persist.Commit(ctx, Batch{Merch: []catalog.Merch{merged}}); err != nil {
		return catalog.Merch{}, fmt.Errorf("persist merch: %w", err)
	}
	s.merch.put(id, merged)
	return merged, nil
}

func (s *Store) DeleteMerch(ctx context.Context, id int64) error {
	m, ok := s.merch.get(id)
	if !ok {
		return fmt.Errorf("%w: merch %d", catalog.ErrNotFound, id)
	}
	unlock := s.locks.Lock(merchKey(id), artistKey(m.ArtistID))
	defer unlock()

	if !s.merch.has(id) {
		return fmt.Errorf("%w: merch %d", catalog.ErrNotFound, id)
	}
	if err := s.persist.Commit(ctx, Batch{Removals: []Removal{{Kind: catalog.KindMerch, ID: id}}}); err != nil {
		return fmt.Errorf("persist merch removal: %w", err)
	}
	s.merch.remove(id)
	s.index.removeOwned(catalog.KindMerch, m.ArtistID, id)
	return nil
}
