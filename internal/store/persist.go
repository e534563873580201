package store

import (
	"context"

	"tya/internal/catalog"
)

// Removal names a record deleted by a mutation.
type Removal struct {
	Kind catalog.Kind
	ID   int64
}

// Batch is every row written by one mutation. Album rows carry their full
// membership list; artist owner sets are never part of a batch.
type Batch struct {
	Songs    []catalog.Song
	Albums   []catalog.Album
	Merch    []catalog.Merch
	Artists  []catalog.Artist
	Removals []Removal
}

// Snapshot is the durable state used to hydrate a Store.
type Snapshot struct {
	Songs   []catalog.Song
	Albums  []catalog.Album
	Merch   []catalog.Merch
	Artists []catalog.Artist
	// Sequences holds the highest id ever issued per kind.
	Sequences map[catalog.Kind]int64
}

// Persister makes mutations durable. Commit must apply a batch atomically.
type Persister interface {
	Commit(ctx context.Context, b Batch) error
	Load(ctx context.Context) (Snapshot, error)
}

type nopPersister struct{}

func (nopPersister) Commit(context.Context, Batch) error     { return nil }
func (nopPersister) Load(context.Context) (Snapshot, error) { return Snapshot{}, nil }
