package store

import (
	"sort"
	"sync"
)

// table is the row storage of one entity kind. Its mutex only guards the map;
// record-level consistency comes from the lockTable.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[int64]T
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[int64]T), clone: clone}
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(row), true
}

func (t *table[T]) has(id int64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) put(id int64, row T) {
	t.mu.Lock()
	t.rows[id] = t.clone(row)
	t.mu.Unlock()
}

func (t *table[T]) remove(id int64) {
	t.mu.Lock()
	delete(t.rows, id)
	t.mu.Unlock()
}

// all returns copies of every row ordered by id.
func (t *table[T]) all() []T {
	t.mu.RLock()
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.clone(t.rows[id]))
	}
	t.mu.RUnlock()
	return out
}
