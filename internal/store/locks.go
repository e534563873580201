package store

import (
	"sort"
	"sync"
)

// Lock ranks fix the global acquisition order. A goroutine holding a key may
// only acquire keys of a strictly higher rank.
const (
	rankUser = iota
	rankAlbum
	rankSong
	rankMerch
	rankArtist
)

type lockKey struct {
	rank int
	id   int64
}

func userKey(id int64) lockKey   { return lockKey{rankUser, id} }
func albumKey(id int64) lockKey  { return lockKey{rankAlbum, id} }
func songKey(id int64) lockKey   { return lockKey{rankSong, id} }
func merchKey(id int64) lockKey  { return lockKey{rankMerch, id} }
func artistKey(id int64) lockKey { return lockKey{rankArtist, id} }

type keyedLock struct {
	sync.RWMutex
	refs int
}

// lockTable hands out one RWMutex per record key. Entries are dropped once
// no goroutine references them.
type lockTable struct {
	mu    sync.Mutex
	locks map[lockKey]*keyedLock
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[lockKey]*keyedLock)}
}

func (t *lockTable) ref(key lockKey) *keyedLock {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[key]
	if !ok {
		l = &keyedLock{}
		t.locks[key] = l
	}
	l.refs++
	return l
}

func (t *lockTable) unref(key lockKey) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l := t.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(t.locks, key)
	}
}

// Lock write-locks every key in rank order and returns the matching unlock.
func (t *lockTable) Lock(keys ...lockKey) func() {
	keys = sortKeys(keys)
	held := make([]*keyedLock, len(keys))
	for i, key := range keys {
		held[i] = t.ref(key)
		held[i].Lock()
	}
	return func() {
		for i := len(keys) - 1; i >= 0; i-- {
			held[i].Unlock()
			t.unref(keys[i])
		}
	}
}

// RLock read-locks a single key.
func (t *lockTable) RLock(key lockKey) func() {
	l := t.ref(key)
	l.RLock()
	return func() {
		l.RUnlock()
		t.unref(key)
	}
}

func sortKeys(keys []lockKey) []lockKey {
	out := make([]lockKey, 0, len(keys))
	seen := make(map[lockKey]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].rank != out[j].rank {
			return out[i].rank < out[j].rank
		}
		return out[i].id < out[j].id
	})
	return out
}
