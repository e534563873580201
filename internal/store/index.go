package store

import (
	"sort"
	"sync"

	"tya/internal/catalog"
)

// index keeps album membership, artist ownership and the user to artist
// mapping. Every pair it records is only changed while the record locks of
// both sides are held.
type index struct {
	mu         sync.RWMutex
	members    map[int64][]int64
	memberOf   map[int64]map[int64]struct{}
	owned      map[catalog.Kind]map[int64][]int64
	userArtist map[int64]int64
}

func newIndex() *index {
	return &index{
		members:  make(map[int64][]int64),
		memberOf: make(map[int64]map[int64]struct{}),
		owned: map[catalog.Kind]map[int64][]int64{
			catalog.KindSong:  {},
			catalog.KindAlbum: {},
			catalog.KindMerch: {},
		},
		userArtist: make(map[int64]int64),
	}
}

// addMembers appends songs to an album's membership, ignoring repeats.
func (x *index) addMembers(album int64, songs ...int64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	list := x.members[album]
	for _, song := range songs {
		set := x.memberOf[song]
		if set == nil {
			set = make(map[int64]struct{})
			x.memberOf[song] = set
		}
		if _, ok := set[album]; ok {
			continue
		}
		set[album] = struct{}{}
		list = append(list, song)
	}
	x.members[album] = list
}

// dropSong removes a song from every album it belongs to.
func (x *index) dropSong(song int64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for album := range x.memberOf[song] {
		x.members[album] = without(x.members[album], song)
	}
	delete(x.memberOf, song)
}

// dropAlbum removes an album and its membership entries.
func (x *index) dropAlbum(album int64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, song := range x.members[album] {
		if set := x.memberOf[song]; set != nil {
			delete(set, album)
			if len(set) == 0 {
				delete(x.memberOf, song)
			}
		}
	}
	delete(x.members, album)
}

func (x *index) membersOf(album int64) []int64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return append(make([]int64, 0, len(x.members[album])), x.members[album]...)
}

// albumsOf returns the albums listing song, ordered by id.
func (x *index) albumsOf(song int64) []int64 {
	x.mu.RLock()
	out := make([]int64, 0, len(x.memberOf[song]))
	for album := range x.memberOf[song] {
		out = append(out, album)
	}
	x.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (x *index) addOwned(kind catalog.Kind, artist, id int64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, have := range x.owned[kind][artist] {
		if have == id {
			return
		}
	}
	x.owned[kind][artist] = append(x.owned[kind][artist], id)
}

func (x *index) removeOwned(kind catalog.Kind, artist, id int64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	list := without(x.owned[kind][artist], id)
	if len(list) == 0 {
		delete(x.owned[kind], artist)
		return
	}
	x.owned[kind][artist] = list
}

func (x *index) ownedBy(kind catalog.Kind, artist int64) []int64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	list := x.owned[kind][artist]
	return append(make([]int64, 0, len(list)), list...)
}

// dropArtist forgets the artist's owner sets and its account mapping.
func (x *index) dropArtist(artist, user int64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, byArtist := range x.owned {
		delete(byArtist, artist)
	}
	if x.userArtist[user] == artist {
		delete(x.userArtist, user)
	}
}

func (x *index) artistFor(user int64) (int64, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	id, ok := x.userArtist[user]
	return id, ok
}

func (x *index) setUserArtist(user, artist int64) {
	x.mu.Lock()
	x.userArtist[user] = artist
	x.mu.Unlock()
}

func without(list []int64, id int64) []int64 {
	out := list[:0:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
