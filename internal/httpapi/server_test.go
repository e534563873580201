package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tya/internal/app/albums"
	"tya/internal/app/artists"
	"tya/internal/app/merch"
	"tya/internal/app/songs"
	"tya/internal/auth"
	"tya/internal/catalog"
	"tya/internal/http/middleware"
	"tya/internal/store"
)

const cookieName = "oversound_auth"

var testUsers = map[string]catalog.Identity{
	"token-alice": {UserID: 1, Username: "alice"},
	"token-bob":   {UserID: 2, Username: "bob"},
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	st := store.New(nil)
	validator := auth.ValidatorFunc(func(_ context.Context, token string) (catalog.Identity, error) {
		id, ok := testUsers[token]
		if !ok {
			return catalog.Identity{}, auth.ErrUnauthorized
		}
		return id, nil
	})
	srv := New(
		songs.New(st),
		albums.New(st),
		merch.New(st),
		artists.New(st),
		middleware.RequireIdentity(validator, cookieName),
	)
	return srv.Routes()
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch v := body.(type) {
	case nil:
	case string:
		buf.WriteString(v)
	default:
		if err := json.NewEncoder(&buf).Encode(v); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func testSong(title string, genres ...int64) map[string]any {
	return map[string]any{
		"title":    title,
		"genres":   genres,
		"price":    9.99,
		"trackId":  100001,
		"duration": 180,
	}
}

func uploadSong(t *testing.T, h http.Handler, token string, body map[string]any) int64 {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/song/upload", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload song: status %d body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		SongID int64 `json:"songId"`
	}
	decode(t, rec, &resp)
	return resp.SongID
}

func TestSongRoundTrip(t *testing.T) {
	h := newTestHandler(t)
	id := uploadSong(t, h, "token-alice", testSong("Test Song", 1, 2))

	rec := doRequest(t, h, http.MethodGet, fmt.Sprintf("/song/%d", id), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got catalog.Song
	decode(t, rec, &got)

	if got.Title != "Test Song" || got.Price != 9.99 || got.Duration != 180 {
		t.Fatalf("unexpected song: %+v", got)
	}
	if len(got.Genres) != 2 || got.Genres[0] != 1 || got.Genres[1] != 2 {
		t.Fatalf("unexpected genres: %v", got.Genres)
	}
	if got.LinkedAlbums == nil || len(got.LinkedAlbums) != 0 {
		t.Fatalf("expected empty linked_albums, got %v", got.LinkedAlbums)
	}
	if !strings.Contains(rec.Body.String(), `"linked_albums":[]`) {
		t.Fatalf("linked_albums not rendered as a list: %s", rec.Body.String())
	}
}

func TestMutationsRequireToken(t *testing.T) {
	h := newTestHandler(t)

	mutations := []struct {
		method, path string
	}{
		{http.MethodPost, "/song/upload"},
		{http.MethodPost, "/album/upload"},
		{http.MethodPost, "/merch/upload"},
		{http.MethodPost, "/artist/upload"},
		{http.MethodPatch, "/song/1"},
		{http.MethodPatch, "/artist/1"},
		{http.MethodDelete, "/album/1"},
		{http.MethodDelete, "/merch/1"},
	}
	for _, tc := range mutations {
		for _, token := range []string{"", "forged"} {
			rec := doRequest(t, h, tc.method, tc.path, token, `{"title":""}`)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("%s %s token=%q: expected 401, got %d", tc.method, tc.path, token, rec.Code)
			}
		}
	}

	reads := []struct {
		path string
		want int
	}{
		{"/song/filter", http.StatusOK},
		{"/album/search?q=x", http.StatusOK},
		{"/merch/list?ids=1", http.StatusOK},
		{"/artist/1", http.StatusNotFound},
		{"/genres", http.StatusOK},
		{"/health", http.StatusOK},
	}
	for _, tc := range reads {
		rec := doRequest(t, h, http.MethodGet, tc.path, "", nil)
		if rec.Code != tc.want {
			t.Errorf("GET %s: expected %d, got %d", tc.path, tc.want, rec.Code)
		}
	}
}

func TestUploadErrorPrecedence(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name     string
		mutate   func(map[string]any)
		wantCode int
	}{
		{
			name: "negative price beats missing album",
			mutate: func(b map[string]any) {
				b["price"] = -1
				b["albumId"] = 999
				b["albumOrder"] = 1
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "missing album",
			mutate: func(b map[string]any) {
				b["albumId"] = 999
				b["albumOrder"] = 1
			},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "album without order",
			mutate:   func(b map[string]any) { b["albumId"] = 999 },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown genre",
			mutate:   func(b map[string]any) { b["genres"] = []int64{99} },
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing duration",
			mutate:   func(b map[string]any) { delete(b, "duration") },
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := testSong("Broken", 1)
			tc.mutate(body)
			rec := doRequest(t, h, http.MethodPost, "/song/upload", "token-alice", body)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d (%s)", tc.wantCode, rec.Code, rec.Body.String())
			}
		})
	}

	rec := doRequest(t, h, http.MethodPost, "/album/upload", "token-alice", map[string]any{
		"title": "Ghost", "price": 5, "songs": []int64{42},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("album with missing song: expected 422, got %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodPost, "/merch/upload", "token-alice", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid JSON: expected 400, got %d", rec.Code)
	}
}

func TestListParsing(t *testing.T) {
	h := newTestHandler(t)
	first := uploadSong(t, h, "token-alice", testSong("One", 1))
	second := uploadSong(t, h, "token-alice", testSong("Two", 1))

	for _, path := range []string{"/song/list", "/song/list?ids=", "/song/list?ids=1,abc,3", "/album/list?ids=x"} {
		rec := doRequest(t, h, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s: expected 400, got %d", path, rec.Code)
		}
	}

	rec := doRequest(t, h, http.MethodGet, fmt.Sprintf("/song/list?ids=%d,%d,500", second, first), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []catalog.Song
	decode(t, rec, &got)
	if len(got) != 2 || got[0].ID != second || got[1].ID != first {
		t.Fatalf("unexpected list result: %+v", got)
	}
}

func TestSongFilterPagination(t *testing.T) {
	h := newTestHandler(t)
	for i := 0; i < 12; i++ {
		uploadSong(t, h, "token-alice", testSong(fmt.Sprintf("Paged %d", i), 1))
	}
	uploadSong(t, h, "token-bob", testSong("Elsewhere", 3))

	count := func(path string) int {
		rec := doRequest(t, h, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
		var page []catalog.Song
		decode(t, rec, &page)
		return len(page)
	}

	if n := count("/song/filter?genres=1&page=1"); n != catalog.PageSize {
		t.Fatalf("page 1: expected %d, got %d", catalog.PageSize, n)
	}
	if n := count("/song/filter?genres=1&page=2"); n != 3 {
		t.Fatalf("page 2: expected 3, got %d", n)
	}
	if n := count("/song/filter?genres=1&page=999"); n != 0 {
		t.Fatalf("page 999: expected 0, got %d", n)
	}
	if n := count("/song/filter?page=1024819115206086202"); n != 0 {
		t.Fatalf("far page: expected 0, got %d", n)
	}
	if n := count("/song/filter?genres=1"); n != catalog.PageSize {
		t.Fatalf("default page: expected %d, got %d", catalog.PageSize, n)
	}
	if n := count("/song/filter?page=2"); n != 4 {
		t.Fatalf("unfiltered page 2: expected 4, got %d", n)
	}

	rec := doRequest(t, h, http.MethodGet, "/song/filter?genres=1&page=999", "", nil)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestAggregatesThroughHTTP(t *testing.T) {
	h := newTestHandler(t)
	songID := uploadSong(t, h, "token-alice", testSong("Member", 4))

	rec := doRequest(t, h, http.MethodPost, "/album/upload", "token-alice", map[string]any{
		"title": "Collection", "price": 19.5, "songs": []int64{songID},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("upload album: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		AlbumID int64 `json:"albumId"`
	}
	decode(t, rec, &created)

	var song catalog.Song
	decode(t, doRequest(t, h, http.MethodGet, fmt.Sprintf("/song/%d", songID), "", nil), &song)
	if len(song.LinkedAlbums) != 1 || song.LinkedAlbums[0] != created.AlbumID {
		t.Fatalf("expected linked album %d, got %v", created.AlbumID, song.LinkedAlbums)
	}

	var artist catalog.Artist
	decode(t, doRequest(t, h, http.MethodGet, fmt.Sprintf("/artist/%d", song.ArtistID), "", nil), &artist)
	if artist.UserID != 1 || artist.ArtisticName != "alice" {
		t.Fatalf("unexpected provisioned artist: %+v", artist)
	}
	if len(artist.OwnerSongs) != 1 || len(artist.OwnerAlbums) != 1 || len(artist.OwnerMerch) != 0 {
		t.Fatalf("unexpected owner sets: %+v", artist)
	}

	var albumIDs []int64
	decode(t, doRequest(t, h, http.MethodGet, "/album/filter?genres=4", "", nil), &albumIDs)
	if len(albumIDs) != 1 || albumIDs[0] != created.AlbumID {
		t.Fatalf("album filter: expected [%d], got %v", created.AlbumID, albumIDs)
	}
	var artistIDs []int64
	decode(t, doRequest(t, h, http.MethodGet, "/artist/filter?genres=4", "", nil), &artistIDs)
	if len(artistIDs) != 1 || artistIDs[0] != artist.ID {
		t.Fatalf("artist filter: expected [%d], got %v", artist.ID, artistIDs)
	}

	rec = doRequest(t, h, http.MethodPost, "/artist/upload", "token-alice", map[string]any{"artisticName": "Again"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second artist for user: expected 400, got %d", rec.Code)
	}
}

func TestPatchAndDelete(t *testing.T) {
	h := newTestHandler(t)
	songID := uploadSong(t, h, "token-alice", testSong("Before", 1))
	path := fmt.Sprintf("/song/%d", songID)

	rec := doRequest(t, h, http.MethodPatch, path, "token-alice", map[string]any{"title": "After"})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d", rec.Code)
	}
	var patched catalog.Song
	decode(t, rec, &patched)
	if patched.Title != "After" || patched.Price != 9.99 {
		t.Fatalf("unexpected patched song: %+v", patched)
	}

	rec = doRequest(t, h, http.MethodPatch, path, "token-alice", map[string]any{"price": -2})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid patch: expected 400, got %d", rec.Code)
	}

	for _, tc := range []struct{ method, path string }{
		{http.MethodPatch, "/merch/999"},
		{http.MethodDelete, "/album/999"},
		{http.MethodDelete, "/song/abc"},
		{http.MethodPatch, "/artist/-1"},
	} {
		rec := doRequest(t, h, tc.method, tc.path, "token-alice", `{}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s: expected 404, got %d", tc.method, tc.path, rec.Code)
		}
	}

	rec = doRequest(t, h, http.MethodDelete, path, "token-bob", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	var deleted struct {
		SongID int64 `json:"songId"`
	}
	decode(t, rec, &deleted)
	if deleted.SongID != songID {
		t.Fatalf("expected deleted id %d, got %d", songID, deleted.SongID)
	}

	if rec := doRequest(t, h, http.MethodGet, path, "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestGenres(t *testing.T) {
	h := newTestHandler(t)
	var genres []catalog.Genre
	decode(t, doRequest(t, h, http.MethodGet, "/genres", "", nil), &genres)
	if len(genres) != len(catalog.Genres()) || genres[0].ID != 1 || genres[0].Name == "" {
		t.Fatalf("unexpected genres: %+v", genres)
	}
}
