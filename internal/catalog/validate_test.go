package catalog

import (
	"errors"
	"testing"
)

type fakeRefs struct {
	albums map[int64]bool
	songs  map[int64]bool
}

func (f fakeRefs) AlbumExists(id int64) bool { return f.albums[id] }
func (f fakeRefs) SongExists(id int64) bool  { return f.songs[id] }

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func validSong() Song {
	return Song{
		Title:    "Test Song",
		Genres:   []int64{1, 2},
		Price:    9.99,
		TrackID:  100001,
		Duration: 180,
	}
}

func TestValidateSong(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Song)
		wantErr error
	}{
		{name: "valid song", mutate: func(*Song) {}},
		{name: "valid with album pair", mutate: func(s *Song) { s.AlbumID = int64Ptr(3); s.AlbumOrder = intPtr(1) }},
		{name: "blank title", mutate: func(s *Song) { s.Title = "  " }, wantErr: ErrValidation},
		{name: "zero price", mutate: func(s *Song) { s.Price = 0 }, wantErr: ErrValidation},
		{name: "negative price", mutate: func(s *Song) { s.Price = -5 }, wantErr: ErrValidation},
		{name: "album without order", mutate: func(s *Song) { s.AlbumID = int64Ptr(1) }, wantErr: ErrValidation},
		{name: "order without album", mutate: func(s *Song) { s.AlbumOrder = intPtr(1) }, wantErr: ErrValidation},
		{name: "zero order", mutate: func(s *Song) { s.AlbumID = int64Ptr(1); s.AlbumOrder = intPtr(0) }, wantErr: ErrValidation},
		{name: "zero duration", mutate: func(s *Song) { s.Duration = 0 }, wantErr: ErrValidation},
		{name: "no genres", mutate: func(s *Song) { s.Genres = nil }, wantErr: ErrValidation},
		{name: "unknown genre", mutate: func(s *Song) { s.Genres = []int64{1, 999} }, wantErr: ErrValidation},
		{name: "bad release date", mutate: func(s *Song) { s.ReleaseDate = "15/01/2024" }, wantErr: ErrValidation},
		{name: "good release date", mutate: func(s *Song) { s.ReleaseDate = "2024-01-15" }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s := validSong()
			tc.mutate(&s)
			err := ValidateSong(s)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("expected nil error but got %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateSongRefs(t *testing.T) {
	refs := fakeRefs{albums: map[int64]bool{1: true}}

	s := validSong()
	if err := ValidateSongRefs(s, refs); err != nil {
		t.Fatalf("song without album: %v", err)
	}

	s.AlbumID, s.AlbumOrder = int64Ptr(1), intPtr(1)
	if err := ValidateSongRefs(s, refs); err != nil {
		t.Fatalf("existing album: %v", err)
	}

	s.AlbumID = int64Ptr(99999)
	if err := ValidateSongRefs(s, refs); !errors.Is(err, ErrReferential) {
		t.Fatalf("expected ErrReferential, got %v", err)
	}
}

func TestValidateAlbumAndRefs(t *testing.T) {
	refs := fakeRefs{songs: map[int64]bool{1: true, 2: true}}

	album := Album{Title: "Test Album", Price: 0.01, Songs: []int64{1, 2}}
	if err := ValidateAlbum(album); err != nil {
		t.Fatalf("ValidateAlbum: %v", err)
	}
	if err := ValidateAlbumRefs(album, refs); err != nil {
		t.Fatalf("ValidateAlbumRefs: %v", err)
	}

	album.Price = 0
	if err := ValidateAlbum(album); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero price, got %v", err)
	}

	album.Songs = []int64{1, 99999}
	if err := ValidateAlbumRefs(album, refs); !errors.Is(err, ErrReferential) {
		t.Fatalf("expected ErrReferential, got %v", err)
	}
}

func TestValidateMerchAndArtist(t *testing.T) {
	if err := ValidateMerch(Merch{Title: "Shirt", Price: 25}); err != nil {
		t.Fatalf("ValidateMerch: %v", err)
	}
	if err := ValidateMerch(Merch{Title: "Shirt", Price: -1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	artist := Artist{ArtisticName: "Band", UserID: 1, ArtisticEmail: "band@example.com"}
	if err := ValidateArtist(artist); err != nil {
		t.Fatalf("ValidateArtist: %v", err)
	}
	artist.ArtisticName = ""
	if err := ValidateArtist(artist); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSongUploadRequiresFields(t *testing.T) {
	price := 9.99
	var trackID int64 = 7
	duration := 180

	if _, err := (SongUpload{Title: "x", TrackID: &trackID, Duration: &duration}).Song(); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing price: expected ErrValidation, got %v", err)
	}
	if _, err := (SongUpload{Title: "x", Price: &price, Duration: &duration}).Song(); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing trackId: expected ErrValidation, got %v", err)
	}

	song, err := SongUpload{Title: "x", Genres: []int64{1}, Price: &price, TrackID: &trackID, Duration: &duration}.Song()
	if err != nil {
		t.Fatalf("Song: %v", err)
	}
	if song.Price != price || song.TrackID != trackID || song.Duration != duration {
		t.Fatalf("unexpected song %+v", song)
	}
}

func TestAlbumUploadCollapsesDuplicates(t *testing.T) {
	price := 19.99
	album, err := AlbumUpload{Title: "A", Songs: []int64{3, 1, 3, 2, 1}, Price: &price}.Album()
	if err != nil {
		t.Fatalf("Album: %v", err)
	}
	want := []int64{3, 1, 2}
	if len(album.Songs) != len(want) {
		t.Fatalf("expected %v, got %v", want, album.Songs)
	}
	for i := range want {
		if album.Songs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, album.Songs)
		}
	}
}

func TestSongGenresAreASet(t *testing.T) {
	price := 9.99
	var trackID int64 = 7
	duration := 180

	song, err := SongUpload{Title: "x", Genres: []int64{2, 1, 2, 1}, Price: &price, TrackID: &trackID, Duration: &duration}.Song()
	if err != nil {
		t.Fatalf("Song: %v", err)
	}
	if len(song.Genres) != 2 || song.Genres[0] != 2 || song.Genres[1] != 1 {
		t.Fatalf("expected [2 1], got %v", song.Genres)
	}

	patched := SongPatch{Genres: []int64{3, 3}}.Apply(song)
	if len(patched.Genres) != 1 || patched.Genres[0] != 3 {
		t.Fatalf("expected [3], got %v", patched.Genres)
	}
}

func TestSongPatchKeepsUnsetFields(t *testing.T) {
	title := "Updated"
	price := 12.5
	s := validSong()
	s.AlbumID, s.AlbumOrder = int64Ptr(4), intPtr(2)

	got := SongPatch{Title: &title, Price: &price}.Apply(s)
	if got.Title != title || got.Price != price {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Duration != s.Duration || *got.AlbumID != 4 || *got.AlbumOrder != 2 {
		t.Fatalf("unexpected change to unpatched fields: %+v", got)
	}
}
