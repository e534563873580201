package catalog

import "fmt"

// SongUpload is the body of a song upload. Pointer fields distinguish an
// absent value from a zero value.
type SongUpload struct {
	Title       string   `json:"title"`
	Genres      []int64  `json:"genres"`
	Cover       string   `json:"cover"`
	Price       *float64 `json:"price"`
	TrackID     *int64   `json:"trackId"`
	Duration    *int     `json:"duration"`
	Description string   `json:"description"`
	ReleaseDate string   `json:"releaseDate"`
	AlbumID     *int64   `json:"albumId"`
	AlbumOrder  *int     `json:"albumOrder"`
}

// Song converts the upload into an unsaved record after checking that the
// required fields are present. Repeated genres are collapsed.
func (u SongUpload) Song() (Song, error) {
	switch {
	case u.Price == nil:
		return Song{}, fmt.Errorf("%w: price is required", ErrValidation)
	case u.TrackID == nil:
		return Song{}, fmt.Errorf("%w: trackId is required", ErrValidation)
	case u.Duration == nil:
		return Song{}, fmt.Errorf("%w: duration is required", ErrValidation)
	}
	return Song{
		Title:       u.Title,
		Genres:      dedupe(u.Genres),
		Cover:       u.Cover,
		Price:       *u.Price,
		TrackID:     *u.TrackID,
		Duration:    *u.Duration,
		Description: u.Description,
		ReleaseDate: u.ReleaseDate,
		AlbumID:     u.AlbumID,
		AlbumOrder:  u.AlbumOrder,
	}, nil
}

// SongPatch lists the mutable song fields. The primary album and its order
// are fixed at creation and are not part of the patch.
type SongPatch struct {
	Title       *string  `json:"title"`
	Genres      []int64  `json:"genres"`
	Cover       *string  `json:"cover"`
	Price       *float64 `json:"price"`
	TrackID     *int64   `json:"trackId"`
	Duration    *int     `json:"duration"`
	Description *string  `json:"description"`
	ReleaseDate *string  `json:"releaseDate"`
}

// Apply returns s with the present patch fields merged in.
func (p SongPatch) Apply(s Song) Song {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Genres != nil {
		s.Genres = dedupe(p.Genres)
	}
	if p.Cover != nil {
		s.Cover = *p.Cover
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.TrackID != nil {
		s.TrackID = *p.TrackID
	}
	if p.Duration != nil {
		s.Duration = *p.Duration
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.ReleaseDate != nil {
		s.ReleaseDate = *p.ReleaseDate
	}
	return s
}

// AlbumUpload is the body of an album upload.
type AlbumUpload struct {
	Title       string   `json:"title"`
	Songs       []int64  `json:"songs"`
	Cover       string   `json:"cover"`
	Price       *float64 `json:"price"`
	ReleaseDate string   `json:"releaseDate"`
}

// Album converts the upload into an unsaved record. Repeated song ids are
// collapsed keeping the first occurrence.
func (u AlbumUpload) Album() (Album, error) {
	if u.Price == nil {
		return Album{}, fmt.Errorf("%w: price is required", ErrValidation)
	}
	return Album{
		Title:       u.Title,
		Songs:       dedupe(u.Songs),
		Cover:       u.Cover,
		Price:       *u.Price,
		ReleaseDate: u.ReleaseDate,
	}, nil
}

// AlbumPatch lists the mutable album fields. Membership is fixed at creation.
type AlbumPatch struct {
	Title       *string  `json:"title"`
	Cover       *string  `json:"cover"`
	Price       *float64 `json:"price"`
	ReleaseDate *string  `json:"releaseDate"`
}

// Apply returns a with the present patch fields merged in.
func (p AlbumPatch) Apply(a Album) Album {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Cover != nil {
		a.Cover = *p.Cover
	}
	if p.Price != nil {
		a.Price = *p.Price
	}
	if p.ReleaseDate != nil {
		a.ReleaseDate = *p.ReleaseDate
	}
	return a
}

// MerchUpload is the body of a merch upload.
type MerchUpload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Cover       string   `json:"cover"`
	Price       *float64 `json:"price"`
}

// Merch converts the upload into an unsaved record.
func (u MerchUpload) Merch() (Merch, error) {
	if u.Price == nil {
		return Merch{}, fmt.Errorf("%w: price is required", ErrValidation)
	}
	return Merch{
		Title:       u.Title,
		Description: u.Description,
		Cover:       u.Cover,
		Price:       *u.Price,
	}, nil
}

type MerchPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Cover       *string  `json:"cover"`
	Price       *float64 `json:"price"`
}

// Apply returns m with the present patch fields merged in.
func (p MerchPatch) Apply(m Merch) Merch {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Cover != nil {
		m.Cover = *p.Cover
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	return m
}

// ArtistUpload is the body of an explicit artist upload. UserID defaults to
// the caller's account.
type ArtistUpload struct {
	ArtisticName      string `json:"artisticName"`
	ArtisticBiography string `json:"artisticBiography"`
	ArtisticImage     string `json:"artisticImage"`
	ArtisticEmail     string `json:"artisticEmail"`
	SocialMediaURL    string `json:"socialMediaUrl"`
	UserID            *int64 `json:"userId"`
}

// Artist converts the upload into an unsaved record owned by caller unless
// the body names another account.
func (u ArtistUpload) Artist(caller Identity) Artist {
	userID := caller.UserID
	if u.UserID != nil {
		userID = *u.UserID
	}
	return Artist{
		ArtisticName:      u.ArtisticName,
		ArtisticBiography: u.ArtisticBiography,
		ArtisticImage:     u.ArtisticImage,
		ArtisticEmail:     u.ArtisticEmail,
		SocialMediaURL:    u.SocialMediaURL,
		UserID:            userID,
	}
}

type ArtistPatch struct {
	ArtisticName      *string `json:"artisticName"`
	ArtisticBiography *string `json:"artisticBiography"`
	ArtisticImage     *string `json:"artisticImage"`
	ArtisticEmail     *string `json:"artisticEmail"`
	SocialMediaURL    *string `json:"socialMediaUrl"`
}

// Apply returns a with the present patch fields merged in.
func (p ArtistPatch) Apply(a Artist) Artist {
	if p.ArtisticName != nil {
		a.ArtisticName = *p.ArtisticName
	}
	if p.ArtisticBiography != nil {
		a.ArtisticBiography = *p.ArtisticBiography
	}
	if p.ArtisticImage != nil {
		a.ArtisticImage = *p.ArtisticImage
	}
	if p.ArtisticEmail != nil {
		a.ArtisticEmail = *p.ArtisticEmail
	}
	if p.SocialMediaURL != nil {
		a.SocialMediaURL = *p.SocialMediaURL
	}
	return a
}

func dedupe(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
