// Package catalog defines the records, request schemas and validation rules
// shared by the store, the services and the HTTP surface.
package catalog

// Identity is the authenticated caller of a mutating request.
type Identity struct {
	UserID   int64
	Username string
}

// Genre is an entry of the static genre reference set.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Song is a single track. LinkedAlbums is derived from album membership on read.
type Song struct {
	ID           int64   `json:"songId"`
	Title        string  `json:"title"`
	Genres       []int64 `json:"genres"`
	Cover        string  `json:"cover"`
	Price        float64 `json:"price"`
	TrackID      int64   `json:"trackId"`
	Duration     int     `json:"duration"`
	Description  string  `json:"description"`
	ReleaseDate  string  `json:"releaseDate"`
	AlbumID      *int64  `json:"albumId"`
	AlbumOrder   *int    `json:"albumOrder"`
	ArtistID     int64   `json:"artistId"`
	LinkedAlbums []int64 `json:"linked_albums"`
}

// Album groups songs. Songs is the membership list.
type Album struct {
	ID          int64   `json:"albumId"`
	Title       string  `json:"title"`
	Songs       []int64 `json:"songs"`
	Cover       string  `json:"cover"`
	Price       float64 `json:"price"`
	ReleaseDate string  `json:"releaseDate"`
	ArtistID    int64   `json:"artistId"`
}

// Merch is a merchandise item sold by an artist.
type Merch struct {
	ID          int64   `json:"merchId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Cover       string  `json:"cover"`
	Price       float64 `json:"price"`
	ArtistID    int64   `json:"artistId"`
}

// Artist is the catalog profile of an external account. The owner sets are
// maintained by the store and cannot be written by callers.
type Artist struct {
	ID                int64   `json:"artistId"`
	ArtisticName      string  `json:"artisticName"`
	ArtisticBiography string  `json:"artisticBiography"`
	ArtisticImage     string  `json:"artisticImage"`
	ArtisticEmail     string  `json:"artisticEmail"`
	SocialMediaURL    string  `json:"socialMediaUrl"`
	UserID            int64   `json:"userId"`
	OwnerSongs        []int64 `json:"owner_songs"`
	OwnerAlbums       []int64 `json:"owner_albums"`
	OwnerMerch        []int64 `json:"owner_merch"`
}

// Kind names one of the four entity tables.
type Kind string

const (
	KindSong   Kind = "song"
	KindAlbum  Kind = "album"
	KindMerch  Kind = "merch"
	KindArtist Kind = "artist"
)
