package catalog

var genres = []Genre{
	{ID: 1, Name: "Rock"},
	{ID: 2, Name: "Pop"},
	{ID: 3, Name: "Jazz"},
	{ID: 4, Name: "Hip Hop"},
	{ID: 5, Name: "Electronic"},
	{ID: 6, Name: "Classical"},
	{ID: 7, Name: "Reggae"},
	{ID: 8, Name: "Blues"},
	{ID: 9, Name: "Country"},
	{ID: 10, Name: "Metal"},
	{ID: 11, Name: "Folk"},
	{ID: 12, Name: "Latin"},
}

// Genres returns a copy of the genre reference set ordered by id.
func Genres() []Genre {
	out := make([]Genre, len(genres))
	copy(out, genres)
	return out
}

// KnownGenre reports whether id is part of the reference set.
func KnownGenre(id int64) bool {
	for _, g := range genres {
		if g.ID == id {
			return true
		}
	}
	return false
}
