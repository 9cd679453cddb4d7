package models

// Movie is the summary form of a catalog entry as the remote movie API
// returns it inside list envelopes. Zero values mean "not provided":
// an empty PosterPath has no artwork, a VoteAverage of 0 renders as N/A.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path,omitempty"`
	VoteAverage float64 `json:"vote_average,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Overview    string  `json:"overview,omitempty"`
	GenreIDs    []int   `json:"genre_ids,omitempty"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is the full form returned by the single-entry endpoint.
// It repeats the summary fields and adds runtime plus resolved genres.
type MovieDetail struct {
	Movie
	Runtime int     `json:"runtime,omitempty"`
	Genres  []Genre `json:"genres,omitempty"`
}
