package catalog

// The API's movie genre table. Fixed set, so a static map beats an extra
// round trip to /genre/movie/list on every render.
var genreNamesByID = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

const unknownGenre = "Unknown"

// maxGenreNames caps how many genre labels a card or modal line shows.
const maxGenreNames = 3

// GenreNames maps ids through the static genre table in input order.
// Unknown ids become "Unknown"; the result never exceeds three names.
func GenreNames(ids []int) []string {
	names := make([]string, 0, maxGenreNames)
	for _, id := range ids {
		if len(names) == maxGenreNames {
			break
		}
		name, ok := genreNamesByID[id]
		if !ok {
			name = unknownGenre
		}
		names = append(names, name)
	}
	return names
}
