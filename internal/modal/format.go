package modal

import (
	"fmt"
	"strconv"
	"strings"

	"moviehub/internal/catalog"
	"moviehub/pkg/models"
)

func formatRating(vote float64) string {
	if vote <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(vote, 'f', 1, 64)
}

// releaseYear is the substring before the first '-' of the release date.
func releaseYear(date string) string {
	if date == "" {
		return "N/A"
	}
	if i := strings.IndexByte(date, '-'); i >= 0 {
		return date[:i]
	}
	return date
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d min", minutes)
}

// genreNames prefers the detail record's own genre objects and falls back
// to the static id table. Either way at most three labels are shown, the
// same cap the card helper applies.
func genreNames(d *models.MovieDetail) []string {
	if len(d.Genres) > 0 {
		names := make([]string, 0, 3)
		for _, g := range d.Genres {
			if len(names) == 3 {
				break
			}
			names = append(names, g.Name)
		}
		return names
	}
	return catalog.GenreNames(d.GenreIDs)
}
