package modal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moviehub/pkg/models"
)

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, "1999", releaseYear("1999-03-30"))
	assert.Equal(t, "2024", releaseYear("2024"))
	assert.Equal(t, "N/A", releaseYear(""))
}

func TestFormatRuntime(t *testing.T) {
	assert.Equal(t, "136 min", formatRuntime(136))
	assert.Equal(t, "N/A", formatRuntime(0))
	assert.Equal(t, "N/A", formatRuntime(-5))
}

func TestGenreNamesPrefersDetailObjects(t *testing.T) {
	d := &models.MovieDetail{
		Movie: models.Movie{GenreIDs: []int{27}},
		Genres: []models.Genre{
			{ID: 28, Name: "Action"},
			{ID: 12, Name: "Adventure"},
			{ID: 16, Name: "Animation"},
			{ID: 35, Name: "Comedy"},
		},
	}
	assert.Equal(t, []string{"Action", "Adventure", "Animation"}, genreNames(d))
}

func TestGenreNamesFallsBackToIDTable(t *testing.T) {
	d := &models.MovieDetail{
		Movie: models.Movie{GenreIDs: []int{27, 9999}},
	}
	assert.Equal(t, []string{"Horror", "Unknown"}, genreNames(d))
}
