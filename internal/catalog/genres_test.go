package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenreNamesTruncatesAndMapsUnknown(t *testing.T) {
	got := GenreNames([]int{28, 9999, 35, 18, 12})
	assert.Equal(t, []string{"Action", "Unknown", "Comedy"}, got)
}

func TestGenreNamesKeepsInputOrder(t *testing.T) {
	got := GenreNames([]int{878, 27})
	assert.Equal(t, []string{"Science Fiction", "Horror"}, got)
}

func TestGenreNamesEmptyInput(t *testing.T) {
	assert.Empty(t, GenreNames(nil))
	assert.Empty(t, GenreNames([]int{}))
}

func TestGenreNamesNeverExceedsThree(t *testing.T) {
	ids := []int{28, 12, 16, 35, 80, 99, 18}
	got := GenreNames(ids)
	assert.Len(t, got, 3)
	assert.Equal(t, []string{"Action", "Adventure", "Animation"}, got)
}
