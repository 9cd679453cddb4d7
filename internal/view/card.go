package view

import (
	"strconv"

	"moviehub/internal/catalog"
	"moviehub/pkg/models"
)

// Card is one movie tile. An empty PosterURL renders the placeholder glyph;
// Rating is preformatted ("7.8" or "N/A").
type Card struct {
	MovieID   int64
	Title     string
	PosterURL string
	Rating    string
}

func buildCards(images ImageResolver, movies []models.Movie) []Card {
	cards := make([]Card, 0, len(movies))
	for _, m := range movies {
		cards = append(cards, buildCard(images, m))
	}
	return cards
}

func buildCard(images ImageResolver, m models.Movie) Card {
	card := Card{
		MovieID: m.ID,
		Title:   m.Title,
		Rating:  FormatRating(m.VoteAverage),
	}
	if url, ok := images.ImageURL(m.PosterPath, catalog.ImageMedium); ok {
		card.PosterURL = url
	}
	return card
}

// FormatRating shows one decimal place, or "N/A" when the average is absent.
func FormatRating(vote float64) string {
	if vote <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(vote, 'f', 1, 64)
}
