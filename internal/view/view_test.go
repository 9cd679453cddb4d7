package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/catalog"
	"moviehub/pkg/models"
	"moviehub/pkg/utils"
)

func newTestState() *State {
	images := catalog.New(utils.CatalogConfig{
		BaseURL:      "https://api.example.com/3",
		ImageBaseURL: "https://image.example.com/t/p",
		APIKey:       "k",
	})
	return NewState(images)
}

func TestNewStateHasFiveEmptyCategories(t *testing.T) {
	snap := newTestState().Snapshot()

	require.Len(t, snap.Categories, 5)
	assert.Equal(t, "Trending Now", snap.Categories[0].Title)
	assert.Equal(t, "Comedy", snap.Categories[4].Title)
	for _, sec := range snap.Categories {
		assert.True(t, sec.Empty)
		assert.Empty(t, sec.Cards)
	}
	assert.Nil(t, snap.Search, "search section is created lazily")
}

func TestRenderListBuildsCards(t *testing.T) {
	s := newTestState()

	err := s.RenderList(ContainerPopular, []models.Movie{
		{ID: 1, Title: "With Poster", PosterPath: "/p.jpg", VoteAverage: 7.85},
		{ID: 2, Title: "Bare"},
	})
	require.NoError(t, err)

	snap := s.Snapshot()
	sec := snap.Categories[1]
	require.Equal(t, ContainerPopular, sec.ID)
	require.Len(t, sec.Cards, 2)
	assert.False(t, sec.Empty)

	assert.Equal(t, "https://image.example.com/t/p/w342/p.jpg", sec.Cards[0].PosterURL)
	assert.Equal(t, "7.8", sec.Cards[0].Rating)
	assert.Empty(t, sec.Cards[1].PosterURL, "missing poster renders the placeholder")
	assert.Equal(t, "N/A", sec.Cards[1].Rating)
}

func TestRenderListClearsPreviousCards(t *testing.T) {
	s := newTestState()

	require.NoError(t, s.RenderList(ContainerTrending, []models.Movie{{ID: 1, Title: "Old"}}))
	require.NoError(t, s.RenderList(ContainerTrending, []models.Movie{{ID: 2, Title: "New"}}))

	sec := s.Snapshot().Categories[0]
	require.Len(t, sec.Cards, 1)
	assert.Equal(t, "New", sec.Cards[0].Title)
}

func TestRenderListEmptyShowsPlaceholder(t *testing.T) {
	s := newTestState()

	require.NoError(t, s.RenderList(ContainerAction, []models.Movie{{ID: 1, Title: "X"}}))
	require.NoError(t, s.RenderList(ContainerAction, nil))

	sec := s.Snapshot().Categories[3]
	assert.True(t, sec.Empty)
	assert.Empty(t, sec.Cards)
}

func TestRenderListUnknownContainer(t *testing.T) {
	s := newTestState()
	err := s.RenderList("nope", nil)
	require.Error(t, err)

	// search container does not exist until first shown
	err = s.RenderList(ContainerSearch, nil)
	require.Error(t, err)

	s.ShowSearchResults("x")
	err = s.RenderList(ContainerSearch, []models.Movie{{ID: 9, Title: "Found"}})
	require.NoError(t, err)
}

func TestApplyHomeSetFillsAllRows(t *testing.T) {
	s := newTestState()
	s.ApplyHomeSet(&catalog.HomeSet{
		Trending: []models.Movie{{ID: 1, Title: "T"}},
		Popular:  []models.Movie{{ID: 2, Title: "P"}},
		TopRated: []models.Movie{{ID: 3, Title: "R"}},
		Action:   []models.Movie{{ID: 4, Title: "A"}},
		Comedy:   []models.Movie{{ID: 5, Title: "C"}},
	})

	snap := s.Snapshot()
	titles := make([]string, 0, 5)
	for _, sec := range snap.Categories {
		require.Len(t, sec.Cards, 1)
		titles = append(titles, sec.Cards[0].Title)
	}
	assert.Equal(t, []string{"T", "P", "R", "A", "C"}, titles)
}

func TestLoadingAndErrorToggles(t *testing.T) {
	s := newTestState()

	s.ShowLoading()
	assert.True(t, s.Snapshot().Loading)
	s.HideLoading()
	assert.False(t, s.Snapshot().Loading)

	s.ShowError("Failed to load movies. Please try again later.")
	assert.Equal(t, "Failed to load movies. Please try again later.", s.Snapshot().ErrorMessage)
	s.HideError()
	assert.Empty(t, s.Snapshot().ErrorMessage)
}

func TestSearchSectionLifecycle(t *testing.T) {
	s := newTestState()

	s.ShowSearchResults("matrix")
	snap := s.Snapshot()
	assert.True(t, snap.SearchActive)
	assert.Equal(t, "matrix", snap.SearchQuery)
	require.NotNil(t, snap.Search)
	assert.True(t, snap.Search.Empty)

	s.HideSearchResults()
	snap = s.Snapshot()
	assert.False(t, snap.SearchActive)
	assert.Empty(t, snap.SearchQuery)
	assert.NotNil(t, snap.Search, "section persists once created")
}

func TestStaleSearchResultsAreDiscarded(t *testing.T) {
	s := newTestState()

	first := s.BeginSearch("first")
	second := s.BeginSearch("second")

	// the slower first search lands after the second one started
	applied := s.ApplySearchResults(first, []models.Movie{{ID: 1, Title: "Stale"}})
	assert.False(t, applied)

	applied = s.ApplySearchResults(second, []models.Movie{{ID: 2, Title: "Fresh"}})
	assert.True(t, applied)

	snap := s.Snapshot()
	require.Len(t, snap.Search.Cards, 1)
	assert.Equal(t, "Fresh", snap.Search.Cards[0].Title)
	assert.Equal(t, "second", snap.SearchQuery)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestState()
	require.NoError(t, s.RenderList(ContainerComedy, []models.Movie{{ID: 1, Title: "Orig"}}))

	snap := s.Snapshot()
	snap.Categories[4].Cards[0].Title = "Mutated"

	assert.Equal(t, "Orig", s.Snapshot().Categories[4].Cards[0].Title)
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "7.8", FormatRating(7.85))
	assert.Equal(t, "10.0", FormatRating(10))
	assert.Equal(t, "N/A", FormatRating(0))
	assert.Equal(t, "N/A", FormatRating(-1))
}
