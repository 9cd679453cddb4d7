// Package view holds the dashboard's render state: five fixed category rows,
// the loading and error banners and a lazily created search section. It is
// pure presentation over catalog data; templates in internal/webapp read a
// Snapshot of it, nothing here touches the network.
package view

import (
	"fmt"
	"sync"

	"moviehub/internal/catalog"
	"moviehub/pkg/models"
)

// Container ids for the fixed category rows plus the ad hoc search section.
const (
	ContainerTrending = "trending-movies"
	ContainerPopular  = "popular-movies"
	ContainerTopRated = "top-rated-movies"
	ContainerAction   = "action-movies"
	ContainerComedy   = "comedy-movies"
	ContainerSearch   = "search-results"
)

// ImageResolver turns poster paths into CDN URLs. Satisfied by
// *catalog.Client.
type ImageResolver interface {
	ImageURL(path string, size catalog.ImageSize) (string, bool)
}

// Section is one titled row of cards. Empty means the row rendered with no
// cards and shows the placeholder text instead.
type Section struct {
	ID    string
	Title string
	Cards []Card
	Empty bool
}

// Snapshot is an immutable copy of the view for template rendering.
type Snapshot struct {
	Loading      bool
	ErrorMessage string
	SearchActive bool
	SearchQuery  string
	Categories   []Section
	Search       *Section
}

// State is safe for concurrent use; every request handler mutates the same
// instance.
type State struct {
	mu sync.Mutex

	images ImageResolver

	order    []string
	sections map[string]*Section

	loading bool
	errMsg  string

	searchActive  bool
	searchQuery   string
	searchSection *Section
	searchGen     uint64
}

func NewState(images ImageResolver) *State {
	s := &State{
		images:   images,
		sections: make(map[string]*Section),
	}
	for _, c := range []struct{ id, title string }{
		{ContainerTrending, "Trending Now"},
		{ContainerPopular, "Popular"},
		{ContainerTopRated, "Top Rated"},
		{ContainerAction, "Action"},
		{ContainerComedy, "Comedy"},
	} {
		s.order = append(s.order, c.id)
		s.sections[c.id] = &Section{ID: c.id, Title: c.title, Empty: true}
	}
	return s
}

// RenderList replaces the named container's cards. An empty list marks the
// section Empty so templates show the placeholder. The search container is
// only addressable after the first ShowSearchResults call.
func (s *State) RenderList(containerID string, movies []models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	section, ok := s.sections[containerID]
	if !ok {
		return fmt.Errorf("view: unknown container %q", containerID)
	}

	section.Cards = buildCards(s.images, movies)
	section.Empty = len(section.Cards) == 0
	return nil
}

// ApplyHomeSet renders all five category rows from one dashboard load.
func (s *State) ApplyHomeSet(set *catalog.HomeSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range []struct {
		id     string
		movies []models.Movie
	}{
		{ContainerTrending, set.Trending},
		{ContainerPopular, set.Popular},
		{ContainerTopRated, set.TopRated},
		{ContainerAction, set.Action},
		{ContainerComedy, set.Comedy},
	} {
		section := s.sections[row.id]
		section.Cards = buildCards(s.images, row.movies)
		section.Empty = len(section.Cards) == 0
	}
}

func (s *State) ShowLoading() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *State) HideLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *State) ShowError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}

func (s *State) HideError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

// ShowSearchResults switches from the category grid to the search section,
// creating it on first use.
func (s *State) ShowSearchResults(query string) {
	s.mu.Lock()
	s.showSearchLocked(query)
	s.mu.Unlock()
}

// HideSearchResults returns to the category grid. The search section itself
// is kept around once created; only its visibility changes.
func (s *State) HideSearchResults() {
	s.mu.Lock()
	s.searchActive = false
	s.searchQuery = ""
	s.mu.Unlock()
}

// BeginSearch claims a new search generation and switches to the search
// view. Hand the generation to ApplySearchResults; a later BeginSearch
// invalidates it.
func (s *State) BeginSearch(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchGen++
	s.showSearchLocked(query)
	return s.searchGen
}

// ApplySearchResults renders movies into the search section, unless gen has
// been superseded by a newer BeginSearch. Stale results are dropped and the
// method reports false.
func (s *State) ApplySearchResults(gen uint64, movies []models.Movie) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.searchGen || s.searchSection == nil {
		return false
	}
	s.searchSection.Cards = buildCards(s.images, movies)
	s.searchSection.Empty = len(s.searchSection.Cards) == 0
	return true
}

func (s *State) showSearchLocked(query string) {
	if s.searchSection == nil {
		s.searchSection = &Section{ID: ContainerSearch, Title: "Search Results", Empty: true}
		s.sections[ContainerSearch] = s.searchSection
	}
	s.searchActive = true
	s.searchQuery = query
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Loading:      s.loading,
		ErrorMessage: s.errMsg,
		SearchActive: s.searchActive,
		SearchQuery:  s.searchQuery,
	}
	for _, id := range s.order {
		snap.Categories = append(snap.Categories, cloneSection(*s.sections[id]))
	}
	if s.searchSection != nil {
		sec := cloneSection(*s.searchSection)
		snap.Search = &sec
	}
	return snap
}

func cloneSection(sec Section) Section {
	cards := make([]Card, len(sec.Cards))
	copy(cards, sec.Cards)
	sec.Cards = cards
	return sec
}
