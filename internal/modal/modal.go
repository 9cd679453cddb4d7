// Package modal presents one movie's detail record. Two states: closed and
// open. Opening shows a loading placeholder right away and fetches in the
// background; the modal stays open whether the fetch lands or fails.
package modal

import (
	"context"
	"sync"
	"time"

	"moviehub/internal/catalog"
	"moviehub/internal/live"
	"moviehub/pkg/models"
)

// Literal texts the modal shows for the loading and failure states.
const (
	loadingTitle  = "Loading..."
	errorTitle    = "Error"
	errorOverview = "Failed to load movie details. Please try again."
	noOverview    = "No overview available."
)

// Catalog is the slice of the catalog client the presenter needs.
type Catalog interface {
	Detail(ctx context.Context, id int64) (*models.MovieDetail, error)
	ImageURL(path string, size catalog.ImageSize) (string, bool)
}

// Broadcaster announces settled fetches; *live.Hub implements it. A nil
// broadcaster disables announcements.
type Broadcaster interface {
	BroadcastJSON(v any)
}

// View is what templates render. All fields are preformatted strings so the
// template stays dumb.
type View struct {
	Open      bool
	Loading   bool
	Failed    bool
	MovieID   int64
	PosterURL string
	Title     string
	Rating    string
	Year      string
	Runtime   string
	Genres    []string
	Overview  string
}

type Presenter struct {
	catalog Catalog
	events  Broadcaster

	mu     sync.Mutex
	view   View
	gen    uint64
	cancel context.CancelFunc
}

func NewPresenter(c Catalog, events Broadcaster) *Presenter {
	return &Presenter{catalog: c, events: events}
}

// Open transitions to the open state immediately and fetches the detail
// record in the background. Opening while already open restarts the fetch
// for the new id and cancels the superseded request. The fetch deliberately
// outlives the triggering HTTP request, so no caller context is taken.
func (p *Presenter) Open(movieID int64) {
	p.mu.Lock()
	p.gen++
	gen := p.gen

	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.view = View{
		Open:    true,
		Loading: true,
		MovieID: movieID,
		Title:   loadingTitle,
	}
	p.mu.Unlock()

	go p.fetch(ctx, gen, movieID)
}

// Close transitions to the closed state unconditionally and cancels any
// in-flight fetch.
func (p *Presenter) Close() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.view = View{}
	p.mu.Unlock()
}

// Snapshot returns a copy of the current modal state.
func (p *Presenter) Snapshot() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	view := p.view
	genres := make([]string, len(view.Genres))
	copy(genres, view.Genres)
	view.Genres = genres
	return view
}

func (p *Presenter) fetch(ctx context.Context, gen uint64, movieID int64) {
	detail, err := p.catalog.Detail(ctx, movieID)

	p.mu.Lock()
	if gen != p.gen || !p.view.Open {
		// superseded by a newer Open, or closed meanwhile
		p.mu.Unlock()
		return
	}
	p.cancel = nil

	var event live.Event
	if err != nil {
		p.view = View{
			Open:     true,
			Failed:   true,
			MovieID:  movieID,
			Title:    errorTitle,
			Overview: errorOverview,
		}
		event = live.Event{Type: live.TypeModalFailed, MovieID: movieID, At: time.Now().UTC()}
	} else {
		p.view = p.buildView(detail)
		event = live.Event{Type: live.TypeModalLoaded, MovieID: movieID, At: time.Now().UTC()}
	}
	p.mu.Unlock()

	if p.events != nil {
		p.events.BroadcastJSON(event)
	}
}

func (p *Presenter) buildView(d *models.MovieDetail) View {
	view := View{
		Open:     true,
		MovieID:  d.ID,
		Title:    d.Title,
		Rating:   formatRating(d.VoteAverage),
		Year:     releaseYear(d.ReleaseDate),
		Runtime:  formatRuntime(d.Runtime),
		Genres:   genreNames(d),
		Overview: d.Overview,
	}
	if view.Overview == "" {
		view.Overview = noOverview
	}
	// the modal uses the larger poster tier than cards do
	if url, ok := p.catalog.ImageURL(d.PosterPath, catalog.ImageLarge); ok {
		view.PosterURL = url
	}
	return view
}
