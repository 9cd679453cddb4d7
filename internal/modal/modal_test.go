package modal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/catalog"
	"moviehub/internal/live"
	"moviehub/pkg/models"
	"moviehub/pkg/utils"
)

type fakeCatalog struct {
	images  *catalog.Client
	handler func(ctx context.Context, id int64) (*models.MovieDetail, error)
}

func (f *fakeCatalog) Detail(ctx context.Context, id int64) (*models.MovieDetail, error) {
	return f.handler(ctx, id)
}

func (f *fakeCatalog) ImageURL(path string, size catalog.ImageSize) (string, bool) {
	return f.images.ImageURL(path, size)
}

func newFakeCatalog(handler func(ctx context.Context, id int64) (*models.MovieDetail, error)) *fakeCatalog {
	return &fakeCatalog{
		images: catalog.New(utils.CatalogConfig{
			BaseURL:      "https://api.example.com/3",
			ImageBaseURL: "https://image.example.com/t/p",
			APIKey:       "k",
		}),
		handler: handler,
	}
}

type eventSink struct {
	mu     sync.Mutex
	events []live.Event
}

func (s *eventSink) BroadcastJSON(v any) {
	ev, ok := v.(live.Event)
	if !ok {
		return
	}
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *eventSink) last() (live.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return live.Event{}, false
	}
	return s.events[len(s.events)-1], true
}

func matrixDetail() *models.MovieDetail {
	return &models.MovieDetail{
		Movie: models.Movie{
			ID:          603,
			Title:       "The Matrix",
			PosterPath:  "/matrix.jpg",
			VoteAverage: 8.22,
			ReleaseDate: "1999-03-30",
			Overview:    "A hacker learns the truth.",
		},
		Runtime: 136,
		Genres: []models.Genre{
			{ID: 28, Name: "Action"},
			{ID: 878, Name: "Science Fiction"},
		},
	}
}

func TestOpenShowsLoadingImmediately(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	fc := newFakeCatalog(func(ctx context.Context, id int64) (*models.MovieDetail, error) {
		select {
		case <-block:
			return matrixDetail(), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	p := NewPresenter(fc, nil)

	p.Open(603)

	view := p.Snapshot()
	assert.True(t, view.Open)
	assert.True(t, view.Loading)
	assert.Equal(t, "Loading...", view.Title)
	assert.Equal(t, int64(603), view.MovieID)
}

func TestOpenPopulatesAllFieldsOnSuccess(t *testing.T) {
	fc := newFakeCatalog(func(ctx context.Context, id int64) (*models.MovieDetail, error) {
		return matrixDetail(), nil
	})
	sink := &eventSink{}
	p := NewPresenter(fc, sink)

	p.Open(603)

	require.Eventually(t, func() bool {
		return !p.Snapshot().Loading
	}, time.Second, 5*time.Millisecond)

	view := p.Snapshot()
	assert.True(t, view.Open)
	assert.False(t, view.Failed)
	assert.Equal(t, "The Matrix", view.Title)
	assert.Equal(t, "8.2", view.Rating)
	assert.Equal(t, "1999", view.Year)
	assert.Equal(t, "136 min", view.Runtime)
	assert.Equal(t, []string{"Action", "Science Fiction"}, view.Genres)
	assert.Equal(t, "A hacker learns the truth.", view.Overview)
	assert.Equal(t, "https://image.example.com/t/p/w500/matrix.jpg", view.PosterURL)

	ev, ok := sink.last()
	require.True(t, ok)
	assert.Equal(t, live.TypeModalLoaded, ev.Type)
	assert.Equal(t, int64(603), ev.MovieID)
}

func TestOpenFillsPlaceholdersForMissingFields(t *testing.T) {
	fc := newFakeCatalog(func(ctx context.Context, id int64) (*models.MovieDetail, error) {
		return &models.MovieDetail{
			Movie: models.Movie{ID: 7, Title: "Bare"},
		}, nil
	})
	p := NewPresenter(fc, nil)

	p.Open(7)
	require.Eventually(t, func() bool {
		return !p.Snapshot().Loading
	}, time.Second, 5*time.Millisecond)

	view := p.Snapshot()
	assert.Equal(t, "N/A", view.Rating)
	assert.Equal(t, "N/A", view.Year)
	assert.Equal(t, "N/A", view.Runtime)
	assert.Equal(t, "No overview available.", view.Overview)
	assert.Empty(t, view.PosterURL)
	assert.Empty(t, view.Genres)
}

func TestOpenStaysOpenOnFailure(t *testing.T) {
	fc := newFakeCatalog(func(ctx context.Context, id int64) (*models.MovieDetail, error) {
		return nil, errors.New("boom")
	})
	sink := &eventSink{}
	p := NewPresenter(fc, sink)

	p.Open(603)
	require.Eventually(t, func() bool {
		return p.Snapshot().Failed
	}, time.Second, 5*time.Millisecond)

	view := p.Snapshot()
	assert.True(t, view.Open, "failure keeps the modal open")
	assert.Equal(t, "Error", view.Title)
	assert.Equal(t, "Failed to load movie details. Please try again.", view.Overview)

	ev, ok := sink.last()
	require.True(t, ok)
	assert.Equal(t, live.TypeModalFailed, ev.Type)
}

func TestCloseIsUnconditional(t *testing.T) {
	fc := newFakeCatalog(func(ctx context.Context, id int64) (*models.MovieDetail, error) {
		return matrixDetail(), nil
	})
	p := NewPresenter(fc, nil)

	// closing while closed is a no-op
	p.Close()
	assert.False(t, p.Snapshot().Open)

	p.Open(603)
	require.Eventually(t, func() bool {
		return !p.Snapshot().Loading
	}, time.Second, 5*time.Millisecond)

	p.Close()
	assert.False(t, p.Snapshot().Open)
	assert.Empty(t, p.Snapshot().Title)
}

func TestCloseCancelsInFlightFetch(t *testing.T) {
	canceled := make(chan struct{})
	fc := newFakeCatalog(func(ctx context.Context, id int64) (*models.MovieDetail, error) {
		<-ctx.Done()
		close(canceled)
		return nil, ctx.Err()
	})
	p := NewPresenter(fc, nil)

	p.Open(603)
	p.Close()

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("in-flight fetch was not canceled")
	}

	// the canceled fetch's error must not reopen or fail the modal
	time.Sleep(20 * time.Millisecond)
	view := p.Snapshot()
	assert.False(t, view.Open)
	assert.False(t, view.Failed)
}

func TestReopenSupersedesInFlightFetch(t *testing.T) {
	slowRelease := make(chan struct{})
	fc := newFakeCatalog(func(ctx context.Context, id int64) (*models.MovieDetail, error) {
		if id == 1 {
			select {
			case <-slowRelease:
				return &models.MovieDetail{Movie: models.Movie{ID: 1, Title: "Slow"}}, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return &models.MovieDetail{Movie: models.Movie{ID: 2, Title: "Fast"}}, nil
	})
	p := NewPresenter(fc, nil)

	p.Open(1)
	p.Open(2)

	require.Eventually(t, func() bool {
		view := p.Snapshot()
		return !view.Loading && view.Title == "Fast"
	}, time.Second, 5*time.Millisecond)

	// even if the slow fetch somehow completes, its result is stale
	close(slowRelease)
	assert.Never(t, func() bool {
		return p.Snapshot().Title == "Slow"
	}, 200*time.Millisecond, 10*time.Millisecond)

	assert.Equal(t, int64(2), p.Snapshot().MovieID)
}

func TestSnapshotGenresAreACopy(t *testing.T) {
	fc := newFakeCatalog(func(ctx context.Context, id int64) (*models.MovieDetail, error) {
		return matrixDetail(), nil
	})
	p := NewPresenter(fc, nil)

	p.Open(603)
	require.Eventually(t, func() bool {
		return !p.Snapshot().Loading
	}, time.Second, 5*time.Millisecond)

	view := p.Snapshot()
	view.Genres[0] = "Mutated"
	assert.Equal(t, "Action", p.Snapshot().Genres[0])
}
