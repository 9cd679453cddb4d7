package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"moviehub/pkg/models"
)

// Genre ids for the two fixed genre rows on the dashboard.
const (
	GenreAction = 28
	GenreComedy = 35
)

// HomeSet holds the five dashboard rows loaded together on entry.
type HomeSet struct {
	Trending []models.Movie
	Popular  []models.Movie
	TopRated []models.Movie
	Action   []models.Movie
	Comedy   []models.Movie
}

// FetchHomeSet loads all five categories concurrently and fail-fast: the
// first error cancels the in-flight siblings and the whole set is discarded,
// so callers never render a partial dashboard.
func (c *Client) FetchHomeSet(ctx context.Context) (*HomeSet, error) {
	g, ctx := errgroup.WithContext(ctx)
	set := &HomeSet{}

	g.Go(func() error {
		rows, err := c.Trending(ctx)
		if err != nil {
			return err
		}
		set.Trending = rows
		return nil
	})
	g.Go(func() error {
		rows, err := c.Popular(ctx)
		if err != nil {
			return err
		}
		set.Popular = rows
		return nil
	})
	g.Go(func() error {
		rows, err := c.TopRated(ctx)
		if err != nil {
			return err
		}
		set.TopRated = rows
		return nil
	})
	g.Go(func() error {
		rows, err := c.ByGenre(ctx, GenreAction, "")
		if err != nil {
			return err
		}
		set.Action = rows
		return nil
	})
	g.Go(func() error {
		rows, err := c.ByGenre(ctx, GenreComedy, "")
		if err != nil {
			return err
		}
		set.Comedy = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}
