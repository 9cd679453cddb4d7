// Package catalog is the typed client for the movie database API. It does
// transport and decoding only; presentation (cards, modal text) lives in
// internal/view and internal/modal.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moviehub/pkg/models"
	"moviehub/pkg/utils"
)

// Client fetches movie lists and details from a TMDB-compatible API.
type Client struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	HTTPClient   *http.Client
}

func New(cfg utils.CatalogConfig) *Client {
	return &Client{
		BaseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		ImageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		APIKey:       cfg.APIKey,
		HTTPClient:   &http.Client{Timeout: 12 * time.Second},
	}
}

// listEnvelope is the paged wrapper every list endpoint returns.
type listEnvelope struct {
	Page    int            `json:"page"`
	Results []models.Movie `json:"results"`
}

// get issues one GET with the api_key parameter appended and returns the
// raw body. Non-2xx statuses become *APIError, everything else *TransportError.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, &TransportError{URL: c.BaseURL + path, Err: err}
	}

	q := u.Query()
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("api_key", c.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &TransportError{URL: u.String(), Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: u.String(), Err: err}
	}

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			URL:        u.String(),
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

func (c *Client) list(ctx context.Context, path string, params url.Values) ([]models.Movie, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{URL: c.BaseURL + path, Err: fmt.Errorf("decode: %w", err)}
	}
	if env.Results == nil {
		return []models.Movie{}, nil
	}
	return env.Results, nil
}

func (c *Client) Trending(ctx context.Context) ([]models.Movie, error) {
	return c.list(ctx, "/trending/movie/week", nil)
}

func (c *Client) Popular(ctx context.Context) ([]models.Movie, error) {
	return c.list(ctx, "/movie/popular", nil)
}

func (c *Client) TopRated(ctx context.Context) ([]models.Movie, error) {
	return c.list(ctx, "/movie/top_rated", nil)
}

// ByGenre lists movies tagged with genreID. An empty sort falls back to
// popularity, the same ordering the discover endpoint defaults to.
func (c *Client) ByGenre(ctx context.Context, genreID int, sort string) ([]models.Movie, error) {
	if sort == "" {
		sort = "popularity.desc"
	}
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", sort)
	return c.list(ctx, "/discover/movie", params)
}

// Search returns an empty list without touching the network when the query
// is empty or whitespace.
func (c *Client) Search(ctx context.Context, query string) ([]models.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Movie{}, nil
	}
	params := url.Values{}
	params.Set("query", query)
	return c.list(ctx, "/search/movie", params)
}

// Detail fetches one full movie record. A missing id surfaces as *APIError
// with the API's 404.
func (c *Client) Detail(ctx context.Context, id int64) (*models.MovieDetail, error) {
	path := fmt.Sprintf("/movie/%d", id)
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var detail models.MovieDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, &TransportError{URL: c.BaseURL + path, Err: fmt.Errorf("decode: %w", err)}
	}
	return &detail, nil
}
