package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/internal/catalog"
	"moviehub/internal/live"
	"moviehub/pkg/models"
)

type MoviesHandler struct {
	Catalog *catalog.Client
	Events  Broadcaster
}

func NewMoviesHandler(c *catalog.Client, events Broadcaster) *MoviesHandler {
	return &MoviesHandler{Catalog: c, Events: events}
}

func (h *MoviesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/trending", h.trending)
	rg.GET("/popular", h.popular)
	rg.GET("/top-rated", h.topRated)
	rg.GET("/genre/:id", h.byGenre)
	rg.GET("/search", h.search)
	rg.GET("/home", h.home)
	rg.GET("/:id", h.detail)
}

func (h *MoviesHandler) trending(c *gin.Context) {
	items, err := h.Catalog.Trending(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	respondList(c, items)
}

func (h *MoviesHandler) popular(c *gin.Context) {
	items, err := h.Catalog.Popular(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	respondList(c, items)
}

func (h *MoviesHandler) topRated(c *gin.Context) {
	items, err := h.Catalog.TopRated(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	respondList(c, items)
}

func (h *MoviesHandler) byGenre(c *gin.Context) {
	id := parseInt(c.Param("id"), 0)
	if id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid genre id"})
		return
	}

	items, err := h.Catalog.ByGenre(c.Request.Context(), id, c.Query("sort"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	respondList(c, items)
}

func (h *MoviesHandler) search(c *gin.Context) {
	query := c.Query("q")

	items, err := h.Catalog.Search(c.Request.Context(), query)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	if h.Events != nil && strings.TrimSpace(query) != "" {
		h.Events.BroadcastJSON(live.Event{
			Type:  live.TypeSearch,
			Query: strings.TrimSpace(query),
			At:    time.Now().UTC(),
		})
	}
	respondList(c, items)
}

func (h *MoviesHandler) home(c *gin.Context) {
	set, err := h.Catalog.FetchHomeSet(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trending":  set.Trending,
		"popular":   set.Popular,
		"top_rated": set.TopRated,
		"action":    set.Action,
		"comedy":    set.Comedy,
	})
}

func (h *MoviesHandler) detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	detail, err := h.Catalog.Detail(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func respondList(c *gin.Context, items []models.Movie) {
	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"items": items,
	})
}

// respondCatalogError keeps the upstream cause in the logs and hands clients
// a generic failure. A 404 from the catalog passes through as 404.
func respondCatalogError(c *gin.Context, err error) {
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		log.Printf("[api] catalog status %d: %v", apiErr.StatusCode, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}

	log.Printf("[api] catalog request: %v", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
