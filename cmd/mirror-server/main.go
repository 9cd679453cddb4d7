package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"

	"moviehub/pkg/models"
)

// mirror-server replays a snapshot of the movie catalog over the same
// endpoint shapes the real API uses, so the whole app runs offline:
//
//	MOVIEHUB_TMDB_BASE_URL=http://localhost:9000 go run ./cmd/web
//
// The snapshot comes from cmd/export-mirror, or can be written by hand.
func main() {
	var (
		addr     = flag.String("addr", ":9000", "listen address")
		dataPath = flag.String("data", "data/mirror.json", "snapshot JSON path")
	)
	flag.Parse()

	// re-read on every request so edits to the snapshot show up live
	load := func(w http.ResponseWriter) []models.MovieDetail {
		b, err := os.ReadFile(*dataPath)
		if err != nil {
			http.Error(w, "cannot read snapshot: "+err.Error(), http.StatusInternalServerError)
			return nil
		}
		var movies []models.MovieDetail
		if err := json.Unmarshal(b, &movies); err != nil {
			http.Error(w, "snapshot invalid JSON: "+err.Error(), http.StatusInternalServerError)
			return nil
		}
		return movies
	}

	writeList := func(w http.ResponseWriter, movies []models.MovieDetail) {
		results := make([]models.Movie, 0, len(movies))
		for _, m := range movies {
			results = append(results, m.Movie)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"page":          1,
			"results":       results,
			"total_results": len(results),
		})
	}

	notFound := func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"status_message": "not found"})
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/trending/movie/week", func(w http.ResponseWriter, r *http.Request) {
		if movies := load(w); movies != nil {
			writeList(w, movies)
		}
	})

	mux.HandleFunc("/movie/popular", func(w http.ResponseWriter, r *http.Request) {
		if movies := load(w); movies != nil {
			writeList(w, movies)
		}
	})

	mux.HandleFunc("/movie/top_rated", func(w http.ResponseWriter, r *http.Request) {
		movies := load(w)
		if movies == nil {
			return
		}
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].VoteAverage > movies[j].VoteAverage
		})
		writeList(w, movies)
	})

	mux.HandleFunc("/discover/movie", func(w http.ResponseWriter, r *http.Request) {
		movies := load(w)
		if movies == nil {
			return
		}
		genreID, err := strconv.Atoi(r.URL.Query().Get("with_genres"))
		if err != nil {
			writeList(w, movies)
			return
		}
		var matched []models.MovieDetail
		for _, m := range movies {
			if hasGenre(m, genreID) {
				matched = append(matched, m)
			}
		}
		writeList(w, matched)
	})

	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		movies := load(w)
		if movies == nil {
			return
		}
		query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("query")))
		var matched []models.MovieDetail
		for _, m := range movies {
			if query != "" && strings.Contains(strings.ToLower(m.Title), query) {
				matched = append(matched, m)
			}
		}
		writeList(w, matched)
	})

	// exact routes above win over this subtree, so only /movie/{id} lands here
	mux.HandleFunc("/movie/", func(w http.ResponseWriter, r *http.Request) {
		movies := load(w)
		if movies == nil {
			return
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/movie/"), 10, 64)
		if err != nil {
			notFound(w)
			return
		}
		for _, m := range movies {
			if m.ID == id {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(m)
				return
			}
		}
		notFound(w)
	})

	log.Printf("mirror-server listening on %s (snapshot %s)", *addr, *dataPath)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

func hasGenre(m models.MovieDetail, genreID int) bool {
	for _, id := range m.GenreIDs {
		if id == genreID {
			return true
		}
	}
	for _, g := range m.Genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}
