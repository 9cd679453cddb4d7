package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"moviehub/internal/catalog"
	"moviehub/pkg/models"
	"moviehub/pkg/utils"
)

// export-mirror snapshots the live catalog into the JSON file that
// cmd/mirror-server replays, so demos run without an API key.
func main() {
	var (
		outPath = flag.String("out", "data/mirror.json", "output JSON path")
		limit   = flag.Int("limit", 20, "movies to keep per category")
	)
	flag.Parse()

	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := catalog.New(utils.LoadCatalogConfig())

	set, err := client.FetchHomeSet(ctx)
	if err != nil {
		log.Fatalf("fetch categories failed: %v", err)
	}

	var (
		out  []models.MovieDetail
		seen = make(map[int64]bool)
	)
	for _, list := range [][]models.Movie{set.Trending, set.Popular, set.TopRated, set.Action, set.Comedy} {
		if len(list) > *limit {
			list = list[:*limit]
		}
		for _, m := range list {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true

			detail, err := client.Detail(ctx, m.ID)
			if err != nil {
				// one broken record should not sink the whole snapshot
				log.Printf("skip %d (%s): %v", m.ID, m.Title, err)
				continue
			}
			// detail responses carry genre objects, not ids; the mirror's
			// discover filter wants ids, so backfill them
			if len(detail.GenreIDs) == 0 {
				for _, g := range detail.Genres {
					detail.GenreIDs = append(detail.GenreIDs, g.ID)
				}
			}
			out = append(out, *detail)
		}
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("mkdir failed: %v", err)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("marshal failed: %v", err)
	}

	if err := os.WriteFile(*outPath, b, 0o644); err != nil {
		log.Fatalf("write failed: %v", err)
	}

	log.Printf("✅ exported %d movies to %s", len(out), *outPath)
}
