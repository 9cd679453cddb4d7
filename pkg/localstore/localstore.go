// Package localstore is the application's local key-value store: string keys
// to string values (JSON-encoded records), the way a browser keeps
// localStorage. The primary backend is a single-file SQLite database under
// the user's home directory; Memory provides the same contract without disk.
package localstore

import (
	"context"
	"os"
	"path/filepath"
)

// Store is the key-value contract shared by all backends.
// Get reports false, not an error, when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type Config struct {
	Path string
}

func DefaultConfig() Config {
	if p := os.Getenv("MOVIEHUB_DB_PATH"); p != "" {
		return Config{Path: p}
	}

	// local default: ~/.moviehub/data.db
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return Config{
		Path: filepath.Join(home, ".moviehub", "data.db"),
	}
}

func EnsureDataDir(cfg Config) error {
	return os.MkdirAll(filepath.Dir(cfg.Path), 0o755)
}
