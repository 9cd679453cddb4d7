package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("MOVIEHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("MOVIEHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "moviehub"
	}

	duration := 24 * time.Hour
	if ttl := os.Getenv("MOVIEHUB_JWT_TTL_HOURS"); ttl != "" {
		if hours, err := strconv.Atoi(ttl); err == nil && hours > 0 {
			duration = time.Duration(hours) * time.Hour
		}
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: duration,
	}
}

type CatalogConfig struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
}

func LoadCatalogConfig() CatalogConfig {
	base := os.Getenv("MOVIEHUB_TMDB_BASE_URL")
	if base == "" {
		base = "https://api.themoviedb.org/3"
	}

	imageBase := os.Getenv("MOVIEHUB_TMDB_IMAGE_BASE_URL")
	if imageBase == "" {
		imageBase = "https://image.tmdb.org/t/p"
	}

	return CatalogConfig{
		BaseURL:      base,
		ImageBaseURL: imageBase,
		APIKey:       os.Getenv("MOVIEHUB_TMDB_API_KEY"),
	}
}

type ServerConfig struct {
	Addr string
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("MOVIEHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return ServerConfig{Addr: addr}
}
