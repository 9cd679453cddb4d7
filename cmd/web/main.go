package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"moviehub/internal/accounts"
	"moviehub/internal/api"
	"moviehub/internal/catalog"
	"moviehub/internal/live"
	"moviehub/internal/modal"
	"moviehub/internal/view"
	"moviehub/internal/webapp"
	"moviehub/pkg/localstore"
	"moviehub/pkg/utils"
)

func main() {
	// .env is a dev convenience; a missing file is fine
	_ = godotenv.Load()

	cfg := localstore.DefaultConfig()
	store := localstore.MustOpen(cfg)
	defer store.Close()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := live.NewHub()
	router.GET("/ws", live.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": cfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"db_error":   err.Error(),
				"ws_clients": stats.Clients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"db":         "ok",
			"ws_clients": stats.Clients,
		})
	})

	accountStore := accounts.NewStore(store)
	tokens := accounts.NewTokenService(utils.LoadAuthConfig())

	client := catalog.New(utils.LoadCatalogConfig())
	state := view.NewState(client)
	presenter := modal.NewPresenter(client, hub)

	// JSON API for the CLI and programmatic use
	authHandler := api.NewAuthHandler(accountStore, tokens, hub)
	authHandler.RegisterRoutes(router.Group("/api/auth"))
	router.GET("/api/me", accounts.APIAuth(tokens, accountStore), authHandler.Me)

	moviesHandler := api.NewMoviesHandler(client, hub)
	moviesHandler.RegisterRoutes(router.Group("/api/movies"))

	// HTML pages
	pages := webapp.NewHandler(accountStore, tokens, client, state, presenter, hub)
	if err := pages.Mount(router); err != nil {
		log.Fatalf("mount pages: %v", err)
	}

	srvCfg := utils.LoadServerConfig()
	httpSrv := &http.Server{
		Addr:    srvCfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[web] listening on %s (db %s)", srvCfg.Addr, cfg.Path)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("[web] shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("[web] server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[web] shutdown error: %v", err)
	}
	log.Println("[web] server stopped")
}
