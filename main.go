package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"aniflux/api"
	"aniflux/config"
	"aniflux/handlers"
	"aniflux/internal/cache"
	"aniflux/internal/scrape"
	"aniflux/models"
	"aniflux/services/anime"
	"aniflux/services/comments"
	"aniflux/services/movies"
	"aniflux/utils"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    20, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		})
	}

	fetcher := scrape.NewFetcher(cfg.FetchTimeout)

	animeCache := cache.New[*models.Anime](cfg.AnimeCacheTTL)
	videoCache := cache.New[[]models.VideoServer](cfg.VideoCacheTTL)
	moviesCache := cache.New[json.RawMessage](cfg.MoviesCacheTTL)

	animeSvc := anime.NewService(fetcher, cfg.UpstreamBaseURL, animeCache, videoCache, anime.Options{
		TransliterateSlugs: cfg.TransliterateSlugs,
	})

	moviesSvc := movies.NewService(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.TMDBLanguage, moviesCache,
		&http.Client{Timeout: cfg.FetchTimeout})

	store, err := comments.Open(cfg.CommentDBPath)
	if err != nil {
		log.Fatalf("[main] open comment store: %v", err)
	}
	defer store.Close()

	router := utils.NewRouter()
	handlers.NewAnimeHandler(animeSvc).RegisterRoutes(router)
	handlers.NewMoviesHandler(moviesSvc).RegisterRoutes(router)
	handlers.NewCommentsHandler(store, api.NewIPRateLimiter(cfg.CommentInterval)).RegisterRoutes(router)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}
