// Package config loads process configuration from the environment with
// sensible defaults for local development.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the server needs at startup. All fields come
// from ANIFLUX_* environment variables; unset variables fall back to the
// defaults below.
type Config struct {
	// Addr is the listen address for the HTTP API.
	Addr string

	// UpstreamBaseURL is the root of the anime site being scraped, e.g.
	// "https://www3.animeflv.net". Detail pages live at /anime/<slug>,
	// watch pages at /ver/<slug>-<episode>, search at /browse?q=.
	UpstreamBaseURL string

	// FetchTimeout bounds every outbound scrape request.
	FetchTimeout time.Duration

	// AnimeCacheTTL is how long a resolved anime (episode list plus
	// metadata) stays fresh. Upstream episode lists change rarely, so
	// this is the long TTL class.
	AnimeCacheTTL time.Duration

	// VideoCacheTTL is how long a per-episode server list stays fresh.
	VideoCacheTTL time.Duration

	// MoviesCacheTTL is how long proxied TMDB payloads stay fresh.
	MoviesCacheTTL time.Duration

	// TMDBAPIKey and TMDBBaseURL configure the movies proxy.
	TMDBAPIKey  string
	TMDBBaseURL string

	// TMDBLanguage is passed through on every TMDB call.
	TMDBLanguage string

	// CommentDBPath is the SQLite file backing the comment log.
	CommentDBPath string

	// CommentInterval is the minimum gap between comments from one IP.
	CommentInterval time.Duration

	// TransliterateSlugs switches slug generation from dropping accented
	// letters to transliterating them ("Épico" -> "epico"). Off by
	// default: the historical behavior drops them, and cache keys built
	// on old slugs stay valid that way.
	TransliterateSlugs bool

	// LogFile, when set, sends the process log to a rotated file
	// instead of stderr.
	LogFile string
}

// Load reads the environment and returns a complete Config.
func Load() Config {
	return Config{
		Addr:               envString("ANIFLUX_ADDR", ":3000"),
		UpstreamBaseURL:    envString("ANIFLUX_UPSTREAM_URL", "https://www3.animeflv.net"),
		FetchTimeout:       envDuration("ANIFLUX_FETCH_TIMEOUT", 10*time.Second),
		AnimeCacheTTL:      envDuration("ANIFLUX_ANIME_CACHE_TTL", 6*time.Hour),
		VideoCacheTTL:      envDuration("ANIFLUX_VIDEO_CACHE_TTL", 30*time.Minute),
		MoviesCacheTTL:     envDuration("ANIFLUX_MOVIES_CACHE_TTL", 30*time.Minute),
		TMDBAPIKey:         envString("ANIFLUX_TMDB_API_KEY", ""),
		TMDBBaseURL:        envString("ANIFLUX_TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBLanguage:       envString("ANIFLUX_TMDB_LANGUAGE", "es-ES"),
		CommentDBPath:      envString("ANIFLUX_COMMENT_DB", "aniflux-comments.db"),
		CommentInterval:    envDuration("ANIFLUX_COMMENT_INTERVAL", 30*time.Second),
		TransliterateSlugs: envBool("ANIFLUX_TRANSLITERATE_SLUGS", false),
		LogFile:            envString("ANIFLUX_LOG_FILE", ""),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
