// Package movies proxies TMDB catalog data and builds embed server
// lists for the movie/series player. Responses are cached whole so the
// front end can poll freely without hammering TMDB.
package movies

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sourcegraph/conc/pool"

	"aniflux/internal/cache"
	"aniflux/models"
)

// Service answers the movies/series proxy endpoints.
type Service struct {
	tmdb  *tmdbClient
	cache *cache.Cache[json.RawMessage]
}

// NewService builds the proxy around a TMDB key. The cache instance
// carries the movies TTL class (shorter than the anime cache since
// popularity lists churn daily).
func NewService(apiKey, baseURL, language string, c *cache.Cache[json.RawMessage], httpc *http.Client) *Service {
	return &Service{
		tmdb:  newTMDBClient(apiKey, baseURL, language, httpc),
		cache: c,
	}
}

// Popular returns the TMDB popular movies payload for a page.
func (s *Service) Popular(ctx context.Context, page int) (json.RawMessage, error) {
	return s.cachedGet(ctx, fmt.Sprintf("movies:popular:%d", page), "/movie/popular", pageParams(page))
}

// Airing returns the TMDB currently-airing series payload for a page.
func (s *Service) Airing(ctx context.Context, page int) (json.RawMessage, error) {
	return s.cachedGet(ctx, fmt.Sprintf("series:airing:%d", page), "/tv/on_the_air", pageParams(page))
}

// Search runs a TMDB multi search. Unlike the list endpoints, search
// returns only the results array, not the paging envelope; the front
// end iterates it directly.
func (s *Service) Search(ctx context.Context, query string) (json.RawMessage, error) {
	key := "search:" + query
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("query", query)
	body, err := s.tmdb.get(ctx, "/search/multi", params)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	results := envelope.Results
	if results == nil {
		results = json.RawMessage("[]")
	}

	s.cache.Set(key, results)
	return results, nil
}

// SeriesDetails returns the TMDB series payload (seasons, episodes).
func (s *Service) SeriesDetails(ctx context.Context, tmdbID string) (json.RawMessage, error) {
	return s.cachedGet(ctx, "series-details:"+tmdbID, "/tv/"+url.PathEscape(tmdbID), nil)
}

// Home fetches the two landing sections in parallel.
func (s *Service) Home(ctx context.Context) (popular, airing json.RawMessage, err error) {
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		popular, err = s.Popular(ctx, 1)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		airing, err = s.Airing(ctx, 1)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, nil, err
	}
	return popular, airing, nil
}

// MovieServers lists the known embed providers for a movie. These are
// URL templates, not scraped data; order is the player's preference
// order.
func (s *Service) MovieServers(tmdbID string) []models.EmbedServer {
	return []models.EmbedServer{
		{Name: "VidSrc.to", URL: "https://vidsrc.to/embed/movie/" + tmdbID},
		{Name: "VidSrc PRO", URL: "https://vidsrc.pro/embed/movie/" + tmdbID},
		{Name: "VidSrc.in", URL: "https://vidsrc.in/embed/movie?tmdb=" + tmdbID},
		{Name: "SmashyStream", URL: "https://player.smashy.stream/movie/" + tmdbID},
	}
}

// SeriesServers lists the embed providers for one episode of a series.
func (s *Service) SeriesServers(tmdbID, season, episode string) []models.EmbedServer {
	return []models.EmbedServer{
		{Name: "VidSrc.to", URL: fmt.Sprintf("https://vidsrc.to/embed/tv/%s/%s/%s", tmdbID, season, episode)},
		{Name: "VidSrc PRO", URL: fmt.Sprintf("https://vidsrc.pro/embed/tv/%s/%s/%s", tmdbID, season, episode)},
		{Name: "VidSrc.in", URL: fmt.Sprintf("https://vidsrc.in/embed/tv?tmdb=%s&season=%s&episode=%s", tmdbID, season, episode)},
		{Name: "SmashyStream", URL: fmt.Sprintf("https://player.smashy.stream/tv/%s?s=%s&e=%s", tmdbID, season, episode)},
	}
}

func (s *Service) cachedGet(ctx context.Context, key, path string, params url.Values) (json.RawMessage, error) {
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}
	body, err := s.tmdb.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	raw := json.RawMessage(body)
	s.cache.Set(key, raw)
	return raw, nil
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return params
}
