// Package anime resolves titles against the upstream anime site: slug
// guessing, a one-shot search fallback, episode list extraction and
// per-episode video server lookup, all behind TTL caches.
package anime

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"aniflux/internal/cache"
	"aniflux/internal/scrape"
	"aniflux/models"
)

// episodesVar and videosVar are the script variable names the upstream
// embeds its data under.
const (
	episodesVar = "episodes"
	videosVar   = "videos"

	// subtitledTrack selects the original-audio-with-subtitles server
	// list inside the videos object.
	subtitledTrack = "SUB"
)

// searchResultSelector matches the first result link on the upstream
// search page.
const searchResultSelector = ".ListAnimes li article a"

// descriptionChain, tried in order; first non-empty wins.
var descriptionChain = []scrape.Extractor{
	scrape.Text(".Description p"),
	scrape.Text(".Description"),
	scrape.Attr(`meta[property="og:description"]`, "content"),
	scrape.Attr(`meta[name="description"]`, "content"),
}

var genreSelectors = []string{".Genres a", ".Nvgnrs a"}

// pageFetcher is the transport dependency; satisfied by *scrape.Fetcher.
type pageFetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
}

// Service resolves anime titles and episode server lists. Construct one
// at startup and share it; the caches and in-flight table are internal.
type Service struct {
	pages   pageFetcher
	baseURL string
	slugify func(string) string

	animeCache *cache.Cache[*models.Anime]
	videoCache *cache.Cache[[]models.VideoServer]

	// Coalesces concurrent resolutions of the same uncached title so a
	// burst of requests costs one upstream fetch.
	inflightMu sync.Mutex
	inflight   map[string]*inflightResolve
}

type inflightResolve struct {
	wg     sync.WaitGroup
	result *models.Anime
	err    error
}

// Options tune a Service beyond its required dependencies.
type Options struct {
	// TransliterateSlugs switches slug guessing to the transliterating
	// variant.
	TransliterateSlugs bool
}

// NewService wires a resolver against the upstream at baseURL. The two
// caches carry different TTLs: resolved anime (long, metadata rarely
// changes) and per-episode server lists (shorter).
func NewService(pages pageFetcher, baseURL string, animeCache *cache.Cache[*models.Anime], videoCache *cache.Cache[[]models.VideoServer], opts Options) *Service {
	slugFn := Slugify
	if opts.TransliterateSlugs {
		slugFn = SlugifyTransliterated
	}
	return &Service{
		pages:      pages,
		baseURL:    strings.TrimRight(baseURL, "/"),
		slugify:    slugFn,
		animeCache: animeCache,
		videoCache: videoCache,
		inflight:   make(map[string]*inflightResolve),
	}
}

// Resolve turns a raw title into a resolved anime. The cache is keyed on
// the raw title, the caller-stable identifier, not the guessed slug.
//
// Resolution walks a fixed path: guess a slug, fetch the detail page
// directly, and on any fetch failure fall back to the upstream search
// page exactly once, taking its first result as the real slug. No other
// retries happen at this level.
func (s *Service) Resolve(ctx context.Context, title string) (*models.Anime, error) {
	key := "anime:" + title
	if cached, ok := s.animeCache.Get(key); ok {
		return cached, nil
	}

	s.inflightMu.Lock()
	if flight, exists := s.inflight[key]; exists {
		s.inflightMu.Unlock()
		flight.wg.Wait()
		return flight.result, flight.err
	}
	flight := &inflightResolve{}
	flight.wg.Add(1)
	s.inflight[key] = flight
	s.inflightMu.Unlock()

	result, err := s.resolve(ctx, title)
	if err == nil {
		s.animeCache.Set(key, result)
	}

	flight.result = result
	flight.err = err
	flight.wg.Done()

	s.inflightMu.Lock()
	delete(s.inflight, key)
	s.inflightMu.Unlock()

	return result, err
}

func (s *Service) resolve(ctx context.Context, title string) (*models.Anime, error) {
	slug := s.slugify(title)

	doc, err := s.pages.Document(ctx, s.baseURL+"/anime/"+slug)
	if err != nil {
		log.Printf("[anime] direct fetch failed slug=%q, trying search fallback: %v", slug, err)
		fallbackSlug, fallbackURL, ferr := s.searchFirstResult(ctx, title)
		if ferr != nil {
			return nil, ferr
		}
		if fallbackURL == "" {
			return nil, ErrNotFound
		}
		log.Printf("[anime] search fallback resolved title=%q slug=%q", title, fallbackSlug)
		slug = fallbackSlug
		doc, err = s.pages.Document(ctx, fallbackURL)
		if err != nil {
			return nil, err
		}
	}

	rawEpisodes, err := scrape.ExtractVar(doc, episodesVar)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoEpisodes, err)
	}
	episodes, err := ParseEpisodes(rawEpisodes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoEpisodes, err)
	}

	return &models.Anime{
		Slug:        slug,
		Description: scrape.Chain(doc, descriptionChain...),
		Genres:      scrape.TextList(doc, genreSelectors...),
		Status:      scrape.Chain(doc, scrape.Text(".AnmStts")),
		Rate:        scrape.Chain(doc, scrape.Text(".vtprmd")),
		Episodes:    episodes,
	}, nil
}

// searchFirstResult queries the upstream search page for title and
// returns the slug and absolute URL of the first hit, or empty strings
// when the search came back with no results.
func (s *Service) searchFirstResult(ctx context.Context, title string) (slug, pageURL string, err error) {
	searchURL := s.baseURL + "/browse?q=" + url.QueryEscape(title)
	doc, err := s.pages.Document(ctx, searchURL)
	if err != nil {
		return "", "", err
	}

	href, ok := doc.Find(searchResultSelector).First().Attr("href")
	if !ok || href == "" {
		return "", "", nil
	}

	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		pageURL = href
	} else {
		pageURL = s.baseURL + href
	}
	slug = href[strings.LastIndex(href, "/")+1:]
	return slug, pageURL, nil
}
