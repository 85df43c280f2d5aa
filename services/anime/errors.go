package anime

import "errors"

// Sentinel errors for the resolution pipeline. Handlers match these with
// errors.Is to pick a user-facing message; anything else is a
// network-layer failure (usually a *scrape.FetchError) passed through.
var (
	// ErrNotFound means neither the guessed slug nor the fallback
	// search produced an anime page.
	ErrNotFound = errors.New("anime not found")

	// ErrNoEpisodes means the page was fetched but the episodes script
	// variable was missing or unreadable.
	ErrNoEpisodes = errors.New("no episodes found")

	// ErrNoServers means the watch page was fetched but held no usable
	// subtitled server list.
	ErrNoServers = errors.New("no video servers found")
)
