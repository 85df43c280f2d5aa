package models

import (
	"encoding/json"
	"strconv"
)

// Episode is a single episode entry scraped from an anime detail page.
// Number stays a json.Number because the upstream occasionally emits
// fractional episode numbers ("12.5") for specials.
type Episode struct {
	Number json.Number `json:"number"`
	ID     string      `json:"id"`
}

// NumberValue returns the episode number as a float for ordering.
// Malformed numbers sort to 0 rather than failing the whole list.
func (e Episode) NumberValue() float64 {
	f, err := strconv.ParseFloat(e.Number.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// Anime is a fully resolved anime: the upstream-canonical slug plus the
// metadata and episode list scraped from its detail page. Episodes are
// sorted by descending episode number.
type Anime struct {
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Genres      []string  `json:"genres"`
	Status      string    `json:"status"`
	Rate        string    `json:"rate"`
	Episodes    []Episode `json:"episodes"`
}

// VideoServer is one playable source for an episode. URL may be a direct
// stream URL or an embed code, whatever the upstream hands out. Order
// matters: the first server in a list is the one the player auto-selects.
type VideoServer struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AnimeResponse is the API response for the anime resolution endpoint.
// The data fields are always present on success, even when empty: the
// front end indexes genres and episodes without guarding, so an omitted
// field would break it. Only message is conditional.
type AnimeResponse struct {
	Success     bool      `json:"success"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Genres      []string  `json:"genres"`
	Status      string    `json:"status"`
	Rate        string    `json:"rate"`
	Episodes    []Episode `json:"episodes"`
	Message     string    `json:"message,omitempty"`
}

// VideosResponse is the API response for the video servers endpoint.
type VideosResponse struct {
	Success bool          `json:"success"`
	Servers []VideoServer `json:"servers,omitempty"`
	Message string        `json:"message,omitempty"`
}

// ErrorResponse is the bare failure envelope: scrape failures carry
// nothing but the flag and a message.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
