package models

import "encoding/json"

// MoviesProxyResponse wraps a raw TMDB payload. The proxy passes TMDB
// responses through untouched so the front end sees the upstream shape.
type MoviesProxyResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// EmbedServer is one embeddable player URL for a movie or series episode.
type EmbedServer struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// EmbedServersResponse is the API response for the embed server endpoints.
type EmbedServersResponse struct {
	Success bool          `json:"success"`
	Servers []EmbedServer `json:"servers,omitempty"`
	Message string        `json:"message,omitempty"`
}

// MoviesHomeResponse aggregates the two sections the front end renders on
// load, fetched from TMDB in parallel.
type MoviesHomeResponse struct {
	Success bool            `json:"success"`
	Popular json.RawMessage `json:"popular,omitempty"`
	Airing  json.RawMessage `json:"airing,omitempty"`
	Message string          `json:"message,omitempty"`
}
