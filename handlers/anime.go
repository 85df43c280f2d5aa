// Package handlers maps HTTP routes onto the services. Every scrape
// failure becomes a structured {success:false, message} body; the
// process never surfaces a scrape problem as a crash or a bare 500.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"aniflux/models"
	"aniflux/services/anime"
)

// animeService is what the handler needs from the resolver.
type animeService interface {
	Resolve(ctx context.Context, title string) (*models.Anime, error)
	Servers(ctx context.Context, slug, episode string) ([]models.VideoServer, error)
}

// AnimeHandler serves the anime resolution and video server endpoints.
type AnimeHandler struct {
	Service animeService
}

func NewAnimeHandler(s animeService) *AnimeHandler {
	return &AnimeHandler{Service: s}
}

// RegisterRoutes attaches the anime endpoints to the router.
func (h *AnimeHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/anime/{title}", h.GetAnime).Methods(http.MethodGet)
	r.HandleFunc("/api/videos/{slug}/{episode}", h.GetVideos).Methods(http.MethodGet)
}

// GetAnime resolves a title to its slug, metadata and episode list.
func (h *AnimeHandler) GetAnime(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["title"]

	resolved, err := h.Service.Resolve(r.Context(), title)
	if err != nil {
		log.Printf("[anime] resolve failed title=%q: %v", title, err)
		writeJSON(w, http.StatusOK, models.ErrorResponse{
			Message: animeErrorMessage(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, models.AnimeResponse{
		Success:     true,
		Slug:        resolved.Slug,
		Description: resolved.Description,
		Genres:      nonNil(resolved.Genres),
		Status:      resolved.Status,
		Rate:        resolved.Rate,
		Episodes:    nonNil(resolved.Episodes),
	})
}

// GetVideos returns the subtitled server list for one episode.
func (h *AnimeHandler) GetVideos(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug, episode := vars["slug"], vars["episode"]

	servers, err := h.Service.Servers(r.Context(), slug, episode)
	if err != nil {
		log.Printf("[anime] servers failed slug=%q episode=%q: %v", slug, episode, err)
		writeJSON(w, http.StatusOK, models.ErrorResponse{
			Message: videosErrorMessage(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, models.VideosResponse{Success: true, Servers: servers})
}

func animeErrorMessage(err error) string {
	switch {
	case errors.Is(err, anime.ErrNotFound):
		return "Anime no encontrado."
	case errors.Is(err, anime.ErrNoEpisodes):
		return "No se encontraron episodios."
	default:
		return "Error de conexión con el servidor."
	}
}

func videosErrorMessage(err error) string {
	if errors.Is(err, anime.ErrNoServers) {
		return "No se encontraron videos."
	}
	return "Error al obtener videos."
}

// nonNil keeps empty slices as [] on the wire instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[http] encode response: %v", err)
	}
}
