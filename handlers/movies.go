package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"aniflux/models"
)

// moviesService is what the handler needs from the TMDB proxy.
type moviesService interface {
	Popular(ctx context.Context, page int) (json.RawMessage, error)
	Airing(ctx context.Context, page int) (json.RawMessage, error)
	Search(ctx context.Context, query string) (json.RawMessage, error)
	SeriesDetails(ctx context.Context, tmdbID string) (json.RawMessage, error)
	Home(ctx context.Context) (popular, airing json.RawMessage, err error)
	MovieServers(tmdbID string) []models.EmbedServer
	SeriesServers(tmdbID, season, episode string) []models.EmbedServer
}

// MoviesHandler serves the TMDB proxy and embed server endpoints.
type MoviesHandler struct {
	Service moviesService
}

func NewMoviesHandler(s moviesService) *MoviesHandler {
	return &MoviesHandler{Service: s}
}

// RegisterRoutes attaches the movies and series endpoints to the router.
func (h *MoviesHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/movies/popular", h.Popular).Methods(http.MethodGet)
	r.HandleFunc("/api/movies/search", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/api/movies/home", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/api/movies/servers/{tmdbId}", h.MovieServers).Methods(http.MethodGet)
	r.HandleFunc("/api/series/airing", h.Airing).Methods(http.MethodGet)
	r.HandleFunc("/api/series/details/{tmdbId}", h.SeriesDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/series/servers/{tmdbId}/{season}/{episode}", h.SeriesServers).Methods(http.MethodGet)
}

func (h *MoviesHandler) Popular(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.Popular(r.Context(), pageFromQuery(r))
	h.writeProxy(w, "popular", data, err)
}

func (h *MoviesHandler) Airing(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.Airing(r.Context(), pageFromQuery(r))
	h.writeProxy(w, "airing", data, err)
}

func (h *MoviesHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, models.MoviesProxyResponse{
			Success: false,
			Message: "query parameter is required",
		})
		return
	}
	data, err := h.Service.Search(r.Context(), query)
	h.writeProxy(w, "search", data, err)
}

func (h *MoviesHandler) SeriesDetails(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.SeriesDetails(r.Context(), mux.Vars(r)["tmdbId"])
	h.writeProxy(w, "series details", data, err)
}

func (h *MoviesHandler) Home(w http.ResponseWriter, r *http.Request) {
	popular, airing, err := h.Service.Home(r.Context())
	if err != nil {
		log.Printf("[movies] home failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.MoviesHomeResponse{
			Success: false,
			Message: "error fetching home sections",
		})
		return
	}
	writeJSON(w, http.StatusOK, models.MoviesHomeResponse{
		Success: true,
		Popular: popular,
		Airing:  airing,
	})
}

func (h *MoviesHandler) MovieServers(w http.ResponseWriter, r *http.Request) {
	servers := h.Service.MovieServers(mux.Vars(r)["tmdbId"])
	writeJSON(w, http.StatusOK, models.EmbedServersResponse{Success: true, Servers: servers})
}

func (h *MoviesHandler) SeriesServers(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	servers := h.Service.SeriesServers(vars["tmdbId"], vars["season"], vars["episode"])
	writeJSON(w, http.StatusOK, models.EmbedServersResponse{Success: true, Servers: servers})
}

func (h *MoviesHandler) writeProxy(w http.ResponseWriter, what string, data json.RawMessage, err error) {
	if err != nil {
		log.Printf("[movies] %s failed: %v", what, err)
		writeJSON(w, http.StatusInternalServerError, models.MoviesProxyResponse{
			Success: false,
			Message: "error fetching " + what,
		})
		return
	}
	writeJSON(w, http.StatusOK, models.MoviesProxyResponse{Success: true, Data: data})
}

func pageFromQuery(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
