package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"aniflux/internal/scrape"
	"aniflux/models"
	"aniflux/services/anime"
)

type fakeAnimeService struct {
	anime      *models.Anime
	servers    []models.VideoServer
	resolveErr error
	serversErr error

	gotTitle   string
	gotSlug    string
	gotEpisode string
}

func (f *fakeAnimeService) Resolve(_ context.Context, title string) (*models.Anime, error) {
	f.gotTitle = title
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.anime, nil
}

func (f *fakeAnimeService) Servers(_ context.Context, slug, episode string) ([]models.VideoServer, error) {
	f.gotSlug, f.gotEpisode = slug, episode
	if f.serversErr != nil {
		return nil, f.serversErr
	}
	return f.servers, nil
}

func newAnimeRouter(svc animeService) *mux.Router {
	r := mux.NewRouter()
	NewAnimeHandler(svc).RegisterRoutes(r)
	return r
}

func TestGetAnimeSuccess(t *testing.T) {
	svc := &fakeAnimeService{anime: &models.Anime{
		Slug:        "one-piece",
		Description: "Piratas.",
		Genres:      []string{"Acción", "Aventura"},
		Status:      "En emision",
		Rate:        "4.6",
		Episodes: []models.Episode{
			{Number: json.Number("2"), ID: "101"},
			{Number: json.Number("1"), ID: "100"},
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/anime/One%20Piece", nil)
	rec := httptest.NewRecorder()
	newAnimeRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotTitle != "One Piece" {
		t.Errorf("expected decoded title, got %q", svc.gotTitle)
	}

	var resp models.AnimeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got message %q", resp.Message)
	}
	if resp.Slug != "one-piece" {
		t.Errorf("expected slug one-piece, got %q", resp.Slug)
	}
	if len(resp.Episodes) != 2 {
		t.Errorf("expected 2 episodes, got %d", len(resp.Episodes))
	}
}

func TestGetAnimeEmptyFieldsStayPresent(t *testing.T) {
	// An anime page can legitimately carry zero episodes and no genres;
	// the response must still emit those fields as empty arrays because
	// clients index them without guarding.
	svc := &fakeAnimeService{anime: &models.Anime{Slug: "upcoming-show"}}

	req := httptest.NewRequest(http.MethodGet, "/api/anime/Upcoming%20Show", nil)
	rec := httptest.NewRecorder()
	newAnimeRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, field := range []string{"slug", "description", "genres", "status", "rate", "episodes"} {
		if _, ok := body[field]; !ok {
			t.Errorf("field %q missing from success response", field)
		}
	}
	if string(body["episodes"]) != "[]" {
		t.Errorf("expected episodes [], got %s", body["episodes"])
	}
	if string(body["genres"]) != "[]" {
		t.Errorf("expected genres [], got %s", body["genres"])
	}
}

func TestGetAnimeNotFound(t *testing.T) {
	svc := &fakeAnimeService{resolveErr: anime.ErrNotFound}

	req := httptest.NewRequest(http.MethodGet, "/api/anime/nope", nil)
	rec := httptest.NewRecorder()
	newAnimeRouter(svc).ServeHTTP(rec, req)

	// Scrape failures are part of the API contract, not HTTP errors.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp models.AnimeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Fatal("expected success=false")
	}
	if resp.Message != "Anime no encontrado." {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestGetAnimeFetchError(t *testing.T) {
	svc := &fakeAnimeService{resolveErr: &scrape.FetchError{URL: "http://x", StatusCode: 503}}

	req := httptest.NewRequest(http.MethodGet, "/api/anime/one-piece", nil)
	rec := httptest.NewRecorder()
	newAnimeRouter(svc).ServeHTTP(rec, req)

	var resp models.AnimeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Fatal("expected success=false")
	}
	if resp.Message != "Error de conexión con el servidor." {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestGetVideosSuccess(t *testing.T) {
	svc := &fakeAnimeService{servers: []models.VideoServer{
		{Name: "SW", URL: "https://sw.example/e/abc"},
		{Name: "YourUpload", URL: "https://yu.example/watch/def"},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/videos/one-piece/25", nil)
	rec := httptest.NewRecorder()
	newAnimeRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotSlug != "one-piece" || svc.gotEpisode != "25" {
		t.Errorf("unexpected args slug=%q episode=%q", svc.gotSlug, svc.gotEpisode)
	}

	var resp models.VideosResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got message %q", resp.Message)
	}
	if len(resp.Servers) != 2 || resp.Servers[0].Name != "SW" {
		t.Errorf("unexpected servers %+v", resp.Servers)
	}
}

func TestGetVideosNoServers(t *testing.T) {
	svc := &fakeAnimeService{serversErr: anime.ErrNoServers}

	req := httptest.NewRequest(http.MethodGet, "/api/videos/one-piece/9999", nil)
	rec := httptest.NewRecorder()
	newAnimeRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp models.VideosResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Fatal("expected success=false")
	}
	if resp.Message != "No se encontraron videos." {
		t.Errorf("unexpected message %q", resp.Message)
	}
}
