package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"aniflux/api"
	"aniflux/models"
	"aniflux/services/comments"
)

const (
	maxAuthorLen = 60
	maxTextLen   = 2000
)

// CommentsHandler serves the per-content comment log. Posting is
// rate-limited per client IP so a single viewer cannot flood a thread.
type CommentsHandler struct {
	Store   comments.Store
	limiter *api.IPRateLimiter
}

func NewCommentsHandler(store comments.Store, limiter *api.IPRateLimiter) *CommentsHandler {
	return &CommentsHandler{Store: store, limiter: limiter}
}

// RegisterRoutes attaches the comment endpoints to the router.
func (h *CommentsHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/comments/{content}", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/comments/{content}", h.Post).Methods(http.MethodPost)
}

// List returns every comment for a content id, oldest first.
func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	contentID := mux.Vars(r)["content"]

	list, err := h.Store.List(r.Context(), contentID)
	if err != nil {
		log.Printf("[comments] list failed content=%q: %v", contentID, err)
		writeJSON(w, http.StatusInternalServerError, models.CommentsResponse{
			Success: false,
			Message: "error loading comments",
		})
		return
	}

	writeJSON(w, http.StatusOK, models.CommentsResponse{Success: true, Comments: list})
}

type commentRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// Post appends one comment to the content's log.
func (h *CommentsHandler) Post(w http.ResponseWriter, r *http.Request) {
	contentID := mux.Vars(r)["content"]

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.CommentPostResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	req.Author = strings.TrimSpace(req.Author)
	req.Text = strings.TrimSpace(req.Text)
	if msg := validateComment(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, models.CommentPostResponse{
			Success: false,
			Message: msg,
		})
		return
	}

	// The slot is consumed only once the request is known to be valid;
	// rejected input must not lock a client out for the interval.
	if !api.Throttle(h.limiter, w, r) {
		return
	}

	c := models.Comment{
		ID:        uuid.NewString(),
		ContentID: contentID,
		Author:    req.Author,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Store.Add(r.Context(), c); err != nil {
		log.Printf("[comments] add failed content=%q: %v", contentID, err)
		writeJSON(w, http.StatusInternalServerError, models.CommentPostResponse{
			Success: false,
			Message: "error saving comment",
		})
		return
	}

	writeJSON(w, http.StatusCreated, models.CommentPostResponse{Success: true, Comment: &c})
}

func validateComment(req commentRequest) string {
	switch {
	case req.Author == "":
		return "author is required"
	case req.Text == "":
		return "text is required"
	case len(req.Author) > maxAuthorLen:
		return "author is too long"
	case len(req.Text) > maxTextLen:
		return "text is too long"
	}
	return ""
}
