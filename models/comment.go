package models

import "time"

// Comment is one entry in the per-content comment log. The log is
// append-only: comments are never edited or removed once stored.
type Comment struct {
	ID        string    `json:"id"`
	ContentID string    `json:"contentId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentsResponse is the API response for listing comments on a content.
type CommentsResponse struct {
	Success  bool      `json:"success"`
	Comments []Comment `json:"comments,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// CommentPostResponse is the API response after storing a new comment.
type CommentPostResponse struct {
	Success bool     `json:"success"`
	Comment *Comment `json:"comment,omitempty"`
	Message string   `json:"message,omitempty"`
}
