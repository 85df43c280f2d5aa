// Package comments persists the per-content comment log. The log is
// append-only: nothing ever updates or deletes a stored comment.
package comments

import (
	"context"

	"aniflux/models"
)

// Store is the boundary handlers talk to; the storage choice stays
// behind it.
type Store interface {
	// List returns every comment for a content id, oldest first.
	List(ctx context.Context, contentID string) ([]models.Comment, error)

	// Add appends one comment to the log.
	Add(ctx context.Context, c models.Comment) error

	Close() error
}
