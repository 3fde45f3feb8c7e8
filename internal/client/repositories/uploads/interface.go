// Package uploads keeps a local journal of upload actions: one row per user
// action, written when the action starts and updated once it reaches a
// terminal state.
package uploads

import (
	"context"
	"time"

	"github.com/dmitrijs2005/photodrop/internal/client/models"
)

type Repository interface {
	// Create inserts a new journal row.
	Create(ctx context.Context, u *models.Upload) error

	// Finish stores the terminal outcome of the action with the given ID.
	// It fails with common.ErrorNotFound when no such row exists.
	Finish(ctx context.Context, id string, u *models.Upload, at time.Time) error

	// List returns the most recent actions first, at most limit rows.
	List(ctx context.Context, limit int) ([]*models.Upload, error)
}
