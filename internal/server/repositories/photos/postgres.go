// Package photos records uploaded photos in the user_photos table. Rows are
// appended and never updated.
package photos

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/photodrop/internal/dbx"
	"github.com/dmitrijs2005/photodrop/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores photo and fills in the generated id and created_at.
func (r *PostgresRepository) Insert(ctx context.Context, photo *models.Photo) error {
	query := `
		INSERT INTO user_photos (user_id, image_url)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, photo.UserID, photo.ImageURL).Scan(&photo.ID, &photo.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByUser returns the user's photos, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Photo, error) {
	query := `
		SELECT id, user_id, image_url, created_at
		FROM user_photos
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Photo
	for rows.Next() {
		p := &models.Photo{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
