package uploads

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/photodrop/internal/client/models"
	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/dmitrijs2005/photodrop/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, u *models.Upload) error {
	query := `INSERT INTO uploads (id, file_name, path, mode, status, status_code, error, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, u.ID, u.FileName, u.Path, u.Mode, u.Status, u.StatusCode, u.Error, u.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert upload: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Finish(ctx context.Context, id string, u *models.Upload, at time.Time) error {
	query := `UPDATE uploads SET path = ?, status = ?, status_code = ?, error = ?, finished_at = ?
			WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, u.Path, u.Status, u.StatusCode, u.Error, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to finish upload: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("upload %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]*models.Upload, error) {
	query := `SELECT id, file_name, path, mode, status, status_code, error, created_at, finished_at
			FROM uploads ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error selecting uploads: %w", err)
	}
	defer rows.Close()

	var result []*models.Upload
	for rows.Next() {
		var (
			u        = &models.Upload{}
			finished sql.NullTime
		)
		if err := rows.Scan(&u.ID, &u.FileName, &u.Path, &u.Mode, &u.Status, &u.StatusCode, &u.Error, &u.CreatedAt, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan upload row: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			u.FinishedAt = &t
		}
		result = append(result, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate upload rows: %w", err)
	}
	return result, nil
}
