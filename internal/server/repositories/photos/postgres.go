package photos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkhromov/fittrack/internal/common"
	"github.com/dkhromov/fittrack/internal/dbx"
	"github.com/dkhromov/fittrack/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, photo *models.ProgressPhoto) (*models.ProgressPhoto, error) {

	query :=
		`INSERT INTO progress_photos (user_id, storage_key, uploaded)
         VALUES ($1, $2, false)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		photo.UserID, photo.StorageKey).Scan(&photo.ID, &photo.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return photo, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, photoID string) (*models.ProgressPhoto, error) {
	query :=
		`SELECT id, user_id, storage_key, uploaded, created_at FROM progress_photos
		 WHERE id = $2 AND user_id = $1
		 `

	photo := &models.ProgressPhoto{}
	err := r.db.QueryRowContext(ctx, query, userID, photoID).
		Scan(&photo.ID, &photo.UserID, &photo.StorageKey, &photo.Uploaded, &photo.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return photo, nil
}

func (r *PostgresRepository) MarkUploaded(ctx context.Context, userID, photoID string) error {
	query :=
		`UPDATE progress_photos SET uploaded = true
		 WHERE id = $2 AND user_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userID, photoID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
