// Package photos contains the repository for progress photo metadata.
package photos

import (
	"context"

	"github.com/dkhromov/fittrack/internal/server/models"
)

// Repository is the persistence surface for progress photo rows. The bytes
// themselves live in the object store under StorageKey.
type Repository interface {
	Create(ctx context.Context, photo *models.ProgressPhoto) (*models.ProgressPhoto, error)
	Get(ctx context.Context, userID, photoID string) (*models.ProgressPhoto, error)
	MarkUploaded(ctx context.Context, userID, photoID string) error
}
