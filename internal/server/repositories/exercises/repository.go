// Package exercises contains the repository for exercise entries.
package exercises

import (
	"context"

	"github.com/dkhromov/fittrack/internal/server/models"
)

// Repository is the persistence surface for exercises. Operations are
// scoped by the owning user id (and plan id for listings).
type Repository interface {
	Create(ctx context.Context, exercise *models.Exercise) (*models.Exercise, error)
	ListByPlan(ctx context.Context, userID, planID string) ([]*models.Exercise, error)
	Update(ctx context.Context, userID, exerciseID, name, sets string) error
	Delete(ctx context.Context, userID, exerciseID string) error
}
