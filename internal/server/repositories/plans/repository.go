// Package plans contains the repository for workout plans.
package plans

import (
	"context"

	"github.com/dkhromov/fittrack/internal/server/models"
)

// Repository is the persistence surface for workout plans. All operations
// are scoped by the owning user id; a row belonging to someone else is
// indistinguishable from a missing row.
type Repository interface {
	Create(ctx context.Context, plan *models.WorkoutPlan) (*models.WorkoutPlan, error)
	ListByUser(ctx context.Context, userID string) ([]*models.WorkoutPlan, error)
	Rename(ctx context.Context, userID, planID, name string) error
	Delete(ctx context.Context, userID, planID string) error
}
