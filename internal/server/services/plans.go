package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dkhromov/fittrack/internal/dbx"
	"github.com/dkhromov/fittrack/internal/server/config"
	"github.com/dkhromov/fittrack/internal/server/models"
	"github.com/dkhromov/fittrack/internal/server/repositories/repomanager"
)

// PlanService is the record-level CRUD surface for workout plans. Every
// operation is scoped to the authenticated user.
type PlanService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	queryTimeout time.Duration
}

func NewPlanService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *PlanService {
	return &PlanService{db: db, repomanager: m, queryTimeout: cfg.QueryTimeout}
}

func (s *PlanService) Create(ctx context.Context, userID, name string) (*models.WorkoutPlan, error) {
	repo := s.repomanager.Plans(s.db)

	plan := &models.WorkoutPlan{UserID: userID, Name: name}
	err := dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		var err error
		plan, err = repo.Create(ctx, plan)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating plan: %w", err)
	}
	return plan, nil
}

func (s *PlanService) List(ctx context.Context, userID string) ([]*models.WorkoutPlan, error) {
	repo := s.repomanager.Plans(s.db)

	var result []*models.WorkoutPlan
	err := dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		var err error
		result, err = repo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing plans: %w", err)
	}
	return result, nil
}

func (s *PlanService) Rename(ctx context.Context, userID, planID, name string) error {
	repo := s.repomanager.Plans(s.db)

	return dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		return repo.Rename(ctx, userID, planID, name)
	})
}

func (s *PlanService) Delete(ctx context.Context, userID, planID string) error {
	repo := s.repomanager.Plans(s.db)

	return dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		return repo.Delete(ctx, userID, planID)
	})
}
