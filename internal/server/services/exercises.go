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

// ExerciseService is the record-level CRUD surface for exercises, scoped
// to the authenticated user and, for listings, to one plan.
type ExerciseService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	queryTimeout time.Duration
}

func NewExerciseService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ExerciseService {
	return &ExerciseService{db: db, repomanager: m, queryTimeout: cfg.QueryTimeout}
}

func (s *ExerciseService) Create(ctx context.Context, userID, planID, name, sets string) (*models.Exercise, error) {
	repo := s.repomanager.Exercises(s.db)

	exercise := &models.Exercise{UserID: userID, PlanID: planID, Name: name, Sets: sets}
	err := dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		var err error
		exercise, err = repo.Create(ctx, exercise)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error creating exercise: %w", err)
	}
	return exercise, nil
}

func (s *ExerciseService) ListByPlan(ctx context.Context, userID, planID string) ([]*models.Exercise, error) {
	repo := s.repomanager.Exercises(s.db)

	var result []*models.Exercise
	err := dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		var err error
		result, err = repo.ListByPlan(ctx, userID, planID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing exercises: %w", err)
	}
	return result, nil
}

func (s *ExerciseService) Update(ctx context.Context, userID, exerciseID, name, sets string) error {
	repo := s.repomanager.Exercises(s.db)

	return dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		return repo.Update(ctx, userID, exerciseID, name, sets)
	})
}

func (s *ExerciseService) Delete(ctx context.Context, userID, exerciseID string) error {
	repo := s.repomanager.Exercises(s.db)

	return dbx.WithTimeout(ctx, s.queryTimeout, func(ctx context.Context) error {
		return repo.Delete(ctx, userID, exerciseID)
	})
}
