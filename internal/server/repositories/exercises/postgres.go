package exercises

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

// Create inserts an exercise only when the target plan belongs to the
// user. The ownership check is part of the insert itself, so a plan id
// belonging to someone else (or to nobody) yields common.ErrorNotFound and
// never a row whose user_id disagrees with the plan's owner.
func (r *PostgresRepository) Create(ctx context.Context, exercise *models.Exercise) (*models.Exercise, error) {

	query :=
		`INSERT INTO exercises (user_id, plan_id, name, sets)
		 SELECT $1, $2, $3, $4
		 WHERE EXISTS (SELECT 1 FROM workout_plans WHERE id = $2 AND user_id = $1)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		exercise.UserID, exercise.PlanID, exercise.Name, exercise.Sets).Scan(&exercise.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return exercise, nil
}

func (r *PostgresRepository) ListByPlan(ctx context.Context, userID, planID string) ([]*models.Exercise, error) {
	query :=
		`SELECT id, user_id, plan_id, name, sets FROM exercises
		 WHERE user_id = $1 AND plan_id = $2
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Exercise
	for rows.Next() {
		e := &models.Exercise{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.PlanID, &e.Name, &e.Sets); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, exerciseID, name, sets string) error {
	query :=
		`UPDATE exercises SET name = $3, sets = $4
		 WHERE id = $2 AND user_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userID, exerciseID, name, sets)
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

func (r *PostgresRepository) Delete(ctx context.Context, userID, exerciseID string) error {
	query :=
		`DELETE FROM exercises
		 WHERE id = $2 AND user_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userID, exerciseID)
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
