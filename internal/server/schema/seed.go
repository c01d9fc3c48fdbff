package schema

import (
	"context"
	"fmt"

	"github.com/dkhromov/fittrack/internal/dbx"
	"github.com/google/uuid"
)

// Demo account credentials. The password is hashed at seed time with the
// deployment's own work factor instead of shipping a precomputed hash.
const (
	DemoEmail    = "demo@fittrack.local"
	DemoPassword = "Demo1234!"
)

type seedExercise struct {
	name string
	sets string
}

// seedCatalog maps each demo plan to its five exercises, in insertion order.
var seedCatalog = []struct {
	plan      string
	exercises [5]seedExercise
}{
	{"Push Day", [5]seedExercise{
		{"Bench Press", "5x5"},
		{"Overhead Press", "3x8"},
		{"Incline Dumbbell Press", "3x10"},
		{"Triceps Dips", "3x12"},
		{"Cable Fly", "3x15"},
	}},
	{"Pull Day", [5]seedExercise{
		{"Deadlift", "5x5"},
		{"Pull-Up", "4x8"},
		{"Barbell Row", "3x8"},
		{"Face Pull", "3x15"},
		{"Biceps Curl", "3x12"},
	}},
	{"Leg Day", [5]seedExercise{
		{"Back Squat", "5x5"},
		{"Romanian Deadlift", "3x8"},
		{"Leg Press", "3x10"},
		{"Walking Lunge", "3x12"},
		{"Calf Raise", "4x15"},
	}},
	{"Upper Body", [5]seedExercise{
		{"Push-Up", "4x15"},
		{"Dumbbell Shoulder Press", "3x10"},
		{"Lat Pulldown", "3x10"},
		{"Hammer Curl", "3x12"},
		{"Lateral Raise", "3x15"},
	}},
	{"Core & Conditioning", [5]seedExercise{
		{"Plank", "3x60s"},
		{"Hanging Leg Raise", "3x12"},
		{"Russian Twist", "3x20"},
		{"Back Extension", "3x15"},
		{"Farmer's Carry", "3x40m"},
	}},
}

// seed inserts the demo account, its five workout plans, and twenty-five
// exercises (five per plan) in one transaction. Ids are generated here so
// the exercise rows can reference their plan ids directly.
func (p *Provisioner) seed(ctx context.Context) error {
	hash, err := p.hasher.Hash(DemoPassword)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	userID := uuid.New().String()

	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
			userID, DemoEmail, hash)
		if err != nil {
			return fmt.Errorf("seeding user: %w", err)
		}

		for _, entry := range seedCatalog {
			planID := uuid.New().String()

			_, err := tx.ExecContext(ctx,
				`INSERT INTO workout_plans (id, user_id, name) VALUES ($1, $2, $3)`,
				planID, userID, entry.plan)
			if err != nil {
				return fmt.Errorf("seeding plan %q: %w", entry.plan, err)
			}

			for _, ex := range entry.exercises {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO exercises (id, user_id, plan_id, name, sets) VALUES ($1, $2, $3, $4, $5)`,
					uuid.New().String(), userID, planID, ex.name, ex.sets)
				if err != nil {
					return fmt.Errorf("seeding exercise %q: %w", ex.name, err)
				}
			}
		}

		p.logger.Info(ctx, "demo data seeded", "email", DemoEmail, "plans", len(seedCatalog))
		return nil
	})
}
