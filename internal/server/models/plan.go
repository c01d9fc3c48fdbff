package models

import "time"

// WorkoutPlan is owned by exactly one user and is removed together with it.
type WorkoutPlan struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
}
