package models

// Exercise belongs to one workout plan and transitively to one user.
// Sets is a free-form description like "3x12" or "5x5 @ 80kg".
type Exercise struct {
	ID     string
	UserID string
	PlanID string
	Name   string
	Sets   string
}
