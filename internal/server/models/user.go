// Package models defines the persistent data structures of the FitTrack
// server: users, workout plans, exercises, and progress photos.
package models

import "time"

// User is a registered account. PasswordHash is the bcrypt hash of the
// account password; the plaintext is never stored or logged.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
