package models

import "time"

// ProgressPhoto tracks a user-uploaded photo stored in the object store.
// StorageKey is the S3 object key; the row exists before the upload
// completes, with Uploaded flipped once the client confirms.
type ProgressPhoto struct {
	ID         string
	UserID     string
	StorageKey string
	Uploaded   bool
	CreatedAt  time.Time
}
