// Package repomanager vends repository implementations bound to a DBTX, so
// services can run the same repository code against the pool or inside a
// transaction.
package repomanager

import (
	"github.com/dkhromov/fittrack/internal/dbx"
	"github.com/dkhromov/fittrack/internal/server/repositories/exercises"
	"github.com/dkhromov/fittrack/internal/server/repositories/photos"
	"github.com/dkhromov/fittrack/internal/server/repositories/plans"
	"github.com/dkhromov/fittrack/internal/server/repositories/users"
)

// RepositoryManager returns repositories bound to the provided DBTX.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Plans(db dbx.DBTX) plans.Repository
	Exercises(db dbx.DBTX) exercises.Repository
	Photos(db dbx.DBTX) photos.Repository
}
