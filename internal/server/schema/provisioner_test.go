package schema

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkhromov/fittrack/internal/logging"
	"github.com/dkhromov/fittrack/internal/server/password"
)

const (
	existsQ        = `(?s)^SELECT EXISTS \(\s*SELECT FROM information_schema\.tables.*$`
	createUsersQ   = `(?s)^CREATE TABLE users \(.*$`
	createPlansQ   = `(?s)^CREATE TABLE workout_plans \(.*$`
	createExQ      = `(?s)^CREATE TABLE exercises \(.*$`
	createPhotosQ  = `(?s)^CREATE TABLE progress_photos \(.*$`
	insertUserQ    = `(?s)^INSERT INTO users \(id, email, password_hash\).*$`
	insertPlanQ    = `(?s)^INSERT INTO workout_plans \(id, user_id, name\).*$`
	insertExQ      = `(?s)^INSERT INTO exercises \(id, user_id, plan_id, name, sets\).*$`
)

func newProvisionerWithMock(t *testing.T) (*Provisioner, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewProvisioner(db, password.NewHasher(0), logger), mock, db
}

func expectExists(mock sqlmock.Sqlmock, name string, exists bool) {
	mock.ExpectQuery(existsQ).
		WithArgs(name).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

// expectSeed registers the full demo-data transaction: one user, five
// plans, five exercises per plan.
func expectSeed(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(insertUserQ).
		WithArgs(sqlmock.AnyArg(), DemoEmail, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for _, entry := range seedCatalog {
		mock.ExpectExec(insertPlanQ).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), entry.plan).
			WillReturnResult(sqlmock.NewResult(0, 1))
		for _, ex := range entry.exercises {
			mock.ExpectExec(insertExQ).
				WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), ex.name, ex.sets).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
	}
	mock.ExpectCommit()
}

func TestProvision_FreshStore(t *testing.T) {
	p, mock, db := newProvisionerWithMock(t)
	defer db.Close()

	expectExists(mock, "users", false)
	mock.ExpectExec(createUsersQ).WillReturnResult(sqlmock.NewResult(0, 0))
	expectExists(mock, "workout_plans", false)
	mock.ExpectExec(createPlansQ).WillReturnResult(sqlmock.NewResult(0, 0))
	expectExists(mock, "exercises", false)
	mock.ExpectExec(createExQ).WillReturnResult(sqlmock.NewResult(0, 0))
	// Seed fires right after the exercises relation was freshly created.
	expectSeed(mock)
	expectExists(mock, "progress_photos", false)
	mock.ExpectExec(createPhotosQ).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := p.Provision(context.Background()); err != nil {
		t.Fatalf("Provision error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProvision_SecondRunCreatesNothing(t *testing.T) {
	p, mock, db := newProvisionerWithMock(t)
	defer db.Close()

	for _, name := range []string{"users", "workout_plans", "exercises", "progress_photos"} {
		expectExists(mock, name, true)
	}

	if err := p.Provision(context.Background()); err != nil {
		t.Fatalf("Provision error: %v", err)
	}
	// No create, no seed: every expectation was an existence check.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProvision_MetadataFailureFallsBackToCreate(t *testing.T) {
	p, mock, db := newProvisionerWithMock(t)
	defer db.Close()

	// Broken introspection is treated as "absent" and the create runs.
	mock.ExpectQuery(existsQ).
		WithArgs("users").
		WillReturnError(errors.New("introspection not supported"))
	mock.ExpectExec(createUsersQ).WillReturnResult(sqlmock.NewResult(0, 0))

	for _, name := range []string{"workout_plans", "exercises", "progress_photos"} {
		expectExists(mock, name, true)
	}

	if err := p.Provision(context.Background()); err != nil {
		t.Fatalf("Provision error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProvision_CreateFailureIsNonFatalAndProcessingContinues(t *testing.T) {
	p, mock, db := newProvisionerWithMock(t)
	defer db.Close()

	expectExists(mock, "users", false)
	mock.ExpectExec(createUsersQ).WillReturnError(errors.New("permission denied"))

	// Remaining relations are still checked.
	for _, name := range []string{"workout_plans", "exercises", "progress_photos"} {
		expectExists(mock, name, true)
	}

	err := p.Provision(context.Background())
	if err == nil {
		t.Fatalf("expected degraded-start error")
	}
	if !strings.Contains(err.Error(), "create users") {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProvision_SeedFailureRollsBack(t *testing.T) {
	p, mock, db := newProvisionerWithMock(t)
	defer db.Close()

	expectExists(mock, "users", true)
	expectExists(mock, "workout_plans", true)
	expectExists(mock, "exercises", false)
	mock.ExpectExec(createExQ).WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectBegin()
	mock.ExpectExec(insertUserQ).
		WithArgs(sqlmock.AnyArg(), DemoEmail, sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	expectExists(mock, "progress_photos", true)

	err := p.Provision(context.Background())
	if err == nil || !strings.Contains(err.Error(), "seed") {
		t.Fatalf("expected seed error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRelations_CascadeFromUsers(t *testing.T) {
	t.Parallel()

	// Account deletion relies on the store cascading through every
	// dependent relation; each foreign key must carry the cascade clause.
	wantClauses := map[string][]string{
		"workout_plans": {
			"REFERENCES users(id) ON DELETE CASCADE",
		},
		"exercises": {
			"REFERENCES users(id) ON DELETE CASCADE",
			"REFERENCES workout_plans(id) ON DELETE CASCADE",
		},
		"progress_photos": {
			"REFERENCES users(id) ON DELETE CASCADE",
		},
	}

	byName := map[string]string{}
	for _, rel := range relations {
		byName[rel.name] = rel.createDDL
	}

	for name, clauses := range wantClauses {
		ddl, ok := byName[name]
		if !ok {
			t.Fatalf("relation %q missing", name)
		}
		for _, clause := range clauses {
			if !strings.Contains(ddl, clause) {
				t.Fatalf("relation %q: DDL missing %q", name, clause)
			}
		}
	}
}

func TestSeedCatalog_Shape(t *testing.T) {
	t.Parallel()

	if len(seedCatalog) != 5 {
		t.Fatalf("expected 5 demo plans, got %d", len(seedCatalog))
	}
	total := 0
	for _, entry := range seedCatalog {
		total += len(entry.exercises)
	}
	if total != 25 {
		t.Fatalf("expected 25 demo exercises, got %d", total)
	}
}
