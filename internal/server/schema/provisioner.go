// Package schema provisions the persistent relations at process start.
//
// For every relation, in dependency order, the provisioner checks the
// store's metadata, creates the relation when it is missing, and seeds a
// demonstration account with workout plans and exercises once the last
// core relation has been freshly created. Every step failure is logged
// and the next relation is still processed: a failed create is a degraded
// start, not a fatal one. The caller decides what to do with the joined
// error; the server keeps starting either way.
package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkhromov/fittrack/internal/logging"
	"github.com/dkhromov/fittrack/internal/server/password"
)

// relation couples a table name with its structural definition. The DDL
// deliberately omits IF NOT EXISTS: existence is decided by the metadata
// check, and a racing duplicate create is rejected by the store itself.
type relation struct {
	name      string
	createDDL string
}

// relations lists every table in dependency order; foreign keys cascade
// deletes from users down to exercises and photos.
var relations = []relation{
	{
		name: "users",
		createDDL: `CREATE TABLE users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "workout_plans",
		createDDL: `CREATE TABLE workout_plans (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "exercises",
		createDDL: `CREATE TABLE exercises (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			plan_id UUID NOT NULL REFERENCES workout_plans(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			sets TEXT NOT NULL DEFAULT ''
		)`,
	},
	{
		name: "progress_photos",
		createDDL: `CREATE TABLE progress_photos (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			storage_key TEXT NOT NULL,
			uploaded BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
}

// seedTrigger names the relation whose fresh creation triggers demo-data
// seeding. It is the last relation of the core dependency chain, so a
// fresh trigger table implies the whole chain was just created.
const seedTrigger = "exercises"

// Provisioner inspects the store at startup and creates whatever is
// missing. It must finish (successfully or not) before the server starts
// accepting requests.
type Provisioner struct {
	db     *sql.DB
	hasher *password.Hasher
	logger logging.Logger
}

func NewProvisioner(db *sql.DB, hasher *password.Hasher, logger logging.Logger) *Provisioner {
	return &Provisioner{
		db:     db,
		hasher: hasher,
		logger: logger.With("module", "schema"),
	}
}

// relationExists asks information_schema whether the table is present. A
// failed metadata query is reported as "absent"; the create that follows
// may then be rejected by the store, which is logged and tolerated.
func (p *Provisioner) relationExists(ctx context.Context, name string) bool {
	query :=
		`SELECT EXISTS (
		   SELECT FROM information_schema.tables
		   WHERE table_schema = 'public' AND table_name = $1
		 )`

	var exists bool
	if err := p.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		p.logger.Warn(ctx, "relation existence check failed, assuming absent",
			"relation", name, "error", err.Error())
		return false
	}
	return exists
}

// Provision runs the check/create/seed cycle over all relations. Relations
// are processed independently; a failure is logged and collected but does
// not stop the remaining relations. The joined error lets the caller log a
// degraded start; it is not meant to abort the process.
func (p *Provisioner) Provision(ctx context.Context) error {
	var errs []error

	for _, rel := range relations {
		if p.relationExists(ctx, rel.name) {
			p.logger.Debug(ctx, "relation present", "relation", rel.name)
			continue
		}

		p.logger.Info(ctx, "creating relation", "relation", rel.name)
		if _, err := p.db.ExecContext(ctx, rel.createDDL); err != nil {
			p.logger.Error(ctx, "relation create failed", "relation", rel.name, "error", err.Error())
			errs = append(errs, fmt.Errorf("create %s: %w", rel.name, err))
			continue
		}

		if rel.name == seedTrigger {
			if err := p.seed(ctx); err != nil {
				p.logger.Error(ctx, "demo data seed failed", "error", err.Error())
				errs = append(errs, fmt.Errorf("seed: %w", err))
			}
		}
	}

	return errors.Join(errs...)
}
