// Package server initializes and runs the FitTrack application server.
// It opens the database pool, provisions the schema before any request is
// accepted, wires the services, handles graceful shutdown, and starts the
// HTTP server.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dkhromov/fittrack/internal/logging"
	"github.com/dkhromov/fittrack/internal/server/config"
	"github.com/dkhromov/fittrack/internal/server/httpapi"
	"github.com/dkhromov/fittrack/internal/server/password"
	"github.com/dkhromov/fittrack/internal/server/repositories/repomanager"
	"github.com/dkhromov/fittrack/internal/server/schema"
	"github.com/dkhromov/fittrack/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	provisioner     *schema.Provisioner
	identityService *services.IdentityService
	planService     *services.PlanService
	exerciseService *services.ExerciseService
	photoService    *services.PhotoService
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	// The sql.DB is the process-wide connection pool: opened once here,
	// borrowed per request, closed on shutdown.
	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	hasher := password.NewHasher(c.BcryptCost)
	rm := repomanager.NewPostgresRepositoryManager()

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		provisioner:     schema.NewProvisioner(db, hasher, logger),
		identityService: services.NewIdentityService(db, rm, hasher, c),
		planService:     services.NewPlanService(db, rm, c),
		exerciseService: services.NewExerciseService(db, rm, c),
		photoService:    services.NewPhotoService(db, rm, c),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger,
		app.identityService, app.planService, app.exerciseService, app.photoService,
		app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	// Provisioning must finish before the listener starts: requests never
	// race schema creation. A failed step degrades the start but does not
	// abort it.
	if err := app.provisioner.Provision(ctx); err != nil {
		app.logger.Warn(ctx, "schema provisioning incomplete, starting degraded", "error", err.Error())
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
