// Package httpapi exposes the FitTrack services over a JSON HTTP API.
// Routing is a plain net/http mux; request authentication is a bearer
// session token checked by middleware on every protected route.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dkhromov/fittrack/internal/logging"
	"github.com/dkhromov/fittrack/internal/server/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	address   string
	logger    logging.Logger
	identity  *services.IdentityService
	plans     *services.PlanService
	exercises *services.ExerciseService
	photos    *services.PhotoService
	jwtSecret []byte
}

func NewServer(addr string, l logging.Logger, is *services.IdentityService, ps *services.PlanService,
	es *services.ExerciseService, phs *services.PhotoService, secretKey string) *Server {
	return &Server{
		address:   addr,
		logger:    l.With("module", "http_server"),
		identity:  is,
		plans:     ps,
		exercises: es,
		photos:    phs,
		jwtSecret: []byte(secretKey),
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/password", s.requireAuth(s.handleChangePassword))
	mux.HandleFunc("DELETE /api/account", s.requireAuth(s.handleDeleteAccount))

	mux.HandleFunc("GET /api/plans", s.requireAuth(s.handleListPlans))
	mux.HandleFunc("POST /api/plans", s.requireAuth(s.handleCreatePlan))
	mux.HandleFunc("PUT /api/plans/{id}", s.requireAuth(s.handleRenamePlan))
	mux.HandleFunc("DELETE /api/plans/{id}", s.requireAuth(s.handleDeletePlan))

	mux.HandleFunc("GET /api/plans/{id}/exercises", s.requireAuth(s.handleListExercises))
	mux.HandleFunc("POST /api/plans/{id}/exercises", s.requireAuth(s.handleCreateExercise))
	mux.HandleFunc("PUT /api/exercises/{id}", s.requireAuth(s.handleUpdateExercise))
	mux.HandleFunc("DELETE /api/exercises/{id}", s.requireAuth(s.handleDeleteExercise))

	mux.HandleFunc("POST /api/photos", s.requireAuth(s.handleRequestPhotoUpload))
	mux.HandleFunc("POST /api/photos/{id}/uploaded", s.requireAuth(s.handlePhotoUploaded))
	mux.HandleFunc("GET /api/photos/{id}/url", s.requireAuth(s.handlePhotoDownloadURL))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
