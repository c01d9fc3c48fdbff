package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dkhromov/fittrack/internal/common"
	"github.com/dkhromov/fittrack/internal/server/metrics"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := s.identity.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info(r.Context(), "registered", "email", req.Email)
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !readJSON(w, r, &req) {
		return
	}

	token, err := s.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		s.logger.Warn(r.Context(), "login failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, common.ErrorUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "new_password is required")
		return
	}

	id, err := s.identity.ChangePassword(r.Context(), userID(r), req.NewPassword)
	if err != nil {
		s.logger.Error(r.Context(), "password change failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.identity.DeleteAccount(r.Context(), userID(r)); err != nil {
		s.logger.Error(r.Context(), "account deletion failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type planRequest struct {
	Name string `json:"name"`
}

type planResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	result, err := s.plans.List(r.Context(), userID(r))
	if err != nil {
		s.logger.Error(r.Context(), "listing plans failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	resp := make([]planResponse, 0, len(result))
	for _, p := range result {
		resp = append(resp, planResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt.Format(timeFormat)})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	plan, err := s.plans.Create(r.Context(), userID(r), req.Name)
	if err != nil {
		s.logger.Error(r.Context(), "creating plan failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, planResponse{ID: plan.ID, Name: plan.Name, CreatedAt: plan.CreatedAt.Format(timeFormat)})
}

func (s *Server) handleRenamePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := s.plans.Rename(r.Context(), userID(r), r.PathValue("id"), req.Name); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := s.plans.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type exerciseRequest struct {
	Name string `json:"name"`
	Sets string `json:"sets"`
}

type exerciseResponse struct {
	ID     string `json:"id"`
	PlanID string `json:"plan_id"`
	Name   string `json:"name"`
	Sets   string `json:"sets"`
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	result, err := s.exercises.ListByPlan(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		s.logger.Error(r.Context(), "listing exercises failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	resp := make([]exerciseResponse, 0, len(result))
	for _, e := range result {
		resp = append(resp, exerciseResponse{ID: e.ID, PlanID: e.PlanID, Name: e.Name, Sets: e.Sets})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	exercise, err := s.exercises.Create(r.Context(), userID(r), r.PathValue("id"), req.Name, req.Sets)
	if err != nil {
		s.logger.Error(r.Context(), "creating exercise failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, exerciseResponse{ID: exercise.ID, PlanID: exercise.PlanID, Name: exercise.Name, Sets: exercise.Sets})
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := s.exercises.Update(r.Context(), userID(r), r.PathValue("id"), req.Name, req.Sets); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	if err := s.exercises.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type photoUploadResponse struct {
	ID        string `json:"id"`
	UploadURL string `json:"upload_url"`
}

func (s *Server) handleRequestPhotoUpload(w http.ResponseWriter, r *http.Request) {
	photo, url, err := s.photos.RequestUpload(r.Context(), userID(r))
	if err != nil {
		s.logger.Error(r.Context(), "photo upload request failed", "error", err.Error())
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, photoUploadResponse{ID: photo.ID, UploadURL: url})
}

func (s *Server) handlePhotoUploaded(w http.ResponseWriter, r *http.Request) {
	if err := s.photos.MarkUploaded(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePhotoDownloadURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.photos.DownloadURL(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

const timeFormat = time.RFC3339
