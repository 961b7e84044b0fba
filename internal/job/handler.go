package job

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/redmonkez12/jobs-api/internal/apperr"
	"github.com/redmonkez12/jobs-api/internal/auth"
	"github.com/redmonkez12/jobs-api/internal/httputil"
	"github.com/redmonkez12/jobs-api/internal/logging"
)

// Handler contains HTTP handlers for the jobs resource. Every method expects
// to run behind auth.Middleware.RequireAuth.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// JobRequest is the body of create and update requests
type JobRequest struct {
	Company  string `json:"company" example:"Acme"`
	Position string `json:"position" example:"Backend Engineer"`
	Status   string `json:"status,omitempty" example:"pending" enums:"pending,interview,declined"`
}

// JobResponse wraps a single job
type JobResponse struct {
	Job *Job `json:"job"`
}

// ListResponse is returned when listing jobs
type ListResponse struct {
	Jobs  []*Job `json:"jobs"`
	Count int    `json:"count"`
}

// List returns the caller's jobs
// @Summary      List jobs
// @Description  List the caller's jobs, newest first
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ListResponse
// @Failure      401 {object} httputil.ErrorResponse "Authentication invalid"
// @Router       /api/v1/jobs [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	jobs, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.RespondJSON(w, ListResponse{Jobs: jobs, Count: len(jobs)}, http.StatusOK)
}

// Create adds a job for the caller
// @Summary      Create job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body JobRequest true "Job details"
// @Success      201 {object} JobResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing or invalid field"
// @Failure      401 {object} httputil.ErrorResponse "Authentication invalid"
// @Router       /api/v1/jobs [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req JobRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid job request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), identity.UserID, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Info("job created", "job_id", created.ID, "user_id", identity.UserID)

	httputil.RespondJSON(w, JobResponse{Job: created}, http.StatusCreated)
}

// Get returns one of the caller's jobs
// @Summary      Get job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Success      200 {object} JobResponse
// @Failure      401 {object} httputil.ErrorResponse "Authentication invalid"
// @Failure      404 {object} httputil.ErrorResponse "No job with id"
// @Router       /api/v1/jobs/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	found, err := h.service.Get(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.RespondJSON(w, JobResponse{Job: found}, http.StatusOK)
}

// Update changes one of the caller's jobs
// @Summary      Update job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Param        request body JobRequest true "New job details"
// @Success      200 {object} JobResponse
// @Failure      400 {object} httputil.ErrorResponse "Company and position fields can't be empty"
// @Failure      401 {object} httputil.ErrorResponse "Authentication invalid"
// @Failure      404 {object} httputil.ErrorResponse "No job with id"
// @Router       /api/v1/jobs/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req JobRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid job request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), identity.UserID, chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.RespondJSON(w, JobResponse{Job: updated}, http.StatusOK)
}

// Delete removes one of the caller's jobs
// @Summary      Delete job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Success      200 {object} JobResponse
// @Failure      401 {object} httputil.ErrorResponse "Authentication invalid"
// @Failure      404 {object} httputil.ErrorResponse "No job with id"
// @Router       /api/v1/jobs/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	deleted, err := h.service.Delete(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	logging.GetLoggerFromContext(r.Context()).Info("job deleted", "job_id", deleted.ID, "user_id", identity.UserID)

	httputil.RespondJSON(w, JobResponse{Job: deleted}, http.StatusOK)
}

func (req JobRequest) input() Input {
	return Input{Company: req.Company, Position: req.Position, Status: req.Status}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if apperr.KindOf(err) != apperr.KindInternal {
		logging.GetLoggerFromContext(r.Context()).Debug("job request rejected", "error", err.Error())
	}
	httputil.WriteError(w, r, err)
}
