package auth

import (
	"net/http"

	"github.com/redmonkez12/jobs-api/internal/apperr"
	"github.com/redmonkez12/jobs-api/internal/httputil"
	"github.com/redmonkez12/jobs-api/internal/logging"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name" example:"Ada"`
	Email    string `json:"email" example:"ada@x.com"`
	Password string `json:"password" example:"secret1"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" example:"ada@x.com"`
	Password string `json:"password" example:"secret1"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	Name string `json:"name"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create an account and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration details"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing or invalid field"
// @Failure      409 {object} httputil.ErrorResponse "Email already exists"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/v1/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	result, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			logger.Warn("registration rejected", "error", err.Error())
		}
		httputil.WriteError(w, r, err)
		return
	}

	logger.Info("user registered successfully", "user_id", result.User.ID)

	httputil.RespondJSON(w, newAuthResponse(result), http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing email or password"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/v1/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			logger.Warn("login rejected", "error", err.Error())
		}
		httputil.WriteError(w, r, err)
		return
	}

	logger.Info("user logged in successfully", "user_id", result.User.ID)

	httputil.RespondJSON(w, newAuthResponse(result), http.StatusOK)
}

func newAuthResponse(result *Result) AuthResponse {
	return AuthResponse{
		User:  UserResponse{Name: result.User.Name},
		Token: result.Token,
	}
}
