package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gametracker/internal/httpx"
	"gametracker/internal/user"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type RegisterReq struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Description Create an account and receive a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterReq true "Registration request"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/auth/register [post]
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	session, err := h.service.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			httpx.JSONError(w, r, http.StatusConflict, "CONFLICT", "User with this email or username already exists", nil)
			return
		}
		slog.Error("register failed", "error", err)
		httpx.JSONInternalError(w, r)
		return
	}

	httpx.JSONSuccessCreated(w, r, session)
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate with email and password and receive a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginReq true "Login request"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /api/auth/login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password", nil)
			return
		}
		slog.Error("login failed", "error", err)
		httpx.JSONInternalError(w, r)
		return
	}

	httpx.JSONSuccess(w, r, session, nil)
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/auth/me [get]
func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	u, err := h.service.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
			return
		}
		slog.Error("load current user failed", "user_id", userID, "error", err)
		httpx.JSONInternalError(w, r)
		return
	}

	httpx.JSONSuccess(w, r, u, nil)
}
