package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gametracker/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// GetProfile handles GET /api/users/{id}
// @Summary Get public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/users/{id} [get]
func (h *HTTPHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathUUID(r, "id")
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		return
	}

	profile, err := h.service.GetPublicProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
			return
		}
		slog.Error("get profile failed", "user_id", id, "error", err)
		httpx.JSONInternalError(w, r)
		return
	}

	httpx.JSONSuccess(w, r, profile, nil)
}

type updateProfileReq struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=30,username"`
	Avatar   *string `json:"avatar" validate:"omitempty,url,max=500"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
}

// UpdateMe handles PUT /api/users/me
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body updateProfileReq true "Profile fields"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /api/users/me [put]
func (h *HTTPHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req updateProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		req.Username = &trimmed
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), userID, ProfileUpdate{
		Username: req.Username,
		Avatar:   req.Avatar,
		Bio:      req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFields):
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "No fields to update", nil)
		case errors.Is(err, ErrUsernameTaken):
			httpx.JSONError(w, r, http.StatusConflict, "CONFLICT", "Username already taken", nil)
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		default:
			slog.Error("update profile failed", "user_id", userID, "error", err)
			httpx.JSONInternalError(w, r)
		}
		return
	}

	httpx.JSONSuccess(w, r, updated, nil)
}
