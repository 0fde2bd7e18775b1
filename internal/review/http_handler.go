package review

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gametracker/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// ListByGame handles GET /api/reviews/game/{gameId}
// @Summary Reviews of a game
// @Tags reviews
// @Produce json
// @Param gameId path int true "Game ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/reviews/game/{gameId} [get]
func (h *HTTPHandler) ListByGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := httpx.PathGameID(r, "gameId")
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid game ID", nil)
		return
	}

	reviews, err := h.service.ListByGame(r.Context(), gameID)
	if err != nil {
		slog.Error("list game reviews failed", "game_id", gameID, "error", err)
		httpx.JSONInternalError(w, r)
		return
	}
	httpx.JSONSuccess(w, r, reviews, nil)
}

// ListByUser handles GET /api/reviews/user/{userId}
// @Summary Reviews written by a user
// @Tags reviews
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/reviews/user/{userId} [get]
func (h *HTTPHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.PathUUID(r, "userId")
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid user ID", nil)
		return
	}

	reviews, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		slog.Error("list user reviews failed", "user_id", userID, "error", err)
		httpx.JSONInternalError(w, r)
		return
	}
	httpx.JSONSuccess(w, r, reviews, nil)
}

type saveReviewReq struct {
	GameID int64    `json:"game_id" validate:"required,gte=1"`
	Rating *float64 `json:"rating" validate:"required,gte=0,lte=10"`
	Review *string  `json:"review" validate:"omitempty,max=2000"`
}

// Save handles POST /api/reviews
// @Summary Create or update review
// @Description One review per user and game; posting again replaces it
// @Tags reviews
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body saveReviewReq true "Review"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/reviews [post]
func (h *HTTPHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req saveReviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	saved, err := h.service.Save(r.Context(), userID, NewReview{
		GameID: req.GameID,
		Rating: *req.Rating,
		Review: req.Review,
	})
	if err != nil {
		slog.Error("save review failed", "user_id", userID, "game_id", req.GameID, "error", err)
		httpx.JSONInternalError(w, r)
		return
	}
	httpx.JSONSuccessCreated(w, r, saved)
}

// Delete handles DELETE /api/reviews/{id}
// @Summary Delete review
// @Tags reviews
// @Security Bearer
// @Param id path string true "Review ID"
// @Success 204 "No Content"
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/reviews/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}
	id, ok := httpx.PathUUID(r, "id")
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
		case errors.Is(err, ErrForbidden):
			httpx.JSONError(w, r, http.StatusForbidden, "FORBIDDEN", "You can only delete your own reviews", nil)
		default:
			slog.Error("delete review failed", "review_id", id, "error", err)
			httpx.JSONInternalError(w, r)
		}
		return
	}
	httpx.JSONSuccessNoContent(w)
}
