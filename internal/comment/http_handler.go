package comment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gametracker/internal/game"
	"gametracker/internal/httpx"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// ListByGame handles GET /api/comments/game/{gameId}
// @Summary Comments on a game
// @Tags comments
// @Produce json
// @Param gameId path int true "Game ID"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /api/comments/game/{gameId} [get]
func (h *HTTPHandler) ListByGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := httpx.PathGameID(r, "gameId")
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid game ID", nil)
		return
	}
	page := Page{
		Number: httpx.QueryInt(r, "page", 1, 0),
		Limit:  httpx.QueryInt(r, "limit", defaultLimit, maxLimit),
	}

	comments, total, err := h.service.ListByGame(r.Context(), gameID, page)
	if err != nil {
		slog.Error("list comments failed", "game_id", gameID, "error", err)
		httpx.JSONInternalError(w, r)
		return
	}

	httpx.JSONSuccess(w, r, comments, map[string]any{
		"page":        page.Number,
		"limit":       page.Limit,
		"total":       total,
		"total_pages": page.TotalPages(total),
	})
}

type createCommentReq struct {
	GameID  int64  `json:"game_id" validate:"required,gte=1"`
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// Create handles POST /api/comments
// @Summary Comment on a game
// @Description The game must exist in the catalog
// @Tags comments
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body createCommentReq true "Comment"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /api/comments [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req createCommentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Content = strings.TrimSpace(req.Content)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	created, err := h.service.Create(r.Context(), userID, req.GameID, req.Content)
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Game not found in catalog", nil)
			return
		}
		status, code, msg := game.ErrorStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("create comment failed", "game_id", req.GameID, "error", err)
		}
		httpx.JSONError(w, r, status, code, msg, nil)
		return
	}
	httpx.JSONSuccessCreated(w, r, created)
}

// Delete handles DELETE /api/comments/{id}
// @Summary Delete comment
// @Tags comments
// @Security Bearer
// @Param id path string true "Comment ID"
// @Success 204 "No Content"
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/comments/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}
	id, ok := httpx.PathUUID(r, "id")
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Comment not found", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Comment not found", nil)
		case errors.Is(err, ErrForbidden):
			httpx.JSONError(w, r, http.StatusForbidden, "FORBIDDEN", "You can only delete your own comments", nil)
		default:
			slog.Error("delete comment failed", "comment_id", id, "error", err)
			httpx.JSONInternalError(w, r)
		}
		return
	}
	httpx.JSONSuccessNoContent(w)
}
