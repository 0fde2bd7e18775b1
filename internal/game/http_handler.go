package game

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"gametracker/internal/httpx"
)

const maxLimit = 100

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Search handles GET /api/games/search
// @Summary Search games
// @Description Search the game catalog by name
// @Tags games
// @Produce json
// @Param q query string true "Search text (min 2 characters)"
// @Param limit query int false "Max results (default 20, max 100)"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 429 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /api/games/search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(q) < 2 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Search query must be at least 2 characters", []httpx.ErrorDetail{
			{Field: "q", Message: "q must be at least 2 characters"},
		})
		return
	}
	limit := httpx.QueryInt(r, "limit", DefaultLimit, maxLimit)

	games, err := h.service.SearchGames(r.Context(), q, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, games, map[string]any{"count": len(games)})
}

// Trending handles GET /api/games/trending
// @Summary Trending games
// @Tags games
// @Produce json
// @Param limit query int false "Max results (default 20, max 100)"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /api/games/trending [get]
func (h *HTTPHandler) Trending(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.GetTrendingGames(r.Context(), httpx.QueryInt(r, "limit", DefaultLimit, maxLimit))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, games, map[string]any{"count": len(games)})
}

// Recent handles GET /api/games/recent
// @Summary Recent releases
// @Description Games released in the last 90 days, newest first
// @Tags games
// @Produce json
// @Param limit query int false "Max results (default 20, max 100)"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /api/games/recent [get]
func (h *HTTPHandler) Recent(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.GetRecentReleases(r.Context(), httpx.QueryInt(r, "limit", DefaultLimit, maxLimit))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, games, map[string]any{"count": len(games)})
}

// GetByID handles GET /api/games/{id}
// @Summary Get game by id
// @Tags games
// @Produce json
// @Param id path int true "Catalog game id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/games/{id} [get]
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathGameID(r, "id")
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid game id", nil)
		return
	}

	g, err := h.service.GetGameByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, g, nil)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("catalog request failed", "path", r.URL.Path, "request_id", httpx.RequestIDFrom(r), "error", err)
	}
	httpx.JSONError(w, r, status, code, msg, nil)
}
