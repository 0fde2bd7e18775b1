package list

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

func writeError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "List not found", nil)
	case errors.Is(err, ErrForbidden):
		httpx.JSONError(w, r, http.StatusForbidden, "FORBIDDEN", "You do not have access to this list", nil)
	case errors.Is(err, ErrNoFields):
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "No fields to update", nil)
	case errors.Is(err, ErrAlreadyInList):
		httpx.JSONError(w, r, http.StatusBadRequest, "ALREADY_IN_LIST", "Game is already in this list", nil)
	case errors.Is(err, ErrItemNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Game not found in list", nil)
	default:
		slog.Error(op+" failed", "error", err)
		httpx.JSONInternalError(w, r)
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return "", false
	}
	return userID, true
}

func pathListID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := httpx.PathUUID(r, "id")
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "List not found", nil)
	}
	return id, ok
}

// ListPublic handles GET /api/lists
// @Summary Public lists
// @Tags lists
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /api/lists [get]
func (h *HTTPHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	lists, err := h.service.ListPublic(r.Context())
	if err != nil {
		writeError(w, r, err, "list public lists")
		return
	}
	httpx.JSONSuccess(w, r, lists, nil)
}

// ListMine handles GET /api/lists/my
// @Summary Current user's lists
// @Tags lists
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/lists/my [get]
func (h *HTTPHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	lists, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "list user lists")
		return
	}
	httpx.JSONSuccess(w, r, lists, nil)
}

// Get handles GET /api/lists/{id}
// @Summary Get list with items
// @Description Private lists are only visible to their owner
// @Tags lists
// @Produce json
// @Param id path string true "List ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/lists/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathListID(w, r)
	if !ok {
		return
	}
	detail, err := h.service.Get(r.Context(), id, httpx.UserIDFrom(r))
	if err != nil {
		writeError(w, r, err, "get list")
		return
	}
	httpx.JSONSuccess(w, r, detail, nil)
}

type createListReq struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsPublic    *bool   `json:"is_public"`
}

// Create handles POST /api/lists
// @Summary Create list
// @Tags lists
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body createListReq true "List"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/lists [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createListReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	in := NewList{Name: req.Name, Description: req.Description, IsPublic: true}
	if req.IsPublic != nil {
		in.IsPublic = *req.IsPublic
	}
	created, err := h.service.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err, "create list")
		return
	}
	httpx.JSONSuccessCreated(w, r, created)
}

type updateListReq struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsPublic    *bool   `json:"is_public"`
}

// Update handles PUT /api/lists/{id}
// @Summary Update list
// @Tags lists
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "List ID"
// @Param request body updateListReq true "Fields to change"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/lists/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathListID(w, r)
	if !ok {
		return
	}

	var req updateListReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	updated, err := h.service.Update(r.Context(), id, userID, Update{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeError(w, r, err, "update list")
		return
	}
	httpx.JSONSuccess(w, r, updated, nil)
}

// Delete handles DELETE /api/lists/{id}
// @Summary Delete list
// @Tags lists
// @Security Bearer
// @Param id path string true "List ID"
// @Success 204 "No Content"
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/lists/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathListID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		writeError(w, r, err, "delete list")
		return
	}
	httpx.JSONSuccessNoContent(w)
}

type addGameReq struct {
	GameID int64 `json:"game_id" validate:"required,gte=1"`
}

// AddGame handles POST /api/lists/{id}/games
// @Summary Add game to list
// @Tags lists
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "List ID"
// @Param request body addGameReq true "Game"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/lists/{id}/games [post]
func (h *HTTPHandler) AddGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathListID(w, r)
	if !ok {
		return
	}

	var req addGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	item, err := h.service.AddGame(r.Context(), id, userID, req.GameID)
	if err != nil {
		writeError(w, r, err, "add game to list")
		return
	}
	httpx.JSONSuccessCreated(w, r, item)
}

// RemoveGame handles DELETE /api/lists/{id}/games/{gameId}
// @Summary Remove game from list
// @Tags lists
// @Security Bearer
// @Param id path string true "List ID"
// @Param gameId path int true "Game ID"
// @Success 204 "No Content"
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/lists/{id}/games/{gameId} [delete]
func (h *HTTPHandler) RemoveGame(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathListID(w, r)
	if !ok {
		return
	}
	gameID, ok := httpx.PathGameID(r, "gameId")
	if !ok {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid game ID", nil)
		return
	}
	if err := h.service.RemoveGame(r.Context(), id, userID, gameID); err != nil {
		writeError(w, r, err, "remove game from list")
		return
	}
	httpx.JSONSuccessNoContent(w)
}
