package httpx

import (
	"encoding/json"
	"net/http"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
	Meta    interface{}       `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func buildMeta(r *http.Request, customMeta map[string]any) interface{} {
	requestID := RequestIDFrom(r)
	if requestID == "" && len(customMeta) == 0 {
		return nil
	}
	meta := make(map[string]any, len(customMeta)+1)
	if requestID != "" {
		meta["request_id"] = requestID
	}
	for k, v := range customMeta {
		meta[k] = v
	}
	return meta
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func JSONSuccess(w http.ResponseWriter, r *http.Request, data interface{}, meta map[string]any) {
	writeJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    buildMeta(r, meta),
	})
}

func JSONSuccessCreated(w http.ResponseWriter, r *http.Request, data interface{}) {
	writeJSON(w, http.StatusCreated, SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    buildMeta(r, nil),
	})
}

func JSONSuccessNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func JSONError(w http.ResponseWriter, r *http.Request, statusCode int, code string, message string, details []ErrorDetail) {
	writeJSON(w, statusCode, ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: buildMeta(r, nil),
	})
}

// JSONInternalError logs nothing; callers log before responding.
func JSONInternalError(w http.ResponseWriter, r *http.Request) {
	JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
