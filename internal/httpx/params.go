package httpx

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// QueryInt reads a positive integer query parameter, returning def when it
// is missing or malformed and clamping it to max.
func QueryInt(r *http.Request, key string, def, max int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// PathGameID parses a positive catalog id from the named path value.
func PathGameID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// PathUUID returns the named path value if it is a valid UUID.
func PathUUID(r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if _, err := uuid.Parse(v); err != nil {
		return "", false
	}
	return v, true
}
