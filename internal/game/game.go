package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("game not found")

// Game is the canonical game shape served to clients.
type Game struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Summary     string   `json:"summary,omitempty"`
	Cover       string   `json:"cover,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	Platforms   []string `json:"platforms"`
	Developers  []string `json:"developers"`
	Genres      []string `json:"genres"`
}

const DefaultLimit = 20

// SearchKey identifies one cached search result page.
type SearchKey struct {
	Query string
	Limit int
}

// NewSearchKey lowercases and collapses whitespace in q so equivalent
// queries share an entry.
func NewSearchKey(q string, limit int) SearchKey {
	return SearchKey{
		Query: strings.Join(strings.Fields(strings.ToLower(q)), " "),
		Limit: limit,
	}
}

func (k SearchKey) String() string {
	return fmt.Sprintf("%s|%d", k.Query, k.Limit)
}
