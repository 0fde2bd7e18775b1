package comment

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("comment not found")
	ErrForbidden    = errors.New("not the author of this comment")
	ErrGameNotFound = errors.New("game not found in catalog")
)

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	GameID    int64     `json:"game_id"`
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page selects a 1-based page of Limit comments.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages is the number of pages needed for total comments.
func (p Page) TotalPages(total int) int {
	if p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
