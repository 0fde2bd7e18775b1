package review

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("review not found")
	ErrForbidden = errors.New("not the author of this review")
)

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	GameID    int64     `json:"game_id"`
	Rating    float64   `json:"rating"`
	Review    *string   `json:"review"`
	Username  string    `json:"username,omitempty"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewReview struct {
	GameID int64
	Rating float64
	Review *string
}
