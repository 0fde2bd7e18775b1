package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
	ErrUsernameTaken = errors.New("username already taken")
	ErrNoFields      = errors.New("no fields to update")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Avatar       *string   `json:"avatar"`
	Bio          *string   `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicProfile is what other users may see.
type PublicProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Avatar    *string   `json:"avatar"`
	Bio       *string   `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

// ProfileUpdate holds the fields to change; nil means unchanged.
type ProfileUpdate struct {
	Username *string
	Avatar   *string
	Bio      *string
}

func (p ProfileUpdate) Empty() bool {
	return p.Username == nil && p.Avatar == nil && p.Bio == nil
}
