package list

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("list not found")
	ErrForbidden     = errors.New("not the owner of this list")
	ErrNoFields      = errors.New("no fields to update")
	ErrAlreadyInList = errors.New("game already in list")
	ErrItemNotFound  = errors.New("game not in list")
)

type List struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsPublic    bool      `json:"is_public"`
	Username    string    `json:"username,omitempty"`
	Avatar      *string   `json:"avatar,omitempty"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Item struct {
	ID      string    `json:"id"`
	ListID  string    `json:"list_id"`
	GameID  int64     `json:"game_id"`
	AddedAt time.Time `json:"added_at"`
}

// Detail is a list together with its items.
type Detail struct {
	List
	Items []Item `json:"items"`
}

type NewList struct {
	Name        string
	Description *string
	IsPublic    bool
}

// Update holds the fields to change; nil means unchanged.
type Update struct {
	Name        *string
	Description *string
	IsPublic    *bool
}

func (u Update) Empty() bool {
	return u.Name == nil && u.Description == nil && u.IsPublic == nil
}
