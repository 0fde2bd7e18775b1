package comment

import (
	"context"

	"gametracker/internal/game"
)

type Repository interface {
	ListByGame(ctx context.Context, gameID int64, page Page) ([]Comment, int, error)
	Create(ctx context.Context, userID string, gameID int64, content string) (Comment, error)
	AuthorOf(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

// GameLookup confirms a game exists in the catalog.
type GameLookup interface {
	GetGameByID(ctx context.Context, id int64) (game.Game, error)
}
