package comment

import (
	"context"
	"errors"
	"fmt"

	"gametracker/internal/game"
)

type Service struct {
	repo  Repository
	games GameLookup
}

func NewService(repo Repository, games GameLookup) *Service {
	return &Service{repo: repo, games: games}
}

func (s *Service) ListByGame(ctx context.Context, gameID int64, page Page) ([]Comment, int, error) {
	return s.repo.ListByGame(ctx, gameID, page)
}

// Create checks the game against the catalog before storing the comment.
// Catalog failures other than a missing game are returned unchanged.
func (s *Service) Create(ctx context.Context, userID string, gameID int64, content string) (Comment, error) {
	if _, err := s.games.GetGameByID(ctx, gameID); err != nil {
		if errors.Is(err, game.ErrNotFound) {
			return Comment{}, fmt.Errorf("%w: %d", ErrGameNotFound, gameID)
		}
		return Comment{}, err
	}
	return s.repo.Create(ctx, userID, gameID, content)
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	author, err := s.repo.AuthorOf(ctx, id)
	if err != nil {
		return err
	}
	if author != userID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
