package review

import (
	"context"
	"math"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByGame(ctx context.Context, gameID int64) ([]Review, error) {
	return s.repo.ListByGame(ctx, gameID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Save stores the rating with one decimal place, matching the column scale.
func (s *Service) Save(ctx context.Context, userID string, in NewReview) (Review, error) {
	in.Rating = math.Round(in.Rating*10) / 10
	return s.repo.Upsert(ctx, userID, in)
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
