package review

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=review

type Repository interface {
	ListByGame(ctx context.Context, gameID int64) ([]Review, error)
	ListByUser(ctx context.Context, userID string) ([]Review, error)
	// Upsert creates the caller's review of a game or replaces it.
	Upsert(ctx context.Context, userID string, in NewReview) (Review, error)
	AuthorOf(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}
