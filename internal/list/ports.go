package list

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=list

type Repository interface {
	ListPublic(ctx context.Context) ([]List, error)
	ListByUser(ctx context.Context, userID string) ([]List, error)
	GetByID(ctx context.Context, id string) (List, error)
	Create(ctx context.Context, userID string, in NewList) (List, error)
	Update(ctx context.Context, id string, update Update) (List, error)
	Delete(ctx context.Context, id string) error
	Items(ctx context.Context, listID string) ([]Item, error)
	AddItem(ctx context.Context, listID string, gameID int64) (Item, error)
	RemoveItem(ctx context.Context, listID string, gameID int64) error
}
