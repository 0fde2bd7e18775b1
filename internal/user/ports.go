package user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	UsernameTaken(ctx context.Context, username, excludeID string) (bool, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (User, error)
}
