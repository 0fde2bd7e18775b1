package user

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, email, username, passwordHash string) (User, error) {
	email = strings.ToLower(email)
	exists, err := s.repo.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return User{}, err
	}
	if exists {
		return User{}, ErrAlreadyExists
	}

	newUser := &User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return User{}, err
	}
	return *newUser, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) GetPublicProfile(ctx context.Context, id string) (PublicProfile, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return PublicProfile{}, err
	}
	return u.Public(), nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (User, error) {
	if update.Empty() {
		return User{}, ErrNoFields
	}
	if update.Username != nil {
		taken, err := s.repo.UsernameTaken(ctx, *update.Username, id)
		if err != nil {
			return User{}, err
		}
		if taken {
			return User{}, ErrUsernameTaken
		}
	}
	return s.repo.UpdateProfile(ctx, id, update)
}
