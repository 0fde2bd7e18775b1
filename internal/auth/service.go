package auth

import (
	"context"
	"errors"
	"time"

	"gametracker/internal/platform/crypto"
	"gametracker/internal/user"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
)

type Service struct {
	secret      string
	ttl         time.Duration
	userService *user.Service
}

func NewService(secret string, ttl time.Duration, userService *user.Service) *Service {
	return &Service{
		secret:      secret,
		ttl:         ttl,
		userService: userService,
	}
}

// Session is what register and login hand back to the client.
type Session struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

func (s *Service) issue(u user.User) (Session, error) {
	token, _, err := crypto.GenerateToken(s.secret, crypto.Identity{
		UserID:   u.ID,
		Email:    u.Email,
		Username: u.Username,
	}, s.ttl)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u, Token: token}, nil
}

func (s *Service) Register(ctx context.Context, email, username, password string) (Session, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return Session{}, err
	}
	u, err := s.userService.Register(ctx, email, username, hash)
	if err != nil {
		return Session{}, err
	}
	return s.issue(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.userService.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, ErrUnauthorized
		}
		return Session{}, err
	}
	if !crypto.VerifyPassword(u.PasswordHash, password) {
		return Session{}, ErrUnauthorized
	}
	return s.issue(u)
}

func (s *Service) Me(ctx context.Context, userID string) (user.User, error) {
	u, err := s.userService.GetByID(ctx, userID)
	if errors.Is(err, user.ErrNotFound) {
		return user.User{}, ErrUnauthorized
	}
	return u, err
}
