package user

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *mockRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	args := m.Called(ctx, email, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) UsernameTaken(ctx context.Context, username, excludeID string) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (User, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(User), args.Error(1)
}
