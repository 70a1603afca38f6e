package mocks

import (
	"context"

	"github.com/rpggio/workspace-nexus/internal/domain/user"
	"github.com/rpggio/workspace-nexus/internal/seed"
	"github.com/stretchr/testify/mock"
)

// SeedRepository is a mock for repository.SeedRepository.
type SeedRepository struct {
	mock.Mock
}

func (m *SeedRepository) Load(ctx context.Context) (seed.Data, error) {
	args := m.Called(ctx)
	if data, ok := args.Get(0).(seed.Data); ok {
		return data, args.Error(1)
	}
	return seed.Data{}, args.Error(1)
}

func (m *SeedRepository) Save(ctx context.Context, data seed.Data) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// UserDirectory is a mock for session.UserDirectory.
type UserDirectory struct {
	mock.Mock
}

func (m *UserDirectory) Users() []user.User {
	args := m.Called()
	if users, ok := args.Get(0).([]user.User); ok {
		return users
	}
	return nil
}

// Cursor is a mock for session.Cursor.
type Cursor struct {
	mock.Mock
}

func (m *Cursor) SetCurrentUser(ctx context.Context, u *user.User) {
	m.Called(ctx, u)
}

func (m *Cursor) CurrentUser() *user.User {
	args := m.Called()
	if u, ok := args.Get(0).(*user.User); ok {
		return u
	}
	return nil
}
