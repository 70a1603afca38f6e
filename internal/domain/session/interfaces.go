package session

import (
	"context"

	"github.com/rpggio/workspace-nexus/internal/domain/user"
)

// UserDirectory lists the accounts that can sign in.
type UserDirectory interface {
	Users() []user.User
}

// Cursor tracks the signed-in user.
type Cursor interface {
	SetCurrentUser(ctx context.Context, u *user.User)
	CurrentUser() *user.User
}
