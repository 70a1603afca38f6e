package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/workspace-nexus/internal/domain/user"
	"github.com/rpggio/workspace-nexus/internal/validate"
)

// Service handles sign-in and sign-out against the store's user list.
type Service struct {
	users  UserDirectory
	cursor Cursor
	logger *slog.Logger
}

// NewService creates a new session service.
func NewService(users UserDirectory, cursor Cursor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		users:  users,
		cursor: cursor,
		logger: logger,
	}
}

// Login signs in the user with the given email. Emails match ignoring case
// and surrounding space.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*user.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, ErrInvalidCredentials
	}

	var found *user.User
	for _, u := range s.users.Users() {
		if strings.EqualFold(strings.TrimSpace(u.Email), email) {
			found = &u
			break
		}
	}
	if found == nil || req.Password != DemoPassword {
		s.logger.DebugContext(ctx, "login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	s.cursor.SetCurrentUser(ctx, found)
	s.logger.InfoContext(ctx, "login succeeded", "user_id", found.ID)
	return found, nil
}

// Register validates a sign-up form. No account is created: the demo signs
// in as the first known user.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	users := s.users.Users()
	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	u := users[0]
	s.cursor.SetCurrentUser(ctx, &u)
	s.logger.InfoContext(ctx, "registration signed in demo user", "user_id", u.ID, "email", req.Email)
	return &u, nil
}

// Logout clears the signed-in user.
func (s *Service) Logout(ctx context.Context) {
	s.cursor.SetCurrentUser(ctx, nil)
}

// Current returns the signed-in user, or nil.
func (s *Service) Current() *user.User {
	return s.cursor.CurrentUser()
}
