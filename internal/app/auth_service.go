package app

import (
	"context"
	"errors"

	"github.com/calatours/backoffice/internal/auth"
	"github.com/calatours/backoffice/internal/clock"
	"github.com/calatours/backoffice/internal/domain"
)

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

// AuthService authenticates operators and issues bearer tokens.
type AuthService struct {
	repo   UserRepository
	clock  clock.Clock
	secret string
}

func NewAuthService(repo UserRepository, clk clock.Clock, secret string) *AuthService {
	return &AuthService{repo: repo, clock: clk, secret: secret}
}

// Login verifies the operator's credentials and returns a signed token. A
// missing user and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", domain.ErrInvalidCredentials
	}
	return auth.GenerateToken(s.secret, user.ID, user.Email, user.Role, s.clock.Now())
}
