package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/go-gin-order-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-order-api/internal/domains/users/ports"
)

// Service exposes user use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	tokens   ports.TokenIssuer
}

func NewService(repo ports.Repository, sessions ports.SessionStore, tokens ports.TokenIssuer) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{repo: repo, sessions: sessions, tokens: tokens}
}

// Register creates a new account. Email addresses are unique.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, mapError(err)
	}
	if existing, err := s.repo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, ports.ErrEmailTaken
	} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.repo.Save(ctx, user)
}

// Login verifies credentials, issues a token, and records the session.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, "", mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, "", mapError(ports.ErrInvalidCredentials)
		}
		return nil, "", err
	}
	if !user.CheckPassword(password) {
		return nil, "", mapError(ports.ErrInvalidCredentials)
	}
	token, err := s.tokens.Issue(user.ID, user.Name, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	if err := s.sessions.Save(ctx, user.ID, token); err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetProfile returns the caller's own account.
func (s *Service) GetProfile(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Logout drops the caller's server-side session.
func (s *Service) Logout(ctx context.Context, id int64) {
	if id <= 0 {
		return
	}
	_ = s.sessions.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
