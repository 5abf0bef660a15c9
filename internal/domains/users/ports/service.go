package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-api/internal/domains/users/domain"
)

// TokenIssuer mints an authentication token for a logged-in user.
type TokenIssuer interface {
	Issue(userID int64, name string, admin bool) (string, error)
}

// Service exposes user use cases to adapters.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetProfile(ctx context.Context, id int64) (*domain.User, error)
	Logout(ctx context.Context, id int64)
}
