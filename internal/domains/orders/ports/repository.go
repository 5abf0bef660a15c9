package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders. Create inserts a new order, Save updates an
// existing one; both return the persisted state including store timestamps.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
