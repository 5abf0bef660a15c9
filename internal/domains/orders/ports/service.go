package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
)

// Owner is the resolved display identity of the user who placed an order.
type Owner struct {
	ID    int64
	Name  string
	Email string
}

// OrderWithOwner pairs an order with its resolved owner for read views.
type OrderWithOwner struct {
	Order *domain.Order
	Owner Owner
}

// OwnerDirectory resolves order owners from the users context. A missing user
// resolves to a zero Owner rather than an error.
type OwnerDirectory interface {
	GetOwner(ctx context.Context, id int64) (Owner, error)
	GetOwners(ctx context.Context, ids []int64) (map[int64]Owner, error)
}

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (*OrderWithOwner, error)
	UpdateOrderToPaid(ctx context.Context, id string, result domain.PaymentResult) (*domain.Order, error)
	UpdateOrderToDelivered(ctx context.Context, id string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	ListOrders(ctx context.Context) ([]*OrderWithOwner, error)
}
