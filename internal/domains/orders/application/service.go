package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
)

// Service orchestrates order use cases.
type Service struct {
	repo   ports.Repository
	owners ports.OwnerDirectory
	now    func() time.Time
	newID  func() string
}

type Option func(*Service)

// WithClock overrides the transition timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides order identifier assignment.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(repo ports.Repository, owners ports.OwnerDirectory, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		owners: owners,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates and persists a new order owned by order.UserID.
// Nothing is persisted when validation fails.
func (s *Service) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}
	if order.ID == "" {
		order.ID = s.newID()
	}
	order.IsPaid = false
	order.PaidAt = nil
	order.PaymentResult = nil
	order.IsDelivered = false
	order.DeliveredAt = nil
	return s.repo.Create(ctx, order)
}

// GetOrderByID loads an order and resolves its owner's name and email.
// Any authenticated caller may fetch any order; there is no ownership check.
func (s *Service) GetOrderByID(ctx context.Context, id string) (*ports.OrderWithOwner, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.owners.GetOwner(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	return &ports.OrderWithOwner{Order: order, Owner: owner}, nil
}

// UpdateOrderToPaid records the payment confirmation. A repeat call re-applies
// the transition and overwrites the previous confirmation.
func (s *Service) UpdateOrderToPaid(ctx context.Context, id string, result domain.PaymentResult) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.MarkPaid(s.now(), result)
	return s.repo.Save(ctx, order)
}

// UpdateOrderToDelivered flips the delivery flag, independent of payment state.
func (s *Service) UpdateOrderToDelivered(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.MarkDelivered(s.now())
	return s.repo.Save(ctx, order)
}

// ListOrdersByUser returns all orders owned by the given user, unordered.
func (s *Service) ListOrdersByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListOrders returns every order in the store with its owner resolved.
func (s *Service) ListOrders(ctx context.Context) ([]*ports.OrderWithOwner, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(orders))
	seen := map[int64]bool{}
	for _, order := range orders {
		if !seen[order.UserID] {
			seen[order.UserID] = true
			ids = append(ids, order.UserID)
		}
	}
	owners, err := s.owners.GetOwners(ctx, ids)
	if err != nil {
		return nil, err
	}
	result := make([]*ports.OrderWithOwner, 0, len(orders))
	for _, order := range orders {
		result = append(result, &ports.OrderWithOwner{Order: order, Owner: owners[order.UserID]})
	}
	return result, nil
}

var _ ports.Service = (*Service)(nil)
