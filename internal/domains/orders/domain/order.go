package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNoOrderItems         = errors.New("no order items")
	ErrInvalidQuantity      = errors.New("item quantity must be greater than zero")
	ErrInvalidPrice         = errors.New("item price must not be negative")
	ErrMissingProduct       = errors.New("item product reference is required")
	ErrMissingUser          = errors.New("order must reference a user")
	ErrMissingPaymentMethod = errors.New("payment method is required")
)

// OrderItem is a single purchased line item. Name, image, and price are
// snapshotted at order time so later catalog edits do not rewrite history.
type OrderItem struct {
	ProductID string
	Name      string
	Image     string
	Qty       int32
	Price     float64
}

// ShippingAddress is embedded in the order and set once at creation.
type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

// PaymentResult captures the payment provider's confirmation.
type PaymentResult struct {
	ProviderID string
	Status     string
	UpdateTime string
	PayerEmail string
}

// Order models the purchase order aggregate. Monetary amounts are computed by
// the caller and stored verbatim.
type Order struct {
	ID              string
	UserID          int64
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   string
	ItemsPrice      float64
	TaxPrice        float64
	ShippingPrice   float64
	TotalPrice      float64
	IsPaid          bool
	PaidAt          *time.Time
	PaymentResult   *PaymentResult
	IsDelivered     bool
	DeliveredAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder validates and constructs a new Order aggregate for the given user.
// The identifier is assigned later, when the order is placed.
func NewOrder(userID int64, items []OrderItem, address ShippingAddress, paymentMethod string,
	itemsPrice, taxPrice, shippingPrice, totalPrice float64) (*Order, error) {
	order := &Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   strings.TrimSpace(paymentMethod),
		ItemsPrice:      itemsPrice,
		TaxPrice:        taxPrice,
		ShippingPrice:   shippingPrice,
		TotalPrice:      totalPrice,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.UserID <= 0 {
		return ErrMissingUser
	}
	if len(o.Items) == 0 {
		return ErrNoOrderItems
	}
	for _, item := range o.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return ErrMissingProduct
		}
		if item.Qty <= 0 {
			return ErrInvalidQuantity
		}
		if item.Price < 0 {
			return ErrInvalidPrice
		}
	}
	if o.PaymentMethod == "" {
		return ErrMissingPaymentMethod
	}
	return nil
}

// MarkPaid flips the order to paid and records the provider confirmation.
// Re-applying overwrites PaidAt and PaymentResult; last write wins.
func (o *Order) MarkPaid(now time.Time, result PaymentResult) {
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = &result
}

// MarkDelivered flips the order to delivered, independent of payment state.
// Re-applying overwrites DeliveredAt; last write wins.
func (o *Order) MarkDelivered(now time.Time) {
	o.IsDelivered = true
	o.DeliveredAt = &now
}
