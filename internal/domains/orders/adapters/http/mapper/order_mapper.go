package mapper

import (
	"time"

	ordersdomain "github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
)

// OrderItem is the transport-layer line item shape.
type OrderItem struct {
	Product string  `json:"product"`
	Name    string  `json:"name"`
	Image   string  `json:"image,omitempty"`
	Qty     int32   `json:"qty"`
	Price   float64 `json:"price"`
}

// ShippingAddress is the transport-layer address shape.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// CreateOrderRequest is the POST /api/orders payload. Prices arrive
// caller-computed and are stored verbatim.
type CreateOrderRequest struct {
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
}

// PaymentConfirmation is the PUT /api/orders/:id/pay payload, matching the
// payment provider's callback document.
type PaymentConfirmation struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Payer      struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

// PaymentResult is the persisted confirmation as rendered in responses.
type PaymentResult struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	PayerEmail string `json:"email_address"`
}

// OrderUser is the resolved owner rendered inside order reads.
type OrderUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Order is the transport-layer order representation.
type Order struct {
	ID              string          `json:"id"`
	User            any             `json:"user"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToDomainOrder builds the order aggregate for the authenticated caller.
func ToDomainOrder(callerID int64, req CreateOrderRequest) (*ordersdomain.Order, error) {
	items := make([]ordersdomain.OrderItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		items = append(items, ordersdomain.OrderItem{
			ProductID: item.Product,
			Name:      item.Name,
			Image:     item.Image,
			Qty:       item.Qty,
			Price:     item.Price,
		})
	}
	return ordersdomain.NewOrder(
		callerID,
		items,
		ordersdomain.ShippingAddress{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		req.PaymentMethod,
		req.ItemsPrice,
		req.TaxPrice,
		req.ShippingPrice,
		req.TotalPrice,
	)
}

// ToDomainPaymentResult converts a provider confirmation payload.
func ToDomainPaymentResult(confirmation PaymentConfirmation) ordersdomain.PaymentResult {
	return ordersdomain.PaymentResult{
		ProviderID: confirmation.ID,
		Status:     confirmation.Status,
		UpdateTime: confirmation.UpdateTime,
		PayerEmail: confirmation.Payer.EmailAddress,
	}
}

// FromDomainOrder renders an order with the raw owner reference.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			Product: item.ProductID,
			Name:    item.Name,
			Image:   item.Image,
			Qty:     item.Qty,
			Price:   item.Price,
		})
	}
	result := Order{
		ID:         order.ID,
		User:       order.UserID,
		OrderItems: items,
		ShippingAddress: ShippingAddress{
			Address:    order.ShippingAddress.Address,
			City:       order.ShippingAddress.City,
			PostalCode: order.ShippingAddress.PostalCode,
			Country:    order.ShippingAddress.Country,
		},
		PaymentMethod: order.PaymentMethod,
		ItemsPrice:    order.ItemsPrice,
		TaxPrice:      order.TaxPrice,
		ShippingPrice: order.ShippingPrice,
		TotalPrice:    order.TotalPrice,
		IsPaid:        order.IsPaid,
		PaidAt:        order.PaidAt,
		IsDelivered:   order.IsDelivered,
		DeliveredAt:   order.DeliveredAt,
		CreatedAt:     order.CreatedAt,
	}
	if order.PaymentResult != nil {
		result.PaymentResult = &PaymentResult{
			ID:         order.PaymentResult.ProviderID,
			Status:     order.PaymentResult.Status,
			UpdateTime: order.PaymentResult.UpdateTime,
			PayerEmail: order.PaymentResult.PayerEmail,
		}
	}
	return result
}

// FromOrderWithOwner renders an order with its owner resolved inline.
func FromOrderWithOwner(view *ordersports.OrderWithOwner) Order {
	if view == nil {
		return Order{}
	}
	order := FromDomainOrder(view.Order)
	if view.Owner.ID != 0 {
		order.User = OrderUser{ID: view.Owner.ID, Name: view.Owner.Name, Email: view.Owner.Email}
	}
	return order
}

// FromDomainOrders renders a plain order list.
func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}

// FromOrdersWithOwner renders the administrative listing; owner email is
// omitted there, matching the narrower projection of the all-orders view.
func FromOrdersWithOwner(views []*ordersports.OrderWithOwner) []Order {
	result := make([]Order, 0, len(views))
	for _, view := range views {
		order := FromDomainOrder(view.Order)
		if view.Owner.ID != 0 {
			order.User = OrderUser{ID: view.Owner.ID, Name: view.Owner.Name}
		}
		result = append(result, order)
	}
	return result
}
