package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validItems() []OrderItem {
	return []OrderItem{
		{ProductID: "p1", Name: "Widget", Qty: 2, Price: 10},
		{ProductID: "p2", Name: "Gadget", Qty: 1, Price: 17.5},
	}
}

func TestNewOrder_StartsUnpaidAndUndelivered(t *testing.T) {
	order, err := NewOrder(7, validItems(), ShippingAddress{Address: "1 Main St", City: "Metropolis"}, "PayPal", 37.5, 3, 2, 42.5)

	require.NoError(t, err)
	require.False(t, order.IsPaid)
	require.Nil(t, order.PaidAt)
	require.Nil(t, order.PaymentResult)
	require.False(t, order.IsDelivered)
	require.Nil(t, order.DeliveredAt)
	require.Equal(t, 42.5, order.TotalPrice)
}

func TestNewOrder_NoItems(t *testing.T) {
	_, err := NewOrder(7, nil, ShippingAddress{}, "PayPal", 0, 0, 0, 0)
	require.ErrorIs(t, err, ErrNoOrderItems)
}

func TestNewOrder_InvalidItem(t *testing.T) {
	items := []OrderItem{{ProductID: "p1", Qty: 0, Price: 10}}
	_, err := NewOrder(7, items, ShippingAddress{}, "PayPal", 10, 0, 0, 10)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	items = []OrderItem{{ProductID: "", Qty: 1, Price: 10}}
	_, err = NewOrder(7, items, ShippingAddress{}, "PayPal", 10, 0, 0, 10)
	require.ErrorIs(t, err, ErrMissingProduct)

	items = []OrderItem{{ProductID: "p1", Qty: 1, Price: -1}}
	_, err = NewOrder(7, items, ShippingAddress{}, "PayPal", 10, 0, 0, 10)
	require.ErrorIs(t, err, ErrInvalidPrice)
}

func TestNewOrder_MissingUserAndPaymentMethod(t *testing.T) {
	_, err := NewOrder(0, validItems(), ShippingAddress{}, "PayPal", 10, 0, 0, 10)
	require.ErrorIs(t, err, ErrMissingUser)

	_, err = NewOrder(7, validItems(), ShippingAddress{}, "  ", 10, 0, 0, 10)
	require.ErrorIs(t, err, ErrMissingPaymentMethod)
}

func TestMarkPaid_OverwritesOnRepeat(t *testing.T) {
	order, err := NewOrder(7, validItems(), ShippingAddress{}, "PayPal", 10, 0, 0, 10)
	require.NoError(t, err)

	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	order.MarkPaid(first, PaymentResult{ProviderID: "PAY1", Status: "COMPLETED"})
	require.True(t, order.IsPaid)
	require.Equal(t, first, *order.PaidAt)
	require.Equal(t, "PAY1", order.PaymentResult.ProviderID)

	second := first.Add(time.Hour)
	order.MarkPaid(second, PaymentResult{ProviderID: "PAY2", Status: "COMPLETED"})
	require.Equal(t, second, *order.PaidAt)
	require.Equal(t, "PAY2", order.PaymentResult.ProviderID)
}

func TestMarkDelivered_IndependentOfPayment(t *testing.T) {
	order, err := NewOrder(7, validItems(), ShippingAddress{}, "PayPal", 10, 0, 0, 10)
	require.NoError(t, err)

	when := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	order.MarkDelivered(when)

	require.True(t, order.IsDelivered)
	require.Equal(t, when, *order.DeliveredAt)
	require.False(t, order.IsPaid)
}
