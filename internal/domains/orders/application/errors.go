package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoOrderItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrMissingProduct) ||
		errors.Is(err, domain.ErrMissingUser) ||
		errors.Is(err, domain.ErrMissingPaymentMethod) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
