package directory

import (
	"context"
	"errors"

	ordersports "github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
	usersports "github.com/Apurer/go-gin-order-api/internal/domains/users/ports"
)

var _ ordersports.OwnerDirectory = (*UserDirectory)(nil)

// UserDirectory resolves order owners through the users repository. It keeps
// the orders context decoupled from the users domain model.
type UserDirectory struct {
	users usersports.Repository
}

func New(users usersports.Repository) *UserDirectory {
	return &UserDirectory{users: users}
}

// GetOwner resolves one owner. A deleted user yields a zero Owner so order
// reads keep working after account removal.
func (d *UserDirectory) GetOwner(ctx context.Context, id int64) (ordersports.Owner, error) {
	user, err := d.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, usersports.ErrNotFound) {
			return ordersports.Owner{}, nil
		}
		return ordersports.Owner{}, err
	}
	return ordersports.Owner{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// GetOwners resolves a batch of owners in one repository round trip.
func (d *UserDirectory) GetOwners(ctx context.Context, ids []int64) (map[int64]ordersports.Owner, error) {
	users, err := d.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	owners := make(map[int64]ordersports.Owner, len(users))
	for _, user := range users {
		owners[user.ID] = ordersports.Owner{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	return owners, nil
}
