// Package orders journals checkouts committed by the inventory engine so
// they can be looked up afterwards. The engine never reads the journal.
package orders

import (
	"context"
	"errors"

	"MiniCart/internal/inventory"
)

var ErrDuplicateOrder = errors.New("order already recorded")

type Store interface {
	Create(ctx context.Context, o inventory.Order) error
	Get(ctx context.Context, id string) (inventory.Order, bool, error)
	Ping(ctx context.Context) error
}
