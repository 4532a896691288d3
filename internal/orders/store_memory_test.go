package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiniCart/internal/inventory"
)

func sampleOrder(id string) inventory.Order {
	return inventory.Order{
		ID: id,
		Items: []inventory.LineItem{
			{
				ProductID: 103,
				Name:      "USB-C Hub",
				Price:     decimal.RequireFromString("40.00"),
				Quantity:  2,
				Subtotal:  decimal.RequireFromString("80.00"),
			},
			{
				ProductID: 102,
				Name:      "Wireless Mouse",
				Price:     decimal.RequireFromString("25.00"),
				Quantity:  1,
				Subtotal:  decimal.RequireFromString("25.00"),
			},
		},
		TotalItems: 3,
		TotalPrice: decimal.RequireFromString("105.00"),
		PlacedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Create(ctx, sampleOrder("o_1")))

	got, ok, err := s.Get(ctx, "o_1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "o_1", got.ID)
	assert.Equal(t, 3, got.TotalItems)
	assert.Len(t, got.Items, 2)

	_, ok, err = s.Get(ctx, "o_missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemStore_DuplicateID(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.Create(ctx, sampleOrder("o_1")))
	assert.ErrorIs(t, s.Create(ctx, sampleOrder("o_1")), ErrDuplicateOrder)
}

func TestMemStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	require.NoError(t, s.Create(ctx, sampleOrder("o_1")))

	got, _, _ := s.Get(ctx, "o_1")
	got.Items[0].Quantity = 99

	again, _, _ := s.Get(ctx, "o_1")
	assert.Equal(t, 2, again.Items[0].Quantity)
}
