package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID    int
	Name  string
	Price decimal.Decimal
	Stock int
}

// LineItem is one priced cart or order line. Subtotal is Price*Quantity, unrounded.
type LineItem struct {
	ProductID int
	Name      string
	Price     decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
}

type CartView struct {
	Items      []LineItem
	TotalItems int
	TotalPrice decimal.Decimal
}

type Order struct {
	ID         string
	Items      []LineItem
	TotalItems int
	TotalPrice decimal.Decimal
	PlacedAt   time.Time
}

// Ack is the result of a successful cart mutation.
type Ack struct {
	Message string
}

type Receipt struct {
	Message string
	Order   Order
}

// DefaultProducts is the catalog a fresh process starts with.
func DefaultProducts() []Product {
	return []Product{
		{ID: 101, Name: "Laptop Charger", Price: decimal.RequireFromString("75.00"), Stock: 5},
		{ID: 102, Name: "Wireless Mouse", Price: decimal.RequireFromString("25.00"), Stock: 10},
		{ID: 103, Name: "USB-C Hub", Price: decimal.RequireFromString("40.00"), Stock: 2},
		{ID: 104, Name: "Monitor Stand", Price: decimal.RequireFromString("50.00"), Stock: 15},
	}
}
