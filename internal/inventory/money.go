package inventory

import "github.com/shopspring/decimal"

const moneyPlaces = 2

// RoundTotal rounds an aggregate amount to cents, half away from zero.
// Amounts in this package are never negative, so this is half-up.
func RoundTotal(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

func lineSubtotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

func priceLine(p Product, qty int) LineItem {
	return LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		Subtotal:  lineSubtotal(p.Price, qty),
	}
}
