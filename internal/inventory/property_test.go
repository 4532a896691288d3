package inventory_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"MiniCart/internal/inventory"
)

// model is a straightforward reference implementation of the cart rules.
type model struct {
	price map[int]decimal.Decimal
	stock map[int]int
	cart  map[int]int
	order []int
}

func newModel() *model {
	m := &model{
		price: map[int]decimal.Decimal{},
		stock: map[int]int{},
		cart:  map[int]int{},
	}
	for _, p := range inventory.DefaultProducts() {
		m.price[p.ID] = p.Price
		m.stock[p.ID] = p.Stock
	}
	return m
}

func (m *model) add(id, qty int) error {
	if qty <= 0 {
		return inventory.ErrInvalidArgument
	}
	stock, ok := m.stock[id]
	if !ok {
		return inventory.ErrNotFound
	}
	if qty > stock-m.cart[id] {
		return inventory.ErrInsufficientStock
	}
	if _, ok := m.cart[id]; !ok {
		m.order = append(m.order, id)
	}
	m.cart[id] += qty
	return nil
}

func (m *model) update(id, qty int) error {
	if qty < 0 {
		return inventory.ErrInvalidArgument
	}
	stock, ok := m.stock[id]
	if !ok {
		return inventory.ErrNotFound
	}
	if _, ok := m.cart[id]; !ok {
		return inventory.ErrNotInCart
	}
	if qty == 0 {
		delete(m.cart, id)
		m.order = slices.DeleteFunc(m.order, func(x int) bool { return x == id })
		return nil
	}
	if qty > stock {
		return inventory.ErrInsufficientStock
	}
	m.cart[id] = qty
	return nil
}

func (m *model) checkout() (int, decimal.Decimal, error) {
	if len(m.order) == 0 {
		return 0, decimal.Zero, inventory.ErrEmptyCart
	}
	items, total := 0, decimal.Zero
	for _, id := range m.order {
		q := m.cart[id]
		m.stock[id] -= q
		items += q
		total = total.Add(m.price[id].Mul(decimal.NewFromInt(int64(q))))
	}
	m.cart = map[int]int{}
	m.order = nil
	return items, inventory.RoundTotal(total), nil
}

func (m *model) assertMatches(t *rapid.T, e *inventory.Engine) {
	for _, p := range e.ListProducts() {
		if p.Stock != m.stock[p.ID] {
			t.Fatalf("stock(%d)=%d want=%d", p.ID, p.Stock, m.stock[p.ID])
		}
		if p.Stock < 0 {
			t.Fatalf("stock(%d) negative", p.ID)
		}
	}

	v := e.Cart()
	if len(v.Items) != len(m.order) {
		t.Fatalf("cart has %d lines want=%d", len(v.Items), len(m.order))
	}
	for i, it := range v.Items {
		if it.ProductID != m.order[i] || it.Quantity != m.cart[it.ProductID] {
			t.Fatalf("line %d = %d x%d want %d x%d", i, it.ProductID, it.Quantity, m.order[i], m.cart[m.order[i]])
		}
		if it.Quantity <= 0 || it.Quantity > m.stock[it.ProductID] {
			t.Fatalf("line %d quantity %d outside (0, %d]", it.ProductID, it.Quantity, m.stock[it.ProductID])
		}
	}
}

func checkKind(t *rapid.T, op string, got, want error) {
	if want == nil {
		if got != nil {
			t.Fatalf("%s: unexpected error %v", op, got)
		}
		return
	}
	if !errors.Is(got, want) {
		t.Fatalf("%s: err=%v want kind %v", op, got, want)
	}
}

// quantityGen mostly draws small quantities but also hits both ends of the
// int range, where a running total could overflow.
func quantityGen() *rapid.Generator[int] {
	return rapid.OneOf(
		rapid.IntRange(-1, 7),
		rapid.IntRange(-1, 7),
		rapid.IntRange(-1, 7),
		rapid.IntRange(math.MaxInt-10, math.MaxInt),
		rapid.IntRange(math.MinInt, math.MinInt+10),
	)
}

func TestEngine_MatchesReferenceModel(t *testing.T) {
	ids := []int{101, 102, 103, 104, 999}

	rapid.Check(t, func(t *rapid.T) {
		e, err := inventory.NewEngine(inventory.DefaultProducts())
		if err != nil {
			t.Fatalf("new engine: %v", err)
		}
		m := newModel()

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.SampledFrom(ids).Draw(t, "id")
			qty := quantityGen().Draw(t, "qty")

			switch rapid.IntRange(0, 4).Draw(t, "op") {
			case 0, 1:
				_, err := e.AddToCart(id, qty)
				checkKind(t, "add", err, m.add(id, qty))
			case 2, 3:
				_, err := e.UpdateCart(id, qty)
				checkKind(t, "update", err, m.update(id, qty))
			case 4:
				before := snapshot(e)
				r, err := e.Checkout()
				items, total, want := m.checkout()
				checkKind(t, "checkout", err, want)
				if err != nil {
					if after := snapshot(e); after != before {
						t.Fatalf("failed checkout mutated state:\n%s\nvs\n%s", before, after)
					}
					break
				}
				if r.Order.TotalItems != items || !r.Order.TotalPrice.Equal(total) {
					t.Fatalf("order totals=%d/%s want=%d/%s", r.Order.TotalItems, r.Order.TotalPrice, items, total)
				}
			}

			m.assertMatches(t, e)
		}
	})
}

func TestAddToCart_SumOfAcceptedQuantities(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e, err := inventory.NewEngine(inventory.DefaultProducts())
		if err != nil {
			t.Fatalf("new engine: %v", err)
		}

		qtys := rapid.SliceOfN(rapid.OneOf(
			rapid.IntRange(1, 6),
			rapid.IntRange(math.MaxInt-10, math.MaxInt),
		), 1, 20).Draw(t, "qtys")
		accepted := 0
		for _, q := range qtys {
			if _, err := e.AddToCart(102, q); err == nil {
				accepted += q
			} else if !errors.Is(err, inventory.ErrInsufficientStock) {
				t.Fatalf("unexpected error %v", err)
			}

			got := 0
			for _, it := range e.Cart().Items {
				got += it.Quantity
			}
			if got != accepted {
				t.Fatalf("cart=%d accepted=%d", got, accepted)
			}
			if got > 10 {
				t.Fatalf("cart=%d exceeds stock", got)
			}
		}
	})
}

func TestUpdateCart_ZeroNeverFailsOnStock(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e, err := inventory.NewEngine(inventory.DefaultProducts())
		if err != nil {
			t.Fatalf("new engine: %v", err)
		}

		id := rapid.SampledFrom([]int{101, 102, 103, 104}).Draw(t, "id")
		p, _ := e.Product(id)
		q := rapid.IntRange(1, p.Stock).Draw(t, "qty")

		if _, err := e.AddToCart(id, q); err != nil {
			t.Fatalf("add: %v", err)
		}
		if _, err := e.UpdateCart(id, 0); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if n := len(e.Cart().Items); n != 0 {
			t.Fatalf("cart has %d lines after removal", n)
		}
	})
}
