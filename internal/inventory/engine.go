// Package inventory owns the product catalog and the shared cart and
// serializes every read and write of both behind a single lock.
package inventory

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderPlacedMsg = "Order placed successfully"

type Engine struct {
	mu      sync.Mutex
	catalog *catalog
	cart    *cart

	now     func() time.Time
	orderID func() string
}

type Option func(*Engine)

// WithClock sets the clock used to stamp placed orders.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithOrderIDs sets the generator for placed order IDs.
func WithOrderIDs(gen func() string) Option {
	return func(e *Engine) { e.orderID = gen }
}

func NewEngine(products []Product, opts ...Option) (*Engine, error) {
	c, err := newCatalog(products)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		catalog: c,
		cart:    newCart(),
		now:     time.Now,
		orderID: func() string { return "o_" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) ListProducts() []Product {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.catalog.list()
}

func (e *Engine) Product(id int) (Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.catalog.get(id)
	if !ok {
		return Product{}, notFound(id)
	}
	return p, nil
}

// AddToCart adds quantity to the product's cart line, creating it if needed.
// The resulting line total may not exceed the product's stock.
func (e *Engine) AddToCart(productID, quantity int) (Ack, error) {
	if quantity <= 0 {
		return Ack{}, invalidArgument("Quantity must be greater than 0")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.catalog.get(productID)
	if !ok {
		return Ack{}, notFound(productID)
	}

	// Compare against the headroom left on the line so a huge quantity
	// cannot overflow the running total.
	current, _ := e.cart.quantity(productID)
	if quantity > p.Stock-current {
		return Ack{}, insufficientStock(p, saturatingAdd(current, quantity))
	}

	e.cart.set(productID, current+quantity)
	return Ack{Message: fmt.Sprintf("Added %d x %s to cart", quantity, p.Name)}, nil
}

// UpdateCart sets an existing cart line to exactly quantity. Zero removes
// the line.
func (e *Engine) UpdateCart(productID, quantity int) (Ack, error) {
	if quantity < 0 {
		return Ack{}, invalidArgument("Quantity cannot be negative")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.catalog.get(productID)
	if !ok {
		return Ack{}, notFound(productID)
	}
	if _, inCart := e.cart.quantity(productID); !inCart {
		return Ack{}, notInCart(productID)
	}

	if quantity == 0 {
		e.cart.remove(productID)
		return Ack{Message: fmt.Sprintf("Removed %s from cart", p.Name)}, nil
	}

	if quantity > p.Stock {
		return Ack{}, insufficientStock(p, quantity)
	}

	e.cart.set(productID, quantity)
	return Ack{Message: fmt.Sprintf("Updated %s quantity to %d", p.Name, quantity)}, nil
}

func (e *Engine) Cart() CartView {
	e.mu.Lock()
	defer e.mu.Unlock()

	view := CartView{Items: []LineItem{}, TotalPrice: decimal.Zero}
	total := decimal.Zero

	for _, l := range e.cart.lines() {
		p, ok := e.catalog.get(l.productID)
		if !ok {
			continue
		}
		item := priceLine(p, l.quantity)
		view.Items = append(view.Items, item)
		view.TotalItems += item.Quantity
		total = total.Add(item.Subtotal)
	}

	view.TotalPrice = RoundTotal(total)
	return view
}

// Checkout validates every cart line against current stock and, only if
// all of them pass, debits stock and clears the cart. Both phases run under
// one hold of the lock, so a failed checkout changes nothing.
func (e *Engine) Checkout() (Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cart.empty() {
		return Receipt{}, emptyCart()
	}

	lines := e.cart.lines()
	if violations := e.validate(lines); len(violations) > 0 {
		return Receipt{}, checkoutFailed(violations)
	}

	return Receipt{Message: orderPlacedMsg, Order: e.commit(lines)}, nil
}

func (e *Engine) validate(lines []cartLine) []string {
	var violations []string
	for _, l := range lines {
		p, ok := e.catalog.get(l.productID)
		if !ok {
			violations = append(violations, fmt.Sprintf("Product ID %d not found", l.productID))
			continue
		}
		if l.quantity > p.Stock {
			violations = append(violations, fmt.Sprintf(
				"%s: Insufficient stock (Available: %d, Requested: %d)",
				p.Name, p.Stock, l.quantity))
		}
	}
	return violations
}

// commit must only run after validate returned no violations under the
// same lock hold.
func (e *Engine) commit(lines []cartLine) Order {
	o := Order{
		ID:       e.orderID(),
		Items:    make([]LineItem, 0, len(lines)),
		PlacedAt: e.now().UTC(),
	}
	total := decimal.Zero

	for _, l := range lines {
		p, _ := e.catalog.get(l.productID)
		e.catalog.debit(l.productID, l.quantity)

		item := priceLine(p, l.quantity)
		o.Items = append(o.Items, item)
		o.TotalItems += item.Quantity
		total = total.Add(item.Subtotal)
	}

	o.TotalPrice = RoundTotal(total)
	e.cart.clear()
	return o
}

// saturatingAdd returns a+b for non-negative operands, capped at math.MaxInt.
func saturatingAdd(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}
