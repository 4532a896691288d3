package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("product not found")
	ErrNotInCart         = errors.New("product not in cart")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrCheckoutFailed    = errors.New("checkout failed")
)

var clientErrors = []error{
	ErrInvalidArgument,
	ErrNotFound,
	ErrNotInCart,
	ErrInsufficientStock,
	ErrEmptyCart,
	ErrCheckoutFailed,
}

// Shortage describes a requested quantity that the catalog cannot cover.
type Shortage struct {
	ProductID int
	Name      string
	Available int
	Requested int
}

// Error is returned by every failing Engine operation. Kind is one of the
// Err* sentinels and is what errors.Is matches against.
type Error struct {
	Kind       error
	Msg        string
	Shortage   *Shortage
	Violations []string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

// IsClientError reports whether err was caused by the caller's input or the
// current cart/stock state rather than by a fault in the engine.
func IsClientError(err error) bool {
	for _, k := range clientErrors {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

func invalidArgument(msg string) *Error {
	return &Error{Kind: ErrInvalidArgument, Msg: msg}
}

func notFound(id int) *Error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf("Product with ID %d not found", id)}
}

func notInCart(id int) *Error {
	return &Error{Kind: ErrNotInCart, Msg: fmt.Sprintf("Product with ID %d not in cart", id)}
}

func insufficientStock(p Product, requested int) *Error {
	return &Error{
		Kind: ErrInsufficientStock,
		Msg: fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d",
			p.Name, p.Stock, requested),
		Shortage: &Shortage{
			ProductID: p.ID,
			Name:      p.Name,
			Available: p.Stock,
			Requested: requested,
		},
	}
}

func emptyCart() *Error {
	return &Error{Kind: ErrEmptyCart, Msg: "Cart is empty"}
}

func checkoutFailed(violations []string) *Error {
	return &Error{
		Kind:       ErrCheckoutFailed,
		Msg:        "Checkout failed: " + strings.Join(violations, "; "),
		Violations: violations,
	}
}
