package inventory

import (
	"errors"
	"fmt"
)

var errBadCatalog = errors.New("inventory: bad catalog")

// catalog keeps products in seed order. Not safe for concurrent use;
// Engine guards it.
type catalog struct {
	order []int
	byID  map[int]*Product
}

func newCatalog(products []Product) (*catalog, error) {
	c := &catalog{
		order: make([]int, 0, len(products)),
		byID:  make(map[int]*Product, len(products)),
	}

	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %d", errBadCatalog, p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("%w: product %d has negative price", errBadCatalog, p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("%w: product %d has negative stock", errBadCatalog, p.ID)
		}

		c.byID[p.ID] = &p
		c.order = append(c.order, p.ID)
	}

	return c, nil
}

func (c *catalog) list() []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.byID[id])
	}
	return out
}

func (c *catalog) get(id int) (Product, bool) {
	p, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

// debit does not re-check stock. Callers must have validated n against the
// current stock while holding the engine lock.
func (c *catalog) debit(id, n int) {
	c.byID[id].Stock -= n
}
