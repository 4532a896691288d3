package inventory

import "slices"

type cartLine struct {
	productID int
	quantity  int
}

// cart maps product IDs to positive quantities, iterated in insertion order.
type cart struct {
	order []int
	qty   map[int]int
}

func newCart() *cart {
	return &cart{qty: map[int]int{}}
}

func (c *cart) quantity(id int) (int, bool) {
	q, ok := c.qty[id]
	return q, ok
}

func (c *cart) set(id, q int) {
	if _, ok := c.qty[id]; !ok {
		c.order = append(c.order, id)
	}
	c.qty[id] = q
}

func (c *cart) remove(id int) {
	if _, ok := c.qty[id]; !ok {
		return
	}
	delete(c.qty, id)
	c.order = slices.DeleteFunc(c.order, func(x int) bool { return x == id })
}

func (c *cart) lines() []cartLine {
	out := make([]cartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, cartLine{productID: id, quantity: c.qty[id]})
	}
	return out
}

func (c *cart) empty() bool { return len(c.order) == 0 }

func (c *cart) clear() {
	c.order = nil
	c.qty = map[int]int{}
}
