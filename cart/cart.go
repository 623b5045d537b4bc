// Package cart holds the guest's client-local cart: the mutable set of
// lines built while browsing, before checkout turns it into an immutable
// order. A cart is not tied to any table; the table is only resolved when
// the order is placed.
package cart

import (
	"sync"

	"github.com/qrdine/qr-menu/utils"
)

// Line is one (menu item, note) pair with a quantity. The name and price
// are the menu snapshot taken when the item was added.
type Line struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Qty        int     `json:"qty"`
	Note       string  `json:"note,omitempty"`
}

type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add merges into an existing line when the same (menuItemId, note) pair is
// already present, otherwise appends a new line. At most one line exists
// per pair.
func (c *Cart) Add(menuItemID, name string, price float64, qty int, note string) {
	if qty < 1 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID && c.lines[i].Note == note {
			c.lines[i].Qty += qty
			return
		}
	}
	c.lines = append(c.lines, Line{
		MenuItemID: menuItemID,
		Name:       name,
		Price:      price,
		Qty:        qty,
		Note:       note,
	})
}

// SetQuantity sets the quantity of the (menuItemId, note) line; a quantity
// of zero or less removes the line.
func (c *Cart) SetQuantity(menuItemID, note string, qty int) {
	if qty <= 0 {
		c.Remove(menuItemID, note)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID && c.lines[i].Note == note {
			c.lines[i].Qty = qty
			return
		}
	}
}

func (c *Cart) Remove(menuItemID, note string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	for _, line := range c.lines {
		if !(line.MenuItemID == menuItemID && line.Note == note) {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// Clear empties the cart; called after a successful placement.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Subtotal sums per-line totals, each rounded to cents, matching what the
// server computes at placement.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sum float64
	for _, line := range c.lines {
		sum += utils.LineTotal(line.Price, line.Qty)
	}
	return sum
}
