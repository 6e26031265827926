// Package cart implements the shopping cart: one line per part, quantities
// clamped to a sane range, subtotals in the base currency.
package cart

import "github.com/fgauto/parts-engine/internal/catalog"

// Quantity bounds for a single cart line.
const (
	MinQty = 1
	MaxQty = 999
)

// Line is one cart entry.
type Line struct {
	PartID string `json:"id"`
	Qty    int    `json:"qty"`
}

// Cart is an ordered list of lines with at most one line per part id.
type Cart struct {
	Lines []Line `json:"lines"`
}

// ClampQty forces a quantity into [MinQty, MaxQty].
func ClampQty(qty int) int {
	if qty < MinQty {
		return MinQty
	}
	if qty > MaxQty {
		return MaxQty
	}
	return qty
}

// Add increments the line for a part, creating it with quantity 1 when absent.
func (c *Cart) Add(partID string) {
	for i := range c.Lines {
		if c.Lines[i].PartID == partID {
			c.Lines[i].Qty = ClampQty(c.Lines[i].Qty + 1)
			return
		}
	}
	c.Lines = append(c.Lines, Line{PartID: partID, Qty: 1})
}

// SetQty sets the quantity for an existing line, clamped into range. Lines
// for unknown parts are left untouched.
func (c *Cart) SetQty(partID string, qty int) {
	for i := range c.Lines {
		if c.Lines[i].PartID == partID {
			c.Lines[i].Qty = ClampQty(qty)
			return
		}
	}
}

// Remove deletes the line for a part.
func (c *Cart) Remove(partID string) {
	out := c.Lines[:0]
	for _, l := range c.Lines {
		if l.PartID != partID {
			out = append(out, l)
		}
	}
	c.Lines = out
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Count returns the total unit count across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Qty
	}
	return n
}

// Subtotal computes the base-currency subtotal against the current catalog.
// Lines whose part no longer exists contribute nothing.
func (c *Cart) Subtotal(store *catalog.Store) float64 {
	var sum float64
	for _, l := range c.Lines {
		if p, ok := store.PartByID(l.PartID); ok {
			sum += p.Price * float64(l.Qty)
		}
	}
	return sum
}
