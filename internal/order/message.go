// Package order builds outbound order messages and delivers them through the
// configured external channels: WhatsApp, email, hosted payment pages and an
// optional webhook.
package order

import (
	"fmt"
	"strings"

	"github.com/fgauto/parts-engine/internal/cart"
	"github.com/fgauto/parts-engine/internal/catalog"
	"github.com/fgauto/parts-engine/internal/currency"
	"github.com/fgauto/parts-engine/internal/fitment"
)

// Customer is the buyer detail block attached to an order message.
type Customer struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Vehicle  string `json:"vehicle,omitempty"`
	VINPlate string `json:"vinPlate,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Builder renders order and invoice text from the current catalog state.
type Builder struct {
	store    *catalog.Store
	overlay  *fitment.Overlay
	table    currency.Table
	business string
}

// NewBuilder creates an order message builder. businessName heads every
// rendered message.
func NewBuilder(store *catalog.Store, overlay *fitment.Overlay, table currency.Table, businessName string) *Builder {
	return &Builder{store: store, overlay: overlay, table: table, business: businessName}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// groupThousands renders an integer amount with comma separators.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Text renders the plain-text order message: itemized lines with OEM
// annotations, the subtotal in the shopper's currency plus the base-currency
// subtotal, and the customer block.
func (b *Builder) Text(c cart.Cart, cust Customer, fitmentKey, currencyCode string) string {
	var items []string
	for _, l := range c.Lines {
		name := l.PartID
		var price float64
		if p, ok := b.store.PartByID(l.PartID); ok {
			name = p.Name
			price = p.Price
		}
		oemStr := ""
		if fitmentKey != "" {
			if oems := b.overlay.OEMNumbers(fitmentKey, l.PartID); len(oems) > 0 {
				oemStr = fmt.Sprintf(" (OEM: %s)", strings.Join(oems, ", "))
			}
		}
		items = append(items, fmt.Sprintf("- %s%s x%d = %s",
			name, oemStr, l.Qty, b.table.Format(price*float64(l.Qty), currencyCode)))
	}

	subtotal := c.Subtotal(b.store)
	customer := strings.Join([]string{
		"Name: " + orDash(cust.Name),
		"Phone: " + orDash(cust.Phone),
		"Location: " + orDash(cust.Location),
		"Vehicle: " + orDash(cust.Vehicle),
		"VIN/Plate: " + orDash(cust.VINPlate),
		"Fitment Key: " + orDash(fitmentKey),
		"Notes: " + orDash(cust.Notes),
	}, "\n")

	return fmt.Sprintf(
		"%s - New Order\n\nItems:\n%s\n\nSubtotal: %s\n(Base %s subtotal: %s%s)\n\nCustomer:\n%s\n\nPlease confirm availability, delivery fee, and payment details.",
		b.business,
		strings.Join(items, "\n"),
		b.table.Format(subtotal, currencyCode),
		b.table.Base,
		b.table.Symbols[b.table.Base],
		groupThousands(int64(subtotal)),
		customer,
	)
}

// InvoiceLine is one row of a rendered invoice.
type InvoiceLine struct {
	Name       string   `json:"name"`
	OEMNumbers []string `json:"oemNumbers,omitempty"`
	Qty        int      `json:"qty"`
	Unit       string   `json:"unit"`
	Total      string   `json:"total"`
}

// Invoice is the structured invoice document for Pro customers.
type Invoice struct {
	Business      string        `json:"business"`
	Customer      Customer      `json:"customer"`
	FitmentKey    string        `json:"fitmentKey,omitempty"`
	Lines         []InvoiceLine `json:"lines"`
	TotalBase     string        `json:"totalBase"`
	TotalSelected string        `json:"totalSelected"`
}

// Invoice renders the cart as a structured invoice.
func (b *Builder) Invoice(c cart.Cart, cust Customer, fitmentKey, currencyCode string) Invoice {
	inv := Invoice{
		Business:   b.business,
		Customer:   cust,
		FitmentKey: fitmentKey,
	}
	for _, l := range c.Lines {
		name := l.PartID
		var price float64
		if p, ok := b.store.PartByID(l.PartID); ok {
			name = p.Name
			price = p.Price
		}
		var oems []string
		if fitmentKey != "" {
			oems = b.overlay.OEMNumbers(fitmentKey, l.PartID)
		}
		inv.Lines = append(inv.Lines, InvoiceLine{
			Name:       name,
			OEMNumbers: oems,
			Qty:        l.Qty,
			Unit:       b.table.Format(price, currencyCode),
			Total:      b.table.Format(price*float64(l.Qty), currencyCode),
		})
	}
	subtotal := c.Subtotal(b.store)
	inv.TotalBase = fmt.Sprintf("%s%s", b.table.Symbols[b.table.Base], groupThousands(int64(subtotal)))
	inv.TotalSelected = b.table.Format(subtotal, currencyCode)
	return inv
}
