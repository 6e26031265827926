// Package currency converts catalog prices from the base currency into the
// shopper's selected display currency.
package currency

import (
	"fmt"
	"strconv"
	"strings"
)

// Table holds the conversion rates and display symbols keyed by currency code.
// Rates are multipliers applied to base-currency amounts.
type Table struct {
	Base    string             `yaml:"base" json:"base"`
	Rates   map[string]float64 `yaml:"rates" json:"rates"`
	Symbols map[string]string  `yaml:"symbols" json:"symbols"`
}

// Codes returns the known currency codes, base first.
func (t Table) Codes() []string {
	codes := make([]string, 0, len(t.Rates))
	if _, ok := t.Rates[t.Base]; ok {
		codes = append(codes, t.Base)
	}
	for code := range t.Rates {
		if code != t.Base {
			codes = append(codes, code)
		}
	}
	return codes
}

// Supported reports whether a currency code has a conversion rate.
func (t Table) Supported(code string) bool {
	_, ok := t.Rates[code]
	return ok
}

// Convert converts a base-currency amount into the target currency. Unknown
// codes fall back to a rate of 1, mirroring an unconfigured rate table.
func (t Table) Convert(baseAmount float64, code string) float64 {
	rate, ok := t.Rates[code]
	if !ok {
		rate = 1
	}
	return baseAmount * rate
}

// Format converts and renders an amount with the target currency's symbol,
// trimming to at most two decimal places.
func (t Table) Format(baseAmount float64, code string) string {
	converted := t.Convert(baseAmount, code)
	symbol := t.Symbols[code]
	s := strconv.FormatFloat(converted, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "" || s == "-" {
		s = "0"
	}
	return fmt.Sprintf("%s%s", symbol, s)
}
