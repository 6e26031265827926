// Package tier implements the access-level flag gating storefront features.
// Tiers are a feature-flag overlay, not a security boundary.
package tier

// Tier is the customer's plan level.
type Tier string

const (
	Free     Tier = "FREE"
	Pro      Tier = "PRO"
	Business Tier = "BUSINESS"
)

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	switch t {
	case Free, Pro, Business:
		return true
	}
	return false
}

// IsPro reports whether the tier unlocks Pro features: the fitment-only
// catalog filter and invoices.
func (t Tier) IsPro() bool {
	return t == Pro || t == Business
}

// IsBusiness reports whether the tier unlocks Business features: the admin
// editors, onboarding and webhook notifications.
func (t Tier) IsBusiness() bool {
	return t == Business
}

// Plan describes a tier for the pricing page.
type Plan struct {
	Name     string   `yaml:"name" json:"name"`
	Features []string `yaml:"features" json:"features"`
}

// Catalog holds the plan descriptions and activation codes.
type Catalog struct {
	Plans       map[Tier]Plan   `yaml:"plans" json:"plans"`
	AccessCodes map[string]Tier `yaml:"accessCodes" json:"-"`
}

// Activate resolves an access code to its tier. ok is false for unknown codes.
func (c Catalog) Activate(code string) (Tier, bool) {
	t, ok := c.AccessCodes[code]
	if !ok || !t.Valid() {
		return "", false
	}
	return t, true
}
