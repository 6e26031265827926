// Package fitment maps specific vehicles to the catalog parts known to be
// compatible with them, plus OEM reference numbers.
package fitment

import "strings"

// Key builds the canonical fitment key MAKE|MODEL|YEAR|ENGINE. Make and model
// are upper-cased and trimmed; year and engine are trimmed only.
func Key(make, model, year, engine string) string {
	return strings.Join([]string{
		strings.ToUpper(strings.TrimSpace(make)),
		strings.ToUpper(strings.TrimSpace(model)),
		strings.TrimSpace(year),
		strings.TrimSpace(engine),
	}, "|")
}

// SplitKey decomposes a fitment key into its four components. Missing
// components come back empty.
func SplitKey(key string) (make, model, year, engine string) {
	parts := strings.SplitN(key, "|", 4)
	get := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	return get(0), get(1), get(2), get(3)
}

// ValidKey reports whether every component of the key is present.
func ValidKey(key string) bool {
	parts := strings.Split(key, "|")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return false
		}
	}
	return true
}
