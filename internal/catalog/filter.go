package catalog

import (
	"sort"
	"strings"
)

// SortKey selects the ordering of filtered results.
type SortKey string

const (
	// SortRelevance preserves catalog order.
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "priceAsc"
	SortPriceDesc SortKey = "priceDesc"
	SortNameAsc   SortKey = "nameAsc"
)

// CategoryAll matches every category.
const CategoryAll = "all"

// Restriction narrows the catalog to an explicit part id set, typically the
// eligible parts for a selected vehicle. A non-nil Restriction whose IDs slice
// is nil means a vehicle is selected but no fitment data exists for it; the
// filter excludes every part in that case rather than falling open.
type Restriction struct {
	IDs []string
}

// Allows reports whether the restriction permits the given part id.
func (r *Restriction) Allows(partID string) bool {
	if r == nil {
		return true
	}
	for _, id := range r.IDs {
		if id == partID {
			return true
		}
	}
	return false
}

// Query describes one catalog filter request.
type Query struct {
	Text        string
	Category    string
	Sort        SortKey
	Restriction *Restriction
}

// Filter returns the ordered subset of parts matching the query. A part
// passes when it matches the free-text query, the category filter and the
// fitment restriction. Sorting is stable; SortRelevance keeps catalog order.
func Filter(parts []Part, q Query) []Part {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	category := q.Category
	if category == "" {
		category = CategoryAll
	}

	out := make([]Part, 0, len(parts))
	for _, p := range parts {
		if text != "" {
			hay := strings.ToLower(p.Name + " " + p.Category + " " + strings.Join(p.Tags, " ") + " " + p.Fits)
			if !strings.Contains(hay, text) {
				continue
			}
		}
		if category != CategoryAll && p.Category != category {
			continue
		}
		if !q.Restriction.Allows(p.ID) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}

// SearchSymptoms returns symptoms matching a free-text query against title and
// summary plus an optional category filter.
func SearchSymptoms(symptoms []Symptom, text, category string) []Symptom {
	q := strings.ToLower(strings.TrimSpace(text))
	if category == "" {
		category = CategoryAll
	}

	out := make([]Symptom, 0, len(symptoms))
	for _, s := range symptoms {
		if q != "" && !strings.Contains(strings.ToLower(s.Title+" "+s.Summary), q) {
			continue
		}
		if category != CategoryAll && s.Category != category {
			continue
		}
		out = append(out, s)
	}
	return out
}
