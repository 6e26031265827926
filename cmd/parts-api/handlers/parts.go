package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fgauto/parts-engine/internal/catalog"
)

// PartDTO is a catalog part enriched with display price and OEM numbers for
// the session's vehicle.
type PartDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Price        float64  `json:"price"`
	DisplayPrice string   `json:"displayPrice"`
	Stock        string   `json:"stock,omitempty"`
	SKU          string   `json:"sku,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Fits         string   `json:"fits,omitempty"`
	OEMNumbers   []string `json:"oemNumbers,omitempty"`
}

// PartsResponseDTO is the catalog listing response.
type PartsResponseDTO struct {
	Parts      []PartDTO `json:"parts"`
	Categories []string  `json:"categories"`
}

func (h *Handler) toPartDTO(p catalog.Part, fitmentKey, currencyCode string) PartDTO {
	dto := PartDTO{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Price:        p.Price,
		DisplayPrice: h.currency.Format(p.Price, currencyCode),
		Stock:        p.Stock,
		SKU:          p.SKU,
		Tags:         p.Tags,
		Fits:         p.Fits,
	}
	if fitmentKey != "" {
		dto.OEMNumbers = h.overlay.OEMNumbers(fitmentKey, p.ID)
	}
	return dto
}

// ListParts handles GET /parts. Query params: q, category, sort,
// fitment_only. The fitment-only filter is a Pro feature and requires a
// selected vehicle; with a selected vehicle unknown to the fitment overlay
// the result is empty by design.
func (h *Handler) ListParts(w http.ResponseWriter, r *http.Request) {
	s := h.loadSession(r)

	q := catalog.Query{
		Text:     r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Sort:     catalog.SortKey(r.URL.Query().Get("sort")),
	}
	if r.URL.Query().Get("fitment_only") == "true" && s.Tier.IsPro() {
		q.Restriction = s.Vehicle.Restriction()
	}

	parts := catalog.Filter(h.catalog.Parts(), q)
	dtos := make([]PartDTO, 0, len(parts))
	for _, p := range parts {
		dtos = append(dtos, h.toPartDTO(p, s.Vehicle.Key, s.Currency))
	}

	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, PartsResponseDTO{
		Parts:      dtos,
		Categories: h.catalog.PartCategories(),
	})
}

// ReplaceParts handles PUT /parts: the inventory editor's wholesale catalog
// replacement. Business tier only.
func (h *Handler) ReplaceParts(w http.ResponseWriter, r *http.Request) {
	s := h.loadSession(r)
	if !s.Tier.IsBusiness() {
		h.writeError(w, http.StatusForbidden, "inventory editing requires the Business tier", "")
		return
	}

	var parts []catalog.Part
	if err := json.NewDecoder(r.Body).Decode(&parts); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid parts payload", err.Error())
		return
	}
	for _, p := range parts {
		if p.ID == "" {
			h.writeError(w, http.StatusBadRequest, "every part needs an id", "")
			return
		}
		if p.Price < 0 {
			h.writeError(w, http.StatusBadRequest, "part prices must be non-negative", p.ID)
			return
		}
	}

	h.catalog.ReplaceParts(parts)
	h.logger.Info().Int("count", len(parts)).Msg("Catalog replaced")
	h.writeJSON(w, http.StatusOK, map[string]int{"count": len(parts)})
}

// ListMechanics handles GET /mechanics.
func (h *Handler) ListMechanics(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"mechanics": h.catalog.Mechanics(),
	})
}
