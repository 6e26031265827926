package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fgauto/parts-engine/internal/session"
)

// CartLineDTO is one cart row with resolved part details.
type CartLineDTO struct {
	PartID     string   `json:"partId"`
	Name       string   `json:"name"`
	Qty        int      `json:"qty"`
	Unit       string   `json:"unit"`
	Total      string   `json:"total"`
	OEMNumbers []string `json:"oemNumbers,omitempty"`
}

// CartDTO is the full cart view.
type CartDTO struct {
	Lines    []CartLineDTO `json:"lines"`
	Count    int           `json:"count"`
	Subtotal string        `json:"subtotal"`
}

func (h *Handler) toCartDTO(s *session.Session) CartDTO {
	dto := CartDTO{Lines: []CartLineDTO{}, Count: s.Cart.Count()}
	for _, l := range s.Cart.Lines {
		p, ok := h.catalog.PartByID(l.PartID)
		if !ok {
			// Part vanished from the catalog; the line stays stored but
			// renders as nothing and contributes nothing to the subtotal.
			continue
		}
		line := CartLineDTO{
			PartID: l.PartID,
			Name:   p.Name,
			Qty:    l.Qty,
			Unit:   h.currency.Format(p.Price, s.Currency),
			Total:  h.currency.Format(p.Price*float64(l.Qty), s.Currency),
		}
		if s.Vehicle.Key != "" {
			line.OEMNumbers = h.overlay.OEMNumbers(s.Vehicle.Key, l.PartID)
		}
		dto.Lines = append(dto.Lines, line)
	}
	dto.Subtotal = h.currency.Format(s.Cart.Subtotal(h.catalog), s.Currency)
	return dto
}

// GetCart handles GET /cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.loadSession(r)
	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, h.toCartDTO(s))
}

// AddCartItemDTO adds one unit of a part.
type AddCartItemDTO struct {
	PartID string `json:"partId"`
}

// AddCartItem handles POST /cart/items. Adding an unknown part is rejected;
// adding a part already in the cart increments its line.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if _, ok := h.catalog.PartByID(req.PartID); !ok {
		h.writeError(w, http.StatusNotFound, "part not found", req.PartID)
		return
	}

	s := h.loadSession(r)
	s.Cart.Add(req.PartID)
	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, h.toCartDTO(s))
}

// SetCartQtyDTO sets a line's quantity.
type SetCartQtyDTO struct {
	Qty int `json:"qty"`
}

// SetCartQty handles PATCH /cart/items/{partID}. Quantities clamp into the
// allowed range rather than erroring.
func (h *Handler) SetCartQty(w http.ResponseWriter, r *http.Request) {
	var req SetCartQtyDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	s := h.loadSession(r)
	s.Cart.SetQty(chi.URLParam(r, "partID"), req.Qty)
	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, h.toCartDTO(s))
}

// RemoveCartItem handles DELETE /cart/items/{partID}.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	s := h.loadSession(r)
	s.Cart.Remove(chi.URLParam(r, "partID"))
	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, h.toCartDTO(s))
}

// ClearCart handles DELETE /cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := h.loadSession(r)
	s.Cart.Clear()
	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, h.toCartDTO(s))
}
