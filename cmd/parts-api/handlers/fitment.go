package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/fgauto/parts-engine/internal/fitment"
	"github.com/fgauto/parts-engine/internal/session"
)

// FitmentEntryDTO is one vehicle key's fitment data.
type FitmentEntryDTO struct {
	Key            string              `json:"key"`
	EligibleParts  []string            `json:"eligiblePartIds"`
	OEMPartNumbers map[string][]string `json:"oemPartNumbers,omitempty"`
}

// ListFitment handles GET /fitment. Without a key query param it returns the
// sorted key list; with one it returns that key's entry.
func (h *Handler) ListFitment(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		keys := h.overlay.Keys()
		sort.Strings(keys)
		h.writeJSON(w, http.StatusOK, map[string][]string{"keys": keys})
		return
	}

	ids, ok := h.overlay.EligibleParts(key)
	if !ok {
		h.writeError(w, http.StatusNotFound, "no fitment found for this key", "")
		return
	}

	entry := FitmentEntryDTO{Key: key, EligibleParts: ids, OEMPartNumbers: map[string][]string{}}
	for _, id := range ids {
		if oems := h.overlay.OEMNumbers(key, id); len(oems) > 0 {
			entry.OEMPartNumbers[id] = oems
		}
	}
	h.writeJSON(w, http.StatusOK, entry)
}

// SaveFitment handles PUT /fitment: the fitment builder's save action.
// Business tier only. All four key components must be present.
func (h *Handler) SaveFitment(w http.ResponseWriter, r *http.Request) {
	s := h.loadSession(r)
	if !s.Tier.IsBusiness() {
		h.writeError(w, http.StatusForbidden, "fitment editing requires the Business tier", "")
		return
	}

	var entry FitmentEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid fitment payload", err.Error())
		return
	}
	if !fitment.ValidKey(entry.Key) {
		h.writeError(w, http.StatusBadRequest, "fill make, model, year and engine", "")
		return
	}

	h.overlay.Set(entry.Key, entry.EligibleParts, entry.OEMPartNumbers)
	h.logger.Info().Str("key", entry.Key).Int("parts", len(entry.EligibleParts)).Msg("Fitment saved")
	h.writeJSON(w, http.StatusOK, entry)
}

// DeleteFitment handles DELETE /fitment?key=. Business tier only. When the
// deleted key is the session's current vehicle, the selection is cleared too.
func (h *Handler) DeleteFitment(w http.ResponseWriter, r *http.Request) {
	s := h.loadSession(r)
	if !s.Tier.IsBusiness() {
		h.writeError(w, http.StatusForbidden, "fitment editing requires the Business tier", "")
		return
	}

	key := r.URL.Query().Get("key")
	if !h.overlay.Delete(key) {
		h.writeError(w, http.StatusNotFound, "no fitment found for this key", "")
		return
	}

	if s.Vehicle.Key == key {
		s.Vehicle = session.VehicleSelection{}
	}
	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, map[string]string{"deleted": key})
}

// ExportFitment handles GET /fitment/export: a full snapshot for backup.
func (h *Handler) ExportFitment(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.overlay.Snapshot())
}

// ImportFitment handles POST /fitment/import: wholesale overlay replacement.
// Business tier only.
func (h *Handler) ImportFitment(w http.ResponseWriter, r *http.Request) {
	s := h.loadSession(r)
	if !s.Tier.IsBusiness() {
		h.writeError(w, http.StatusForbidden, "fitment editing requires the Business tier", "")
		return
	}

	var data fitment.OverlayData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid fitment payload", err.Error())
		return
	}
	h.overlay.Replace(data)
	h.logger.Info().Int("keys", len(data.Fitment)).Msg("Fitment overlay replaced")
	h.writeJSON(w, http.StatusOK, map[string]int{"keys": len(data.Fitment)})
}
