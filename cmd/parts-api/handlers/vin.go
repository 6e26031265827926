package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fgauto/parts-engine/internal/fitment"
	"github.com/fgauto/parts-engine/internal/session"
)

// DecodeRequestDTO is a VIN decode request.
type DecodeRequestDTO struct {
	VIN  string `json:"vin"`
	Year string `json:"year,omitempty"`
}

// DecodeResponseDTO carries the decoded vehicle and resulting fitment state.
type DecodeResponseDTO struct {
	Vehicle        fitment.DecodedVehicle `json:"vehicle"`
	FitmentKey     string                 `json:"fitmentKey"`
	HasFitmentData bool                   `json:"hasFitmentData"`
	EligibleParts  []string               `json:"eligiblePartIds,omitempty"`
}

// DecodeVIN handles POST /vin/decode. The session's fitment selection is only
// updated once a fully-formed decoded record is available; decode failures
// leave prior state untouched.
func (h *Handler) DecodeVIN(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	decoded, err := h.decoder.Decode(r.Context(), req.VIN, req.Year)
	if err != nil {
		if errors.Is(err, fitment.ErrInvalidVIN) {
			h.writeError(w, http.StatusBadRequest, "enter a valid VIN (usually 17 characters)", err.Error())
			return
		}
		h.logger.Warn().Err(err).Msg("VIN decode failed")
		h.writeError(w, http.StatusBadGateway, "decode failed (check connection or VIN)", err.Error())
		return
	}

	key := decoded.FitmentKey()
	eligible, hasData := h.overlay.EligibleParts(key)

	s := h.loadSession(r)
	s.Vehicle = session.VehicleSelection{
		Key:            key,
		Make:           decoded.Make,
		Model:          decoded.Model,
		Year:           decoded.ModelYear,
		Engine:         decoded.EngineLabel(),
		EligibleParts:  eligible,
		HasFitmentData: hasData,
	}
	h.saveSession(w, r, s)

	h.writeJSON(w, http.StatusOK, DecodeResponseDTO{
		Vehicle:        *decoded,
		FitmentKey:     key,
		HasFitmentData: hasData,
		EligibleParts:  eligible,
	})
}
