package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fgauto/parts-engine/internal/order"
	"github.com/fgauto/parts-engine/internal/tier"
)

// PricingResponseDTO lists the available plans and the session's current tier.
type PricingResponseDTO struct {
	Plans       map[tier.Tier]tier.Plan `json:"plans"`
	CurrentTier tier.Tier               `json:"currentTier"`
}

// Pricing handles GET /pricing.
func (h *Handler) Pricing(w http.ResponseWriter, r *http.Request) {
	s := h.loadSession(r)
	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, PricingResponseDTO{
		Plans:       h.tiers.Plans,
		CurrentTier: s.Tier,
	})
}

// ActivateRequestDTO carries an access code.
type ActivateRequestDTO struct {
	Code string `json:"code"`
}

// ActivateResponseDTO reports the tier the code unlocked.
type ActivateResponseDTO struct {
	Tier     tier.Tier `json:"tier"`
	Features []string  `json:"features,omitempty"`
}

// Activate handles POST /tier/activate. Unknown codes are rejected without
// changing the session.
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	var req ActivateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	t, ok := h.tiers.Activate(strings.TrimSpace(req.Code))
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "invalid access code", "")
		return
	}

	s := h.loadSession(r)
	s.Tier = t
	h.saveSession(w, r, s)

	h.logger.Info().Str("session_id", s.ID).Str("tier", string(t)).Msg("Tier activated")
	h.writeJSON(w, http.StatusOK, ActivateResponseDTO{
		Tier:     t,
		Features: h.tiers.Plans[t].Features,
	})
}

// PreferencesDTO carries the shopper's display settings. Empty fields are
// left unchanged.
type PreferencesDTO struct {
	Currency string `json:"currency,omitempty"`
	Language string `json:"language,omitempty"`
}

// UpdatePreferences handles PUT /preferences.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req PreferencesDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	s := h.loadSession(r)
	if req.Currency != "" {
		code := strings.ToUpper(strings.TrimSpace(req.Currency))
		if !h.currency.Supported(code) {
			h.writeError(w, http.StatusBadRequest, "unsupported currency", code)
			return
		}
		s.Currency = code
	}
	if req.Language != "" {
		s.Language = req.Language
	}
	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, PreferencesDTO{Currency: s.Currency, Language: s.Language})
}

// CurrenciesResponseDTO lists the supported currency codes and their symbols.
type CurrenciesResponseDTO struct {
	Base       string            `json:"base"`
	Currencies []string          `json:"currencies"`
	Symbols    map[string]string `json:"symbols"`
}

// ListCurrencies handles GET /currencies.
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, CurrenciesResponseDTO{
		Base:       h.currency.Base,
		Currencies: h.currency.Codes(),
		Symbols:    h.currency.Symbols,
	})
}

// ListOnboarding handles GET /onboarding: the Business admin view of
// submitted partner applications, newest first.
func (h *Handler) ListOnboarding(w http.ResponseWriter, r *http.Request) {
	s := h.loadSession(r)
	if !s.Tier.IsBusiness() {
		h.writeError(w, http.StatusForbidden, "onboarding review is a Business feature", "")
		return
	}
	apps := order.ListApplications(r.Context(), h.blobs)
	if apps == nil {
		apps = []order.Application{}
	}
	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, apps)
}
