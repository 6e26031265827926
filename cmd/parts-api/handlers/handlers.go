// Package handlers provides HTTP handlers for the parts engine API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fgauto/parts-engine/internal/catalog"
	"github.com/fgauto/parts-engine/internal/config"
	"github.com/fgauto/parts-engine/internal/currency"
	"github.com/fgauto/parts-engine/internal/fitment"
	"github.com/fgauto/parts-engine/internal/observability"
	"github.com/fgauto/parts-engine/internal/order"
	"github.com/fgauto/parts-engine/internal/session"
	"github.com/fgauto/parts-engine/internal/storage"
	"github.com/fgauto/parts-engine/internal/tier"
)

// SessionHeader carries the shopper's session id on requests and responses.
const SessionHeader = "X-Session-ID"

// Handler bundles the storefront dependencies behind the HTTP surface.
type Handler struct {
	logger   *observability.Logger
	catalog  *catalog.Store
	overlay  *fitment.Overlay
	sessions *session.Manager
	blobs    storage.Store
	decoder  *fitment.Decoder
	builder  *order.Builder
	notifier *order.Notifier
	currency currency.Table
	tiers    tier.Catalog
	business config.BusinessConfig
	payments config.PaymentsConfig
}

// Deps holds everything a Handler needs.
type Deps struct {
	Logger   *observability.Logger
	Catalog  *catalog.Store
	Overlay  *fitment.Overlay
	Sessions *session.Manager
	Blobs    storage.Store
	Decoder  *fitment.Decoder
	Builder  *order.Builder
	Notifier *order.Notifier
	Currency currency.Table
	Tiers    tier.Catalog
	Business config.BusinessConfig
	Payments config.PaymentsConfig
}

// New creates the API handler set.
func New(d Deps) *Handler {
	return &Handler{
		logger:   d.Logger,
		catalog:  d.Catalog,
		overlay:  d.Overlay,
		sessions: d.Sessions,
		blobs:    d.Blobs,
		decoder:  d.Decoder,
		builder:  d.Builder,
		notifier: d.Notifier,
		currency: d.Currency,
		tiers:    d.Tiers,
		business: d.Business,
		payments: d.Payments,
	}
}

// loadSession resolves the request's session, creating a fresh one when the
// header is absent or the stored blob is unusable.
func (h *Handler) loadSession(r *http.Request) *session.Session {
	return h.sessions.Load(r.Context(), r.Header.Get(SessionHeader))
}

// saveSession persists the session and echoes its id so new shoppers learn
// their id from the first response. Persistence failures are logged, not
// surfaced; the response still reflects the in-memory state.
func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if err := h.sessions.Save(r.Context(), s); err != nil {
		h.logger.Warn().Err(err).Str("session_id", s.ID).Msg("Session save failed")
	}
	w.Header().Set(SessionHeader, s.ID)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, detail string) {
	resp := map[string]string{"error": message}
	if detail != "" {
		resp["detail"] = detail
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
