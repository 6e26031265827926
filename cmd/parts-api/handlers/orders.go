package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fgauto/parts-engine/internal/order"
)

// PlaceOrderDTO is an order submission.
type PlaceOrderDTO struct {
	Channel  string         `json:"channel"`
	Customer order.Customer `json:"customer"`
}

// OrderResponseDTO carries the outbound order: the prefilled channel URL and
// the rendered message body.
type OrderResponseDTO struct {
	OrderID string `json:"orderId"`
	Channel string `json:"channel"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// webhookTimeout bounds the fire-and-forget delivery after the response has
// already been written.
const webhookTimeout = 15 * time.Second

// PlaceOrder handles POST /orders. The engine never takes payment itself; it
// hands the shopper a prefilled WhatsApp, email or hosted-payment link. The
// webhook notification fires asynchronously for Business-tier sessions and
// its failures are swallowed.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	s := h.loadSession(r)
	if len(s.Cart.Lines) == 0 {
		h.writeError(w, http.StatusBadRequest, "cart is empty", "")
		return
	}

	channel := order.Channel(strings.ToUpper(req.Channel))
	text := h.builder.Text(s.Cart, req.Customer, s.Vehicle.Key, s.Currency)

	var (
		url string
		err error
	)
	switch channel {
	case order.ChannelWhatsApp:
		url, err = order.WhatsAppURL(h.business.WhatsAppNumber, text)
	case order.ChannelEmail:
		url, err = order.MailtoURL(h.business.Email, h.business.Name+" - Parts Order", text)
	case order.ChannelPaystack:
		url, err = order.PaystackURL(h.payments.PaystackPaymentPage, s.Cart.Subtotal(h.catalog), req.Customer.Name)
	case order.ChannelStripe:
		url, err = order.StripeURL(h.payments.StripePaymentLink)
	default:
		h.writeError(w, http.StatusBadRequest, "unknown channel", req.Channel)
		return
	}
	if err != nil {
		if errors.Is(err, order.ErrChannelNotConfigured) {
			h.writeError(w, http.StatusConflict, "channel not configured", err.Error())
			return
		}
		h.writeError(w, http.StatusInternalServerError, "order build failed", err.Error())
		return
	}

	orderID := uuid.NewString()
	h.logger.Info().
		Str("order_id", orderID).
		Str("channel", string(channel)).
		Int("lines", len(s.Cart.Lines)).
		Float64("subtotal", s.Cart.Subtotal(h.catalog)).
		Msg("Order placed")

	if s.Tier.IsBusiness() && h.notifier.Enabled() {
		event := order.OrderEvent{
			Type:         "ORDER",
			OrderID:      orderID,
			Channel:      channel,
			CreatedAt:    time.Now().UTC(),
			Cart:         s.Cart.Lines,
			SubtotalBase: s.Cart.Subtotal(h.catalog),
			FitmentKey:   s.Vehicle.Key,
			Customer:     req.Customer,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
			defer cancel()
			h.notifier.Notify(ctx, event)
		}()
	}

	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, OrderResponseDTO{
		OrderID: orderID,
		Channel: string(channel),
		URL:     url,
		Message: text,
	})
}

// Invoice handles POST /orders/invoice: a Pro feature rendering the cart as
// a structured invoice document.
func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	s := h.loadSession(r)
	if !s.Tier.IsPro() {
		h.writeError(w, http.StatusForbidden, "invoice is a Pro feature", "")
		return
	}
	if len(s.Cart.Lines) == 0 {
		h.writeError(w, http.StatusBadRequest, "cart is empty", "")
		return
	}

	inv := h.builder.Invoice(s.Cart, req.Customer, s.Vehicle.Key, s.Currency)
	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, inv)
}

// SubmitOnboarding handles POST /onboarding: a partner application. The
// application is stored, a WhatsApp deep link is returned and the webhook
// fires asynchronously.
func (h *Handler) SubmitOnboarding(w http.ResponseWriter, r *http.Request) {
	var app order.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if app.Name == "" || app.Phone == "" {
		h.writeError(w, http.StatusBadRequest, "name and phone are required", "")
		return
	}
	app.SubmittedAt = time.Now().UTC()

	if err := order.SaveApplication(r.Context(), h.blobs, app); err != nil {
		h.logger.Warn().Err(err).Msg("Onboarding save failed")
	}

	url, err := order.WhatsAppURL(h.business.WhatsAppNumber, app.Text())
	if err != nil {
		h.writeError(w, http.StatusConflict, "channel not configured", err.Error())
		return
	}

	s := h.loadSession(r)
	if s.Tier.IsBusiness() && h.notifier.Enabled() {
		event := order.OnboardingEvent{
			Type:      "ONBOARDING",
			CreatedAt: time.Now().UTC(),
			Payload:   app.Text(),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
			defer cancel()
			h.notifier.Notify(ctx, event)
		}()
	}

	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "submitted",
		"url":    url,
	})
}
