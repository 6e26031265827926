package order

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fgauto/parts-engine/internal/cart"
	"github.com/fgauto/parts-engine/internal/observability"
)

// OrderEvent is the webhook payload sent when an order is placed.
type OrderEvent struct {
	Type         string      `json:"type"`
	OrderID      string      `json:"orderId"`
	Channel      Channel     `json:"channel"`
	CreatedAt    time.Time   `json:"createdAt"`
	Cart         []cart.Line `json:"cart"`
	SubtotalBase float64     `json:"subtotalBase"`
	FitmentKey   string      `json:"fitmentKey"`
	Customer     Customer    `json:"customer"`
}

// OnboardingEvent is the webhook payload sent on a partner application.
type OnboardingEvent struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	Payload   string    `json:"payload"`
}

// Notifier delivers event payloads to the configured webhook destination.
// Delivery is best effort: failures are logged and swallowed, never surfaced
// to the ordering flow.
type Notifier struct {
	url        string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewNotifier creates a webhook notifier. An empty URL disables delivery.
func NewNotifier(url string, timeout time.Duration, logger *observability.Logger) *Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Enabled reports whether a destination is configured.
func (n *Notifier) Enabled() bool {
	return n.url != ""
}

// Notify posts the payload as JSON. Errors are logged, never returned.
func (n *Notifier) Notify(ctx context.Context, payload interface{}) {
	if !n.Enabled() {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		n.logger.Warn().Err(err).Msg("Webhook payload marshal failed")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn().Err(err).Msg("Webhook request build failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Warn().Err(err).Str("url", n.url).Msg("Webhook delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		n.logger.Warn().Int("status", resp.StatusCode).Str("url", n.url).Msg("Webhook rejected")
	}
}
