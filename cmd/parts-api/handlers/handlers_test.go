package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func testDataset() *catalog.Dataset {
	return &catalog.Dataset{
		Parts: []catalog.Part{
			{ID: "radiator", Name: "Radiator", Category: "Cooling", Price: 85000, Stock: "In stock"},
			{ID: "pads", Name: "Brake Pads", Category: "Brakes", Price: 28000, Stock: "In stock"},
			{ID: "battery", Name: "Battery 60Ah", Category: "Electrical", Price: 65000, Stock: "In stock"},
		},
		PartCategories: []string{"Cooling", "Brakes", "Electrical"},
		Symptoms: []catalog.Symptom{
			{
				ID:       "engine-overheating",
				Title:    "Engine overheating",
				Category: "Engine",
				Wizard: catalog.Wizard{
					Questions: []catalog.Question{
						{ID: "gauge", Text: "Where does the gauge sit?", Options: []string{"Red zone", "Normal"}},
					},
					Outcomes: []catalog.Outcome{
						{
							When:             map[string]string{"gauge": "Red zone"},
							Diagnosis:        "Cooling system failure",
							Severity:         catalog.SeverityHigh,
							Causes:           []string{"Low coolant", "Failed radiator"},
							RecommendedParts: []string{"radiator"},
						},
						{
							Diagnosis: "Monitor and recheck",
							Severity:  catalog.SeverityLow,
						},
					},
				},
			},
		},
		Mechanics: []catalog.Mechanic{
			{Name: "Ade's Garage", Specialty: "Engine", Location: "Ikeja", Phone: "0801"},
		},
		Fitment: fitment.OverlayData{
			Fitment: map[string][]string{
				"TOYOTA|COROLLA|2015|1.8": {"radiator", "pads"},
			},
			OEMPartNumbers: map[string]map[string][]string{
				"TOYOTA|COROLLA|2015|1.8": {"radiator": {"16410-0T040"}},
			},
		},
		Currency: currency.Table{
			Base:    "NGN",
			Rates:   map[string]float64{"NGN": 1, "USD": 0.00065},
			Symbols: map[string]string{"NGN": "₦", "USD": "$"},
		},
	}
}

type testEnv struct {
	handler *Handler
	router  chi.Router
	blobs   *storage.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ds := testDataset()
	store := catalog.NewStore(ds)
	overlay := fitment.NewOverlay(ds.Fitment)
	blobs := storage.NewMemoryStore()
	logger := observability.Nop()

	h := New(Deps{
		Logger:   logger,
		Catalog:  store,
		Overlay:  overlay,
		Sessions: session.NewManager(blobs, session.ManagerConfig{}),
		Blobs:    blobs,
		Builder:  order.NewBuilder(store, overlay, ds.Currency, "Test Motors"),
		Notifier: order.NewNotifier("", time.Second, logger),
		Currency: ds.Currency,
		Tiers: tier.Catalog{
			Plans:       map[tier.Tier]tier.Plan{tier.Free: {Name: "Free"}},
			AccessCodes: map[string]tier.Tier{"PRO-CODE": tier.Pro, "BIZ-CODE": tier.Business},
		},
		Business: config.BusinessConfig{
			Name:           "Test Motors",
			WhatsAppNumber: "2348000000000",
			Email:          "orders@test.example.com",
		},
		Payments: config.PaymentsConfig{},
	})

	r := chi.NewRouter()
	r.Get("/parts", h.ListParts)
	r.Put("/parts", h.ReplaceParts)
	r.Get("/mechanics", h.ListMechanics)
	r.Get("/symptoms", h.ListSymptoms)
	r.Get("/symptoms/{symptomID}", h.GetSymptom)
	r.Post("/diagnose/{symptomID}/answers", h.Answer)
	r.Post("/diagnose/match", h.Match)
	r.Post("/assist", h.Assist)
	r.Get("/cart", h.GetCart)
	r.Delete("/cart", h.ClearCart)
	r.Post("/cart/items", h.AddCartItem)
	r.Patch("/cart/items/{partID}", h.SetCartQty)
	r.Delete("/cart/items/{partID}", h.RemoveCartItem)
	r.Post("/orders", h.PlaceOrder)
	r.Post("/orders/invoice", h.Invoice)
	r.Post("/tier/activate", h.Activate)

	return &testEnv{handler: h, router: r, blobs: blobs}
}

// do performs a request and decodes the JSON response into out when non-nil.
func (e *testEnv) do(t *testing.T, method, path, sessionID string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func TestListParts(t *testing.T) {
	env := newTestEnv(t)

	var resp PartsResponseDTO
	rec := env.do(t, http.MethodGet, "/parts", "", nil, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Parts, 3)
	assert.Equal(t, []string{"Cooling", "Brakes", "Electrical"}, resp.Categories)
	assert.NotEmpty(t, rec.Header().Get(SessionHeader), "new shoppers learn their session id")
	assert.Equal(t, "₦85000", resp.Parts[0].DisplayPrice)

	// Text filter narrows.
	rec = env.do(t, http.MethodGet, "/parts?q=brake", "", nil, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Parts, 1)
	assert.Equal(t, "pads", resp.Parts[0].ID)
}

func TestReplaceParts_TierGate(t *testing.T) {
	env := newTestEnv(t)
	payload := []catalog.Part{{ID: "new-part", Name: "New", Price: 100}}

	rec := env.do(t, http.MethodPut, "/parts", "", payload, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Activate the Business tier, then retry on the same session.
	var act ActivateResponseDTO
	rec = env.do(t, http.MethodPost, "/tier/activate", "", ActivateRequestDTO{Code: "BIZ-CODE"}, &act)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tier.Business, act.Tier)
	sid := rec.Header().Get(SessionHeader)
	require.NotEmpty(t, sid)

	rec = env.do(t, http.MethodPut, "/parts", sid, payload, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp PartsResponseDTO
	env.do(t, http.MethodGet, "/parts", sid, nil, &resp)
	require.Len(t, resp.Parts, 1)
	assert.Equal(t, "new-part", resp.Parts[0].ID)
}

func TestActivate_UnknownCode(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/tier/activate", "", ActivateRequestDTO{Code: "WRONG"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDiagnoseAnswerFlow(t *testing.T) {
	env := newTestEnv(t)

	var resp ResolutionDTO
	rec := env.do(t, http.MethodPost, "/diagnose/engine-overheating/answers", "",
		AnswerRequestDTO{QuestionID: "gauge", Option: "Red zone"}, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Outcome)
	assert.Equal(t, "Cooling system failure", resp.Outcome.Diagnosis)
	assert.Equal(t, "High", resp.Outcome.Severity)
	require.Len(t, resp.Outcome.RecommendedParts, 1)
	assert.Equal(t, "radiator", resp.Outcome.RecommendedParts[0].ID)

	// Unknown option is rejected before touching the session.
	rec = env.do(t, http.MethodPost, "/diagnose/engine-overheating/answers", "",
		AnswerRequestDTO{QuestionID: "gauge", Option: "Purple zone"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/diagnose/no-such-symptom/answers", "",
		AnswerRequestDTO{QuestionID: "gauge", Option: "Red zone"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMatch(t *testing.T) {
	env := newTestEnv(t)

	var resp MatchResponseDTO
	rec := env.do(t, http.MethodPost, "/diagnose/match", "",
		MatchRequestDTO{Text: "my engine overheats in traffic"}, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Matched)
	require.NotNil(t, resp.Symptom)
	assert.Equal(t, "engine-overheating", resp.Symptom.ID)

	var miss MatchResponseDTO
	rec = env.do(t, http.MethodPost, "/diagnose/match", "",
		MatchRequestDTO{Text: "hm"}, &miss)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, miss.Matched)
	assert.Nil(t, miss.Symptom)
}

func TestCartLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/cart/items", "", AddCartItemDTO{PartID: "ghost"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var cart CartDTO
	rec = env.do(t, http.MethodPost, "/cart/items", "", AddCartItemDTO{PartID: "pads"}, &cart)
	require.Equal(t, http.StatusOK, rec.Code)
	sid := rec.Header().Get(SessionHeader)
	require.NotEmpty(t, sid)

	// Adding the same part again increments the existing line.
	env.do(t, http.MethodPost, "/cart/items", sid, AddCartItemDTO{PartID: "pads"}, &cart)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Qty)
	assert.Equal(t, "₦56000", cart.Subtotal)

	// Quantities clamp instead of erroring.
	env.do(t, http.MethodPatch, "/cart/items/pads", sid, SetCartQtyDTO{Qty: 5000}, &cart)
	assert.Equal(t, 999, cart.Lines[0].Qty)

	env.do(t, http.MethodDelete, "/cart/items/pads", sid, nil, &cart)
	assert.Empty(t, cart.Lines)

	env.do(t, http.MethodPost, "/cart/items", sid, AddCartItemDTO{PartID: "radiator"}, nil)
	env.do(t, http.MethodDelete, "/cart", sid, nil, &cart)
	assert.Empty(t, cart.Lines)
	assert.Equal(t, 0, cart.Count)
}

func TestPlaceOrder(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/orders", "",
		PlaceOrderDTO{Channel: "whatsapp"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "empty cart is rejected")

	var cart CartDTO
	rec = env.do(t, http.MethodPost, "/cart/items", "", AddCartItemDTO{PartID: "radiator"}, &cart)
	sid := rec.Header().Get(SessionHeader)
	require.NotEmpty(t, sid)

	var resp OrderResponseDTO
	rec = env.do(t, http.MethodPost, "/orders", sid,
		PlaceOrderDTO{Channel: "whatsapp", Customer: order.Customer{Name: "Ada"}}, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, "WHATSAPP", resp.Channel)
	assert.Contains(t, resp.URL, "https://wa.me/2348000000000?text=")
	assert.Contains(t, resp.Message, "Test Motors - New Order")

	// Paystack has no payment page configured.
	rec = env.do(t, http.MethodPost, "/orders", sid, PlaceOrderDTO{Channel: "paystack"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/orders", sid, PlaceOrderDTO{Channel: "carrier-pigeon"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvoice_ProGate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/cart/items", "", AddCartItemDTO{PartID: "pads"}, nil)
	sid := rec.Header().Get(SessionHeader)
	require.NotEmpty(t, sid)

	rec = env.do(t, http.MethodPost, "/orders/invoice", sid, PlaceOrderDTO{}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	env.do(t, http.MethodPost, "/tier/activate", sid, ActivateRequestDTO{Code: "PRO-CODE"}, nil)
	rec = env.do(t, http.MethodPost, "/orders/invoice", sid, PlaceOrderDTO{Customer: order.Customer{Name: "Ada"}}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
