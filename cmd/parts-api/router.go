// Package main provides the API router setup.
package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fgauto/parts-engine/cmd/parts-api/handlers"
	"github.com/fgauto/parts-engine/cmd/parts-api/middleware"
	"github.com/fgauto/parts-engine/internal/config"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(h *handlers.Handler, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(requestTimeout(cfg)))

	// Health check (unauthenticated)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"parts-engine"}`))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ready"}`))
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Catalog routes
		r.Route("/parts", func(r chi.Router) {
			r.Get("/", h.ListParts)
			r.Put("/", h.ReplaceParts)
		})
		r.Get("/mechanics", h.ListMechanics)

		// Diagnostic routes
		r.Route("/symptoms", func(r chi.Router) {
			r.Get("/", h.ListSymptoms)
			r.Get("/{symptomID}", h.GetSymptom)
		})
		r.Route("/diagnose", func(r chi.Router) {
			r.Post("/{symptomID}/answers", h.Answer)
			r.Post("/match", h.Match)
		})
		r.Post("/assist", h.Assist)

		// Vehicle routes
		r.Post("/vin/decode", h.DecodeVIN)
		r.Route("/fitment", func(r chi.Router) {
			r.Get("/", h.ListFitment)
			r.Put("/", h.SaveFitment)
			r.Delete("/", h.DeleteFitment)
			r.Get("/export", h.ExportFitment)
			r.Post("/import", h.ImportFitment)
		})

		// Cart routes
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Patch("/items/{partID}", h.SetCartQty)
			r.Delete("/items/{partID}", h.RemoveCartItem)
		})

		// Order routes
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.PlaceOrder)
			r.Post("/invoice", h.Invoice)
		})

		// Partner onboarding
		r.Route("/onboarding", func(r chi.Router) {
			r.Get("/", h.ListOnboarding)
			r.Post("/", h.SubmitOnboarding)
		})

		// Plans and preferences
		r.Get("/pricing", h.Pricing)
		r.Post("/tier/activate", h.Activate)
		r.Put("/preferences", h.UpdatePreferences)
		r.Get("/currencies", h.ListCurrencies)
	})

	return r
}

func requestTimeout(cfg config.ServerConfig) time.Duration {
	if cfg.RequestTimeout > 0 {
		return cfg.RequestTimeout
	}
	return 30 * time.Second
}
