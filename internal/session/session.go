// Package session holds the per-shopper application state: cart, wizard
// answers, vehicle selection and preferences. State is an explicit struct
// passed through accessors, never ambient globals, and is persisted as a
// JSON blob in the key-value store.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fgauto/parts-engine/internal/cart"
	"github.com/fgauto/parts-engine/internal/catalog"
	"github.com/fgauto/parts-engine/internal/diagnose"
	"github.com/fgauto/parts-engine/internal/storage"
	"github.com/fgauto/parts-engine/internal/tier"
)

// VehicleSelection records the decoded vehicle behind the fitment filter.
// HasFitmentData distinguishes "vehicle set but unknown to the overlay" from
// "vehicle known with this eligible list"; the catalog filter fails closed in
// the former case.
type VehicleSelection struct {
	Key            string   `json:"key"`
	Make           string   `json:"make"`
	Model          string   `json:"model"`
	Year           string   `json:"year"`
	Engine         string   `json:"engine"`
	EligibleParts  []string `json:"eligiblePartIds"`
	HasFitmentData bool     `json:"hasFitmentData"`
}

// Restriction converts the selection into a catalog filter restriction.
// No selected vehicle means no restriction at all.
func (v VehicleSelection) Restriction() *catalog.Restriction {
	if v.Key == "" {
		return nil
	}
	if !v.HasFitmentData {
		return &catalog.Restriction{IDs: nil}
	}
	return &catalog.Restriction{IDs: v.EligibleParts}
}

// Session is one shopper's accumulated state.
type Session struct {
	ID                string           `json:"id"`
	Cart              cart.Cart        `json:"cart"`
	SelectedSymptomID string           `json:"selectedSymptomId"`
	Answers           diagnose.Answers `json:"wizardAnswers"`
	Vehicle           VehicleSelection `json:"fitment"`
	Tier              tier.Tier        `json:"tier"`
	Currency          string           `json:"currency"`
	Language          string           `json:"language"`
}

// SelectSymptom switches the wizard to a new symptom and clears accumulated
// answers.
func (s *Session) SelectSymptom(symptomID string) {
	s.SelectedSymptomID = symptomID
	s.Answers = diagnose.Answers{}
}

// Answer records one answer. It returns false when no symptom is selected.
func (s *Session) Answer(questionID, option string) bool {
	if s.SelectedSymptomID == "" {
		return false
	}
	if s.Answers == nil {
		s.Answers = diagnose.Answers{}
	}
	s.Answers[questionID] = option
	return true
}

// ManagerConfig holds session manager defaults.
type ManagerConfig struct {
	DefaultCurrency string
	DefaultLanguage string
}

// Manager loads and saves sessions through the blob store. Corrupt or missing
// blobs fall back to a fresh session; persistence problems are never fatal to
// the shopper.
type Manager struct {
	mu    sync.Mutex
	store storage.Store
	cfg   ManagerConfig
}

// NewManager creates a session manager backed by the given blob store.
func NewManager(store storage.Store, cfg ManagerConfig) *Manager {
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "NGN"
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "en"
	}
	return &Manager{store: store, cfg: cfg}
}

// New creates a fresh session with a generated id.
func (m *Manager) New() *Session {
	return &Session{
		ID:       uuid.NewString(),
		Answers:  diagnose.Answers{},
		Tier:     tier.Free,
		Currency: m.cfg.DefaultCurrency,
		Language: m.cfg.DefaultLanguage,
	}
}

func blobName(id string) string {
	return "session:" + id
}

// Load retrieves a session by id. Unknown ids and corrupt blobs yield a fresh
// session carrying the requested id.
func (m *Manager) Load(ctx context.Context, id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		return m.New()
	}

	fresh := m.New()
	fresh.ID = id

	raw, err := m.store.Get(ctx, blobName(id))
	if err != nil {
		return fresh
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return fresh
	}
	s.ID = id
	if s.Answers == nil {
		s.Answers = diagnose.Answers{}
	}
	if !s.Tier.Valid() {
		s.Tier = tier.Free
	}
	if s.Currency == "" {
		s.Currency = m.cfg.DefaultCurrency
	}
	if s.Language == "" {
		s.Language = m.cfg.DefaultLanguage
	}
	return &s
}

// Save persists a session.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := m.store.Set(ctx, blobName(s.ID), string(raw)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
