package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fgauto/parts-engine/internal/catalog"
	"github.com/fgauto/parts-engine/internal/diagnose"
	"github.com/fgauto/parts-engine/internal/match"
)

// SymptomDTO is a symptom without its wizard, for list views.
type SymptomDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

func toSymptomDTO(s catalog.Symptom) SymptomDTO {
	return SymptomDTO{ID: s.ID, Title: s.Title, Summary: s.Summary, Category: s.Category}
}

// ListSymptoms handles GET /symptoms with q and category filters.
func (h *Handler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	items := catalog.SearchSymptoms(
		h.catalog.Symptoms(),
		r.URL.Query().Get("q"),
		r.URL.Query().Get("category"),
	)
	dtos := make([]SymptomDTO, 0, len(items))
	for _, s := range items {
		dtos = append(dtos, toSymptomDTO(s))
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"symptoms":   dtos,
		"categories": h.catalog.SymptomCategories(),
	})
}

// GetSymptom handles GET /symptoms/{symptomID} including the full wizard.
func (h *Handler) GetSymptom(w http.ResponseWriter, r *http.Request) {
	sym, ok := h.catalog.SymptomByID(chi.URLParam(r, "symptomID"))
	if !ok {
		h.writeError(w, http.StatusNotFound, "symptom not found", "")
		return
	}
	h.writeJSON(w, http.StatusOK, sym)
}

// AnswerRequestDTO is one wizard answer.
type AnswerRequestDTO struct {
	QuestionID string `json:"questionId"`
	Option     string `json:"option"`
}

// OutcomeDTO is a resolved diagnosis with its recommended parts expanded
// against the current catalog.
type OutcomeDTO struct {
	Diagnosis        string    `json:"diagnosis"`
	Severity         string    `json:"severity"`
	Causes           []string  `json:"causes"`
	RecommendedParts []PartDTO `json:"recommendedParts"`
}

// ResolutionDTO reports the wizard state after an answer.
type ResolutionDTO struct {
	SymptomID string           `json:"symptomId"`
	State     string           `json:"state"`
	Answers   diagnose.Answers `json:"answers"`
	Outcome   *OutcomeDTO      `json:"outcome,omitempty"`
}

// Answer handles POST /diagnose/{symptomID}/answers. Posting to a different
// symptom than the session's current one selects it and clears prior
// answers; every answer re-resolves the outcome over the full answer set.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	symptomID := chi.URLParam(r, "symptomID")
	sym, ok := h.catalog.SymptomByID(symptomID)
	if !ok {
		h.writeError(w, http.StatusNotFound, "symptom not found", "")
		return
	}

	var req AnswerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if !diagnose.ValidAnswer(sym, req.QuestionID, req.Option) {
		h.writeError(w, http.StatusBadRequest, "unknown question or option", "")
		return
	}

	s := h.loadSession(r)
	if s.SelectedSymptomID != symptomID {
		s.SelectSymptom(symptomID)
	}
	s.Answer(req.QuestionID, req.Option)

	resp := ResolutionDTO{
		SymptomID: symptomID,
		State:     string(diagnose.StateOf(sym, s.Answers)),
		Answers:   s.Answers,
	}
	if outcome, resolved := diagnose.Resolve(sym, s.Answers); resolved {
		resp.Outcome = h.toOutcomeDTO(outcome, s.Vehicle.Key, s.Currency)
	}

	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) toOutcomeDTO(o catalog.Outcome, fitmentKey, currencyCode string) *OutcomeDTO {
	dto := &OutcomeDTO{
		Diagnosis: o.Diagnosis,
		Severity:  string(o.Severity),
		Causes:    o.Causes,
	}
	for _, p := range h.catalog.ResolveParts(o.RecommendedParts) {
		dto.RecommendedParts = append(dto.RecommendedParts, h.toPartDTO(p, fitmentKey, currencyCode))
	}
	return dto
}

// MatchRequestDTO is a free-text symptom description.
type MatchRequestDTO struct {
	Text string `json:"text"`
}

// MatchResponseDTO reports the best-scoring symptom, if confident.
type MatchResponseDTO struct {
	Matched bool        `json:"matched"`
	Score   int         `json:"score"`
	Symptom *SymptomDTO `json:"symptom,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Match handles POST /diagnose/match: the "describe your issue" action. A
// confident match also selects the symptom in the session.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	var req MatchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Text == "" {
		h.writeError(w, http.StatusBadRequest, "text is required", "")
		return
	}

	res := match.BestSymptom(h.catalog.Symptoms(), req.Text)
	if !res.Confident {
		h.writeJSON(w, http.StatusOK, MatchResponseDTO{
			Matched: false,
			Score:   res.Score,
			Message: "Couldn't confidently match. Add more detail (sound/smell/warning light/when it happens).",
		})
		return
	}

	s := h.loadSession(r)
	s.SelectSymptom(res.Symptom.ID)
	h.saveSession(w, r, s)

	dto := toSymptomDTO(res.Symptom)
	h.writeJSON(w, http.StatusOK, MatchResponseDTO{
		Matched: true,
		Score:   res.Score,
		Symptom: &dto,
		Message: "Matched: " + res.Symptom.Title,
	})
}

// AssistRequestDTO is a conversational utterance.
type AssistRequestDTO struct {
	Text string `json:"text"`
}

// AssistResponseDTO is the assistant's routing decision.
type AssistResponseDTO struct {
	Kind    string      `json:"kind"`
	Message string      `json:"message"`
	View    string      `json:"view,omitempty"`
	Symptom *SymptomDTO `json:"symptom,omitempty"`
	Parts   []PartDTO   `json:"parts,omitempty"`
}

// Assist handles POST /assist.
func (h *Handler) Assist(w http.ResponseWriter, r *http.Request) {
	var req AssistRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Text == "" {
		h.writeError(w, http.StatusBadRequest, "text is required", "")
		return
	}

	s := h.loadSession(r)
	reply := match.Assist(h.catalog.Symptoms(), h.catalog.Parts(), req.Text)

	resp := AssistResponseDTO{
		Kind:    string(reply.Kind),
		Message: reply.Message,
		View:    reply.View,
	}
	if reply.Symptom != nil {
		s.SelectSymptom(reply.Symptom.ID)
		dto := toSymptomDTO(*reply.Symptom)
		resp.Symptom = &dto
	}
	for _, p := range reply.Parts {
		resp.Parts = append(resp.Parts, h.toPartDTO(p, s.Vehicle.Key, s.Currency))
	}

	h.saveSession(w, r, s)
	h.writeJSON(w, http.StatusOK, resp)
}
