package diagnose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fgauto/parts-engine/internal/catalog"
)

func testSymptom() catalog.Symptom {
	return catalog.Symptom{
		ID:    "engine-overheating",
		Title: "Engine overheating",
		Wizard: catalog.Wizard{
			Questions: []catalog.Question{
				{ID: "q1", Text: "When does it happen?", Options: []string{"a", "b"}},
				{ID: "q2", Text: "Coolant dropping?", Options: []string{"Yes", "No"}},
			},
			Outcomes: []catalog.Outcome{
				{When: map[string]string{"q1": "a"}, Diagnosis: "O1", Severity: catalog.SeverityHigh},
				{When: map[string]string{"q1": "b"}, Diagnosis: "O2", Severity: catalog.SeverityMedium},
			},
		},
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	sym := testSymptom()

	tests := []struct {
		name      string
		answers   Answers
		wantOK    bool
		diagnosis string
	}{
		{"q1=a resolves O1", Answers{"q1": "a"}, true, "O1"},
		{"q1=b resolves O2", Answers{"q1": "b"}, true, "O2"},
		{"no answers stays pending", Answers{}, false, ""},
		{"irrelevant answer stays pending", Answers{"q2": "Yes"}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, ok := Resolve(sym, tt.answers)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.diagnosis, outcome.Diagnosis)
			}
		})
	}
}

func TestResolve_OverlappingOutcomesTieBreakByOrder(t *testing.T) {
	sym := testSymptom()
	// Both predicates in this wizard key off q1 only; craft one where two
	// outcomes match the same answer set.
	sym.Wizard.Outcomes = []catalog.Outcome{
		{When: map[string]string{"q1": "a"}, Diagnosis: "earlier"},
		{When: map[string]string{"q1": "a", "q2": "Yes"}, Diagnosis: "later"},
	}

	outcome, ok := Resolve(sym, Answers{"q1": "a", "q2": "Yes"})
	require.True(t, ok)
	assert.Equal(t, "earlier", outcome.Diagnosis, "earlier-listed outcome wins over a more specific later one")
}

func TestResolve_AllPredicatePairsMustHold(t *testing.T) {
	sym := testSymptom()
	sym.Wizard.Outcomes = []catalog.Outcome{
		{When: map[string]string{"q1": "a", "q2": "Yes"}, Diagnosis: "both"},
	}

	_, ok := Resolve(sym, Answers{"q1": "a"})
	assert.False(t, ok, "partially satisfied predicate must not match")

	outcome, ok := Resolve(sym, Answers{"q1": "a", "q2": "Yes"})
	require.True(t, ok)
	assert.Equal(t, "both", outcome.Diagnosis)
}

func TestResolve_EmptyPredicateAlwaysMatches(t *testing.T) {
	sym := testSymptom()
	sym.Wizard.Outcomes = append(sym.Wizard.Outcomes, catalog.Outcome{Diagnosis: "catchall"})

	// Earlier outcomes still win when they match.
	outcome, ok := Resolve(sym, Answers{"q1": "a"})
	require.True(t, ok)
	assert.Equal(t, "O1", outcome.Diagnosis)

	// With nothing matching earlier, the empty predicate fires.
	sym.Wizard.Outcomes = []catalog.Outcome{{Diagnosis: "catchall"}}
	outcome, ok = Resolve(sym, Answers{})
	require.True(t, ok)
	assert.Equal(t, "catchall", outcome.Diagnosis)
}

func TestStateOf(t *testing.T) {
	sym := testSymptom()

	assert.Equal(t, StateUnanswered, StateOf(sym, Answers{}))
	assert.Equal(t, StatePartiallyAnswered, StateOf(sym, Answers{"q2": "Yes"}))
	assert.Equal(t, StateResolved, StateOf(sym, Answers{"q1": "a"}))
}

func TestValidAnswer(t *testing.T) {
	sym := testSymptom()

	assert.True(t, ValidAnswer(sym, "q1", "a"))
	assert.False(t, ValidAnswer(sym, "q1", "c"), "unknown option")
	assert.False(t, ValidAnswer(sym, "missing", "a"), "unknown question")
}
