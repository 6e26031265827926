// Package diagnose implements the guided diagnostic wizard: outcome
// resolution over accumulated answers.
package diagnose

import "github.com/fgauto/parts-engine/internal/catalog"

// Answers maps question id to the single selected option label.
type Answers map[string]string

// State describes where a wizard session stands.
type State string

const (
	StateUnanswered        State = "unanswered"
	StatePartiallyAnswered State = "partially_answered"
	StateResolved          State = "resolved"
)

// Resolve scans the symptom's outcomes in list order and returns the first
// whose entire predicate is satisfied by the answers. A predicate referencing
// an unanswered question simply fails to match; when nothing matches the
// resolution is pending and ok is false.
//
// The scan is intentionally an ordered first-match-wins loop: outcome sets
// are neither mutually exclusive nor exhaustive, so earlier entries take
// precedence over later ones.
func Resolve(symptom catalog.Symptom, answers Answers) (catalog.Outcome, bool) {
	for _, outcome := range symptom.Wizard.Outcomes {
		if matches(outcome.When, answers) {
			return outcome, true
		}
	}
	return catalog.Outcome{}, false
}

func matches(when map[string]string, answers Answers) bool {
	for qid, required := range when {
		if answers[qid] != required {
			return false
		}
	}
	return true
}

// StateOf classifies a session's progress for the given symptom.
func StateOf(symptom catalog.Symptom, answers Answers) State {
	if _, ok := Resolve(symptom, answers); ok {
		return StateResolved
	}
	for _, q := range symptom.Wizard.Questions {
		if _, answered := answers[q.ID]; answered {
			return StatePartiallyAnswered
		}
	}
	return StateUnanswered
}

// ValidAnswer reports whether the option is one of the question's selectable
// labels for the given symptom.
func ValidAnswer(symptom catalog.Symptom, questionID, option string) bool {
	for _, q := range symptom.Wizard.Questions {
		if q.ID != questionID {
			continue
		}
		for _, opt := range q.Options {
			if opt == option {
				return true
			}
		}
		return false
	}
	return false
}
