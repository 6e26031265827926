// Package match scores free-text descriptions against the symptom catalog
// and routes conversational requests.
package match

import (
	"regexp"
	"strings"

	"github.com/fgauto/parts-engine/internal/catalog"
)

// ConfidenceThreshold is the minimum score for a match to count as confident.
const ConfidenceThreshold = 5

// tokenPattern splits utterances on non-alphanumeric runs.
var tokenPattern = regexp.MustCompile(`[^a-z0-9]+`)

// minTokenLength drops filler words from the base score.
const minTokenLength = 3

// baseTokenPoints is awarded per token found in the symptom's text.
const baseTokenPoints = 3

// boost awards extra points to a specific symptom when the utterance contains
// a keyword that strongly implies it.
type boost struct {
	keyword   string
	symptomID string
	points    int
}

// boosts encodes domain priors for common complaints. The table is scanned in
// full for every candidate symptom, so entries are independent of each other.
var boosts = []boost{
	{"overheat", "engine-overheating", 50},
	{"temperature", "engine-overheating", 20},
	{"click", "no-start-clicking", 30},
	{"won't start", "no-start-clicking", 40},
	{"brake", "brake-squeal", 25},
	{"squeal", "brake-squeal", 25},
	{"grind", "brake-squeal", 35},
	{"misfire", "rough-idle-misfire", 35},
	{"rough", "rough-idle-misfire", 15},
	{"idle", "rough-idle-misfire", 20},
}

// ScoreSymptom scores a user utterance against one symptom. The base score
// awards points per utterance token contained in the symptom's title, summary
// and category; the boost table then adds keyword-specific points. Scores are
// non-negative and deterministic for identical inputs.
func ScoreSymptom(sym catalog.Symptom, text string) int {
	t := strings.ToLower(text)
	hay := strings.ToLower(sym.Title + " " + sym.Summary + " " + sym.Category)

	score := 0
	for _, tok := range tokenPattern.Split(t, -1) {
		if len(tok) < minTokenLength {
			continue
		}
		if strings.Contains(hay, tok) {
			score += baseTokenPoints
		}
	}

	for _, b := range boosts {
		if sym.ID == b.symptomID && strings.Contains(t, b.keyword) {
			score += b.points
		}
	}
	return score
}

// Result is the outcome of matching an utterance against the symptom catalog.
type Result struct {
	Symptom   catalog.Symptom
	Score     int
	Confident bool
}

// BestSymptom scores every symptom and returns the highest scorer, first-seen
// winning ties. Confident is false when the best score falls below the
// confidence threshold; callers should then report "no confident match"
// rather than forcing a guess.
func BestSymptom(symptoms []catalog.Symptom, text string) Result {
	var best Result
	bestScore := -1
	for _, s := range symptoms {
		if sc := ScoreSymptom(s, text); sc > bestScore {
			bestScore = sc
			best = Result{Symptom: s, Score: sc}
		}
	}
	best.Confident = bestScore >= ConfidenceThreshold
	return best
}
