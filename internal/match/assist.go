package match

import (
	"strings"

	"github.com/fgauto/parts-engine/internal/catalog"
)

// ReplyKind identifies how the assistant chose to answer an utterance.
type ReplyKind string

const (
	// ReplyNavigate points the user at a named section of the storefront.
	ReplyNavigate ReplyKind = "navigate"
	// ReplySymptom routes into the diagnostic wizard for a matched symptom.
	ReplySymptom ReplyKind = "symptom"
	// ReplyParts lists parts whose names or tags contain the utterance.
	ReplyParts ReplyKind = "parts"
	// ReplyFallback asks the user for more detail.
	ReplyFallback ReplyKind = "fallback"
)

// maxPartSuggestions caps the parts-search answer.
const maxPartSuggestions = 4

// Reply is the assistant's routing decision for one utterance.
type Reply struct {
	Kind    ReplyKind
	Message string
	View    string
	Symptom *catalog.Symptom
	Parts   []catalog.Part
}

// Assist answers a free-form utterance. Command keywords win first, then a
// confident symptom match, then a parts name/tag substring search, and
// finally a generic prompt for more detail.
func Assist(symptoms []catalog.Symptom, parts []catalog.Part, utterance string) Reply {
	t := strings.ToLower(strings.TrimSpace(utterance))

	switch {
	case strings.Contains(t, "order") || strings.Contains(t, "buy") || strings.Contains(t, "cart"):
		return Reply{
			Kind:    ReplyNavigate,
			View:    "parts",
			Message: "To order parts: open Spare Parts, add items, then go to Cart & Order.",
		}
	case strings.Contains(t, "vin"):
		return Reply{
			Kind:    ReplyNavigate,
			View:    "troubleshooter",
			Message: "Paste your 17-character VIN in the VIN Decoder section. Then enable 'Show only parts that fit my VIN' (Pro feature).",
		}
	case strings.Contains(t, "mechanic"):
		return Reply{
			Kind:    ReplyNavigate,
			View:    "mechanics",
			Message: "Opening the mechanics directory.",
		}
	}

	if res := BestSymptom(symptoms, t); res.Confident {
		sym := res.Symptom
		return Reply{
			Kind:    ReplySymptom,
			View:    "troubleshooter",
			Message: "This matches: " + sym.Title + ". Opening diagnosis now.",
			Symptom: &sym,
		}
	}

	var found []catalog.Part
	for _, p := range parts {
		hay := strings.ToLower(p.Name + " " + strings.Join(p.Tags, " "))
		if strings.Contains(hay, t) {
			found = append(found, p)
			if len(found) == maxPartSuggestions {
				break
			}
		}
	}
	if len(found) > 0 {
		names := make([]string, len(found))
		for i, p := range found {
			names[i] = p.Name
		}
		return Reply{
			Kind:    ReplyParts,
			View:    "parts",
			Message: "I found: " + strings.Join(names, ", ") + ". Opening Spare Parts.",
			Parts:   found,
		}
	}

	return Reply{
		Kind:    ReplyFallback,
		Message: "Tell me what you're experiencing (sound, smell, warning lights, when it happens). Example: 'overheats in traffic, fan not working'.",
	}
}
