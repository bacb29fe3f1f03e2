package intent

import "strings"

// Result is the intent classification for a single message. Ephemeral,
// recomputed per message, never persisted.
type Result struct {
	TravelIntent         bool
	ExpeditionIntent     bool
	BlogIntent           bool
	AIIntent             bool
	GatePredictionIntent bool
	Locations            []string
}

// Classifier detects intents and location mentions in user messages.
type Classifier struct{}

// NewClassifier creates a new classifier over the static taxonomy.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Detect classifies a message. It always returns a result; a message that
// triggers nothing yields the zero Result. Overlapping keyword sets mean
// several intents can fire at once; conflict resolution is the
// orchestrator's job, not the classifier's.
func (c *Classifier) Detect(message string) Result {
	lower := strings.ToLower(message)

	result := Result{
		TravelIntent:         containsAny(lower, TravelKeywords) || containsAny(lower, WildlifeKeywords),
		ExpeditionIntent:     containsAny(lower, ExpeditionKeywords),
		BlogIntent:           containsAny(lower, BlogKeywords),
		AIIntent:             containsAny(lower, AIInfoKeywords),
		GatePredictionIntent: containsAny(lower, GatePredictionKeywords),
	}

	// Locations come back in taxonomy order, not message order.
	for _, loc := range LocationKeywords {
		if strings.Contains(lower, loc) {
			result.Locations = append(result.Locations, loc)
		}
	}

	return result
}

func containsAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}
