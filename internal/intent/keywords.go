// Package intent classifies chat messages against the fixed keyword
// taxonomy. Matching is deterministic, case-insensitive substring
// containment; adding a phrase only ever widens matching.
package intent

// TravelKeywords signal general travel interest.
var TravelKeywords = []string{
	"safari", "trip", "visit", "go to", "travel to", "book", "planning",
	"tour", "journey", "expedition", "adventure", "vacation", "holiday",
	"see", "spot", "find", "look for", "want to go", "interested in",
}

// WildlifeKeywords indicate interest in wildlife experiences.
var WildlifeKeywords = []string{
	"tiger", "lion", "elephant", "leopard", "rhino", "bear", "deer",
	"wildlife", "jungle", "forest", "national park", "safari",
}

// LocationKeywords double as the gazetteer. Matching is plain substring
// containment, so "africa" also fires for "south africa".
var LocationKeywords = []string{
	"ranthambore", "corbett", "bandhavgarh", "kanha", "pench", "tadoba",
	"kerala", "karnataka", "madhya pradesh", "rajasthan", "gir", "kaziranga",
	"sundarbans", "periyar", "nagarhole", "bandipur", "jim corbett",
	"ranthambore national park", "corbett national park",
	"bandhavgarh national park", "kanha national park",
	"tadoba national park", "pench national park",
	"maasai mara", "serengeti", "africa", "kenya", "tanzania",
}

// DurationKeywords capture trip-length preferences.
var DurationKeywords = []string{
	"1 day", "2 day", "3 day", "4 day", "5 day", "week", "long",
	"short", "overnight", "weekend",
}

// BudgetKeywords capture price-sensitivity phrases.
var BudgetKeywords = []string{
	"budget", "cheap", "affordable", "economical", "low cost",
	"expensive", "luxury", "premium", "high end",
}

// ExpeditionKeywords explicitly indicate intent to plan an expedition.
var ExpeditionKeywords = []string{
	"expedition", "safari expedition", "jungle expedition", "plan expedition",
	"do you plan", "do you run expeditions", "expeditions",
	"national park", "trip",
}

// BlogKeywords indicate interest in educational content.
var BlogKeywords = []string{
	"blog", "article", "case study", "podcast", "read about",
	"learn about", "guide", "conservation",
}

// AIInfoKeywords trigger the predictive-models information redirect.
var AIInfoKeywords = []string{
	"ai", "predict", "prediction", "predictive", "predictive model",
	"predictive models", "sighting", "sighting chances",
	"chances of sighting", "probability of sighting", "model",
	"machine learning",
}

// GatePredictionKeywords trigger the gate-recommendation redirect.
var GatePredictionKeywords = []string{
	"gate", "which gate", "best gate", "entry gate", "safari gate",
	"gate prediction", "gate recommendation", "which zone", "safari zone",
}
