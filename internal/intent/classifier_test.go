package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Detect_ExpeditionQuestion(t *testing.T) {
	c := NewClassifier()

	result := c.Detect("Do you plan jungle safari expedition?")

	assert.True(t, result.ExpeditionIntent)
	assert.True(t, result.TravelIntent)
	assert.Empty(t, result.Locations)
}

func TestClassifier_Detect_LocationMention(t *testing.T) {
	c := NewClassifier()

	result := c.Detect("I want to go to Tadoba National Park")

	assert.True(t, result.TravelIntent)
	assert.True(t, result.ExpeditionIntent, "national park phrase should trigger expedition intent")
	assert.Contains(t, result.Locations, "tadoba")
}

func TestClassifier_Detect_CaseInsensitive(t *testing.T) {
	c := NewClassifier()

	upper := c.Detect("CAN YOU PREDICT TIGER SIGHTINGS?")
	lower := c.Detect("can you predict tiger sightings?")

	assert.Equal(t, upper, lower)
	assert.True(t, upper.AIIntent)
}

func TestClassifier_Detect_GatePrediction(t *testing.T) {
	c := NewClassifier()

	result := c.Detect("Which gate should I book for my Tadoba safari?")

	assert.True(t, result.GatePredictionIntent)
	assert.True(t, result.TravelIntent)
	assert.Contains(t, result.Locations, "tadoba")
}

func TestClassifier_Detect_OverlappingIntents(t *testing.T) {
	c := NewClassifier()

	// Several intents can fire on one message; nothing is suppressed here.
	result := c.Detect("Can your gate prediction model help plan my expedition trip?")

	assert.True(t, result.GatePredictionIntent)
	assert.True(t, result.ExpeditionIntent)
	assert.True(t, result.AIIntent)
}

func TestClassifier_Detect_NoIntent(t *testing.T) {
	c := NewClassifier()

	result := c.Detect("hello there")

	assert.False(t, result.TravelIntent)
	assert.False(t, result.ExpeditionIntent)
	assert.False(t, result.BlogIntent)
	assert.False(t, result.AIIntent)
	assert.False(t, result.GatePredictionIntent)
	assert.Empty(t, result.Locations)
}

func TestClassifier_Detect_LocationsInTaxonomyOrder(t *testing.T) {
	c := NewClassifier()

	result := c.Detect("Should I pick Tadoba or Ranthambore?")

	// Taxonomy order, not message order.
	assert.Equal(t, []string{"ranthambore", "tadoba"}, result.Locations)
}

func TestClassifier_Detect_BlogIntent(t *testing.T) {
	c := NewClassifier()

	result := c.Detect("I want to read about tiger conservation")

	assert.True(t, result.BlogIntent)
}
