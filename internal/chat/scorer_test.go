package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelevanceScore_TitleOutweighsExcerpt(t *testing.T) {
	keywords := []string{"tiger"}

	titleHit := RelevanceScore("Tiger Conservation", "nothing relevant", keywords)
	excerptHit := RelevanceScore("Unrelated", "a story about a tiger", keywords)

	assert.Equal(t, 10, titleHit)
	assert.Equal(t, 3, excerptHit)
	assert.Greater(t, titleHit, excerptHit)
}

func TestRelevanceScore_Additive(t *testing.T) {
	keywords := []string{"tiger", "tadoba"}

	// Each keyword that hits both fields contributes both weights.
	score := RelevanceScore("Tigers of Tadoba", "tadoba tiger census", keywords)

	assert.Equal(t, 26, score)
}

func TestRelevanceScore_CaseInsensitive(t *testing.T) {
	keywords := []string{"TIGER"}

	assert.Equal(t, 10, RelevanceScore("tiger spotting", "", keywords))
}

func TestRelevanceScore_NoMatches(t *testing.T) {
	assert.Zero(t, RelevanceScore("Monsoon birding", "wetland species", []string{"tiger"}))
}

func TestRelevanceScore_MoreMatchesNeverLower(t *testing.T) {
	base := RelevanceScore("Tiger safari guide", "spotting tips", []string{"tiger"})
	wider := RelevanceScore("Tiger safari guide", "spotting tips", []string{"tiger", "safari"})

	assert.GreaterOrEqual(t, wider, base)
}
