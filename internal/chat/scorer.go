package chat

import "strings"

// Title hits are weighted much more heavily than excerpt hits so that an
// article whose title names the topic always outranks one that only
// mentions it in passing.
const (
	titleHitScore   = 10
	excerptHitScore = 3
)

// RelevanceScore computes an additive keyword-match score for an article.
// Matching is case-insensitive substring containment; a keyword present in
// both the title and the excerpt contributes both weights.
func RelevanceScore(title, excerpt string, keywords []string) int {
	titleLower := strings.ToLower(title)
	excerptLower := strings.ToLower(excerpt)

	score := 0
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(titleLower, kw) {
			score += titleHitScore
		}
		if strings.Contains(excerptLower, kw) {
			score += excerptHitScore
		}
	}
	return score
}
