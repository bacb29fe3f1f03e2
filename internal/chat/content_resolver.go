package chat

import (
	"context"
	"sort"
	"strings"

	"github.com/junglore/chat-engine/internal/observability"
	"github.com/junglore/chat-engine/internal/storage"
)

// minRelevanceScore drops articles that only matched on incidental words.
const minRelevanceScore = 3

// contentStopWords are filler words stripped from the user message before
// searching published content.
var contentStopWords = map[string]struct{}{
	"tell": {}, "me": {}, "about": {}, "the": {}, "a": {}, "an": {},
	"in": {}, "blog": {}, "article": {}, "read": {}, "learn": {},
	"want": {}, "to": {}, "know": {}, "case": {}, "study": {},
	"what": {}, "why": {}, "how": {}, "is": {}, "are": {}, "was": {},
	"were": {}, "can": {}, "could": {}, "would": {}, "should": {},
}

// ArticleStore is the slice of the content repository the resolver needs.
type ArticleStore interface {
	SearchPublished(ctx context.Context, term string, limit int) ([]storage.Article, error)
}

// ContentResolver matches user messages against published editorial content.
type ContentResolver struct {
	store      ArticleStore
	maxResults int
	logger     *observability.Logger
}

// NewContentResolver creates a content resolver. maxResults caps how many
// scored articles a single message can surface.
func NewContentResolver(store ArticleStore, maxResults int, logger *observability.Logger) *ContentResolver {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &ContentResolver{
		store:      store,
		maxResults: maxResults,
		logger:     logger.WithComponent("content_resolver"),
	}
}

// ScoredArticle pairs an article with its relevance score.
type ScoredArticle struct {
	Article storage.Article
	Score   int
}

// Keywords extracts search keywords from a message: lowercased words longer
// than two characters that are not stop words, in message order.
func Keywords(message string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(message)) {
		word = strings.Trim(word, ".,!?;:'\"()")
		if len(word) <= 2 {
			continue
		}
		if _, stop := contentStopWords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// Resolve searches published content for the message and returns the best
// matches ranked by relevance. Store failures are logged and treated as
// no match so the reply cascade can continue.
func (r *ContentResolver) Resolve(ctx context.Context, message string) []ScoredArticle {
	keywords := Keywords(message)
	if len(keywords) == 0 {
		return nil
	}

	// Try individual keywords first, taking the first one that yields any
	// hits. Only when every single-keyword lookup comes back empty do the
	// progressively wider joined phrases get a turn.
	var terms []string
	for i, kw := range keywords {
		if i >= 3 {
			break
		}
		terms = append(terms, kw)
	}
	if len(keywords) >= 2 {
		terms = append(terms, strings.Join(keywords[:2], " "))
	}
	if len(keywords) > 2 {
		terms = append(terms, strings.Join(keywords, " "))
	}

	var topic string
	var candidates []storage.Article
	for _, term := range terms {
		articles, err := r.store.SearchPublished(ctx, term, r.maxResults*2)
		if err != nil {
			r.logger.Warn().
				Str("term", term).
				Err(err).
				Msg("Content search failed")
			continue
		}
		if len(articles) > 0 {
			topic = term
			candidates = articles
			break
		}
	}

	var scored []ScoredArticle
	for _, a := range candidates {
		score := RelevanceScore(a.Title, a.Excerpt, keywords)
		if score < minRelevanceScore {
			continue
		}
		scored = append(scored, ScoredArticle{Article: a, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > r.maxResults {
		scored = scored[:r.maxResults]
	}

	r.logger.Debug().
		Str("topic", topic).
		Int("candidates", len(candidates)).
		Int("matched", len(scored)).
		Msg("Content resolution complete")

	return scored
}
