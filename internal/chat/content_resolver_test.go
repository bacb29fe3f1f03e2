package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junglore/chat-engine/internal/observability"
	"github.com/junglore/chat-engine/internal/storage"
)

type fakeArticleStore struct {
	articles []storage.Article
	err      error
	terms    []string
}

func (f *fakeArticleStore) SearchPublished(ctx context.Context, term string, limit int) ([]storage.Article, error) {
	f.terms = append(f.terms, term)
	if f.err != nil {
		return nil, f.err
	}

	var out []storage.Article
	for _, a := range f.articles {
		hay := strings.ToLower(a.Title + " " + a.Excerpt)
		if strings.Contains(hay, strings.ToLower(term)) {
			out = append(out, a)
		}
	}
	return out, nil
}

func testContentResolver(store ArticleStore) *ContentResolver {
	return NewContentResolver(store, 5, observability.NopLogger())
}

func TestKeywords(t *testing.T) {
	got := Keywords("Tell me about tiger conservation")
	assert.Equal(t, []string{"tiger", "conservation"}, got)
}

func TestKeywords_AllStopWords(t *testing.T) {
	assert.Empty(t, Keywords("tell me about the"))
}

func TestKeywords_StripsPunctuation(t *testing.T) {
	assert.Equal(t, []string{"tigers"}, Keywords("what about tigers?"))
}

func TestContentResolver_Resolve_RanksByTitleMatch(t *testing.T) {
	store := &fakeArticleStore{articles: []storage.Article{
		{ID: "1", Title: "Monsoon Birding", Excerpt: "a passing tiger mention in conservation talk"},
		{ID: "2", Title: "Tiger Conservation in Tadoba", Excerpt: "how tiger conservation works"},
	}}
	r := testContentResolver(store)

	matches := r.Resolve(context.Background(), "tell me about tiger conservation")

	require.NotEmpty(t, matches)
	assert.Equal(t, "Tiger Conservation in Tadoba", matches[0].Article.Title)
	assert.Greater(t, matches[0].Score, matches[len(matches)-1].Score)
}

func TestContentResolver_Resolve_DropsWeakMatches(t *testing.T) {
	store := &fakeArticleStore{articles: []storage.Article{
		// Scores 0: the keyword appears in neither title nor excerpt as
		// returned fields, only in full-text content server-side.
		{ID: "1", Title: "Monsoon Birding", Excerpt: "wetland species"},
	}}
	// Return the article regardless of term to simulate a content-column hit.
	r := testContentResolver(&contentColumnStore{store})

	matches := r.Resolve(context.Background(), "tiger population trends")

	assert.Empty(t, matches)
}

// contentColumnStore returns everything for any term, like a database
// match on the full content column.
type contentColumnStore struct {
	inner *fakeArticleStore
}

func (s *contentColumnStore) SearchPublished(ctx context.Context, term string, limit int) ([]storage.Article, error) {
	return s.inner.articles, nil
}

func TestContentResolver_Resolve_StopsAtFirstKeywordWithHits(t *testing.T) {
	store := &fakeArticleStore{articles: []storage.Article{
		{ID: "1", Title: "Tiger Conservation", Excerpt: "tiger conservation and sightings"},
		{ID: "2", Title: "Leopard Sightings", Excerpt: "leopard sightings at dusk"},
	}}
	r := testContentResolver(store)

	matches := r.Resolve(context.Background(), "tiger leopard sightings")

	assert.Equal(t, []string{"tiger"}, store.terms, "later keywords must not be searched once one hits")
	require.Len(t, matches, 1)
	assert.Equal(t, "Tiger Conservation", matches[0].Article.Title)
}

func TestContentResolver_Resolve_JoinedPhrasesOnlyAfterEmptyLookups(t *testing.T) {
	store := &fakeArticleStore{articles: []storage.Article{
		{ID: "1", Title: "Monsoon Birding", Excerpt: "wetland species"},
	}}
	r := testContentResolver(store)

	matches := r.Resolve(context.Background(), "snow leopard spiti valley")

	// Individual keywords first (capped at 3), then the two-keyword
	// phrase, then everything joined.
	assert.Equal(t, []string{
		"snow", "leopard", "spiti",
		"snow leopard",
		"snow leopard spiti valley",
	}, store.terms)
	assert.Empty(t, matches)
}

func TestContentResolver_Resolve_NoKeywords(t *testing.T) {
	store := &fakeArticleStore{}
	r := testContentResolver(store)

	matches := r.Resolve(context.Background(), "tell me about the")

	assert.Empty(t, matches)
	assert.Empty(t, store.terms, "no search should run without keywords")
}

func TestContentResolver_Resolve_StoreErrorIsNoMatch(t *testing.T) {
	store := &fakeArticleStore{err: errors.New("connection refused")}
	r := testContentResolver(store)

	matches := r.Resolve(context.Background(), "tiger conservation")

	assert.Empty(t, matches)
}

func TestContentResolver_Resolve_CapsResults(t *testing.T) {
	var articles []storage.Article
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		articles = append(articles, storage.Article{
			ID:      id,
			Title:   "Tiger story " + id,
			Excerpt: "tiger",
		})
	}
	r := testContentResolver(&fakeArticleStore{articles: articles})

	matches := r.Resolve(context.Background(), "tiger")

	assert.Len(t, matches, 5)
}
