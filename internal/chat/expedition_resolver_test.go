package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junglore/chat-engine/internal/observability"
	"github.com/junglore/chat-engine/internal/storage"
)

type fakePackageFinder struct {
	packages []storage.Package
	err      error
	location string
}

func (f *fakePackageFinder) FindExpeditions(ctx context.Context, location string, limit int) ([]storage.Package, error) {
	f.location = location
	if f.err != nil {
		return nil, f.err
	}
	return f.packages, nil
}

func testExpeditionResolver(store PackageFinder) *ExpeditionResolver {
	return NewExpeditionResolver(store, "https://junglore.com", 100, 10, observability.NopLogger())
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Tadoba National Park", "tadoba-national-park"},
		{"Jim Corbett", "jim-corbett"},
		{"  Kanha!!  ", "kanha"},
		{"already-a-slug", "already-a-slug"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.input), "input: %q", tt.input)
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	once := Slugify("Tadoba National Park")
	assert.Equal(t, once, Slugify(once))
}

func TestConstructPostURL(t *testing.T) {
	r := testExpeditionResolver(&fakePackageFinder{})

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "title with duration suffix",
			title: "Jim Corbett National Park - 3 Nights 4 Days",
			want:  "https://junglore.com/explore/jim-corbett-national-park",
		},
		{
			name:  "bare park name",
			title: "Tadoba",
			want:  "https://junglore.com/explore/tadoba-national-park",
		},
		{
			name:  "suffix not duplicated",
			title: "Tadoba National Park",
			want:  "https://junglore.com/explore/tadoba-national-park",
		},
		{
			name:  "lowercase suffix stripped",
			title: "Tadoba national park",
			want:  "https://junglore.com/explore/tadoba-national-park",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ConstructPostURL(storage.Package{Title: tt.title})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConstructPostURL_ContainsParkSlug(t *testing.T) {
	r := testExpeditionResolver(&fakePackageFinder{})

	url := r.ConstructPostURL(storage.Package{Title: "Tadoba National Park - Summer Special"})
	assert.Contains(t, url, "tadoba-national-park")
}

func TestParkName(t *testing.T) {
	assert.Equal(t, "Tadoba", ParkName(storage.Package{Title: "Tadoba National Park"}))
	assert.Equal(t, "Jim Corbett", ParkName(storage.Package{Title: "Jim Corbett National Park - 3 Nights 4 Days"}))
	assert.Equal(t, "Kanha", ParkName(storage.Package{Title: "Kanha Expedition"}))
}

func TestExpeditionResolver_Resolve_Match(t *testing.T) {
	store := &fakePackageFinder{packages: []storage.Package{
		{Title: "Tadoba National Park", Heading: "Tadoba", Region: "Maharashtra", Slug: "tadoba"},
		{Title: "Kanha National Park", Heading: "Kanha", Region: "Madhya Pradesh", Slug: "kanha"},
	}}
	r := testExpeditionResolver(store)

	match := r.Resolve(context.Background(), "Tell me about Tadoba", "")

	require.True(t, match.Matched)
	require.Len(t, match.Packages, 1)
	assert.Equal(t, "Tadoba National Park", match.Packages[0].Title)
	assert.Equal(t, "Tadoba", match.MatchedPark)
	assert.Equal(t, 2, match.Searched)
}

func TestExpeditionResolver_Resolve_StopWordsIgnored(t *testing.T) {
	store := &fakePackageFinder{packages: []storage.Package{
		{Title: "Tadoba National Park", Heading: "Tadoba"},
	}}
	r := testExpeditionResolver(store)

	// Every token is a stop word or too short, so nothing can match.
	match := r.Resolve(context.Background(), "tell me about the national park", "")

	assert.False(t, match.Matched)
	assert.Equal(t, []string{"Tadoba"}, match.AvailableParks)
}

func TestExpeditionResolver_Resolve_AvailableParksSortedAndDeduped(t *testing.T) {
	store := &fakePackageFinder{packages: []storage.Package{
		{Title: "Kanha National Park", Heading: "Kanha"},
		{Title: "Bandhavgarh Expedition", Heading: "Bandhavgarh"},
		{Title: "", Heading: "Kanha", Region: "Kanha National Park"},
	}}
	r := testExpeditionResolver(store)

	match := r.Resolve(context.Background(), "do you run trips", "")

	assert.False(t, match.Matched)
	assert.Equal(t, []string{"Bandhavgarh", "Kanha"}, match.AvailableParks)
}

func TestExpeditionResolver_Resolve_ParksFromNonTitleFields(t *testing.T) {
	store := &fakePackageFinder{packages: []storage.Package{
		{Title: "", Heading: "Tadoba", Region: "Tadoba National Park"},
		{Title: "Monsoon Special Offer!", Location: "Pench National Park"},
	}}
	r := testExpeditionResolver(store)

	match := r.Resolve(context.Background(), "which jungles do you cover", "")

	assert.False(t, match.Matched)
	assert.Contains(t, match.AvailableParks, "Tadoba")
	assert.Contains(t, match.AvailableParks, "Pench")
}

func TestExpeditionResolver_Resolve_StoreErrorIsNoMatch(t *testing.T) {
	store := &fakePackageFinder{err: errors.New("connection refused")}
	r := testExpeditionResolver(store)

	match := r.Resolve(context.Background(), "Tadoba expedition", "")

	assert.False(t, match.Matched)
	assert.Zero(t, match.Searched)
	assert.Empty(t, match.AvailableParks)
}

func TestExpeditionResolver_Resolve_EmptyCatalog(t *testing.T) {
	r := testExpeditionResolver(&fakePackageFinder{})

	match := r.Resolve(context.Background(), "Tadoba expedition", "")

	assert.False(t, match.Matched)
	assert.Zero(t, match.Searched)
}

func TestExpeditionResolver_Resolve_PassesLocationFilter(t *testing.T) {
	store := &fakePackageFinder{}
	r := testExpeditionResolver(store)

	r.Resolve(context.Background(), "safari", "Maharashtra")

	assert.Equal(t, "Maharashtra", store.location)
}
