package chat

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/junglore/chat-engine/internal/observability"
	"github.com/junglore/chat-engine/internal/storage"
)

// expeditionStopWords are words too generic to identify a specific park.
var expeditionStopWords = map[string]struct{}{
	"national": {}, "park": {}, "expedition": {}, "safari": {},
	"tell": {}, "me": {}, "about": {}, "the": {}, "a": {}, "an": {}, "in": {},
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// PackageFinder is the slice of the package store the resolver needs.
type PackageFinder interface {
	FindExpeditions(ctx context.Context, location string, limit int) ([]storage.Package, error)
}

// ExpeditionResolver matches user messages against expedition packages.
type ExpeditionResolver struct {
	store       PackageFinder
	siteBaseURL string
	maxSearch   int
	maxParks    int
	logger      *observability.Logger
}

// NewExpeditionResolver creates an expedition resolver. siteBaseURL is the
// public site root used when constructing package page links.
func NewExpeditionResolver(store PackageFinder, siteBaseURL string, maxSearch, maxParks int, logger *observability.Logger) *ExpeditionResolver {
	if maxSearch <= 0 {
		maxSearch = 100
	}
	if maxParks <= 0 {
		maxParks = 10
	}
	return &ExpeditionResolver{
		store:       store,
		siteBaseURL: strings.TrimRight(siteBaseURL, "/"),
		maxSearch:   maxSearch,
		maxParks:    maxParks,
		logger:      logger.WithComponent("expedition_resolver"),
	}
}

// ExpeditionMatch is the outcome of resolving a message against packages.
type ExpeditionMatch struct {
	// Matched is true when at least one package matched the message.
	Matched bool
	// MatchedPark is the display name of the first matched package's park.
	MatchedPark string
	// Packages holds the matching packages, best match first.
	Packages []storage.Package
	// AvailableParks lists distinct park names across all searched
	// packages, used to prompt the user when nothing matched.
	AvailableParks []string
	// Searched is the number of packages considered.
	Searched int
}

// Slugify converts text to a URL-safe slug: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, edges trimmed.
func Slugify(text string) string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}

// stripSuffixFold removes suffix from s case-insensitively, if present.
func stripSuffixFold(s, suffix string) string {
	if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return strings.TrimSpace(s[:len(s)-len(suffix)])
	}
	return s
}

// ConstructPostURL builds the public page URL for a package. The title's
// first " - " segment names the park; the "National Park" suffix is
// normalized so every link ends in "-national-park" exactly once.
func (r *ExpeditionResolver) ConstructPostURL(pkg storage.Package) string {
	title := pkg.Title
	if idx := strings.Index(title, " - "); idx >= 0 {
		title = title[:idx]
	}
	title = stripSuffixFold(strings.TrimSpace(title), "national park")
	slug := Slugify(title)
	if slug == "" {
		slug = Slugify(pkg.Slug)
	}
	return r.siteBaseURL + "/explore/" + slug + "-national-park"
}

// ParkName derives the display name of the park a package covers.
func ParkName(pkg storage.Package) string {
	name := pkg.Title
	if idx := strings.Index(name, " - "); idx >= 0 {
		name = name[:idx]
	}
	name = stripSuffixFold(strings.TrimSpace(name), "expedition")
	name = stripSuffixFold(name, "national park")
	return strings.TrimSpace(name)
}

// parkValues lists the cleaned park names a package advertises across its
// region, heading, title, and location fields. Each field contributes
// separately so a park named only in the heading or region still surfaces.
func parkValues(pkg storage.Package) []string {
	var names []string
	for _, field := range []string{pkg.Region, pkg.Heading, pkg.Title, pkg.Location} {
		if name := cleanParkValue(field); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// cleanParkValue strips the "National Park" and "Expedition" markers
// wherever they appear in a field value and normalizes the remainder.
func cleanParkValue(s string) string {
	s = removeFold(s, "national park")
	s = removeFold(s, "expedition")
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " -")
}

// removeFold deletes every case-insensitive occurrence of sub from s.
func removeFold(s, sub string) string {
	lower := strings.ToLower(s)
	target := strings.ToLower(sub)
	for {
		idx := strings.Index(lower, target)
		if idx < 0 {
			return s
		}
		s = s[:idx] + s[idx+len(target):]
		lower = lower[:idx] + lower[idx+len(target):]
	}
}

// messageTokens extracts candidate park words from the message.
func messageTokens(message string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(message)) {
		word = strings.Trim(word, ".,!?;:'\"()")
		if len(word) <= 2 {
			continue
		}
		if _, stop := expeditionStopWords[word]; stop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// Resolve searches expedition packages for the message. location, when
// non-empty, narrows the database search before token matching. Store
// failures are logged and reported as no match.
func (r *ExpeditionResolver) Resolve(ctx context.Context, message, location string) ExpeditionMatch {
	packages, err := r.store.FindExpeditions(ctx, location, r.maxSearch)
	if err != nil {
		r.logger.Warn().
			Str("location", location).
			Err(err).
			Msg("Expedition search failed")
		return ExpeditionMatch{}
	}

	match := ExpeditionMatch{Searched: len(packages)}
	if len(packages) == 0 {
		return match
	}

	tokens := messageTokens(message)
	parkSet := make(map[string]struct{})
	for _, pkg := range packages {
		for _, name := range parkValues(pkg) {
			parkSet[name] = struct{}{}
		}

		haystack := strings.ToLower(pkg.Title + " " + pkg.Heading + " " + pkg.Slug + " " + pkg.Region)
		for _, token := range tokens {
			if strings.Contains(haystack, token) {
				match.Packages = append(match.Packages, pkg)
				if match.MatchedPark == "" {
					if pkg.Heading != "" {
						match.MatchedPark = pkg.Heading
					} else {
						match.MatchedPark = pkg.Title
					}
				}
				break
			}
		}
	}
	match.Matched = len(match.Packages) > 0

	for name := range parkSet {
		match.AvailableParks = append(match.AvailableParks, name)
	}
	sort.Strings(match.AvailableParks)
	if len(match.AvailableParks) > r.maxParks {
		match.AvailableParks = match.AvailableParks[:r.maxParks]
	}

	r.logger.Debug().
		Int("searched", match.Searched).
		Int("matched", len(match.Packages)).
		Strs("tokens", tokens).
		Msg("Expedition resolution complete")

	return match
}
