package chat

import (
	"context"
	"strconv"
	"strings"

	"github.com/junglore/chat-engine/internal/genai"
	"github.com/junglore/chat-engine/internal/observability"
	"github.com/junglore/chat-engine/internal/storage"
)

// Description kinds.
const (
	DescriptionShort    = "short"
	DescriptionDetailed = "detailed"
)

// ActivePackageStore is the slice of the package store the suggester needs.
type ActivePackageStore interface {
	FindActive(ctx context.Context, limit int) ([]storage.Package, error)
}

// Suggester pairs the generative backend with the package store to pick
// and describe package suggestions.
type Suggester struct {
	completer genai.Completer
	store     ActivePackageStore
	maxSearch int
	logger    *observability.Logger
}

// NewSuggester creates a package suggester.
func NewSuggester(completer genai.Completer, store ActivePackageStore, maxSearch int, logger *observability.Logger) *Suggester {
	if maxSearch <= 0 {
		maxSearch = 100
	}
	return &Suggester{
		completer: completer,
		store:     store,
		maxSearch: maxSearch,
		logger:    logger.WithComponent("suggester"),
	}
}

// Describe generates a marketing description for a package. On backend
// failure it falls back to the package's stored description, truncated for
// the short form.
func (s *Suggester) Describe(ctx context.Context, pkg storage.Package, kind string) string {
	var prompt string
	maxTokens := 500
	if kind == DescriptionShort {
		prompt = shortDescriptionPrompt(pkg)
		maxTokens = 200
	} else {
		prompt = detailedDescriptionPrompt(pkg)
	}

	text, err := s.completer.Complete(ctx, []genai.ChatMessage{
		{Role: genai.RoleSystem, Content: descriptionSystemPrompt},
		{Role: genai.RoleUser, Content: prompt},
	}, maxTokens, 0.7)
	if err != nil {
		s.logger.Warn().
			Str("package", pkg.Title).
			Str("kind", kind).
			Err(err).
			Msg("Description generation failed, using stored description")
		if kind == DescriptionShort {
			return Truncate(pkg.Description, 100)
		}
		return pkg.Description
	}
	return text
}

// BestMatch asks the generative backend to pick the single most relevant
// package from candidates, or nil when none is a strong match. An
// unparseable or out-of-range answer counts as no match.
func (s *Suggester) BestMatch(ctx context.Context, userMessage string, packages []storage.Package) *storage.Package {
	if len(packages) == 0 {
		return nil
	}

	answer, err := s.completer.Complete(ctx, []genai.ChatMessage{
		{Role: genai.RoleSystem, Content: matchingSystemPrompt},
		{Role: genai.RoleUser, Content: bestMatchPrompt(userMessage, packages)},
	}, 50, 0.1)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Best-match call failed")
		return nil
	}

	answer = strings.TrimSpace(answer)
	if strings.EqualFold(answer, "NONE") {
		return nil
	}

	// The prompt numbers candidates from 1; anything else is a refusal.
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(packages) {
		s.logger.Debug().Str("answer", answer).Msg("Unusable best-match answer")
		return nil
	}
	return &packages[idx-1]
}

// FindRelevantPackage loads active packages and returns the best match for
// the message, or nil. Store failures are logged and reported as no match.
func (s *Suggester) FindRelevantPackage(ctx context.Context, userMessage string) *storage.Package {
	packages, err := s.store.FindActive(ctx, s.maxSearch)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Active package lookup failed")
		return nil
	}
	if len(packages) == 0 {
		return nil
	}
	return s.BestMatch(ctx, userMessage, packages)
}

// Truncate shortens text to max characters, appending an ellipsis when it
// had to cut. Cuts land on rune boundaries so emoji-laden catalog copy
// never yields invalid UTF-8.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
