// Package chat implements the reply cascade: gate prediction, expedition
// matching, editorial content, informational redirects, then the
// generative fallback. Exactly one branch produces the reply, and every
// branch finishes by persisting the updated session history.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/junglore/chat-engine/internal/genai"
	"github.com/junglore/chat-engine/internal/history"
	"github.com/junglore/chat-engine/internal/intent"
	"github.com/junglore/chat-engine/internal/observability"
	"github.com/junglore/chat-engine/internal/storage"
)

// Redirect targets are fixed product URLs. They are never generated by the
// model so they cannot drift or be hallucinated.
const (
	AIPredictionURL   = "https://junglore.com/ai-info"
	GatePredictionURL = "https://www.junglore.com/trips-safaris/preditive-modals"
)

// months recognized when a user asks about expedition timing.
var months = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "oct", "nov", "dec",
}

// ExpeditionCard is the structured package payload attached to expedition
// replies for the frontend to render.
type ExpeditionCard struct {
	Title       string `json:"title"`
	Image       string `json:"image"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Park        string `json:"park"`
}

// ArticleCard is the structured featured-article payload.
type ArticleCard struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	URL     string `json:"url"`
	Image   string `json:"image"`
}

// SuggestionCard is the structured package-suggestion payload attached to
// generative replies when travel intent was detected.
type SuggestionCard struct {
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description"`
	PackageID   string `json:"package_id"`
}

// Reply is the full response to one user message.
type Reply struct {
	Reply             string          `json:"reply"`
	BannerImage       string          `json:"banner_image,omitempty"`
	ExpeditionPackage *ExpeditionCard `json:"expedition_package,omitempty"`
	FeaturedImage     string          `json:"featured_image,omitempty"`
	FeaturedArticle   *ArticleCard    `json:"featured_article,omitempty"`
	PackageSuggestion *SuggestionCard `json:"package_suggestion,omitempty"`
}

// Engine runs the reply cascade for a session.
type Engine struct {
	classifier  *intent.Classifier
	expeditions *ExpeditionResolver
	content     *ContentResolver
	suggester   *Suggester
	completer   genai.Completer
	history     *history.Store
	siteBaseURL string
	logger      *observability.Logger
}

// NewEngine wires the cascade together. siteBaseURL is the editorial site
// root used for article links.
func NewEngine(
	classifier *intent.Classifier,
	expeditions *ExpeditionResolver,
	content *ContentResolver,
	suggester *Suggester,
	completer genai.Completer,
	hist *history.Store,
	siteBaseURL string,
	logger *observability.Logger,
) *Engine {
	return &Engine{
		classifier:  classifier,
		expeditions: expeditions,
		content:     content,
		suggester:   suggester,
		completer:   completer,
		history:     hist,
		siteBaseURL: strings.TrimRight(siteBaseURL, "/"),
		logger:      logger.WithComponent("chat_engine"),
	}
}

// ArticleURL builds the public editorial link for an article.
func (e *Engine) ArticleURL(article storage.Article) string {
	return e.siteBaseURL + "/blog/" + article.Slug
}

// Respond processes one user message for the session and returns the reply.
// Resolver failures degrade to later cascade stages; only history access
// and the final generative call surface errors.
func (e *Engine) Respond(ctx context.Context, sessionID, userID, message string) (Reply, error) {
	hist, err := e.history.Get(ctx, sessionID, userID)
	if err != nil {
		return Reply{}, fmt.Errorf("load history: %w", err)
	}

	result := e.classifier.Detect(message)
	e.logger.Debug().
		Str("session_id", sessionID).
		Bool("travel", result.TravelIntent).
		Bool("expedition", result.ExpeditionIntent).
		Bool("ai_info", result.AIIntent).
		Bool("gate_prediction", result.GatePredictionIntent).
		Strs("locations", result.Locations).
		Msg("Message classified")

	if result.GatePredictionIntent {
		return e.respondGatePrediction(ctx, sessionID, userID, message, hist, result)
	}

	if result.ExpeditionIntent {
		return e.respondExpedition(ctx, sessionID, userID, message, hist, result)
	}

	if matches := e.content.Resolve(ctx, message); len(matches) > 0 {
		return e.respondContent(ctx, sessionID, userID, message, hist, matches)
	}

	if result.AIIntent {
		reply := Reply{Reply: fmt.Sprintf(
			"For information on sighting probabilities and AI-based predictions, visit: %s\n\nThis page provides detailed insights into wildlife sighting predictions powered by AI technology.",
			AIPredictionURL,
		)}
		return reply, e.finalize(ctx, sessionID, userID, message, reply.Reply, hist)
	}

	return e.respondGenerative(ctx, sessionID, userID, message, hist, result)
}

// respondGatePrediction answers gate-recommendation questions with the
// fixed predictive-models link, plus an expedition link when the message
// named a park.
func (e *Engine) respondGatePrediction(ctx context.Context, sessionID, userID, message string, hist []storage.Message, result intent.Result) (Reply, error) {
	var b strings.Builder
	b.WriteString("🎯 **Junglore's AI-Powered Gate Prediction**\n\n")
	b.WriteString("Junglore uses an advanced AI predictive model to help you choose the best safari gate for optimal wildlife sightings! ")
	b.WriteString("Our model analyzes historical data, seasonal patterns, and current conditions to recommend the ideal entry gate based on:\n\n")
	b.WriteString("✅ National park location\n")
	b.WriteString("✅ Your safari date\n")
	b.WriteString("✅ Seasonal wildlife movement patterns\n")
	b.WriteString("✅ Recent sighting trends\n\n")
	fmt.Fprintf(&b, "📊 **Get AI-powered gate recommendations:** %s\n\n", GatePredictionURL)

	if len(result.Locations) > 0 {
		park := titleCase(result.Locations[0])
		fmt.Fprintf(&b, "Planning a safari to %s? Check out our expedition packages:\n", park)
		match := e.expeditions.Resolve(ctx, park, "")
		if match.Matched {
			fmt.Fprintf(&b, "🌿 %s\n\n", e.expeditions.ConstructPostURL(match.Packages[0]))
		}
	} else {
		b.WriteString("💡 *Tip: Visit the link above and select your destination park and travel dates to get personalized gate recommendations!*\n\n")
	}

	b.WriteString("Trust Junglore's AI to maximize your chances of incredible wildlife encounters! 🐅🌿")

	reply := Reply{Reply: b.String()}
	return reply, e.finalize(ctx, sessionID, userID, message, reply.Reply, hist)
}

// respondExpedition answers expedition questions from the package catalog.
func (e *Engine) respondExpedition(ctx context.Context, sessionID, userID, message string, hist []storage.Message, result intent.Result) (Reply, error) {
	match := e.expeditions.Resolve(ctx, message, "")

	var reply Reply
	switch {
	case match.Matched:
		reply = e.buildExpeditionReply(message, match)

	case len(result.Locations) > 0 && match.Searched > 0:
		park := titleCase(result.Locations[0])
		reply = Reply{Reply: fmt.Sprintf("We don't currently have expeditions for %s. Would you like to explore other parks?", park)}

	case len(match.AvailableParks) > 0:
		reply = Reply{Reply: "Yes — we offer jungle safari expeditions in: " + strings.Join(match.AvailableParks, ", ") + ". Which one are you interested in?"}

	default:
		reply = Reply{Reply: "We're currently setting up our expedition packages. Please check back soon!"}
	}

	return reply, e.finalize(ctx, sessionID, userID, message, reply.Reply, hist)
}

// buildExpeditionReply renders the matched-package reply with the top
// package's details and up to two alternates.
func (e *Engine) buildExpeditionReply(message string, match ExpeditionMatch) Reply {
	var b strings.Builder

	if month := detectMonth(message); month != "" {
		fmt.Fprintf(&b, "Yes! We have expeditions planned for %s to %s. 🌿\n\n", month, match.MatchedPark)
	} else {
		fmt.Fprintf(&b, "Yes! We have exciting expeditions to %s. 🌿\n\n", match.MatchedPark)
	}

	top := match.Packages[0]
	title := top.Title
	if title == "" {
		title = top.Heading
	}
	url := e.expeditions.ConstructPostURL(top)

	fmt.Fprintf(&b, "**%s**\n", title)
	if top.Duration != "" {
		fmt.Fprintf(&b, "📅 Duration: %s\n", top.Duration)
	}
	if top.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", Truncate(top.Description, 150))
	}
	fmt.Fprintf(&b, "\n🔗 **View detailed itinerary and book:** %s\n", url)

	if len(match.Packages) > 1 {
		fmt.Fprintf(&b, "\n**Other %s expeditions:**\n", match.MatchedPark)
		for _, pkg := range match.Packages[1:min(3, len(match.Packages))] {
			pkgTitle := pkg.Title
			if pkgTitle == "" {
				pkgTitle = pkg.Heading
			}
			fmt.Fprintf(&b, "• %s: %s\n", pkgTitle, e.expeditions.ConstructPostURL(pkg))
		}
	}

	b.WriteString("\n💡 *Each expedition includes expert guides, comfortable accommodations, and curated wildlife experiences!*")

	reply := Reply{
		Reply:       b.String(),
		BannerImage: top.Image,
		ExpeditionPackage: &ExpeditionCard{
			Title:       title,
			Image:       top.Image,
			Duration:    top.Duration,
			Description: truncateNoEllipsis(top.Description, 200),
			URL:         url,
			Park:        match.MatchedPark,
		},
	}
	return reply
}

// respondContent recommends matched editorial content.
func (e *Engine) respondContent(ctx context.Context, sessionID, userID, message string, hist []storage.Message, matches []ScoredArticle) (Reply, error) {
	var b strings.Builder
	b.WriteString("I found some great resources on this topic:\n\n")

	top := matches[0].Article
	reply := Reply{}

	if top.Image != "" {
		fmt.Fprintf(&b, "**Featured:** %s\n", top.Title)
		if top.Excerpt != "" {
			fmt.Fprintf(&b, "%s...\n\n", truncateNoEllipsis(top.Excerpt, 150))
		}
		fmt.Fprintf(&b, "🔗 Read more: %s\n\n", e.ArticleURL(top))

		if len(matches) > 1 {
			b.WriteString("**More articles:**\n")
			for _, m := range matches[1:min(5, len(matches))] {
				fmt.Fprintf(&b, "📖 %s: %s\n", m.Article.Title, e.ArticleURL(m.Article))
			}
		}

		reply.FeaturedImage = top.Image
		reply.FeaturedArticle = &ArticleCard{
			Title:   top.Title,
			Excerpt: truncateNoEllipsis(top.Excerpt, 200),
			URL:     e.ArticleURL(top),
			Image:   top.Image,
		}
	} else {
		for _, m := range matches[:min(5, len(matches))] {
			fmt.Fprintf(&b, "📖 **%s**\n", m.Article.Title)
			if m.Article.Excerpt != "" {
				fmt.Fprintf(&b, "   %s...\n", truncateNoEllipsis(m.Article.Excerpt, 100))
			}
			fmt.Fprintf(&b, "   Read more: %s\n\n", e.ArticleURL(m.Article))
		}
	}

	b.WriteString("Explore more educational content on ExploreJungles.com! 🌿")
	reply.Reply = b.String()

	return reply, e.finalize(ctx, sessionID, userID, message, reply.Reply, hist)
}

// respondGenerative is the last cascade stage: conversation history plus
// the system prompt go to the generative backend, and travel intent earns
// a package suggestion card.
func (e *Engine) respondGenerative(ctx context.Context, sessionID, userID, message string, hist []storage.Message, result intent.Result) (Reply, error) {
	messages := make([]genai.ChatMessage, 0, len(hist)+2)
	messages = append(messages, genai.ChatMessage{Role: genai.RoleSystem, Content: SystemPrompt})
	for _, m := range hist {
		role := genai.RoleAssistant
		if m.Sender == storage.SenderUser {
			role = genai.RoleUser
		}
		messages = append(messages, genai.ChatMessage{Role: role, Content: m.Text})
	}
	messages = append(messages, genai.ChatMessage{Role: genai.RoleUser, Content: message})

	botReply, err := e.completer.Complete(ctx, messages, 0, -1)
	if err != nil {
		return Reply{}, fmt.Errorf("generate reply: %w", err)
	}

	reply := Reply{Reply: botReply}
	if result.TravelIntent {
		if pkg := e.suggester.FindRelevantPackage(ctx, message); pkg != nil {
			reply.PackageSuggestion = &SuggestionCard{
				Title:       pkg.Title,
				Image:       pkg.Image,
				Description: e.suggester.Describe(ctx, *pkg, DescriptionShort),
				PackageID:   pkg.ID,
			}
		}
	}

	return reply, e.finalize(ctx, sessionID, userID, message, reply.Reply, hist)
}

// finalize appends the user and bot turns and writes the session history
// through to durable storage and cache.
func (e *Engine) finalize(ctx context.Context, sessionID, userID, userMessage, botReply string, hist []storage.Message) error {
	updated := append(hist,
		storage.Message{Sender: storage.SenderUser, Text: userMessage},
		storage.Message{Sender: storage.SenderBot, Text: botReply},
	)
	if err := e.history.Put(ctx, sessionID, userID, updated); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// detectMonth returns the title-cased month mentioned in the message, or "".
func detectMonth(message string) string {
	lower := strings.ToLower(message)
	for _, month := range months {
		if strings.Contains(lower, month) {
			return titleCase(month)
		}
	}
	return ""
}

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// truncateNoEllipsis cuts text to max characters without a suffix,
// on rune boundaries.
func truncateNoEllipsis(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
