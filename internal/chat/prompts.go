package chat

import (
	"fmt"
	"strings"

	"github.com/junglore/chat-engine/internal/storage"
)

// SystemPrompt steers the generative fallback. Sighting-probability
// questions must always land on the predictive models page rather than an
// invented probability.
const SystemPrompt = `Safari Sighting Prediction Recommendation

You are an AI assistant for Junglore, a wildlife travel and safari experience platform.

Primary Objective:
Whenever a user asks about how AI is used in safaris, the chances or probability of wildlife sightings, or the likelihood of seeing animals during a safari, you MUST:
- Acknowledge the user's question clearly.
- Explain briefly (1-2 sentences) how Junglore uses AI-driven predictive models.
- Recommend Junglore's AI-powered Safari Sighting Prediction Models.
- Redirect the user to the official Junglore predictive models page (see link below).

Intent Detection Criteria (trigger behavior for queries like):
- "How do you use AI in safaris?"
- "What are the chances of spotting a tiger with you?"
- "Can you predict wildlife sightings?"
- "How likely am I to see animals on a safari?"
- "Do you have any model that predicts sightings?"

Response Guidelines (mandatory):
- Tone: Informative, confident, friendly.
- State that Junglore uses AI-driven predictive models based on historical sighting data, seasonal patterns, park-specific trends, time/zone and movement analytics.
- Do NOT guarantee sightings (no promises) and do NOT provide random or made-up probabilities.
- Keep responses concise, value-driven, and encourage users to explore the model.

Mandatory Recommendation & Redirection (always include):
Explore our AI-powered Safari Sighting Prediction Models here:
https://www.junglore.com/trips-safaris/preditive-modals

Sample response template (use as guidance):
"We use AI to enhance safari planning by analyzing historical sightings, seasonal trends, and park-specific movement patterns. While sightings can never be guaranteed, our predictive model estimates probability of sightings and helps guide better-informed safari choices. To learn more and explore the model, visit: https://www.junglore.com/trips-safaris/preditive-modals"`

// descriptionSystemPrompt frames the model as a safari copywriter for
// package description generation.
const descriptionSystemPrompt = "You are a wildlife safari expert. Create compelling descriptions that make people excited about the safari experience."

// matchingSystemPrompt frames the model as a consultant for best-match
// package selection.
const matchingSystemPrompt = "You are a wildlife safari expert. Analyze user requests and match them with the most relevant safari package. Be precise and only recommend strong matches."

// packageInfo renders the fields the prompts care about.
func packageInfo(pkg storage.Package) string {
	return fmt.Sprintf(`Title: %s
Description: %s
Location: %s - %s
Duration: %s
Type: %s
Price: %v %s`,
		pkg.Title, pkg.Description, pkg.Heading, pkg.Region,
		pkg.Duration, pkg.Type, pkg.Price, pkg.Currency)
}

// shortDescriptionPrompt asks for a one-card teaser.
func shortDescriptionPrompt(pkg storage.Package) string {
	return fmt.Sprintf(`Create a compelling 1-2 line description for this safari package:
%s

Make it exciting and enticing. Keep it under 100 characters. Focus on the main wildlife and experience.`, packageInfo(pkg))
}

// detailedDescriptionPrompt asks for a full landing-page description.
func detailedDescriptionPrompt(pkg storage.Package) string {
	return fmt.Sprintf(`Create a detailed, engaging description for this safari package:
%s

Write a comprehensive description that includes:
- What wildlife they'll see
- The experience highlights
- Location details
- What makes this package special
- What's included

Make it exciting and informative. Write 3-4 paragraphs.`, packageInfo(pkg))
}

// bestMatchPrompt numbers the candidates and asks the model to pick one or
// answer NONE. The numbering is 1-based; the caller converts back.
func bestMatchPrompt(userMessage string, packages []storage.Package) string {
	var summaries strings.Builder
	for i, pkg := range packages {
		fmt.Fprintf(&summaries, `%d. Package: %s
Description: %s
Location: %s - %s
Duration: %s
Type: %s

`, i+1, pkg.Title, pkg.Description, pkg.Heading, pkg.Region, pkg.Duration, pkg.Type)
	}

	return fmt.Sprintf(`You are an expert wildlife safari consultant. A user has asked: %q

Based on their request, analyze these available safari packages and recommend the MOST RELEVANT ONE that best matches their specific requirements.

Available packages:
%s
Consider:
1. Wildlife they want to see (tigers, elephants, lions, etc.)
2. Specific locations they mentioned (Ranthambore, Corbett, etc.)
3. Duration preferences (1 day, 3 days, etc.)
4. Type of experience (expedition vs luxury resort)
5. Budget considerations
6. Any negative preferences they mentioned (e.g., "not in Corbett")

Respond with ONLY the package number (1, 2, 3, etc.) that best matches their request. If no package is suitable, respond with "NONE".

Be very precise - only recommend a package if it's a strong match for their specific requirements.`, userMessage, summaries.String())
}
