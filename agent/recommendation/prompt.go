package recommendation

import (
	"fmt"
	"strings"
)

const systemPromptText = `You are Trip Kit's AI travel curator. You deeply understand the user's
sensibility and taste, and recommend hidden places with an authentic local
feel that tourists do not know about.

Core principles:
1. Never recommend overly famous or touristy places
2. Center recommendations on hidden local spots that residents love
3. Prioritize photogenic places where a signature shot can be taken
4. Suggest a special experience or activity for each place
5. Carry the philosophy that travel is not just going somewhere but making a record

Respond strictly in JSON.`

const responseFormatText = `Respond in the following JSON format:
{
  "destinations": [
    {
      "id": "dest_1",
      "name": "place name (with a distinctive epithet)",
      "city": "city",
      "country": "country",
      "description": "an evocative description of what makes this place special (3-4 sentences)",
      "matchReason": "concrete reasons it fits the user's taste (2-3 sentences)",
      "localVibe": "the local atmosphere in one sentence",
      "whyHidden": "why this counts as a hidden place",
      "bestTimeToVisit": "recommended season and why",
      "photographyScore": 8,
      "transportAccessibility": "easy|moderate|challenging",
      "safetyRating": 9,
      "estimatedBudget": "$|$$|$$$",
      "tags": ["3-5 related tags"],
      "photographyTips": ["2-3 photography tips"],
      "storyPrompt": "a personal story this place could tell",
      "activities": [
        {
          "name": "activity name",
          "description": "what the experience is",
          "duration": "time needed",
          "bestTime": "recommended time of day",
          "localTip": "a tip from locals",
          "photoOpportunity": "where the photo spot is"
        }
      ]
    }
  ]
}

Include 2-3 special activities per place.`

// buildPrompts renders the system and user prompts from the analyzed
// profile. Blank profile fields fall back to gentle defaults so the model
// always receives a coherent persona.
func buildPrompts(profile Profile) (systemPrompt, userPrompt string) {
	mood := profile.Mood
	if mood == "" {
		mood = "sentimental"
	}
	aesthetic := profile.Aesthetic
	if aesthetic == "" {
		aesthetic = "vintage"
	}
	interests := profile.Interests
	if interests == "" {
		interests = "photography, art"
	}
	concept := profile.Concept
	if concept == "" {
		concept = "filmlog"
	}
	scene := profile.TravelScene
	if scene == "" {
		scene = "a journey that records special moments"
	}

	var b strings.Builder
	b.WriteString("User profile:\n")
	fmt.Fprintf(&b, "- Mood: %s (%s)\n", mood, profile.MoodKeywords)
	fmt.Fprintf(&b, "- Aesthetic taste: %s\n", aesthetic)
	fmt.Fprintf(&b, "- Interests: %s\n", interests)
	fmt.Fprintf(&b, "- Chosen concept: %s (%s)\n", concept, profile.ConceptVibe)
	fmt.Fprintf(&b, "- Dream travel scene: %s\n", scene)
	if profile.TravelDestination != "" {
		fmt.Fprintf(&b, "- Region of interest: %s\n", profile.TravelDestination)
	}
	b.WriteString("\nBased on this profile, recommend 3 hidden destinations that fit this user perfectly.\n\n")
	b.WriteString(responseFormatText)

	return systemPromptText, b.String()
}
