package recommendation

import "strings"

// Concept and mood keyword tables used to enrich the prompt. Unknown keys
// simply contribute no keywords.
var conceptVibes = map[string]string{
	"flaneur":  "city wanderer, literary sensibility, cafe culture, artist's soul, bohemian",
	"filmlog":  "film camera, vintage, nostalgia, analog mood, warm memories",
	"midnight": "art of the night, jazz, the 1920s, bohemian nightlife, mysterious atmosphere",
}

var moodKeywords = map[string]string{
	"romantic":    "romantic, lovely, atmospheric alleys, sunsets, wine",
	"adventurous": "adventure, exploration, hidden paths, locals-only, the joy of discovery",
	"nostalgic":   "nostalgia, old memories, vintage, time travel, the beauty of the past",
	"peaceful":    "peaceful, quiet, meditative, nature, healing",
}

// Profile is the analyzed view of the user's input, feeding prompt
// construction.
type Profile struct {
	Mood              string `json:"mood,omitempty"`
	MoodKeywords      string `json:"moodKeywords,omitempty"`
	Aesthetic         string `json:"aesthetic,omitempty"`
	Concept           string `json:"concept,omitempty"`
	ConceptVibe       string `json:"conceptVibe,omitempty"`
	Interests         string `json:"interests,omitempty"`
	TravelScene       string `json:"travelScene,omitempty"`
	TravelDestination string `json:"travelDestination,omitempty"`
}

// analyzePreferences maps the raw input onto a Profile, expanding concept
// and mood into their keyword phrases.
func analyzePreferences(input Input) Profile {
	return Profile{
		Mood:              input.Preferences.Mood,
		MoodKeywords:      moodKeywords[input.Preferences.Mood],
		Aesthetic:         input.Preferences.Aesthetic,
		Concept:           input.Concept,
		ConceptVibe:       conceptVibes[input.Concept],
		Interests:         strings.Join(input.Preferences.Interests, ", "),
		TravelScene:       input.TravelScene,
		TravelDestination: input.TravelDestination,
	}
}
