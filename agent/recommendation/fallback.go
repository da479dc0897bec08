package recommendation

// fallbackDestinations is the static recommendation set returned when live
// generation or parsing fails. Kept deliberately small and hand-curated so
// the caller's happy path always holds.
func fallbackDestinations() []Destination {
	return []Destination{
		{
			ID:                     "dest_fallback_1",
			Name:                   "The Snow-White Winter of Rovaniemi's Santa Village",
			City:                   "Rovaniemi",
			Country:                "Finland",
			Description:            "The true home of Santa, sitting right on the Arctic Circle.",
			MatchReason:            "A perfect match if you have dreamed of a storybook Christmas.",
			LocalVibe:              "The calm of falling snow and a warm cup of cocoa",
			WhyHidden:              "The real charm hides in the forest cabins nearby",
			BestTimeToVisit:        "Mid-December to January",
			PhotographyScore:       10,
			TransportAccessibility: "moderate",
			SafetyRating:           10,
			EstimatedBudget:        "$$$",
			Tags:                   []string{"winter", "aurora", "snow"},
			PhotographyTips:        []string{"Bring a tripod for aurora shots"},
			StoryPrompt:            "Making a wish beneath the northern lights",
		},
		{
			ID:                     "dest_fallback_2",
			Name:                   "Gordes, a Journey Back to the Middle Ages",
			City:                   "Gordes",
			Country:                "France",
			Description:            "A medieval village that seems to hang from a Provencal cliff.",
			MatchReason:            "Perfect if you love vintage texture and history.",
			LocalVibe:              "Medieval footsteps in the scent of lavender",
			WhyHidden:              "Overshadowed by the Eiffel Tower, yet the truest French mood",
			BestTimeToVisit:        "Late June to early July",
			PhotographyScore:       10,
			TransportAccessibility: "challenging",
			SafetyRating:           9,
			EstimatedBudget:        "$$",
			Tags:                   []string{"medieval", "provence", "lavender"},
			PhotographyTips:        []string{"Frame the whole village at sunset"},
			StoryPrompt:            "Wandering the medieval stone lanes",
		},
		{
			ID:                     "dest_fallback_3",
			Name:                   "Naoshima, the Island Where Art Breathes",
			City:                   "Naoshima",
			Country:                "Japan",
			Description:            "A small island in the Seto Inland Sea that is a museum in itself.",
			MatchReason:            "Perfect if you love the harmony of art and nature.",
			LocalVibe:              "An afternoon of art accompanied by the sound of waves",
			WhyHidden:              "Still a hidden gem for most overseas travelers",
			BestTimeToVisit:        "April-May or October-November",
			PhotographyScore:       10,
			TransportAccessibility: "moderate",
			SafetyRating:           10,
			EstimatedBudget:        "$$",
			Tags:                   []string{"art", "island", "architecture"},
			PhotographyTips:        []string{"Catch the yellow pumpkin at dusk"},
			StoryPrompt:            "Where the whole island is a canvas",
		},
	}
}
