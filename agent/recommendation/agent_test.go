package recommendation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator returns a canned response and records the call.
type fakeGenerator struct {
	calls      int
	lastModel  string
	lastSystem string
	lastUser   string
	response   string
	err        error
}

func (f *fakeGenerator) GenerateText(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.lastModel = model
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	return f.response, f.err
}

const sampleResponse = `{
  "destinations": [
    {"id": "dest_1", "name": "Quiet Harbor", "city": "Hvar", "country": "Croatia",
     "photographyScore": 8, "tags": ["hidden", "coastal"]},
    {"id": "dest_2", "name": "Old Mill Lane", "city": "Ghent", "country": "Belgium"}
  ]
}`

func newTestAgent(gen TextGenerator) *Agent {
	return NewAgent(Config{Generator: gen}, nil, nil)
}

func TestRecommend_Success(t *testing.T) {
	gen := &fakeGenerator{response: sampleResponse}
	agent := newTestAgent(gen)

	input := Input{
		Preferences: Preferences{Mood: "romantic", Interests: []string{"photography", "food"}},
		Concept:     "filmlog",
	}
	out := agent.Recommend(context.Background(), input, WithThreadID("thread-1"))

	assert.Equal(t, "completed", out.Status)
	assert.False(t, out.IsFallback)
	assert.Equal(t, "thread-1", out.ThreadID)
	require.Len(t, out.Destinations, 2)
	assert.Equal(t, "Quiet Harbor", out.Destinations[0].Name)
	assert.Equal(t, 8, out.Destinations[0].PhotographyScore)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, DefaultTextModel, gen.lastModel)
	assert.Contains(t, gen.lastUser, "romantic")
	assert.Contains(t, gen.lastUser, "photography, food")
}

func TestRecommend_FencedResponse(t *testing.T) {
	gen := &fakeGenerator{response: "Here you go:\n```json\n" + sampleResponse + "\n```\nEnjoy!"}
	agent := newTestAgent(gen)

	out := agent.Recommend(context.Background(), Input{})

	assert.False(t, out.IsFallback)
	assert.Len(t, out.Destinations, 2)
}

func TestRecommend_GeneratorErrorFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("rate limited")}
	agent := newTestAgent(gen)

	out := agent.Recommend(context.Background(), Input{})

	assert.Equal(t, "completed", out.Status)
	assert.True(t, out.IsFallback)
	assert.Len(t, out.Destinations, 3)
	assert.NotEmpty(t, out.ThreadID)
}

func TestRecommend_UnparseableResponseFallsBack(t *testing.T) {
	gen := &fakeGenerator{response: "I cannot answer that."}
	agent := newTestAgent(gen)

	out := agent.Recommend(context.Background(), Input{})

	assert.True(t, out.IsFallback)
	assert.Len(t, out.Destinations, 3)
}

func TestRecommend_WithModelOverride(t *testing.T) {
	gen := &fakeGenerator{response: sampleResponse}
	agent := newTestAgent(gen)

	agent.Recommend(context.Background(), Input{}, WithModel("gemini-2.5-pro"))
	assert.Equal(t, "gemini-2.5-pro", gen.lastModel)
}

func TestAnalyzePreferences(t *testing.T) {
	input := Input{
		Preferences: Preferences{Mood: "nostalgic", Aesthetic: "film", Interests: []string{"cafes", "jazz"}},
		Concept:     "midnight",
	}
	profile := analyzePreferences(input)

	assert.Equal(t, "nostalgic", profile.Mood)
	assert.Contains(t, profile.MoodKeywords, "vintage")
	assert.Contains(t, profile.ConceptVibe, "jazz")
	assert.Equal(t, "cafes, jazz", profile.Interests)

	// Unknown keys contribute no keywords.
	empty := analyzePreferences(Input{Preferences: Preferences{Mood: "grumpy"}})
	assert.Empty(t, empty.MoodKeywords)
}

func TestBuildPrompts(t *testing.T) {
	system, user := buildPrompts(Profile{
		Mood:              "peaceful",
		MoodKeywords:      moodKeywords["peaceful"],
		TravelDestination: "northern Italy",
	})

	assert.Contains(t, system, "Respond strictly in JSON")
	assert.Contains(t, user, "peaceful")
	assert.Contains(t, user, "Region of interest: northern Italy")
	assert.Contains(t, user, `"destinations"`)

	// Blank fields fall back to the default persona.
	_, defaulted := buildPrompts(Profile{})
	assert.Contains(t, defaulted, "sentimental")
	assert.Contains(t, defaulted, "vintage")
	assert.False(t, strings.Contains(defaulted, "Region of interest"))
}

func TestParseDestinations(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr string
	}{
		{name: "plain json", raw: sampleResponse, want: 2},
		{name: "fenced", raw: "```json\n" + sampleResponse + "\n```", want: 2},
		{name: "surrounded by prose", raw: "Sure! " + sampleResponse + " Hope that helps.", want: 2},
		{name: "empty", raw: "   ", wantErr: "empty response"},
		{name: "no destinations", raw: `{"destinations": []}`, wantErr: "could not extract"},
		{name: "not json", raw: "sorry, no", wantErr: "could not extract"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDestinations(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestFallbackDestinations(t *testing.T) {
	dests := fallbackDestinations()
	require.Len(t, dests, 3)
	for _, d := range dests {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Country)
	}
}
