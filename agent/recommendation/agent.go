// Package recommendation implements the travel destination recommendation
// agent: a fixed sequence of steps that analyzes the user's preferences,
// builds a prompt, generates candidate destinations with a Gemini text
// model, and parses the response. Any failure along the way degrades to a
// static fallback set so callers always receive a completed result.
package recommendation

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/KernelAcademy-AICamp/ai-camp-3rd-chatbot-pjt-mint-loop/internal/metrics"
)

// DefaultTextModel is used when neither the agent nor the call specifies one.
const DefaultTextModel = "gemini-2.5-flash"

// Preferences captures the user's taste signals.
type Preferences struct {
	Mood      string   `json:"mood,omitempty"`
	Aesthetic string   `json:"aesthetic,omitempty"`
	Duration  string   `json:"duration,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// Input is one recommendation request.
type Input struct {
	Preferences       Preferences `json:"preferences"`
	Concept           string      `json:"concept,omitempty"`
	TravelScene       string      `json:"travelScene,omitempty"`
	TravelDestination string      `json:"travelDestination,omitempty"`
}

// Activity is one suggested experience at a destination.
type Activity struct {
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	Duration         string `json:"duration,omitempty"`
	BestTime         string `json:"bestTime,omitempty"`
	LocalTip         string `json:"localTip,omitempty"`
	PhotoOpportunity string `json:"photoOpportunity,omitempty"`
}

// Destination is one recommended place.
type Destination struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	City                   string     `json:"city,omitempty"`
	Country                string     `json:"country,omitempty"`
	Description            string     `json:"description,omitempty"`
	MatchReason            string     `json:"matchReason,omitempty"`
	LocalVibe              string     `json:"localVibe,omitempty"`
	WhyHidden              string     `json:"whyHidden,omitempty"`
	BestTimeToVisit        string     `json:"bestTimeToVisit,omitempty"`
	PhotographyScore       int        `json:"photographyScore,omitempty"`
	TransportAccessibility string     `json:"transportAccessibility,omitempty"`
	SafetyRating           int        `json:"safetyRating,omitempty"`
	EstimatedBudget        string     `json:"estimatedBudget,omitempty"`
	Tags                   []string   `json:"tags,omitempty"`
	PhotographyTips        []string   `json:"photographyTips,omitempty"`
	StoryPrompt            string     `json:"storyPrompt,omitempty"`
	Activities             []Activity `json:"activities,omitempty"`
}

// Output is the agent's result. Status is always "completed"; when live
// generation failed, IsFallback marks the static destination set.
type Output struct {
	Destinations []Destination `json:"destinations"`
	UserProfile  Profile       `json:"userProfile"`
	Status       string        `json:"status"`
	IsFallback   bool          `json:"isFallback"`
	ThreadID     string        `json:"threadId"`
}

// TextGenerator is the backend seam: one prompt in, raw model text out.
type TextGenerator interface {
	GenerateText(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

// Config configures the agent.
type Config struct {
	// Model is the default Gemini text model.
	Model string
	// APIKey falls back to GEMINI_API_KEY, then GOOGLE_API_KEY.
	APIKey string
	// Generator overrides the genai-backed default, mainly for tests.
	Generator TextGenerator
}

// Agent runs the recommendation pipeline.
type Agent struct {
	model     string
	generator TextGenerator
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// NewAgent creates a recommendation agent. collector may be nil.
func NewAgent(cfg Config, collector *metrics.Collector, logger *zap.Logger) *Agent {
	if cfg.Model == "" {
		cfg.Model = DefaultTextModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	gen := cfg.Generator
	if gen == nil {
		gen = &genaiTextGenerator{apiKey: cfg.APIKey}
	}
	return &Agent{
		model:     cfg.Model,
		generator: gen,
		metrics:   collector,
		logger:    logger,
	}
}

// RecommendOption adjusts one Recommend call.
type RecommendOption func(*recommendOptions)

type recommendOptions struct {
	threadID string
	model    string
}

// WithThreadID sets the conversation thread identifier.
func WithThreadID(id string) RecommendOption {
	return func(o *recommendOptions) { o.threadID = id }
}

// WithModel overrides the agent's model for one call.
func WithModel(model string) RecommendOption {
	return func(o *recommendOptions) { o.model = model }
}

// Recommend runs the pipeline: analyze preferences, build prompts, generate,
// parse. It never returns an error; generation or parsing failures produce
// the fallback destination set with IsFallback set.
func (a *Agent) Recommend(ctx context.Context, input Input, opts ...RecommendOption) Output {
	o := recommendOptions{model: a.model}
	for _, opt := range opts {
		opt(&o)
	}
	if o.threadID == "" {
		o.threadID = uuid.NewString()
	}

	profile := analyzePreferences(input)

	a.logger.Info("starting recommendation generation",
		zap.String("thread_id", o.threadID),
		zap.String("model", o.model),
		zap.String("concept", input.Concept),
		zap.String("destination", input.TravelDestination))

	systemPrompt, userPrompt := buildPrompts(profile)

	raw, err := a.generator.GenerateText(ctx, o.model, systemPrompt, userPrompt)
	if err != nil {
		a.logger.Error("recommendation generation failed, using fallback", zap.Error(err))
		return a.fallbackOutput(profile, o.threadID)
	}

	destinations, err := parseDestinations(raw)
	if err != nil {
		a.logger.Error("response parsing failed, using fallback", zap.Error(err))
		return a.fallbackOutput(profile, o.threadID)
	}

	a.logger.Info("recommendations generated", zap.Int("count", len(destinations)))
	a.metrics.ObserveAgentRun("recommendation", "completed")

	return Output{
		Destinations: destinations,
		UserProfile:  profile,
		Status:       "completed",
		IsFallback:   false,
		ThreadID:     o.threadID,
	}
}

func (a *Agent) fallbackOutput(profile Profile, threadID string) Output {
	a.metrics.ObserveAgentRun("recommendation", "fallback")
	return Output{
		Destinations: fallbackDestinations(),
		UserProfile:  profile,
		Status:       "completed",
		IsFallback:   true,
		ThreadID:     threadID,
	}
}

// genaiTextGenerator is the production TextGenerator backed by the Gemini
// API. The client is built lazily on first use.
type genaiTextGenerator struct {
	apiKey string
	client *genai.Client
}

func (g *genaiTextGenerator) GenerateText(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	client := g.client
	if client == nil {
		apiKey := g.apiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		if apiKey == "" {
			return "", fmt.Errorf("missing API key (set GEMINI_API_KEY or GOOGLE_API_KEY)")
		}
		c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
		if err != nil {
			return "", fmt.Errorf("create gemini client: %w", err)
		}
		g.client = c
		client = c
	}

	res, err := client.Models.GenerateContent(ctx, model,
		genai.Text(systemPrompt+"\n\n"+userPrompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0.8),
			ResponseMIMEType: "application/json",
		})
	if err != nil {
		return "", err
	}
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0] == nil || res.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates returned from model")
	}
	for _, part := range res.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			return part.Text, nil
		}
	}
	return "", fmt.Errorf("no text returned from model")
}

var _ TextGenerator = (*genaiTextGenerator)(nil)
