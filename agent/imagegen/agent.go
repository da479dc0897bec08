// Package imagegen implements the image generation agent: optimize the
// prompt from the request's keywords, resolve a provider through the
// registry, and generate. On failure the agent substitutes a static
// placeholder so the caller's happy-path contract stays intact.
package imagegen

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KernelAcademy-AICamp/ai-camp-3rd-chatbot-pjt-mint-loop/config"
	"github.com/KernelAcademy-AICamp/ai-camp-3rd-chatbot-pjt-mint-loop/image"
	"github.com/KernelAcademy-AICamp/ai-camp-3rd-chatbot-pjt-mint-loop/internal/metrics"
)

// placeholderImage is a 1x1 transparent PNG served when generation fails.
const placeholderImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// Request is one image generation request. Blank fields inherit the
// configured defaults.
type Request struct {
	Prompt   string   `json:"prompt"`
	Keywords []string `json:"keywords,omitempty"`
	Size     string   `json:"size,omitempty"`
	Quality  string   `json:"quality,omitempty"`
	Style    string   `json:"style,omitempty"`
	Provider string   `json:"provider,omitempty"`
}

// Result is the agent's outcome. Status is "completed" or "fallback"; a
// fallback result still carries a usable placeholder URL.
type Result struct {
	URL           string         `json:"url"`
	RevisedPrompt string         `json:"revisedPrompt,omitempty"`
	Provider      string         `json:"provider"`
	Status        string         `json:"status"`
	Error         string         `json:"error,omitempty"`
	IsFallback    bool           `json:"isFallback"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// Agent orchestrates prompt optimization and provider-backed generation.
type Agent struct {
	registry *image.Registry
	defaults config.ImageConfig
	metrics  *metrics.Collector
	logger   *zap.Logger
}

// NewAgent creates an image generation agent over the given registry.
// collector may be nil.
func NewAgent(registry *image.Registry, defaults config.ImageConfig, collector *metrics.Collector, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults.Size == "" {
		defaults.Size = "1024x1024"
	}
	if defaults.Quality == "" {
		defaults.Quality = "standard"
	}
	if defaults.Style == "" {
		defaults.Style = "vivid"
	}
	return &Agent{
		registry: registry,
		defaults: defaults,
		metrics:  collector,
		logger:   logger,
	}
}

// Generate runs the pipeline. It never returns an error; provider
// resolution and generation failures produce a fallback result.
func (a *Agent) Generate(ctx context.Context, req Request) Result {
	prompt := optimizePrompt(req.Prompt, req.Keywords)

	params := image.GenerationParams{
		Prompt:  prompt,
		Size:    firstNonEmpty(req.Size, a.defaults.Size),
		Quality: firstNonEmpty(req.Quality, a.defaults.Quality),
		Style:   firstNonEmpty(req.Style, a.defaults.Style),
	}

	providerName := firstNonEmpty(req.Provider, a.defaults.Provider)

	a.logger.Info("starting image generation",
		zap.String("provider", providerName),
		zap.String("size", params.Size),
		zap.String("style", params.Style))

	provider, err := a.registry.Get(providerName, nil)
	if err != nil {
		a.logger.Error("provider resolution failed", zap.Error(err))
		return a.fallbackResult(providerName, err.Error())
	}

	start := time.Now()
	res := provider.Generate(ctx, params)
	a.metrics.ObserveGeneration(provider.Name(), res.Success, time.Since(start))

	if !res.Success {
		a.logger.Error("image generation failed",
			zap.String("provider", provider.Name()),
			zap.String("error", res.Error))
		return a.fallbackResult(provider.Name(), res.Error)
	}

	a.metrics.ObserveAgentRun("imagegen", "completed")
	return Result{
		URL:           res.URL,
		RevisedPrompt: res.RevisedPrompt,
		Provider:      res.Provider,
		Status:        "completed",
		Metadata:      res.Metadata,
	}
}

func (a *Agent) fallbackResult(provider, errMsg string) Result {
	a.metrics.ObserveAgentRun("imagegen", "fallback")
	return Result{
		URL:        placeholderImage,
		Provider:   provider,
		Status:     "fallback",
		Error:      errMsg,
		IsFallback: true,
	}
}

// optimizePrompt folds the extracted keywords into the prompt. Keywords
// already present in the prompt are skipped to avoid repetition.
func optimizePrompt(prompt string, keywords []string) string {
	prompt = strings.TrimSpace(prompt)
	lower := strings.ToLower(prompt)

	var extras []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" || strings.Contains(lower, strings.ToLower(kw)) {
			continue
		}
		extras = append(extras, kw)
	}
	if len(extras) == 0 {
		return prompt
	}
	return prompt + ", " + strings.Join(extras, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
