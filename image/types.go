package image

import (
	"context"
	"fmt"
	"strings"
)

// GenerationParams represents an image generation request.
// Values are owned by the caller and passed by value into Generate.
type GenerationParams struct {
	Prompt  string         `json:"prompt"`
	Size    string         `json:"size,omitempty"`    // "1024x1024", "1:1", ...
	Quality string         `json:"quality,omitempty"` // standard, hd
	Style   string         `json:"style,omitempty"`   // vivid, natural
	Extra   map[string]any `json:"extra,omitempty"`   // merged into the backend request
}

// DefaultParams returns generation parameters with the defaults every
// built-in provider accepts.
func DefaultParams(prompt string) GenerationParams {
	return GenerationParams{
		Prompt:  prompt,
		Size:    "1024x1024",
		Quality: "standard",
		Style:   "vivid",
	}
}

// metadata flattens the parameters into a metadata map for failure results.
func (p GenerationParams) metadata() map[string]any {
	m := map[string]any{
		"prompt":  p.Prompt,
		"size":    p.Size,
		"quality": p.Quality,
		"style":   p.Style,
	}
	for k, v := range p.Extra {
		m[k] = v
	}
	return m
}

// GenerationResult represents the outcome of one generation call.
// Invariant: Success implies URL is set and Error is empty; failure implies
// the opposite. Construct results through SuccessResult or FailureResult.
type GenerationResult struct {
	Success       bool           `json:"success"`
	URL           string         `json:"url,omitempty"`
	RevisedPrompt string         `json:"revised_prompt,omitempty"`
	Error         string         `json:"error,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Provider      string         `json:"provider"`
}

// SuccessResult builds a successful generation result.
func SuccessResult(provider, url, revisedPrompt string, metadata map[string]any) GenerationResult {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return GenerationResult{
		Success:       true,
		URL:           url,
		RevisedPrompt: revisedPrompt,
		Metadata:      metadata,
		Provider:      provider,
	}
}

// FailureResult builds a failed generation result.
func FailureResult(provider, errMsg string, metadata map[string]any) GenerationResult {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return GenerationResult{
		Success:  false,
		Error:    errMsg,
		Metadata: metadata,
		Provider: provider,
	}
}

// Provider adapts one image generation backend to the common
// parameter/result contract.
type Provider interface {
	// Name returns the stable lowercase identifier used for registry lookup
	// and result tagging.
	Name() string

	// SupportedSizes returns the legal size tokens for this backend.
	SupportedSizes() []string

	// SupportedStyles returns the legal style tokens for this backend.
	SupportedStyles() []string

	// Validate checks the parameters against the provider's vocabulary.
	// A nil return means the parameters are acceptable.
	Validate(params GenerationParams) error

	// Generate issues one backend call for validated parameters. It never
	// returns an error: validation failures, missing credentials, and
	// backend errors all surface as failure results. No network call is
	// made when validation fails.
	Generate(ctx context.Context, params GenerationParams) GenerationResult
}

// validateParams is the base check shared by all providers: non-blank
// prompt, size and style within the provider's vocabulary. Providers layer
// additional checks (e.g. quality) on top.
func validateParams(p Provider, params GenerationParams) error {
	if strings.TrimSpace(params.Prompt) == "" {
		return fmt.Errorf("prompt is empty")
	}
	if !containsToken(p.SupportedSizes(), params.Size) {
		return fmt.Errorf("unsupported size %q (supported: %s)",
			params.Size, strings.Join(p.SupportedSizes(), ", "))
	}
	if !containsToken(p.SupportedStyles(), params.Style) {
		return fmt.Errorf("unsupported style %q (supported: %s)",
			params.Style, strings.Join(p.SupportedStyles(), ", "))
	}
	return nil
}

func containsToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}
