package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DALL-E 3 vocabulary.
var (
	dalleSizes     = []string{"1024x1024", "1792x1024", "1024x1792"}
	dalleQualities = []string{"standard", "hd"}
	dalleStyles    = []string{"vivid", "natural"}
)

// OpenAIConfig configures the OpenAI DALL-E provider.
type OpenAIConfig struct {
	APIKey  string        `json:"api_key" yaml:"api_key"`
	BaseURL string        `json:"base_url" yaml:"base_url"`
	Model   string        `json:"model,omitempty" yaml:"model,omitempty"` // dall-e-3
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// OpenAIProvider generates images with the OpenAI images API. Size, quality
// and style are native backend parameters, so no prompt rewriting happens
// here.
type OpenAIProvider struct {
	cfg    OpenAIConfig
	client *http.Client
	logger *zap.Logger
}

// NewOpenAIProvider creates an OpenAI image provider. The API key falls back
// to OPENAI_API_KEY; a provider without a key cannot be constructed.
func NewOpenAIProvider(cfg OpenAIConfig, logger *zap.Logger) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: missing API key (set OPENAI_API_KEY)")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.Model == "" {
		cfg.Model = "dall-e-3"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OpenAIProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) SupportedSizes() []string { return dalleSizes }

func (p *OpenAIProvider) SupportedStyles() []string { return dalleStyles }

// Validate layers the quality check on top of the base parameter check.
func (p *OpenAIProvider) Validate(params GenerationParams) error {
	if err := validateParams(p, params); err != nil {
		return err
	}
	if !containsToken(dalleQualities, params.Quality) {
		return fmt.Errorf("unsupported quality %q (supported: %s)",
			params.Quality, strings.Join(dalleQualities, ", "))
	}
	return nil
}

type dalleRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality,omitempty"`
	Style   string `json:"style,omitempty"`
}

type dalleResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url,omitempty"`
		B64JSON       string `json:"b64_json,omitempty"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// Generate creates one image with DALL-E 3.
func (p *OpenAIProvider) Generate(ctx context.Context, params GenerationParams) GenerationResult {
	if err := p.Validate(params); err != nil {
		return FailureResult(p.Name(), err.Error(), params.metadata())
	}

	meta := map[string]any{
		"model":   p.cfg.Model,
		"size":    params.Size,
		"quality": params.Quality,
		"style":   params.Style,
	}

	body := dalleRequest{
		Model:   p.cfg.Model,
		Prompt:  params.Prompt,
		N:       1,
		Size:    castSize(params.Size),
		Quality: castQuality(params.Quality),
		Style:   castStyle(params.Style),
	}

	p.logger.Info("generating image with DALL-E",
		zap.String("model", p.cfg.Model),
		zap.String("size", body.Size),
		zap.String("quality", body.Quality),
		zap.String("style", body.Style))

	payload, _ := json.Marshal(body)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(p.cfg.BaseURL, "/")+"/v1/images/generations",
		bytes.NewReader(payload))
	if err != nil {
		return FailureResult(p.Name(), fmt.Sprintf("failed to create request: %v", err), meta)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.logger.Error("dalle request failed", zap.Error(err))
		return FailureResult(p.Name(), fmt.Sprintf("dalle request failed: %v", err), meta)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errBody, _ := io.ReadAll(resp.Body)
		return FailureResult(p.Name(),
			fmt.Sprintf("dalle error: status=%d body=%s", resp.StatusCode, string(errBody)), meta)
	}

	var dResp dalleResponse
	if err := json.NewDecoder(resp.Body).Decode(&dResp); err != nil {
		return FailureResult(p.Name(), fmt.Sprintf("failed to decode dalle response: %v", err), meta)
	}
	if len(dResp.Data) == 0 {
		return FailureResult(p.Name(), "no image returned", meta)
	}

	data := dResp.Data[0]
	url := data.URL
	if url == "" && data.B64JSON != "" {
		url = "data:image/png;base64," + data.B64JSON
	}
	if url == "" {
		return FailureResult(p.Name(), "unrecognized response format", meta)
	}

	meta["original_prompt"] = params.Prompt
	return SuccessResult(p.Name(), url, data.RevisedPrompt, meta)
}

// castSize maps the requested size onto the three DALL-E tokens, defaulting
// to "1024x1024" for anything unrecognized.
func castSize(size string) string {
	if containsToken(dalleSizes, size) {
		return size
	}
	return "1024x1024"
}

func castQuality(quality string) string {
	if containsToken(dalleQualities, quality) {
		return quality
	}
	return "standard"
}

func castStyle(style string) string {
	if containsToken(dalleStyles, style) {
		return style
	}
	return "vivid"
}
