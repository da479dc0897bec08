package image

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultImagenModel = "imagen-4.0-generate-001"

// Size tokens accepted by the Gemini-family providers. Both the DALL-E pixel
// tokens and the Imagen aspect-ratio tokens are valid input; normalizeSize
// maps them onto the backend vocabulary.
var imagenSizes = []string{
	"1024x1024", "1792x1024", "1024x1792",
	"1:1", "16:9", "9:16", "4:3", "3:4",
}

var imagenStyles = []string{"vivid", "natural"}

var sizeToAspectRatio = map[string]string{
	"1024x1024": "1:1",
	"1792x1024": "16:9",
	"1024x1792": "9:16",
	"1:1":       "1:1",
	"16:9":      "16:9",
	"9:16":      "9:16",
	"4:3":       "4:3",
	"3:4":       "3:4",
}

// The Imagen API has no style parameter, so styles become prompt suffixes.
var stylePhrases = map[string]string{
	"vivid":   "vibrant colors, high contrast, dynamic composition",
	"natural": "natural lighting, realistic tones, soft composition",
}

// normalizeSize maps an input size token onto the aspect-ratio token the
// backend understands. Unrecognized input falls back to "1:1" rather than
// failing; strict membership checking already happened during validation.
func normalizeSize(size string) string {
	if ar, ok := sizeToAspectRatio[size]; ok {
		return ar
	}
	return "1:1"
}

// stylePrompt appends the configured phrase for the style to the prompt.
// The original prompt is always preserved as a prefix.
func stylePrompt(prompt, style string) string {
	phrase, ok := stylePhrases[style]
	if !ok || phrase == "" {
		return prompt
	}
	return prompt + ", " + phrase
}

// imagenClient is the slice of the genai SDK surface the Gemini-family
// providers call. Narrowing it to one method keeps the backend stubbable.
type imagenClient interface {
	GenerateImages(ctx context.Context, model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

type genaiImagenClient struct {
	client *genai.Client
}

func (g *genaiImagenClient) GenerateImages(ctx context.Context, model, prompt string, cfg *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	return g.client.Models.GenerateImages(ctx, model, prompt, cfg)
}

// imagenBackend carries the state shared by the Gemini API and Vertex AI
// providers: the model, the lazily built client, and the generate pipeline.
type imagenBackend struct {
	model     string
	logger    *zap.Logger
	client    imagenClient
	newClient func(ctx context.Context) (imagenClient, error)
}

// generate runs the shared Imagen pipeline: validate, build the client,
// normalize size and style, call the backend once, decode the response.
func (b *imagenBackend) generate(ctx context.Context, p Provider, params GenerationParams) GenerationResult {
	name := p.Name()

	if err := p.Validate(params); err != nil {
		return FailureResult(name, err.Error(), params.metadata())
	}

	meta := map[string]any{
		"model": b.model,
		"size":  params.Size,
		"style": params.Style,
	}

	client := b.client
	if client == nil {
		c, err := b.newClient(ctx)
		if err != nil {
			b.logger.Error("imagen client init failed", zap.Error(err))
			return FailureResult(name, err.Error(), meta)
		}
		// A concurrent first call may build a second client; both are
		// equivalent and the last write wins.
		b.client = c
		client = c
	}

	aspectRatio := normalizeSize(params.Size)
	prompt := stylePrompt(params.Prompt, params.Style)

	b.logger.Info("generating image with Imagen",
		zap.String("provider", name),
		zap.String("model", b.model),
		zap.String("aspect_ratio", aspectRatio),
		zap.String("style", params.Style))

	resp, err := client.GenerateImages(ctx, b.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages:    1,
		AspectRatio:       aspectRatio,
		SafetyFilterLevel: genai.SafetyFilterLevelBlockLowAndAbove,
		PersonGeneration:  genai.PersonGenerationAllowAdult,
	})
	if err != nil {
		b.logger.Error("imagen generation failed", zap.Error(err))
		return FailureResult(name, err.Error(), meta)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return FailureResult(name, "image generation returned no result",
			map[string]any{"model": b.model, "aspect_ratio": aspectRatio})
	}

	url, ok := decodeGeneratedImage(resp.GeneratedImages[0])
	if !ok {
		return FailureResult(name, "unrecognized response format",
			map[string]any{"model": b.model, "aspect_ratio": aspectRatio})
	}

	return SuccessResult(name, url, prompt, map[string]any{
		"model":           b.model,
		"aspect_ratio":    aspectRatio,
		"style":           params.Style,
		"original_prompt": params.Prompt,
	})
}

// decodeGeneratedImage maps the known response shapes onto a URL: inline
// image bytes become a base64 data URI, a storage URI is used as-is, and
// anything else is reported as unrecognized.
func decodeGeneratedImage(img *genai.GeneratedImage) (string, bool) {
	switch {
	case img == nil || img.Image == nil:
		return "", false
	case len(img.Image.ImageBytes) > 0:
		return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img.Image.ImageBytes), true
	case img.Image.GCSURI != "":
		return img.Image.GCSURI, true
	default:
		return "", false
	}
}

// GeminiConfig configures the Gemini API image provider.
type GeminiConfig struct {
	APIKey string `json:"api_key" yaml:"api_key"`
	Model  string `json:"model,omitempty" yaml:"model,omitempty"` // imagen-4.0-generate-001
}

// GeminiProvider generates images through the Gemini API with Imagen models.
// The backend client is built lazily on first use, so a provider can be
// constructed without a credential; the missing key surfaces as a failure
// result from Generate.
type GeminiProvider struct {
	backend imagenBackend
}

// NewGeminiProvider creates a Gemini API image provider. The API key falls
// back to GEMINI_API_KEY, then GOOGLE_API_KEY.
func NewGeminiProvider(cfg GeminiConfig, logger *zap.Logger) *GeminiProvider {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = defaultImagenModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	apiKey := cfg.APIKey
	return &GeminiProvider{
		backend: imagenBackend{
			model:  cfg.Model,
			logger: logger,
			newClient: func(ctx context.Context) (imagenClient, error) {
				if apiKey == "" {
					return nil, fmt.Errorf("gemini: missing API key (set GEMINI_API_KEY or GOOGLE_API_KEY)")
				}
				c, err := genai.NewClient(ctx, &genai.ClientConfig{
					APIKey:  apiKey,
					Backend: genai.BackendGeminiAPI,
				})
				if err != nil {
					return nil, fmt.Errorf("gemini: create client: %w", err)
				}
				return &genaiImagenClient{client: c}, nil
			},
		},
	}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) SupportedSizes() []string { return imagenSizes }

func (p *GeminiProvider) SupportedStyles() []string { return imagenStyles }

func (p *GeminiProvider) Validate(params GenerationParams) error {
	return validateParams(p, params)
}

func (p *GeminiProvider) Generate(ctx context.Context, params GenerationParams) GenerationResult {
	return p.backend.generate(ctx, p, params)
}
