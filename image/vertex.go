package image

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// VertexConfig configures the Vertex AI image provider. Authentication uses
// application default credentials; only the project and location are needed
// here.
type VertexConfig struct {
	Project  string `json:"project" yaml:"project"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
}

// VertexProvider generates images with Imagen models through Vertex AI.
// It shares the size/style vocabulary and the generate pipeline with the
// Gemini API provider; only the client construction differs.
type VertexProvider struct {
	backend imagenBackend
}

// NewVertexProvider creates a Vertex AI image provider. The project falls
// back to GOOGLE_CLOUD_PROJECT and the location to GOOGLE_CLOUD_LOCATION
// (default "us-central1"). A provider without a project cannot be
// constructed.
func NewVertexProvider(cfg VertexConfig, logger *zap.Logger) (*VertexProvider, error) {
	if cfg.Project == "" {
		cfg.Project = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if cfg.Project == "" {
		return nil, fmt.Errorf("gemini-vertex: missing project (set GOOGLE_CLOUD_PROJECT)")
	}
	if cfg.Location == "" {
		cfg.Location = os.Getenv("GOOGLE_CLOUD_LOCATION")
	}
	if cfg.Location == "" {
		cfg.Location = "us-central1"
	}
	if cfg.Model == "" {
		cfg.Model = defaultImagenModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	project, location := cfg.Project, cfg.Location
	return &VertexProvider{
		backend: imagenBackend{
			model:  cfg.Model,
			logger: logger,
			newClient: func(ctx context.Context) (imagenClient, error) {
				c, err := genai.NewClient(ctx, &genai.ClientConfig{
					Backend:  genai.BackendVertexAI,
					Project:  project,
					Location: location,
				})
				if err != nil {
					return nil, fmt.Errorf("gemini-vertex: create client: %w", err)
				}
				return &genaiImagenClient{client: c}, nil
			},
		},
	}, nil
}

func (p *VertexProvider) Name() string { return "gemini-vertex" }

func (p *VertexProvider) SupportedSizes() []string { return imagenSizes }

func (p *VertexProvider) SupportedStyles() []string { return imagenStyles }

func (p *VertexProvider) Validate(params GenerationParams) error {
	return validateParams(p, params)
}

func (p *VertexProvider) Generate(ctx context.Context, params GenerationParams) GenerationResult {
	return p.backend.generate(ctx, p, params)
}
