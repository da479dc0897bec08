// Package config loads application configuration. Precedence is
// defaults, then an optional YAML file, then environment variables
// (optionally seeded from a .env file).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ImageConfig holds the image generation defaults.
type ImageConfig struct {
	// Provider is the default provider identifier (openai, gemini,
	// gemini-vertex).
	Provider string `yaml:"provider"`
	// Model overrides the provider's default model.
	Model string `yaml:"model"`
	// Size, Quality and Style are the request defaults handed to agents.
	Size    string `yaml:"size"`
	Quality string `yaml:"quality"`
	Style   string `yaml:"style"`
	// Timeout bounds one backend call.
	Timeout time.Duration `yaml:"timeout"`
}

// OpenAIConfig holds the OpenAI credential.
type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
}

// GoogleConfig holds the Gemini API credential and the Vertex AI project
// coordinates.
type GoogleConfig struct {
	APIKey   string `yaml:"api_key"`
	Project  string `yaml:"project"`
	Location string `yaml:"location"`
}

// RecommendationConfig holds the recommendation agent settings.
type RecommendationConfig struct {
	Model string `yaml:"model"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the full application configuration.
type Config struct {
	Image          ImageConfig          `yaml:"image"`
	OpenAI         OpenAIConfig         `yaml:"openai"`
	Google         GoogleConfig         `yaml:"google"`
	Recommendation RecommendationConfig `yaml:"recommendation"`
	Log            LogConfig            `yaml:"log"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Image: ImageConfig{
			Provider: "openai",
			Size:     "1024x1024",
			Quality:  "standard",
			Style:    "vivid",
			Timeout:  60 * time.Second,
		},
		Google: GoogleConfig{
			Location: "us-central1",
		},
		Recommendation: RecommendationConfig{
			Model: "gemini-2.5-flash",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration. path names an optional YAML file; an empty
// path skips file loading. A .env file in the working directory is applied
// to the environment when present.
func Load(path string) (Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides configuration fields from environment variables.
func applyEnv(cfg *Config) {
	setString(&cfg.Image.Provider, "IMAGE_PROVIDER")
	setString(&cfg.Image.Model, "IMAGE_MODEL")
	setString(&cfg.Image.Size, "IMAGE_DEFAULT_SIZE")
	setString(&cfg.Image.Quality, "IMAGE_DEFAULT_QUALITY")
	setString(&cfg.Image.Style, "IMAGE_DEFAULT_STYLE")
	if v := os.Getenv("IMAGE_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Image.Timeout = time.Duration(secs) * time.Second
		}
	}

	setString(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")

	setString(&cfg.Google.APIKey, "GEMINI_API_KEY")
	if cfg.Google.APIKey == "" {
		setString(&cfg.Google.APIKey, "GOOGLE_API_KEY")
	}
	setString(&cfg.Google.Project, "GOOGLE_CLOUD_PROJECT")
	setString(&cfg.Google.Location, "GOOGLE_CLOUD_LOCATION")

	setString(&cfg.Recommendation.Model, "RECOMMENDATION_MODEL")

	setString(&cfg.Log.Level, "LOG_LEVEL")
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
