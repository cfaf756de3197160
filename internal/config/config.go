package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	DatabaseURL string

	GeminiKey  string
	GroqKey    string
	OpenAIKey  string
	YouTubeKey string

	FrontendURL string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	OtelExporterOTLPEndpoint string
	SentryDSN                string

	Port string

	Generation GenerationConfig
	Enrichment EnrichmentConfig
}

type GenerationConfig struct {
	Provider         string `yaml:"provider"`
	Model            string `yaml:"model"`
	FallbackEnabled  bool   `yaml:"fallback_enabled"`
	FallbackProvider string `yaml:"fallback_provider"`
}

type EnrichmentConfig struct {
	MaxRecipes        int `yaml:"max_recipes"`
	LookupConcurrency int `yaml:"lookup_concurrency"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		GeminiKey:                os.Getenv("GEMINI_API_KEY"),
		GroqKey:                  os.Getenv("GROQ_API_KEY"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		YouTubeKey:               os.Getenv("YOUTUBE_API_KEY"),
		FrontendURL:              os.Getenv("FRONTEND_URL"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
		Generation: GenerationConfig{
			Provider: os.Getenv("GENERATION_PROVIDER"),
			Model:    os.Getenv("GENERATION_MODEL"),
		},
	}

	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS %q: %w", v, err)
		}
		cfg.RateLimitRequests = n
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW %q: %w", v, err)
		}
		cfg.RateLimitWindow = d
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "socialchef-pantry"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "*"
	}
	if cfg.RateLimitRequests == 0 {
		cfg.RateLimitRequests = 100
	}
	if cfg.RateLimitWindow == 0 {
		cfg.RateLimitWindow = 15 * time.Minute
	}

	cfg.SetGenerationDefaults()
	cfg.SetEnrichmentDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// PersistenceEnabled reports whether a recipe store is configured.
func (c *Config) PersistenceEnabled() bool {
	return c.DatabaseURL != ""
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Generation GenerationConfig `yaml:"generation"`
		Enrichment EnrichmentConfig `yaml:"enrichment"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlConfig.Generation.Provider != "" {
		c.Generation.Provider = yamlConfig.Generation.Provider
	}
	if yamlConfig.Generation.Model != "" {
		c.Generation.Model = yamlConfig.Generation.Model
	}
	if yamlConfig.Generation.FallbackEnabled {
		c.Generation.FallbackEnabled = yamlConfig.Generation.FallbackEnabled
	}
	if yamlConfig.Generation.FallbackProvider != "" {
		c.Generation.FallbackProvider = yamlConfig.Generation.FallbackProvider
	}
	if yamlConfig.Enrichment.MaxRecipes != 0 {
		c.Enrichment.MaxRecipes = yamlConfig.Enrichment.MaxRecipes
	}
	if yamlConfig.Enrichment.LookupConcurrency != 0 {
		c.Enrichment.LookupConcurrency = yamlConfig.Enrichment.LookupConcurrency
	}

	return nil
}

func (c *Config) SetGenerationDefaults() {
	if c.Generation.Provider == "" {
		c.Generation.Provider = "gemini"
	}
	if c.Generation.FallbackEnabled && c.Generation.FallbackProvider == "" {
		c.Generation.FallbackProvider = "groq"
	}
}

func (c *Config) SetEnrichmentDefaults() {
	if c.Enrichment.MaxRecipes <= 0 || c.Enrichment.MaxRecipes > 3 {
		c.Enrichment.MaxRecipes = 3
	}
	if c.Enrichment.LookupConcurrency <= 0 {
		c.Enrichment.LookupConcurrency = 3
	}
}

// ProviderKey returns the API key configured for the named generation provider.
func (c *Config) ProviderKey(provider string) string {
	switch provider {
	case "gemini":
		return c.GeminiKey
	case "groq":
		return c.GroqKey
	case "openai":
		return c.OpenAIKey
	default:
		return ""
	}
}

func (c *Config) validate() error {
	switch c.Generation.Provider {
	case "gemini", "groq", "openai":
	default:
		return fmt.Errorf("unknown generation provider %q", c.Generation.Provider)
	}
	if c.ProviderKey(c.Generation.Provider) == "" {
		return fmt.Errorf("%s is required", providerKeyEnv(c.Generation.Provider))
	}
	if c.Generation.FallbackEnabled && c.ProviderKey(c.Generation.FallbackProvider) == "" {
		return fmt.Errorf("%s is required when fallback is enabled", providerKeyEnv(c.Generation.FallbackProvider))
	}
	if c.YouTubeKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	if c.RateLimitRequests < 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must not be negative")
	}
	return nil
}

func providerKeyEnv(provider string) string {
	switch provider {
	case "groq":
		return "GROQ_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}
