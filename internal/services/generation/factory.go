package generation

import (
	"github.com/socialchef/pantry/internal/config"
)

// Keys holds the provider credentials available to the factory.
type Keys struct {
	Gemini string
	Groq   string
	OpenAI string
}

func newProvider(provider, model string, keys Keys) (TextGenerator, ProviderType) {
	switch ProviderType(provider) {
	case ProviderGroq:
		return NewGroqProvider(keys.Groq, model), ProviderGroq
	case ProviderOpenAI:
		return NewOpenAIProvider(keys.OpenAI, model), ProviderOpenAI
	default:
		return NewGeminiProvider(keys.Gemini, model), ProviderGemini
	}
}

// NewGenerator creates the text generator selected by the configuration.
// The configured model applies to the primary provider only; the fallback uses its default model.
func NewGenerator(cfg config.GenerationConfig, keys Keys) TextGenerator {
	primary, primaryName := newProvider(cfg.Provider, cfg.Model, keys)

	if !cfg.FallbackEnabled || cfg.FallbackProvider == "" || cfg.FallbackProvider == string(primaryName) {
		return primary
	}

	secondary, secondaryName := newProvider(cfg.FallbackProvider, "", keys)
	return NewFallbackGenerator(primary, primaryName, secondary, secondaryName)
}
