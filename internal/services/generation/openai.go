package generation

import "github.com/socialchef/pantry/internal/httpclient"

const (
	openAIEndpoint     = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel = "gpt-4o-mini"
)

// OpenAIProvider implements TextGenerator for OpenAI chat completions
type OpenAIProvider struct {
	chatProvider
}

// NewOpenAIProvider creates a new OpenAI text provider
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIProvider{chatProvider{
		name:     ProviderOpenAI,
		label:    "OpenAI",
		endpoint: openAIEndpoint,
		apiKey:   apiKey,
		model:    model,
		client:   httpclient.InstrumentedClient,
	}}
}
