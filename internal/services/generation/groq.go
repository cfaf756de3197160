package generation

import "github.com/socialchef/pantry/internal/httpclient"

const (
	groqEndpoint     = "https://api.groq.com/openai/v1/chat/completions"
	defaultGroqModel = "llama-3.3-70b-versatile"
)

// GroqProvider implements TextGenerator for Groq API
type GroqProvider struct {
	chatProvider
}

// NewGroqProvider creates a new Groq text provider
func NewGroqProvider(apiKey, model string) *GroqProvider {
	if model == "" {
		model = defaultGroqModel
	}
	return &GroqProvider{chatProvider{
		name:     ProviderGroq,
		label:    "Groq",
		endpoint: groqEndpoint,
		apiKey:   apiKey,
		model:    model,
		client:   httpclient.InstrumentedClient,
	}}
}
