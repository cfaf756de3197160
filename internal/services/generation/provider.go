package generation

import (
	"context"
	"errors"
)

// ProviderType represents the type of AI provider
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderGroq   ProviderType = "groq"
	ProviderOpenAI ProviderType = "openai"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from text generation provider")

// TextGenerator turns one prompt into one free-form text answer. No streaming.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
