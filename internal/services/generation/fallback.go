package generation

import (
	"context"
	"log/slog"

	"github.com/socialchef/pantry/internal/errors"
	"github.com/socialchef/pantry/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FallbackGenerator implements TextGenerator with fallback logic
type FallbackGenerator struct {
	Primary   TextGenerator
	Secondary TextGenerator

	primaryName   ProviderType
	secondaryName ProviderType
}

// NewFallbackGenerator creates a new fallback generator
func NewFallbackGenerator(primary TextGenerator, primaryName ProviderType, secondary TextGenerator, secondaryName ProviderType) *FallbackGenerator {
	return &FallbackGenerator{
		Primary:       primary,
		Secondary:     secondary,
		primaryName:   primaryName,
		secondaryName: secondaryName,
	}
}

// Generate tries the primary provider first, falls back to secondary on retryable errors
func (f *FallbackGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := f.Primary.Generate(ctx, prompt)
	if err == nil {
		return text, nil
	}

	providerErr := ClassifyError(err, string(f.primaryName))

	if !IsRetryableError(err) {
		slog.InfoContext(ctx, "Primary provider failed with non-retryable error, not attempting fallback",
			"provider", f.primaryName,
			"error_type", providerErr.Type,
			"error", err.Error())
		return "", err
	}

	slog.InfoContext(ctx, "Primary provider failed with retryable error, attempting fallback",
		"provider", f.primaryName,
		"fallback_provider", f.secondaryName,
		"error_type", providerErr.Type,
		"error", err.Error())

	metrics.ProviderFallbackTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from_provider", string(f.primaryName)),
		attribute.String("to_provider", string(f.secondaryName)),
		attribute.String("reason", providerErr.Type),
	))

	text, fallbackErr := f.Secondary.Generate(ctx, prompt)
	if fallbackErr == nil {
		slog.InfoContext(ctx, "Fallback provider succeeded",
			"fallback_provider", f.secondaryName,
			"primary_error_type", providerErr.Type)
		return text, nil
	}

	fallbackProviderErr := ClassifyError(fallbackErr, string(f.secondaryName))
	slog.ErrorContext(ctx, "Both primary and secondary providers failed",
		"primary_error_type", providerErr.Type,
		"primary_error", err.Error(),
		"fallback_error_type", fallbackProviderErr.Type,
		"fallback_error", fallbackErr.Error())

	return "", errors.NewRecipeGenerationError(
		"both primary and secondary providers failed",
		"PROVIDER_FALLBACK_FAILED",
		err,
	)
}
