package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	meter = otel.Meter("socialchef/pantry")

	// Recipe metrics
	RecipeGenerationsTotal   metric.Int64Counter
	RecipeGenerationDuration metric.Float64Histogram

	// Enrichment metrics
	VideoLookupsTotal metric.Int64Counter

	// Persistence metrics
	PersistenceFailuresTotal metric.Int64Counter

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram

	// AI metrics
	AIGenerationDuration metric.Float64Histogram

	// Provider fallback metrics
	ProviderFallbackTotal metric.Int64Counter
)

// Instruments start as no-ops so packages can record before Init runs (tests, tools).
func init() {
	m := noop.NewMeterProvider().Meter("noop")
	RecipeGenerationsTotal, _ = m.Int64Counter("noop")
	RecipeGenerationDuration, _ = m.Float64Histogram("noop")
	VideoLookupsTotal, _ = m.Int64Counter("noop")
	PersistenceFailuresTotal, _ = m.Int64Counter("noop")
	ExternalAPICallsTotal, _ = m.Int64Counter("noop")
	ExternalAPIDuration, _ = m.Float64Histogram("noop")
	AIGenerationDuration, _ = m.Float64Histogram("noop")
	ProviderFallbackTotal, _ = m.Int64Counter("noop")
}

func Init() error {
	var err error

	// Recipe metrics
	RecipeGenerationsTotal, err = meter.Int64Counter(
		"recipe.generations.total",
		metric.WithDescription("Total number of recipe generation requests by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	RecipeGenerationDuration, err = meter.Float64Histogram(
		"recipe.generation.duration",
		metric.WithDescription("Duration of the full generate-and-enrich flow"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	// Enrichment metrics
	VideoLookupsTotal, err = meter.Int64Counter(
		"video.lookups.total",
		metric.WithDescription("Total number of video lookups by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	// Persistence metrics
	PersistenceFailuresTotal, err = meter.Int64Counter(
		"recipe.persistence.failures.total",
		metric.WithDescription("Total number of recipe records that failed to persist"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	// External API metrics
	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	// AI metrics
	AIGenerationDuration, err = meter.Float64Histogram(
		"ai.generation.duration",
		metric.WithDescription("Duration of AI recipe text generation"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	// Provider fallback metrics
	ProviderFallbackTotal, err = meter.Int64Counter(
		"provider.fallback.total",
		metric.WithDescription("Total number of provider fallback events"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	return nil
}
