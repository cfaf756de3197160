package recipes

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/socialchef/pantry/internal/errors"
	"github.com/socialchef/pantry/internal/logger"
	"github.com/socialchef/pantry/internal/metrics"
	"github.com/socialchef/pantry/internal/sentry"
	"github.com/socialchef/pantry/internal/services/ai"
	"github.com/socialchef/pantry/internal/services/generation"
	"github.com/socialchef/pantry/internal/store"
	"github.com/socialchef/pantry/internal/telemetry"
	"github.com/socialchef/pantry/internal/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// GenerationRequest holds the caller's fields. Time arrives as text whether
// the client sent a string or a number.
type GenerationRequest struct {
	Ingredients string
	Preferences string
	Time        string
	Cuisine     string
}

// Service runs the generate, enrich and store flow for one request.
type Service struct {
	generator generation.TextGenerator
	enricher  *Enricher
	store     store.RecipeStore
}

// NewService creates the recipe service. A nil store disables persistence.
func NewService(generator generation.TextGenerator, enricher *Enricher, st store.RecipeStore) *Service {
	return &Service{
		generator: generator,
		enricher:  enricher,
		store:     st,
	}
}

// Generate produces the enriched recipe text for req. Only validation and
// generation failures are returned; video and storage problems are absorbed.
func (s *Service) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	ctx, span := telemetry.Tracer("recipes").Start(ctx, "recipes.Generate")
	defer span.End()

	startTime := time.Now()
	outcome := "success"
	defer func() {
		attrs := metric.WithAttributes(attribute.String("outcome", outcome))
		metrics.RecipeGenerationsTotal.Add(ctx, 1, attrs)
		metrics.RecipeGenerationDuration.Record(ctx, time.Since(startTime).Seconds(), attrs)
	}()

	if err := validation.ValidateGenerationRequest(req.Ingredients, req.Preferences, req.Cuisine, req.Time); err != nil {
		outcome = "invalid"
		return "", err
	}

	prompt := ai.BuildRecipePrompt(ai.PromptInput{
		Ingredients:    req.Ingredients,
		Preferences:    req.Preferences,
		Cuisine:        req.Cuisine,
		MaxTimeMinutes: req.Time,
	})

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		outcome = "generation_failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, "recipe generation failed")
		return "", errors.NewRecipeGenerationError("Failed to generate recipes", "GENERATION_FAILED", err)
	}

	parsed := ParseRecipes(text)
	span.SetAttributes(attribute.Int("recipes.parsed", len(parsed)))

	var response string
	if len(parsed) == 0 {
		outcome = "unstructured"
		slog.WarnContext(ctx, "Generated text has no recipe titles, returning it unenriched",
			"length", len(text),
		)
		response = strings.TrimSpace(text)
	} else {
		response = s.enricher.Enrich(ctx, parsed)
	}

	// Stored even when the client has already gone away.
	s.persist(context.WithoutCancel(ctx), req, response)

	return response, nil
}

// List returns stored records, most recent first.
func (s *Service) List(ctx context.Context) ([]store.RecipeRecord, error) {
	if s.store == nil {
		return nil, errors.NewUnavailableError(
			"Recipe history is not available",
			"PERSISTENCE_DISABLED",
			"Configure DATABASE_URL to enable recipe history.",
		)
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("Error fetching recipes", "LIST_FAILED", err)
	}
	return records, nil
}

// PersistenceEnabled reports whether generated recipes are stored.
func (s *Service) PersistenceEnabled() bool {
	return s.store != nil
}

func (s *Service) persist(ctx context.Context, req GenerationRequest, response string) {
	if s.store == nil {
		return
	}

	rec, err := s.store.Create(ctx, store.RecipeRecord{
		Ingredients: req.Ingredients,
		Preferences: req.Preferences,
		Time:        req.Time,
		Cuisine:     req.Cuisine,
		Response:    response,
	})
	if err != nil {
		persistErr := errors.NewPersistenceError("Failed to store recipe", "STORE_FAILED", err)
		metrics.PersistenceFailuresTotal.Add(ctx, 1)
		sentry.CaptureError(ctx, persistErr)
		slog.ErrorContext(ctx, "Failed to store generated recipe", "error", persistErr.Error(), logger.WithTraceContext(ctx))
		return
	}

	slog.DebugContext(ctx, "Stored generated recipe", "recipe_id", rec.ID.String())
}
