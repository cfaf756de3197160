package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"github.com/socialchef/pantry/internal/middleware"
	"github.com/socialchef/pantry/internal/sentry"
	"go.opentelemetry.io/otel"
)

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	ServiceName    string
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter
}

// NewRouter mounts the API routes behind tracing, CORS, Sentry and rate limiting.
// Clients are rate limited by socket address; forwarding headers are ignored.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(otelchi.Middleware(opts.ServiceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	metricCfg := otelchimetric.NewBaseConfig(opts.ServiceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Use(sentry.HTTPMiddleware)

	r.Get("/health", s.HandleHealth)

	r.Group(func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Middleware)
		}
		r.Get("/", s.HandleRoot)
		r.Post("/api/generate", s.HandleGenerate)
		r.Get("/api/recipes", s.HandleListRecipes)
	})

	return r
}
