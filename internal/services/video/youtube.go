package video

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/socialchef/pantry/internal/errors"
	"github.com/socialchef/pantry/internal/httpclient"
	"github.com/socialchef/pantry/internal/logger"
	"github.com/socialchef/pantry/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Placeholder values returned instead of a URL when no video can be attached.
const (
	NotFound   = "No video found"
	FetchError = "Error fetching video"
)

const (
	watchURLTemplate     = "https://www.youtube.com/watch?v=%s"
	thumbnailURLTemplate = "https://img.youtube.com/vi/%s/hqdefault.jpg"

	searchTimeout = 30 * time.Second
)

// Result is the best video match for one query. VideoURL is either a watch URL
// or one of NotFound / FetchError, in which case ThumbnailURL is empty.
type Result struct {
	VideoURL     string
	ThumbnailURL string
}

// Found reports whether the result carries a real video.
func (r Result) Found() bool {
	return r.VideoURL != NotFound && r.VideoURL != FetchError && r.VideoURL != ""
}

// FromVideoID builds the watch and thumbnail URLs for a YouTube video id.
func FromVideoID(id string) Result {
	return Result{
		VideoURL:     fmt.Sprintf(watchURLTemplate, id),
		ThumbnailURL: fmt.Sprintf(thumbnailURLTemplate, id),
	}
}

// Searcher finds the single best-matching video for a free-text query.
// Implementations never fail: provider errors become a FetchError result.
type Searcher interface {
	Lookup(ctx context.Context, query string) Result
}

// YouTubeClient implements Searcher on the YouTube Data API v3.
type YouTubeClient struct {
	service *youtube.Service
}

// NewYouTubeClient creates a YouTube search client authenticated with an API key.
// Extra options are applied after the defaults (e.g. option.WithEndpoint in tests).
func NewYouTubeClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeClient, error) {
	httpClient := httpclient.NewInstrumentedClient(searchTimeout)
	httpClient.Transport = &transport.APIKey{Key: apiKey, Transport: httpClient.Transport}

	clientOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &YouTubeClient{service: service}, nil
}

// Lookup issues one search.list call (type=video, order=relevance, maxResults=1).
func (c *YouTubeClient) Lookup(ctx context.Context, query string) Result {
	startTime := time.Now()
	outcome := "found"
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "youtube")}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
		metrics.VideoLookupsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}()

	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		Order("relevance").
		MaxResults(1).
		Context(httpclient.WithProvider(ctx, "YouTube")).
		Do()
	if err != nil {
		outcome = "error"
		searchErr := errors.NewVideoSearchError("YouTube search failed", "VIDEO_SEARCH_FAILED", err)
		slog.ErrorContext(ctx, "YouTube API error", "query", query, "error", searchErr.Error(), logger.WithTraceContext(ctx))
		return Result{VideoURL: FetchError}
	}

	if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.VideoId == "" {
		outcome = "not_found"
		slog.DebugContext(ctx, "No video found", "query", query)
		return Result{VideoURL: NotFound}
	}

	return FromVideoID(resp.Items[0].Id.VideoId)
}
