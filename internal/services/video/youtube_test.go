package video

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *YouTubeClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewYouTubeClient(context.Background(), "test-key", option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return client
}

func TestYouTubeClient_LookupFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/search"), "unexpected path %s", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "Potato Hash recipe cooking tutorial", q.Get("q"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "relevance", q.Get("order"))
		assert.Equal(t, "1", q.Get("maxResults"))
		assert.Equal(t, "snippet", q.Get("part"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":{"kind":"youtube#video","videoId":"abc123"}}]}`))
	})

	result := client.Lookup(context.Background(), "Potato Hash recipe cooking tutorial")

	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", result.VideoURL)
	assert.Equal(t, "https://img.youtube.com/vi/abc123/hqdefault.jpg", result.ThumbnailURL)
	assert.True(t, result.Found())
}

func TestYouTubeClient_LookupNoItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[]}`))
	})

	result := client.Lookup(context.Background(), "nothing matches")

	assert.Equal(t, Result{VideoURL: NotFound, ThumbnailURL: ""}, result)
	assert.False(t, result.Found())
}

func TestYouTubeClient_LookupProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"quotaExceeded"}}`))
	})

	result := client.Lookup(context.Background(), "anything")

	assert.Equal(t, Result{VideoURL: FetchError, ThumbnailURL: ""}, result)
	assert.False(t, result.Found())
}

func TestFromVideoID(t *testing.T) {
	result := FromVideoID("xyz")
	assert.Equal(t, "https://www.youtube.com/watch?v=xyz", result.VideoURL)
	assert.Equal(t, "https://img.youtube.com/vi/xyz/hqdefault.jpg", result.ThumbnailURL)
}
