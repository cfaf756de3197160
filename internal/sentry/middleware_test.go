package sentry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMiddleware_PassesThrough(t *testing.T) {
	var hubSeen bool
	h := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hubSeen = sentry.GetHubFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.True(t, hubSeen)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHTTPMiddleware_RecoversPanic(t *testing.T) {
	h := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCaptureError_WithoutClient(t *testing.T) {
	assert.NotPanics(t, func() {
		CaptureError(context.Background(), errors.New("db down"))
		CaptureError(context.Background(), nil)
	})
}
