package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/socialchef/pantry/internal/errors"
	"github.com/socialchef/pantry/internal/logger"
	"github.com/socialchef/pantry/internal/middleware"
	"github.com/socialchef/pantry/internal/services/recipes"
	"github.com/socialchef/pantry/internal/services/video"
	"github.com/socialchef/pantry/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const potatoText = `🍽️ Potato
⏱️ Time: 30 minutes
🥕 Ingredients:
- 4 potatoes

🍽️ Crispy Potato Wedges
⏱️ Time: 35 minutes

🍽️ Potato Leek Soup
⏱️ Time: 40 minutes`

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

type fakeSearcher struct {
	mu    sync.Mutex
	calls int
}

func (s *fakeSearcher) Lookup(ctx context.Context, query string) video.Result {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return video.FromVideoID("vid123")
}

type fakeStore struct {
	mu        sync.Mutex
	records   []store.RecipeRecord
	createErr error
	listErr   error
}

func (s *fakeStore) Create(ctx context.Context, rec store.RecipeRecord) (store.RecipeRecord, error) {
	if s.createErr != nil {
		return store.RecipeRecord{}, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = uuid.New()
	rec.CreatedAt = time.Date(2025, 1, 1, 0, len(s.records), 0, 0, time.UTC)
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *fakeStore) List(ctx context.Context) ([]store.RecipeRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.RecipeRecord, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

type testEnv struct {
	handler   http.Handler
	generator *fakeGenerator
	searcher  *fakeSearcher
	store     *fakeStore
}

func newTestEnv(t *testing.T, gen *fakeGenerator, st *fakeStore) *testEnv {
	t.Helper()
	searcher := &fakeSearcher{}
	var recipeStore store.RecipeStore
	if st != nil {
		recipeStore = st
	}
	svc := recipes.NewService(gen, recipes.NewEnricher(searcher, 3, 3), recipeStore)
	h := NewRouter(NewServer(svc), RouterOptions{ServiceName: "pantry-test"})
	return &testEnv{handler: h, generator: gen, searcher: searcher, store: st}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func TestHandleRoot(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{}, nil)

	rr := env.do(http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Recipe Ideas API Running 🚀", decode[MessageResponse](t, rr).Message)
}

func TestHandleHealth(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{}, nil)

	rr := env.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestHandleGenerate_BlankIngredients(t *testing.T) {
	bodies := []string{
		`{"ingredients":""}`,
		`{"ingredients":"   ","preferences":"vegan","time":20,"cuisine":"Thai"}`,
		`{}`,
	}

	for _, body := range bodies {
		env := newTestEnv(t, &fakeGenerator{text: potatoText}, &fakeStore{})

		rr := env.do(http.MethodPost, "/api/generate", body)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected status %d, got %d", body, http.StatusBadRequest, rr.Code)
		}
		assert.Equal(t, "Please provide some ingredients.", decode[ErrorResponse](t, rr).Error)
		assert.Empty(t, env.generator.prompts, "generator must not be called")
		assert.Empty(t, env.store.records)
	}
}

func TestHandleGenerate_InvalidJSON(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{}, nil)

	rr := env.do(http.MethodPost, "/api/generate", `{"ingredients":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid request body", decode[ErrorResponse](t, rr).Error)
}

func TestHandleGenerate_Potato(t *testing.T) {
	st := &fakeStore{}
	env := newTestEnv(t, &fakeGenerator{text: potatoText}, st)

	rr := env.do(http.MethodPost, "/api/generate", `{"ingredients":"potato","preferences":"","time":"","cuisine":""}`)

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[GenerateResponse](t, rr)

	blocks := strings.Split(resp.Response, "\n\n")
	require.Len(t, blocks, 3)
	for _, block := range blocks {
		assert.Equal(t, 1, strings.Count(block, "📺 YouTube: https://www.youtube.com/watch?v=vid123"))
		assert.Equal(t, 1, strings.Count(block, "🖼️ Thumbnail: https://img.youtube.com/vi/vid123/hqdefault.jpg"))
	}
	assert.True(t, strings.HasPrefix(resp.Response, "🍽️ Potato\n"))
	assert.Equal(t, 3, env.searcher.calls)

	require.Len(t, env.generator.prompts, 1)
	assert.Contains(t, env.generator.prompts[0], "using: potato.")

	require.Len(t, st.records, 1)
	assert.Equal(t, "potato", st.records[0].Ingredients)
	assert.Equal(t, resp.Response, st.records[0].Response)
}

func TestHandleGenerate_NumericTime(t *testing.T) {
	st := &fakeStore{}
	env := newTestEnv(t, &fakeGenerator{text: potatoText}, st)

	rr := env.do(http.MethodPost, "/api/generate", `{"ingredients":"rice","time":25}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, env.generator.prompts[0], "Max cooking time: 25 minutes.")
	require.Len(t, st.records, 1)
	assert.Equal(t, "25", st.records[0].Time)
}

func TestHandleGenerate_GeneratorFailure(t *testing.T) {
	st := &fakeStore{}
	env := newTestEnv(t, &fakeGenerator{err: errors.New("gemini: 503 unavailable")}, st)

	rr := env.do(http.MethodPost, "/api/generate", `{"ingredients":"potato"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal Server Error", decode[ErrorResponse](t, rr).Error)
	assert.Zero(t, env.searcher.calls)
	assert.Empty(t, st.records)
}

func TestHandleGenerate_NoTitlesReturnsRawText(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{text: "  Just boil the potatoes.\n"}, &fakeStore{})

	rr := env.do(http.MethodPost, "/api/generate", `{"ingredients":"potato"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Just boil the potatoes.", decode[GenerateResponse](t, rr).Response)
	assert.Zero(t, env.searcher.calls)
}

func TestHandleGenerate_PersistenceFailureStillSucceeds(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{text: potatoText}, &fakeStore{createErr: errors.New("connection refused")})

	rr := env.do(http.MethodPost, "/api/generate", `{"ingredients":"potato"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, decode[GenerateResponse](t, rr).Response, "📺 YouTube:")
}

func TestHandleGenerate_WithoutStore(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{text: potatoText}, nil)

	rr := env.do(http.MethodPost, "/api/generate", `{"ingredients":"potato"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandleListRecipes_NewestFirst(t *testing.T) {
	st := &fakeStore{}
	env := newTestEnv(t, &fakeGenerator{text: potatoText}, st)

	for _, ing := range []string{"potato", "rice", "leek"} {
		require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/generate", `{"ingredients":"`+ing+`"}`).Code)
	}

	rr := env.do(http.MethodGet, "/api/recipes", "")

	require.Equal(t, http.StatusOK, rr.Code)
	records := decode[[]store.RecipeRecord](t, rr)
	require.Len(t, records, 3)
	assert.Equal(t, "leek", records[0].Ingredients)
	assert.Equal(t, "rice", records[1].Ingredients)
	assert.Equal(t, "potato", records[2].Ingredients)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].CreatedAt.After(records[i-1].CreatedAt))
	}
}

func TestHandleListRecipes_Empty(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{}, &fakeStore{})

	rr := env.do(http.MethodGet, "/api/recipes", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestHandleListRecipes_StoreFailure(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{}, &fakeStore{listErr: errors.New("timeout")})

	rr := env.do(http.MethodGet, "/api/recipes", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Error fetching recipes", decode[ErrorResponse](t, rr).Error)
}

func TestHandleListRecipes_PersistenceDisabled(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{}, nil)

	rr := env.do(http.MethodGet, "/api/recipes", "")

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "Recipe history is not available", decode[ErrorResponse](t, rr).Error)
}

func TestRouter_RateLimited(t *testing.T) {
	svc := recipes.NewService(&fakeGenerator{}, recipes.NewEnricher(&fakeSearcher{}, 3, 3), nil)
	h := NewRouter(NewServer(svc), RouterOptions{
		ServiceName: "pantry-test",
		RateLimiter: middleware.NewRateLimiter(1, time.Hour),
	})

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	health := httptest.NewRecorder()
	h.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestRouter_RateLimitIgnoresForwardedHeaders(t *testing.T) {
	svc := recipes.NewService(&fakeGenerator{}, recipes.NewEnricher(&fakeSearcher{}, 3, 3), nil)
	h := NewRouter(NewServer(svc), RouterOptions{
		ServiceName: "pantry-test",
		RateLimiter: middleware.NewRateLimiter(1, time.Hour),
	})

	var codes []int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:4242"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{
		http.StatusOK,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)
}

func TestWriteJSON_EncodeFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logger.NewWithWriter("production", &buf))
	t.Cleanup(func() { slog.SetDefault(prev) })

	rr := httptest.NewRecorder()
	writeJSON(rr, httptest.NewRequest(http.MethodGet, "/api/recipes", nil), http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, buf.String(), "Failed to write response")
	assert.Contains(t, buf.String(), "Failed to encode response")
}

func TestWriteError_Messages(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", apperrors.NewValidationError("Please provide some ingredients.", "REQ", ""), http.StatusBadRequest, "Please provide some ingredients."},
		{"unavailable", apperrors.NewUnavailableError("Recipe history is not available", "OFF", ""), http.StatusServiceUnavailable, "Recipe history is not available"},
		{"generation hidden", apperrors.NewRecipeGenerationError("gemini quota exceeded", "GEN", nil), http.StatusInternalServerError, "Internal Server Error"},
		{"internal hidden", apperrors.NewInternalError("nil pointer", "BUG", nil), http.StatusInternalServerError, "Internal Server Error"},
		{"plain error hidden", errors.New("raw failure"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, httptest.NewRequest(http.MethodPost, "/api/generate", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, decode[ErrorResponse](t, rr).Error)
		})
	}
}

func TestFlexible_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"string", `{"time":"30"}`, "30"},
		{"number", `{"time":30}`, "30"},
		{"float", `{"time":12.5}`, "12.5"},
		{"null", `{"time":null}`, ""},
		{"missing", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req GenerateRequest
			require.NoError(t, json.Unmarshal([]byte(tt.json), &req))
			assert.Equal(t, tt.want, string(req.Time))
		})
	}
}
