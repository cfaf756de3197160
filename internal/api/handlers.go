package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/socialchef/pantry/internal/errors"
	"github.com/socialchef/pantry/internal/logger"
	"github.com/socialchef/pantry/internal/services/recipes"
	"github.com/socialchef/pantry/internal/store"
)

const (
	rootMessage        = "Recipe Ideas API Running 🚀"
	internalErrMessage = "Internal Server Error"
	invalidBodyMessage = "Invalid request body"
)

// RecipeService is the recipe flow the handlers drive.
type RecipeService interface {
	Generate(ctx context.Context, req recipes.GenerationRequest) (string, error)
	List(ctx context.Context) ([]store.RecipeRecord, error)
}

type Server struct {
	recipes RecipeService
}

func NewServer(recipes RecipeService) *Server {
	return &Server{recipes: recipes}
}

func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, MessageResponse{Message: rootMessage})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errors.NewValidationError(invalidBodyMessage, "INVALID_BODY", "Send a JSON object with an ingredients field."))
		return
	}

	response, err := s.recipes.Generate(r.Context(), recipes.GenerationRequest{
		Ingredients: string(req.Ingredients),
		Preferences: string(req.Preferences),
		Time:        string(req.Time),
		Cuisine:     string(req.Cuisine),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, GenerateResponse{Response: response})
}

func (s *Server) HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	records, err := s.recipes.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if records == nil {
		records = []store.RecipeRecord{}
	}
	writeJSON(w, r, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		encodeErr := errors.NewInternalError("Failed to encode response", "ENCODE_FAILED", err)
		slog.ErrorContext(r.Context(), "Failed to write response",
			"path", r.URL.Path,
			"error", encodeErr.Error(),
			logger.WithTraceContext(r.Context()),
		)
	}
}

// writeError maps err to its status. Messages that are not user visible are
// replaced by a generic one; the cause only goes to the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.StatusCode(err)
	message := internalErrMessage

	if appErr, ok := errors.As(err); ok && appErr.IsUserVisible() {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed",
			"path", r.URL.Path,
			"status", status,
			"error", err.Error(),
			logger.WithTraceContext(r.Context()),
		)
	} else {
		slog.InfoContext(r.Context(), "Request rejected", "path", r.URL.Path, "status", status, "reason", message)
	}

	writeJSON(w, r, status, ErrorResponse{Error: message})
}
