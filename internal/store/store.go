// Package store persists generated recipe responses.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecipeRecord is one stored generation: the request fields as they were
// received and the final enriched response text.
type RecipeRecord struct {
	ID          uuid.UUID `json:"id"`
	Ingredients string    `json:"ingredients"`
	Preferences string    `json:"preferences"`
	Time        string    `json:"time"`
	Cuisine     string    `json:"cuisine"`
	Response    string    `json:"response"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RecipeStore stores and lists recipe records.
type RecipeStore interface {
	// Create inserts rec and returns it with ID and CreatedAt populated.
	Create(ctx context.Context, rec RecipeRecord) (RecipeRecord, error)
	// List returns every record, most recent first.
	List(ctx context.Context) ([]RecipeRecord, error)
}
