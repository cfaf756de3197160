package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertRecipeSQL = `
		INSERT INTO recipes (id, ingredients, preferences, max_time, cuisine, response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, ingredients, preferences, max_time, cuisine, response, created_at`

	listRecipesSQL = `
		SELECT id, ingredients, preferences, max_time, cuisine, response, created_at
		FROM recipes
		ORDER BY created_at DESC, id DESC`
)

// PostgresStore is a RecipeStore backed by a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, now: time.Now}
}

func (s *PostgresStore) Create(ctx context.Context, rec RecipeRecord) (RecipeRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}

	row := s.pool.QueryRow(ctx, insertRecipeSQL,
		rec.ID, rec.Ingredients, rec.Preferences, rec.Time, rec.Cuisine, rec.Response, rec.CreatedAt,
	)
	out, err := scanRecord(row)
	if err != nil {
		return RecipeRecord{}, fmt.Errorf("insert recipe: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]RecipeRecord, error) {
	rows, err := s.pool.Query(ctx, listRecipesSQL)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	records := []RecipeRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return records, nil
}

func scanRecord(row pgx.Row) (RecipeRecord, error) {
	var rec RecipeRecord
	err := row.Scan(
		&rec.ID, &rec.Ingredients, &rec.Preferences, &rec.Time, &rec.Cuisine, &rec.Response, &rec.CreatedAt,
	)
	return rec, err
}
