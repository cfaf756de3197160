package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/socialchef/pantry/internal/errors"
)

// MaxFieldLength bounds every free-text request field, in runes.
const MaxFieldLength = 1000

// Field is one named request value to validate.
type Field struct {
	Name  string
	Value string
}

// RequireIngredients rejects an ingredient list that is empty after trimming.
func RequireIngredients(ingredients string) error {
	if strings.TrimSpace(ingredients) == "" {
		return errors.NewValidationError(
			"Please provide some ingredients.",
			"INGREDIENTS_REQUIRED",
			"List at least one ingredient, for example \"potato, onion\".",
		)
	}
	return nil
}

// CheckLengths rejects any field longer than MaxFieldLength.
func CheckLengths(fields ...Field) error {
	for _, f := range fields {
		if n := utf8.RuneCountInString(f.Value); n > MaxFieldLength {
			return errors.NewValidationError(
				fmt.Sprintf("The %s field is too long (%d characters, maximum %d).", f.Name, n, MaxFieldLength),
				"FIELD_TOO_LONG",
				"Shorten the field and try again.",
			)
		}
	}
	return nil
}

// ValidateGenerationRequest runs every check for a recipe generation request.
// A blank ingredient list is always reported first, whatever the other fields hold.
func ValidateGenerationRequest(ingredients, preferences, cuisine, maxTime string) error {
	if err := RequireIngredients(ingredients); err != nil {
		return err
	}
	return CheckLengths(
		Field{Name: "ingredients", Value: ingredients},
		Field{Name: "preferences", Value: preferences},
		Field{Name: "cuisine", Value: cuisine},
		Field{Name: "time", Value: maxTime},
	)
}
