package ai

import (
	"fmt"
	"strconv"
	"strings"
)

// Section markers the model is asked to emit. TitleMarker is what the recipe
// parser keys on; the others are only for presentation.
const (
	TitleMarker       = "🍽️"
	TimeMarker        = "⏱️"
	IngredientsMarker = "🥕"
	StepsMarker       = "👩‍🍳"
	TipMarker         = "💡"
)

// RecipeCount is the number of recipes requested from the model.
const RecipeCount = 3

// PromptInput carries the caller's request fields into the prompt.
type PromptInput struct {
	Ingredients    string
	Preferences    string
	Cuisine        string
	MaxTimeMinutes string
}

const roleSection = `<ROLE>
You are a professional chef assistant. You suggest realistic home-cooking recipes built around the ingredients a person already has.
</ROLE>`

const requestSection = `<REQUEST>
Generate exactly %d recipes using: %s.
Preferences: %s. Cuisine: %s. Max cooking time: %s.
</REQUEST>`

const rulesSection = `<RULES>
1. First recipe title must remain unchanged: name it after the main ingredients as given.
2. Other two can be variations (different technique, cuisine twist or side).
3. All must be realistic and edible, and fit within the maximum cooking time.
4. Respect every dietary preference. Never add an ingredient the preferences exclude.
5. Plain text only. No Markdown, no bold, no headings, no tables.
</RULES>`

const outputFormatSection = `<OUTPUT_FORMAT>
Write each recipe in exactly this order, one section per line group:

%s <Recipe title>
%s Time: <total minutes> minutes
%s Ingredients:
- <quantity> <ingredient>
%s Steps:
1. <step>
%s Tip: <one short tip>

Separate recipes with exactly one blank line.
Do not put blank lines inside a recipe.
Start every recipe title line with %s followed by a single space.
Do not write anything before the first recipe or after the last one.
</OUTPUT_FORMAT>`

func orDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

func timeBudget(minutes string) string {
	minutes = strings.TrimSpace(minutes)
	if minutes == "" {
		return "no limit"
	}
	if _, err := strconv.ParseFloat(minutes, 64); err != nil {
		return minutes
	}
	return minutes + " minutes"
}

// BuildRecipePrompt builds the recipe generation prompt for one request.
// Blank optional fields are rendered as "none" (preferences), "any" (cuisine)
// and "no limit" (time). A numeric time gets a "minutes" unit; any other text
// is used as given.
func BuildRecipePrompt(in PromptInput) string {
	var sb strings.Builder
	sb.WriteString(roleSection)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf(requestSection,
		RecipeCount,
		strings.TrimSpace(in.Ingredients),
		orDefault(in.Preferences, "none"),
		orDefault(in.Cuisine, "any"),
		timeBudget(in.MaxTimeMinutes),
	))
	sb.WriteString("\n\n")
	sb.WriteString(rulesSection)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf(outputFormatSection,
		TitleMarker, TimeMarker, IngredientsMarker, StepsMarker, TipMarker, TitleMarker,
	))

	return sb.String()
}
