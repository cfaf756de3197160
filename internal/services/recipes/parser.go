package recipes

import (
	"strings"

	"github.com/socialchef/pantry/internal/services/ai"
)

// variationSelector follows the dish emoji in its emoji presentation. Models
// emit the marker both with and without it.
const variationSelector = "\uFE0F"

var bareTitleMarker = strings.TrimSuffix(ai.TitleMarker, variationSelector)

// Recipe is one recipe section of generated text.
type Recipe struct {
	// Title is the title line without the marker.
	Title string
	// Body is the full section, title line included. Blank lines are removed so
	// a body never contains the block separator.
	Body string
}

// titleFromLine returns the title carried by a line containing the marker.
// The marker may follow list numbering or other text; the title is whatever
// comes after it.
func titleFromLine(line string) (string, bool) {
	idx := strings.Index(line, bareTitleMarker)
	if idx < 0 {
		return "", false
	}
	rest := line[idx+len(bareTitleMarker):]
	rest = strings.TrimPrefix(rest, variationSelector)

	title := strings.Trim(strings.TrimSpace(rest), "*#_ ")
	if title == "" {
		return "", false
	}
	return title, true
}

// ParseRecipes splits generated text into recipes in one pass. A recipe starts
// at a line containing the title marker and runs until the next such line, so
// blank lines inside a recipe never shift later recipes. Text before the first
// title is dropped.
func ParseRecipes(text string) []Recipe {
	var (
		out     []Recipe
		current *Recipe
		body    []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.Join(body, "\n")
		out = append(out, *current)
	}

	for _, line := range strings.Split(normalizeNewlines(text), "\n") {
		if title, ok := titleFromLine(line); ok {
			flush()
			current = &Recipe{Title: title}
			body = []string{strings.TrimSpace(line)}
			continue
		}
		if current == nil || strings.TrimSpace(line) == "" {
			continue
		}
		body = append(body, strings.TrimRight(line, " \t"))
	}
	flush()

	return out
}

// ExtractTitles returns recipe titles in order of appearance.
func ExtractTitles(text string) []string {
	parsed := ParseRecipes(text)
	titles := make([]string, len(parsed))
	for i, r := range parsed {
		titles[i] = r.Title
	}
	return titles
}

// SplitBlocks splits text on blank lines, dropping empty segments.
func SplitBlocks(text string) []string {
	var blocks []string
	for _, block := range strings.Split(normalizeNewlines(text), "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
