package recipes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeRecipes = `🍽️ Potato Hash
⏱️ Time: 20 minutes
🥕 Ingredients:
- 2 potatoes

🍽️ Potato Soup
⏱️ Time: 30 minutes

🍽️ Potato Wedges
⏱️ Time: 25 minutes`

func TestParseRecipes(t *testing.T) {
	parsed := ParseRecipes(threeRecipes)

	require.Len(t, parsed, 3)
	assert.Equal(t, "Potato Hash", parsed[0].Title)
	assert.Equal(t, "🍽️ Potato Hash\n⏱️ Time: 20 minutes\n🥕 Ingredients:\n- 2 potatoes", parsed[0].Body)
	assert.Equal(t, "Potato Soup", parsed[1].Title)
	assert.Equal(t, "Potato Wedges", parsed[2].Title)
	assert.Equal(t, "🍽️ Potato Wedges\n⏱️ Time: 25 minutes", parsed[2].Body)
}

func TestParseRecipes_BlankLinesInsideRecipe(t *testing.T) {
	text := "🍽️ Soup\n⏱️ Time: 10 minutes\n\n🥕 Ingredients:\n- leek\n\n\n👩‍🍳 Steps:\n1. Boil\n\n🍽️ Salad\n⏱️ Time: 5 minutes"

	parsed := ParseRecipes(text)

	require.Len(t, parsed, 2)
	assert.Equal(t, "Soup", parsed[0].Title)
	assert.Equal(t, "Salad", parsed[1].Title)
	assert.Contains(t, parsed[0].Body, "1. Boil")
	assert.NotContains(t, parsed[0].Body, "\n\n")
	assert.NotContains(t, parsed[0].Body, "Salad")
}

func TestParseRecipes_MarkerVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"with variation selector", "🍽️ Tacos", "Tacos"},
		{"without variation selector", "\U0001F37D Tacos", "Tacos"},
		{"no space after marker", "🍽️Tacos", "Tacos"},
		{"markdown bold", "**🍽️ Tacos**", "Tacos"},
		{"markdown heading", "## 🍽️ Tacos", "Tacos"},
		{"leading whitespace", "   🍽️ Tacos  ", "Tacos"},
		{"numbered list", "1. 🍽️ Tacos", "Tacos"},
		{"parenthesised numbering", "2) 🍽️ Tacos", "Tacos"},
		{"label before marker", "Recipe 3: 🍽️ **Tacos**", "Tacos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			titles := ExtractTitles(tt.line + "\n⏱️ Time: 10 minutes")
			require.Len(t, titles, 1)
			assert.Equal(t, tt.want, titles[0])
		})
	}
}

func TestParseRecipes_NoTitles(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"plain text", "Here are some ideas:\n\nBoil the potatoes."},
		{"marker without title", "🍽️\n⏱️ Time: 10 minutes"},
		{"marker at end of line", "Serve it on a 🍽️"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ParseRecipes(tt.text))
			assert.Empty(t, ExtractTitles(tt.text))
		})
	}
}

func TestParseRecipes_NumberedTitles(t *testing.T) {
	parsed := ParseRecipes("1. 🍽️ Potato Hash\nbody\n\n2. 🍽️ Potato Soup\nbody")

	require.Len(t, parsed, 2)
	assert.Equal(t, "Potato Hash", parsed[0].Title)
	assert.Equal(t, "1. 🍽️ Potato Hash\nbody", parsed[0].Body)
	assert.Equal(t, "Potato Soup", parsed[1].Title)
}

func TestParseRecipes_DropsPreamble(t *testing.T) {
	parsed := ParseRecipes("Sure! Here you go.\n\n🍽️ Omelette\n⏱️ Time: 5 minutes")

	require.Len(t, parsed, 1)
	assert.True(t, strings.HasPrefix(parsed[0].Body, "🍽️ Omelette"))
	assert.NotContains(t, parsed[0].Body, "Sure!")
}

func TestParseRecipes_CRLF(t *testing.T) {
	parsed := ParseRecipes("🍽️ One\r\nline\r\n\r\n🍽️ Two\r\nline")

	require.Len(t, parsed, 2)
	assert.Equal(t, "🍽️ One\nline", parsed[0].Body)
	assert.Equal(t, "Two", parsed[1].Title)
}

func TestExtractTitles_Order(t *testing.T) {
	assert.Equal(t, []string{"Potato Hash", "Potato Soup", "Potato Wedges"}, ExtractTitles(threeRecipes))
}

func TestSplitBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single block", "a\nb", []string{"a\nb"}},
		{"two blocks", "a\n\nb", []string{"a", "b"}},
		{"extra blank lines", "\n\na\n\n\n\nb\n\n", []string{"a", "b"}},
		{"crlf", "a\r\n\r\nb", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitBlocks(tt.text))
		})
	}
}
