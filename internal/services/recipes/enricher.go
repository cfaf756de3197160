package recipes

import (
	"context"
	"fmt"
	"strings"

	"github.com/socialchef/pantry/internal/services/video"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxEnrichedRecipes caps video lookups per response.
	MaxEnrichedRecipes = 3

	tutorialQuerySuffix = " recipe cooking tutorial"
	blockSeparator      = "\n\n"
)

// TutorialQuery is the video search query for a recipe title.
func TutorialQuery(title string) string {
	return title + tutorialQuerySuffix
}

// FormatVideoSuffix renders the lines appended to an enriched recipe block.
func FormatVideoSuffix(v video.Result) string {
	return fmt.Sprintf("\n📺 YouTube: %s\n🖼️ Thumbnail: %s", v.VideoURL, v.ThumbnailURL)
}

// Enricher attaches a tutorial video to each parsed recipe.
type Enricher struct {
	searcher    video.Searcher
	maxRecipes  int
	concurrency int
}

// NewEnricher creates an enricher. maxRecipes is capped at MaxEnrichedRecipes and
// concurrency bounds in-flight lookups (1 runs them one after another).
func NewEnricher(searcher video.Searcher, maxRecipes, concurrency int) *Enricher {
	if maxRecipes <= 0 || maxRecipes > MaxEnrichedRecipes {
		maxRecipes = MaxEnrichedRecipes
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Enricher{
		searcher:    searcher,
		maxRecipes:  maxRecipes,
		concurrency: concurrency,
	}
}

// Enrich looks up one video per recipe, up to the cap, and joins the enriched
// blocks with a blank line. Recipes past the cap are dropped. Lookups run
// concurrently but blocks keep their original order.
func (e *Enricher) Enrich(ctx context.Context, parsed []Recipe) string {
	n := min(len(parsed), e.maxRecipes)
	if n == 0 {
		return ""
	}

	results := make([]video.Result, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i := range n {
		g.Go(func() error {
			results[i] = e.searcher.Lookup(gctx, TutorialQuery(parsed[i].Title))
			return nil
		})
	}
	_ = g.Wait() // lookups never return errors

	blocks := make([]string, n)
	for i := range n {
		blocks[i] = parsed[i].Body + FormatVideoSuffix(results[i])
	}

	return strings.Join(blocks, blockSeparator)
}
