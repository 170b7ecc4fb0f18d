package directory

import (
	"cmp"
	"slices"

	"github.com/salone-startups/api-go/models"
	"github.com/salone-startups/api-go/utils"
)

// UncategorizedName labels listings without a category in summaries.
const UncategorizedName = "Uncategorized"

// CategorySummary is one tile of the category list.
type CategorySummary struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// Summarize counts listings per category, sorted by category name.
func (c *Catalog) Summarize(startups []models.Startup) []CategorySummary {
	counts := make(map[string]int)
	for _, s := range startups {
		counts[utils.FirstNonEmpty(s.Category, UncategorizedName)]++
	}

	summaries := make([]CategorySummary, 0, len(counts))
	for name, count := range counts {
		summaries = append(summaries, CategorySummary{
			Name:  name,
			Label: c.Label(name),
			Slug:  c.Slug(name),
			Icon:  c.Icon(name),
			Count: count,
		})
	}
	slices.SortFunc(summaries, func(a, b CategorySummary) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return summaries
}
