package directory

import (
	"strings"

	"github.com/salone-startups/api-go/models"
	"golang.org/x/text/cases"
)

// FilterState is the set of criteria a visitor has selected.
type FilterState struct {
	Query      string   `json:"query"`
	Categories []string `json:"categories"`
	MinRating  float64  `json:"minRating"`
}

// FilterEngine selects listings matching a FilterState.
type FilterEngine struct {
	catalog *Catalog
}

func NewFilterEngine(catalog *Catalog) *FilterEngine {
	return &FilterEngine{catalog: catalog}
}

// Filter returns the listings that satisfy every criterion of state, in
// their input order. The result is never nil.
func (e *FilterEngine) Filter(startups []models.Startup, state FilterState) []models.Startup {
	// Casers carry state, so each call gets its own.
	fold := cases.Fold()
	query := fold.String(state.Query)

	out := make([]models.Startup, 0, len(startups))
	for _, s := range startups {
		if !matchesQuery(fold, s, query) {
			continue
		}
		if !e.matchesCategories(s, state.Categories) {
			continue
		}
		if !matchesRating(s, state.MinRating) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesQuery(fold cases.Caser, s models.Startup, foldedQuery string) bool {
	if foldedQuery == "" {
		return true
	}
	text := s.Name + " " + s.Description + " " + s.Category
	return strings.Contains(fold.String(text), foldedQuery)
}

func (e *FilterEngine) matchesCategories(s models.Startup, slugs []string) bool {
	if len(slugs) == 0 {
		return true
	}
	for _, slug := range slugs {
		if e.catalog.matchesSlug(s.Category, slug) {
			return true
		}
	}
	return false
}

func matchesRating(s models.Startup, minRating float64) bool {
	if !isFinite(minRating) {
		return true
	}
	return s.Rating >= minRating
}
