package directory

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/salone-startups/api-go/utils"
)

// URL query keys. ParamCategory is the single-category form used by links
// from the category list and wins over ParamCategories when both are set.
const (
	ParamCategories = "categories"
	ParamCategory   = "category"
	ParamMinRating  = "minRating"
)

// ToParams encodes state as URL query parameters. Empty selections and a
// zero minimum rating are omitted. The free-text query is not part of the
// URL state.
func ToParams(state FilterState) url.Values {
	values := url.Values{}
	if len(state.Categories) > 0 {
		values.Set(ParamCategories, strings.Join(state.Categories, ","))
	}
	if isFinite(state.MinRating) && state.MinRating > 0 {
		values.Set(ParamMinRating, strconv.FormatFloat(state.MinRating, 'f', -1, 64))
	}
	return values
}

// StateSync rebuilds a FilterState from URL query parameters.
type StateSync struct {
	catalog *Catalog
}

func NewStateSync(catalog *Catalog) *StateSync {
	return &StateSync{catalog: catalog}
}

// FromParams decodes values against the known category labels. Slugs that
// name no known category are dropped, and a missing or unparseable minimum
// rating becomes 0. The returned Query is always empty.
func (s *StateSync) FromParams(values url.Values, knownCategories []string) FilterState {
	known := make(map[string]struct{}, len(knownCategories))
	for _, category := range knownCategories {
		known[s.catalog.Slug(category)] = struct{}{}
	}

	var requested []string
	if legacy := values.Get(ParamCategory); legacy != "" {
		requested = []string{legacy}
	} else {
		requested = utils.SplitList(values.Get(ParamCategories), ",")
	}

	categories := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, slug := range requested {
		if _, ok := known[slug]; !ok {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		categories = append(categories, slug)
	}

	return FilterState{
		Categories: categories,
		MinRating:  parseMinRating(values.Get(ParamMinRating)),
	}
}

func parseMinRating(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !isFinite(v) {
		return 0
	}
	return v
}
