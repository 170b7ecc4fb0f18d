package directory

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// DefaultIcon is used for categories the catalog does not know.
const DefaultIcon = "code"

//go:embed categories.yaml
var defaultCatalogYAML []byte

var defaultCatalog = mustParseCatalog(defaultCatalogYAML)

// Category is one entry of the known category table.
type Category struct {
	Name    string   `json:"name" yaml:"name"`
	Label   string   `json:"label" yaml:"label"`
	Slug    string   `json:"slug" yaml:"slug"`
	Icon    string   `json:"icon" yaml:"icon"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases"`
}

type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// Catalog is an immutable category lookup table. A nil *Catalog is valid
// and behaves as an empty table.
type Catalog struct {
	categories []Category
	byName     map[string]int
	bySlug     map[string]int
}

// NewCatalog builds a catalog from entries. Names, aliases and slugs must be
// unique; a missing slug is derived from the name.
func NewCatalog(entries []Category) (*Catalog, error) {
	c := &Catalog{
		categories: make([]Category, 0, len(entries)),
		byName:     make(map[string]int, len(entries)),
		bySlug:     make(map[string]int, len(entries)),
	}

	for _, entry := range entries {
		entry.Name = strings.TrimSpace(entry.Name)
		if entry.Name == "" {
			return nil, fmt.Errorf("category name is required")
		}
		if entry.Label == "" {
			entry.Label = entry.Name
		}
		if entry.Slug == "" {
			entry.Slug = Slugify(entry.Name)
		}
		if entry.Icon == "" {
			entry.Icon = DefaultIcon
		}
		entry.Aliases = append([]string(nil), entry.Aliases...)

		idx := len(c.categories)
		for _, name := range append([]string{entry.Name}, entry.Aliases...) {
			if _, dup := c.byName[name]; dup {
				return nil, fmt.Errorf("duplicate category name %q", name)
			}
			c.byName[name] = idx
		}
		if _, dup := c.bySlug[entry.Slug]; dup {
			return nil, fmt.Errorf("duplicate category slug %q", entry.Slug)
		}
		c.bySlug[entry.Slug] = idx
		c.categories = append(c.categories, entry)
	}

	return c, nil
}

// DefaultCatalog returns the built-in category table.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// LoadCatalog reads a YAML category table from path. An empty path selects
// the built-in table.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category file: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse category file: %w", err)
	}
	return NewCatalog(file.Categories)
}

func mustParseCatalog(data []byte) *Catalog {
	c, err := parseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Slugify is the fallback slug rule for labels missing from the table:
// trim, lowercase, and collapse each run of whitespace and commas into a
// hyphen. Commas are separators in the categories URL param, so a slug
// never contains one. Slugify(Slugify(s)) == Slugify(s).
func Slugify(label string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		if unicode.IsSpace(r) || r == ',' {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Lookup finds the entry whose name or alias equals category exactly.
func (c *Catalog) Lookup(category string) (Category, bool) {
	if c == nil {
		return Category{}, false
	}
	idx, ok := c.byName[category]
	if !ok {
		return Category{}, false
	}
	return c.categories[idx], true
}

// Slug maps a category label to its URL slug.
func (c *Catalog) Slug(category string) string {
	if entry, ok := c.Lookup(category); ok {
		return entry.Slug
	}
	return Slugify(category)
}

// CategoryForSlug reverse-maps a slug to its table entry.
func (c *Catalog) CategoryForSlug(slug string) (Category, bool) {
	if c == nil {
		return Category{}, false
	}
	idx, ok := c.bySlug[slug]
	if !ok {
		return Category{}, false
	}
	return c.categories[idx], true
}

// Label is the display label of category, or category itself when unknown.
func (c *Catalog) Label(category string) string {
	if entry, ok := c.Lookup(category); ok {
		return entry.Label
	}
	return category
}

// Icon is the icon name of category.
func (c *Catalog) Icon(category string) string {
	if entry, ok := c.Lookup(category); ok {
		return entry.Icon
	}
	return DefaultIcon
}

// Names lists the canonical category names in table order.
func (c *Catalog) Names() []string {
	if c == nil {
		return []string{}
	}
	names := make([]string, 0, len(c.categories))
	for _, entry := range c.categories {
		names = append(names, entry.Name)
	}
	return names
}

// Categories returns a copy of the table.
func (c *Catalog) Categories() []Category {
	if c == nil {
		return []Category{}
	}
	out := make([]Category, len(c.categories))
	for i, entry := range c.categories {
		entry.Aliases = append([]string(nil), entry.Aliases...)
		out[i] = entry
	}
	return out
}

// matchesSlug reports whether a listing labelled category is selected by
// slug. Both directions are checked since producers and consumers do not
// always agree on labels.
func (c *Catalog) matchesSlug(category, slug string) bool {
	if c.Slug(category) == slug {
		return true
	}
	entry, ok := c.CategoryForSlug(slug)
	if !ok {
		return false
	}
	if entry.Name == category {
		return true
	}
	for _, alias := range entry.Aliases {
		if alias == category {
			return true
		}
	}
	return false
}
