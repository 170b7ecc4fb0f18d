package directory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCatalogSlug(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	tests := []struct {
		category string
		want     string
	}{
		{category: "Tech", want: "tech"},
		{category: "Technology", want: "tech"},
		{category: "AI", want: "ai-ml"},
		{category: "Food & Beverage", want: "food"},
		{category: "Telecommunications", want: "telecom"},
		{category: "SocialImpact", want: "social-impact"},
		{category: "Deep Tech", want: "deep-tech"},
		{category: "  Green \t Energy  ", want: "green-energy"},
		{category: "Food, Drinks", want: "food-drinks"},
		{category: "Retail,Wholesale", want: "retail-wholesale"},
		{category: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := catalog.Slug(tt.category); got != tt.want {
				t.Fatalf("Slug(%q) = %q, want %q", tt.category, got, tt.want)
			}
		})
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, label := range []string{"Deep Tech", " Food  &  Beverage ", "already-slugged", "ÉNERGIE Verte", "Food, Drinks", " ,a , b, ", ""} {
		once := Slugify(label)
		if twice := Slugify(once); twice != once {
			t.Fatalf("Slugify(Slugify(%q)) = %q, want %q", label, twice, once)
		}
		if strings.ContainsAny(once, " \t\n,") {
			t.Fatalf("Slugify(%q) = %q contains a separator", label, once)
		}
	}
}

func TestCatalogCategoryForSlug(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	entry, ok := catalog.CategoryForSlug("ai-ml")
	if !ok {
		t.Fatal("CategoryForSlug(ai-ml) not found")
	}
	if entry.Name != "AI" || entry.Label != "AI & ML" {
		t.Fatalf("CategoryForSlug(ai-ml) = %+v, want AI / AI & ML", entry)
	}
	if _, ok := catalog.CategoryForSlug("deep-tech"); ok {
		t.Fatal("CategoryForSlug(deep-tech) found, want missing")
	}
}

func TestCatalogDisplayHelpers(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	if got := catalog.Label("AI"); got != "AI & ML" {
		t.Fatalf("Label(AI) = %q, want %q", got, "AI & ML")
	}
	if got := catalog.Label("Deep Tech"); got != "Deep Tech" {
		t.Fatalf("Label(Deep Tech) = %q, want %q", got, "Deep Tech")
	}
	if got := catalog.Icon("Fintech"); got != "dollar-sign" {
		t.Fatalf("Icon(Fintech) = %q, want %q", got, "dollar-sign")
	}
	if got := catalog.Icon("Deep Tech"); got != DefaultIcon {
		t.Fatalf("Icon(Deep Tech) = %q, want %q", got, DefaultIcon)
	}
}

func TestNilCatalogUsesFallbackRule(t *testing.T) {
	t.Parallel()

	var catalog *Catalog
	if got := catalog.Slug("Food & Beverage"); got != "food-&-beverage" {
		t.Fatalf("Slug = %q, want %q", got, "food-&-beverage")
	}
	if got := catalog.Names(); len(got) != 0 {
		t.Fatalf("Names() = %v, want empty", got)
	}
	if _, ok := catalog.Lookup("Tech"); ok {
		t.Fatal("Lookup on nil catalog found an entry")
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Category
	}{
		{name: "name", entries: []Category{{Name: "Tech"}, {Name: "Tech", Slug: "other"}}},
		{name: "alias", entries: []Category{{Name: "Tech", Aliases: []string{"IT"}}, {Name: "IT"}}},
		{name: "slug", entries: []Category{{Name: "Tech"}, {Name: "Technology", Slug: "tech"}}},
		{name: "blank name", entries: []Category{{Name: "  "}}},
	}
	for _, tt := range tests {
		if _, err := NewCatalog(tt.entries); err == nil {
			t.Fatalf("NewCatalog(%s) error = nil, want error", tt.name)
		}
	}
}

func TestNewCatalogFillsDefaults(t *testing.T) {
	t.Parallel()

	catalog, err := NewCatalog([]Category{{Name: "Deep Tech"}})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	entry, ok := catalog.Lookup("Deep Tech")
	if !ok {
		t.Fatal("Lookup(Deep Tech) not found")
	}
	if entry.Label != "Deep Tech" || entry.Slug != "deep-tech" || entry.Icon != DefaultIcon {
		t.Fatalf("entry = %+v, want defaults filled", entry)
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "categories.yaml")
	body := "categories:\n  - name: Mining\n    icon: pickaxe\n  - name: Tourism\n    slug: travel\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if got := catalog.Names(); len(got) != 2 || got[0] != "Mining" || got[1] != "Tourism" {
		t.Fatalf("Names() = %v, want [Mining Tourism]", got)
	}
	if got := catalog.Slug("Tourism"); got != "travel" {
		t.Fatalf("Slug(Tourism) = %q, want travel", got)
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadCatalog(missing) error = nil, want error")
	}

	def, err := LoadCatalog("")
	if err != nil || def != DefaultCatalog() {
		t.Fatalf("LoadCatalog(\"\") = %p, %v, want default catalog", def, err)
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	got := catalog.Categories()
	got[0].Name = "changed"
	got[0].Aliases[0] = "changed"
	if entry, _ := catalog.Lookup("Tech"); entry.Name != "Tech" || entry.Aliases[0] != "Technology" {
		t.Fatalf("catalog mutated through Categories(): %+v", entry)
	}
}
