package listings

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/salone-startups/api-go/directory"
	"github.com/salone-startups/api-go/docstore"
	"github.com/salone-startups/api-go/events"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.subjects...)
}

type testEnv struct {
	app   *App
	store *docstore.GormStore
	clock *clockwork.FakeClock
	pub   *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "listings.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := docstore.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	clock := clockwork.NewFakeClockAt(time.Date(2026, time.May, 1, 8, 30, 0, 0, time.UTC))
	store := docstore.NewGormStore(db, clock)
	pub := &recordingPublisher{}
	app := NewApp(store, Options{
		Catalog:   directory.DefaultCatalog(),
		Clock:     clock,
		Publisher: pub,
	})
	return &testEnv{app: app, store: store, clock: clock, pub: pub}
}

func (e *testEnv) seed(t *testing.T, fields map[string]any) string {
	t.Helper()
	id, err := e.store.Create(context.Background(), Collection, fields)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	e.clock.Advance(time.Second)
	return id
}

func validInput() StartupInput {
	return StartupInput{
		Name:        "Kabako Pay",
		Description: "Mobile payments for Freetown",
		Category:    "Fintech",
		Services:    []string{"Payments"},
	}
}

func TestCreateNormalizesAndPublishes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	got, err := env.app.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID == "" || got.Name != "Kabako Pay" || got.CategorySlug != "fintech" {
		t.Fatalf("Create = %+v", got)
	}
	if got.FoundedYear != 2026 {
		t.Fatalf("FoundedYear = %d, want 2026", got.FoundedYear)
	}
	if got.Reviews == nil || len(got.Reviews) != 0 {
		t.Fatalf("Reviews = %#v, want empty", got.Reviews)
	}
	if got.OperatingHours != directory.DefaultOperatingHours() {
		t.Fatalf("OperatingHours = %+v", got.OperatingHours)
	}
	if subjects := env.pub.published(); len(subjects) != 1 || subjects[0] != events.SubjectStartupCreated {
		t.Fatalf("published = %v", subjects)
	}
}

func TestCreateRequiresFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	for _, mutate := range []func(*StartupInput){
		func(in *StartupInput) { in.Name = "" },
		func(in *StartupInput) { in.Description = "  " },
		func(in *StartupInput) { in.Category = "" },
	} {
		in := validInput()
		mutate(&in)
		if _, err := env.app.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Create(%+v) error = %v, want %v", in, err, ErrInvalidInput)
		}
	}
	if subjects := env.pub.published(); len(subjects) != 0 {
		t.Fatalf("published = %v, want none", subjects)
	}
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if _, err := env.app.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get error = %v, want %v", err, ErrNotFound)
	}
}

func TestBrowse(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seed(t, map[string]any{"name": "Kabako Pay", "description": "Payments", "category": "Fintech", "rating": 4.5})
	env.seed(t, map[string]any{"name": "FarmLink", "description": "Markets", "category": "Agritech", "rating": 3.5})
	env.seed(t, map[string]any{"name": "Quantum", "description": "Labs", "category": "Deep Tech", "rating": 4.8})

	params := url.Values{"categories": {"fintech,deep-tech,unknown"}, "minRating": {"4"}}
	res, err := env.app.Browse(context.Background(), params, "")
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if res.Total != 2 || res.Startups[0].Name != "Kabako Pay" || res.Startups[1].Name != "Quantum" {
		t.Fatalf("Browse startups = %+v", res.Startups)
	}
	if got := res.Params.Encode(); got != "categories=fintech%2Cdeep-tech&minRating=4" {
		t.Fatalf("Params = %q", got)
	}

	res, err = env.app.Browse(context.Background(), url.Values{"category": {"agritech"}}, "farm")
	if err != nil {
		t.Fatalf("Browse legacy: %v", err)
	}
	if res.Total != 1 || res.Startups[0].Name != "FarmLink" || res.Filters.Query != "farm" {
		t.Fatalf("Browse legacy = %+v", res)
	}
}

func TestFeatured(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	for i, featured := range []bool{true, false, true, true, true} {
		env.seed(t, map[string]any{"name": string(rune('a' + i)), "featured": featured})
	}

	got, err := env.app.Featured(context.Background(), 0)
	if err != nil {
		t.Fatalf("Featured: %v", err)
	}
	if len(got) != DefaultFeaturedLimit {
		t.Fatalf("len(Featured) = %d, want %d", len(got), DefaultFeaturedLimit)
	}
	for _, s := range got {
		if !s.Featured {
			t.Fatalf("Featured returned %+v", s)
		}
	}
	if got[0].Name != "a" || got[1].Name != "c" {
		t.Fatalf("Featured order = %s,%s", got[0].Name, got[1].Name)
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seed(t, map[string]any{"category": "Fintech"})
	env.seed(t, map[string]any{"category": "Fintech"})
	env.seed(t, map[string]any{})

	got, err := env.app.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Fintech" || got[0].Count != 2 || got[1].Name != directory.UncategorizedName {
		t.Fatalf("Categories = %+v", got)
	}
}

func TestReplaceKeepsReviews(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	id := env.seed(t, map[string]any{
		"name": "Old", "description": "d", "category": "Fintech",
		"reviews": []any{map[string]any{"name": "A", "rating": 5}},
	})

	in := validInput()
	in.Name = "New"
	got, err := env.app.Replace(context.Background(), id, in)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got.Name != "New" || len(got.Reviews) != 1 || got.Rating != 5 {
		t.Fatalf("Replace = %+v", got)
	}

	if _, err := env.app.Replace(context.Background(), "missing", in); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Replace(missing) error = %v, want %v", err, ErrNotFound)
	}
}

func TestReplaceClearsUnsetOptionalFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	id := env.seed(t, map[string]any{
		"name": "Old", "description": "d", "category": "Fintech",
		"rating": 5, "foundedYear": 2015,
		"operatingHours": map[string]any{"Monday": "8:00 AM - 1:00 PM"},
		"reviews":        []any{map[string]any{"name": "A", "rating": 3}},
	})

	got, err := env.app.Replace(context.Background(), id, validInput())
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got.Rating != 3 {
		t.Fatalf("Rating = %v, want review mean 3", got.Rating)
	}
	if got.FoundedYear != 2026 {
		t.Fatalf("FoundedYear = %d, want current year 2026", got.FoundedYear)
	}
	if got.OperatingHours != directory.DefaultOperatingHours() {
		t.Fatalf("OperatingHours = %+v, want defaults", got.OperatingHours)
	}
}

func TestPatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	id := env.seed(t, map[string]any{"name": "Old", "description": "d", "category": "Fintech"})

	got, err := env.app.Patch(context.Background(), id, map[string]any{"featured": true, "rating": 3.5})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if !got.Featured || got.Rating != 3.5 || got.Name != "Old" {
		t.Fatalf("Patch = %+v", got)
	}

	tests := []map[string]any{
		{},
		{"reviews": []any{}},
		{"name": ""},
		{"category": 7},
	}
	for _, patch := range tests {
		if _, err := env.app.Patch(context.Background(), id, patch); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Patch(%v) error = %v, want %v", patch, err, ErrInvalidInput)
		}
	}
	if _, err := env.app.Patch(context.Background(), "missing", map[string]any{"featured": true}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Patch(missing) error = %v, want %v", err, ErrNotFound)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	id := env.seed(t, map[string]any{"name": "x"})
	if err := env.app.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := env.app.Delete(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete again error = %v, want %v", err, ErrNotFound)
	}
	if subjects := env.pub.published(); len(subjects) != 1 || subjects[0] != events.SubjectStartupDeleted {
		t.Fatalf("published = %v", subjects)
	}
}

func TestImport(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	res, err := env.app.Import(context.Background(), []map[string]any{
		{"id": "seed-1", "name": "One", "description": "d", "category": "Fintech"},
		{"name": "Two", "description": "d", "category": "Agritech"},
		{"name": "", "description": "d", "category": "Agritech"},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Created != 1 || res.Overwritten != 1 || res.Failed != 1 {
		t.Fatalf("Import = %+v", res)
	}
	if len(res.Errors) != 1 || res.Errors[0].Index != 2 {
		t.Fatalf("Import errors = %+v", res.Errors)
	}

	got, err := env.app.Get(context.Background(), "seed-1")
	if err != nil || got.Name != "One" {
		t.Fatalf("Get(seed-1) = %+v, %v", got, err)
	}

	if _, err := env.app.Import(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Import(nil) error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	id := env.seed(t, map[string]any{"name": "x", "description": "d", "category": "Fintech"})

	review, err := env.app.SubmitReview(context.Background(), id, ReviewInput{
		Name: " Aminata ", Email: "a@example.com", Rating: 4, Comment: "Great service",
	})
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if review.Date != "2026-05-01T08:30:01.000Z" {
		t.Fatalf("Date = %q", review.Date)
	}
	if review.Name != "Aminata" {
		t.Fatalf("Name = %q", review.Name)
	}

	got, err := env.app.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Reviews) != 1 || got.Reviews[0].Comment != "Great service" || got.Rating != 4 {
		t.Fatalf("after review = %+v", got)
	}

	bad := []ReviewInput{
		{Email: "a@b", Rating: 4, Comment: "c"},
		{Name: "n", Rating: 4, Comment: "c"},
		{Name: "n", Email: "a@b", Rating: 4},
		{Name: "n", Email: "a@b", Rating: 0, Comment: "c"},
		{Name: "n", Email: "a@b", Rating: 6, Comment: "c"},
	}
	for _, in := range bad {
		if _, err := env.app.SubmitReview(context.Background(), id, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("SubmitReview(%+v) error = %v, want %v", in, err, ErrInvalidInput)
		}
	}
	valid := ReviewInput{Name: "n", Email: "a@b", Rating: 3, Comment: "c"}
	if _, err := env.app.SubmitReview(context.Background(), "missing", valid); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SubmitReview(missing) error = %v, want %v", err, ErrNotFound)
	}
}
