// Package listings is the application layer of the startup directory.
package listings

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/salone-startups/api-go/directory"
	"github.com/salone-startups/api-go/docstore"
	"github.com/salone-startups/api-go/events"
	"github.com/salone-startups/api-go/models"
)

// Collection is the document collection listings live in.
const Collection = "startups"

const DefaultFeaturedLimit = 3

// ReviewDateLayout matches the ISO-8601 form browsers produce.
const ReviewDateLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	ErrNotFound     = errors.New("startup not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Options struct {
	Catalog       *directory.Catalog
	Clock         clockwork.Clock
	Publisher     events.Publisher
	FeaturedLimit int
}

// App handles directory business logic
type App struct {
	store         docstore.Store
	catalog       *directory.Catalog
	normalizer    *directory.Normalizer
	filter        *directory.FilterEngine
	sync          *directory.StateSync
	publisher     events.Publisher
	clock         clockwork.Clock
	featuredLimit int
}

// NewApp creates a new listings App
func NewApp(store docstore.Store, opts Options) *App {
	if opts.Catalog == nil {
		opts.Catalog = directory.DefaultCatalog()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.Nop{}
	}
	if opts.FeaturedLimit <= 0 {
		opts.FeaturedLimit = DefaultFeaturedLimit
	}
	return &App{
		store:         store,
		catalog:       opts.Catalog,
		normalizer:    directory.NewNormalizer(opts.Catalog, opts.Clock),
		filter:        directory.NewFilterEngine(opts.Catalog),
		sync:          directory.NewStateSync(opts.Catalog),
		publisher:     opts.Publisher,
		clock:         opts.Clock,
		featuredLimit: opts.FeaturedLimit,
	}
}

// Catalog returns the category table the App was built with.
func (a *App) Catalog() *directory.Catalog {
	return a.catalog
}

// List returns every listing, normalized, in storage order.
func (a *App) List(ctx context.Context) ([]models.Startup, error) {
	records, err := a.store.ListAll(ctx, Collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list startups: %w", err)
	}
	return a.normalizeAll(records), nil
}

// Browse applies URL filter parameters and a free-text query to the
// directory.
func (a *App) Browse(ctx context.Context, params url.Values, query string) (*BrowseResult, error) {
	startups, err := a.List(ctx)
	if err != nil {
		return nil, err
	}

	state := a.sync.FromParams(params, a.knownCategories(startups))
	state.Query = query
	matches := a.filter.Filter(startups, state)

	return &BrowseResult{
		Startups: matches,
		Filters:  state,
		Params:   directory.ToParams(state),
		Total:    len(matches),
	}, nil
}

// Get retrieves a listing by ID
func (a *App) Get(ctx context.Context, id string) (*models.Startup, error) {
	rec, err := a.store.GetByID(ctx, Collection, id)
	if err != nil {
		return nil, a.storeError("failed to get startup", err)
	}
	s := a.normalizer.NormalizeDocument(rec.ID, rec.Data)
	return &s, nil
}

// Featured returns up to limit listings flagged as featured. A limit <= 0
// uses the configured default.
func (a *App) Featured(ctx context.Context, limit int) ([]models.Startup, error) {
	if limit <= 0 {
		limit = a.featuredLimit
	}
	records, err := a.store.QueryByEquality(ctx, Collection, "featured", true, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured startups: %w", err)
	}
	return a.normalizeAll(records), nil
}

// Categories counts listings per category.
func (a *App) Categories(ctx context.Context) ([]directory.CategorySummary, error) {
	startups, err := a.List(ctx)
	if err != nil {
		return nil, err
	}
	return a.catalog.Summarize(startups), nil
}

// Create stores a new listing with an empty review list.
func (a *App) Create(ctx context.Context, in StartupInput) (*models.Startup, error) {
	fields := in.fields()
	if err := validateFields(fields, true); err != nil {
		return nil, err
	}
	fields["reviews"] = []models.Review{}

	id, err := a.store.Create(ctx, Collection, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create startup: %w", err)
	}

	log.Info().Str("id", id).Str("name", in.Name).Msg("created startup")
	events.Notify(ctx, a.publisher, events.SubjectStartupCreated, a.event(id, in.Name))
	return a.Get(ctx, id)
}

// Replace rewrites every admin-editable field of a listing. Optional
// fields left unset are cleared, so a stored rating no longer hides the
// review mean. Reviews are kept.
func (a *App) Replace(ctx context.Context, id string, in StartupInput) (*models.Startup, error) {
	fields := in.fields()
	if err := validateFields(fields, true); err != nil {
		return nil, err
	}
	for _, key := range optionalFields {
		if _, ok := fields[key]; !ok {
			fields[key] = nil
		}
	}
	if err := a.store.Merge(ctx, Collection, id, fields); err != nil {
		return nil, a.storeError("failed to update startup", err)
	}

	log.Info().Str("id", id).Msg("replaced startup")
	events.Notify(ctx, a.publisher, events.SubjectStartupUpdated, a.event(id, in.Name))
	return a.Get(ctx, id)
}

// Patch sets only the given admin-editable fields.
func (a *App) Patch(ctx context.Context, id string, patch map[string]any) (*models.Startup, error) {
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	for _, key := range slices.Sorted(maps.Keys(patch)) {
		if _, ok := adminFields[key]; !ok {
			return nil, fmt.Errorf("%w: field %q cannot be updated", ErrInvalidInput, key)
		}
	}
	if err := validateFields(patch, false); err != nil {
		return nil, err
	}
	if err := a.store.Merge(ctx, Collection, id, patch); err != nil {
		return nil, a.storeError("failed to update startup", err)
	}

	log.Info().Str("id", id).Int("fields", len(patch)).Msg("patched startup")
	name, _ := patch["name"].(string)
	events.Notify(ctx, a.publisher, events.SubjectStartupUpdated, a.event(id, name))
	return a.Get(ctx, id)
}

// Delete removes a listing.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.store.Delete(ctx, Collection, id); err != nil {
		return a.storeError("failed to delete startup", err)
	}

	log.Info().Str("id", id).Msg("deleted startup")
	events.Notify(ctx, a.publisher, events.SubjectStartupDeleted, a.event(id, ""))
	return nil
}

// Import loads raw listing documents. A record with an "id" is written at
// that id, replacing any existing document; others get a generated id.
// A failing record does not stop the rest.
func (a *App) Import(ctx context.Context, records []map[string]any) (*ImportResult, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records to import", ErrInvalidInput)
	}

	result := &ImportResult{}
	for i, record := range records {
		fields := maps.Clone(record)
		id, _ := fields["id"].(string)
		delete(fields, "id")
		overwrite := id != ""

		err := validateFields(fields, true)
		if err == nil {
			if overwrite {
				err = a.store.Overwrite(ctx, Collection, id, fields)
			} else {
				id, err = a.store.Create(ctx, Collection, fields)
			}
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ImportError{Index: i, ID: id, Message: err.Error()})
			log.Warn().Err(err).Int("index", i).Msg("failed to import startup")
			continue
		}

		if overwrite {
			result.Overwritten++
		} else {
			result.Created++
		}
	}

	log.Info().
		Int("created", result.Created).
		Int("overwritten", result.Overwritten).
		Int("failed", result.Failed).
		Msg("imported startups")
	return result, nil
}

// SubmitReview dates a review and appends it to a listing.
func (a *App) SubmitReview(ctx context.Context, id string, in ReviewInput) (*models.Review, error) {
	if err := validateReview(in); err != nil {
		return nil, err
	}

	review := models.Review{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Rating:  in.Rating,
		Comment: strings.TrimSpace(in.Comment),
		Date:    a.clock.Now().UTC().Format(ReviewDateLayout),
	}
	if err := a.store.AppendToArrayField(ctx, Collection, id, "reviews", review); err != nil {
		return nil, a.storeError("failed to submit review", err)
	}

	log.Info().Str("id", id).Int("rating", review.Rating).Msg("review submitted")
	ev := a.event(id, "")
	ev.Rating = review.Rating
	events.Notify(ctx, a.publisher, events.SubjectStartupReviewed, ev)
	return &review, nil
}

func (a *App) normalizeAll(records []docstore.Record) []models.Startup {
	startups := make([]models.Startup, 0, len(records))
	for _, rec := range records {
		startups = append(startups, a.normalizer.NormalizeDocument(rec.ID, rec.Data))
	}
	return startups
}

// knownCategories is the catalog's names plus every category present in
// the data.
func (a *App) knownCategories(startups []models.Startup) []string {
	known := a.catalog.Names()
	seen := make(map[string]struct{}, len(known))
	for _, name := range known {
		seen[name] = struct{}{}
	}
	for _, s := range startups {
		if s.Category == "" {
			continue
		}
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		known = append(known, s.Category)
	}
	return known
}

func (a *App) event(id, name string) events.StartupEvent {
	return events.StartupEvent{StartupID: id, Name: name, OccurredAt: a.clock.Now().UTC()}
}

func (a *App) storeError(msg string, err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func validateFields(fields map[string]any, requireAll bool) error {
	for _, key := range requiredFields {
		v, ok := fields[key]
		if !ok {
			if requireAll {
				return fmt.Errorf("%w: %s is required", ErrInvalidInput, key)
			}
			continue
		}
		if s, isString := v.(string); !isString || strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, key)
		}
	}
	return nil
}

func validateReview(in ReviewInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case strings.TrimSpace(in.Email) == "":
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	case strings.TrimSpace(in.Comment) == "":
		return fmt.Errorf("%w: comment is required", ErrInvalidInput)
	case in.Rating < 1 || in.Rating > 5:
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	return nil
}
