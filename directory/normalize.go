package directory

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/salone-startups/api-go/models"
	"github.com/salone-startups/api-go/utils"
)

const (
	DefaultWeekdayHours = "9:00 AM - 5:00 PM"
	ClosedHours         = "Closed"
)

// DecodePartialRecord reads a stored listing body field by field. It never
// fails: a body that is not a JSON object yields an empty record, and a
// field of the wrong type is left nil.
//
// Two legacy seed shapes are accepted as fallbacks: "image" for "imageUrl",
// and a "contactInfo" object (which may also carry the address) for
// "contact".
func DecodePartialRecord(data []byte) models.PartialRecord {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return models.PartialRecord{}
	}

	rec := models.PartialRecord{
		Name:        optional[string](fields, "name"),
		Description: optional[string](fields, "description"),
		Category:    optional[string](fields, "category"),
		Rating:      optional[float64](fields, "rating"),
		Featured:    optional[bool](fields, "featured"),
		FoundedYear: optional[float64](fields, "foundedYear"),
		ImageURL:    optional[string](fields, "imageUrl"),
		Address:     optional[string](fields, "address"),
		Services:    decodeServices(fields["services"]),
		Reviews:     decodeReviews(fields["reviews"]),
	}
	if rec.ImageURL == nil {
		rec.ImageURL = optional[string](fields, "image")
	}

	contact := object(fields, "contact")
	legacyContact := object(fields, "contactInfo")
	if contact == nil {
		contact = legacyContact
	}
	if contact != nil {
		rec.Contact = &models.PartialContact{
			Phone:   optional[string](contact, "phone"),
			Email:   optional[string](contact, "email"),
			Website: optional[string](contact, "website"),
		}
	}
	if rec.Address == nil && legacyContact != nil {
		rec.Address = optional[string](legacyContact, "address")
	}

	if social := object(fields, "social"); social != nil {
		rec.Social = &models.PartialSocial{
			Facebook:  optional[string](social, "facebook"),
			Instagram: optional[string](social, "instagram"),
		}
	}

	if hours := object(fields, "operatingHours"); hours != nil {
		rec.OperatingHours = &models.PartialOperatingHours{
			Monday:    optional[string](hours, "Monday"),
			Tuesday:   optional[string](hours, "Tuesday"),
			Wednesday: optional[string](hours, "Wednesday"),
			Thursday:  optional[string](hours, "Thursday"),
			Friday:    optional[string](hours, "Friday"),
			Saturday:  optional[string](hours, "Saturday"),
			Sunday:    optional[string](hours, "Sunday"),
		}
	}

	return rec
}

func optional[T any](fields map[string]json.RawMessage, key string) *T {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var v *T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func object(fields map[string]json.RawMessage, key string) map[string]json.RawMessage {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

// decodeServices accepts a list of strings or one comma-separated string.
func decodeServices(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		return utils.SplitList(joined, ",")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	services := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			services = append(services, s)
		}
	}
	return services
}

func decodeReviews(raw json.RawMessage) []models.PartialReview {
	if raw == nil {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	reviews := make([]models.PartialReview, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		reviews = append(reviews, models.PartialReview{
			Name:    optional[string](fields, "name"),
			Email:   optional[string](fields, "email"),
			Rating:  optional[float64](fields, "rating"),
			Comment: optional[string](fields, "comment"),
			Date:    optional[string](fields, "date"),
		})
	}
	return reviews
}

// Normalizer turns partial stored records into fully populated listings.
type Normalizer struct {
	catalog *Catalog
	clock   clockwork.Clock
}

// NewNormalizer creates a Normalizer. The clock supplies the current year
// for listings without a usable founding year.
func NewNormalizer(catalog *Catalog, clock clockwork.Clock) *Normalizer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Normalizer{catalog: catalog, clock: clock}
}

// NormalizeDocument decodes and normalizes one stored body.
func (n *Normalizer) NormalizeDocument(id string, data []byte) models.Startup {
	return n.Normalize(id, DecodePartialRecord(data))
}

// Normalize fills every absent field of raw with its default.
func (n *Normalizer) Normalize(id string, raw models.PartialRecord) models.Startup {
	category := str(raw.Category, "")
	reviews := normalizeReviews(raw.Reviews)

	services := []string{}
	if raw.Services != nil {
		services = append(services, raw.Services...)
	}

	s := models.Startup{
		ID:           id,
		Name:         str(raw.Name, ""),
		Description:  str(raw.Description, ""),
		Category:     category,
		CategorySlug: n.catalog.Slug(category),
		Rating:       AggregateRating(raw.Rating, reviews),
		Featured:     raw.Featured != nil && *raw.Featured,
		FoundedYear:  n.foundedYear(raw.FoundedYear),
		ImageURL:     str(raw.ImageURL, ""),
		Address:      str(raw.Address, ""),
		Services:     services,
		Reviews:      reviews,
	}

	var contact models.PartialContact
	if raw.Contact != nil {
		contact = *raw.Contact
	}
	s.Contact = models.ContactInfo{
		Phone:   str(contact.Phone, ""),
		Email:   str(contact.Email, ""),
		Website: str(contact.Website, ""),
	}

	var social models.PartialSocial
	if raw.Social != nil {
		social = *raw.Social
	}
	s.Social = models.SocialLinks{
		Facebook:  str(social.Facebook, ""),
		Instagram: str(social.Instagram, ""),
	}

	var hours models.PartialOperatingHours
	if raw.OperatingHours != nil {
		hours = *raw.OperatingHours
	}
	s.OperatingHours = models.OperatingHours{
		Monday:    str(hours.Monday, DefaultWeekdayHours),
		Tuesday:   str(hours.Tuesday, DefaultWeekdayHours),
		Wednesday: str(hours.Wednesday, DefaultWeekdayHours),
		Thursday:  str(hours.Thursday, DefaultWeekdayHours),
		Friday:    str(hours.Friday, DefaultWeekdayHours),
		Saturday:  str(hours.Saturday, ClosedHours),
		Sunday:    str(hours.Sunday, ClosedHours),
	}

	return s
}

// DefaultOperatingHours is the week used for a listing with no hours.
func DefaultOperatingHours() models.OperatingHours {
	return models.OperatingHours{
		Monday:    DefaultWeekdayHours,
		Tuesday:   DefaultWeekdayHours,
		Wednesday: DefaultWeekdayHours,
		Thursday:  DefaultWeekdayHours,
		Friday:    DefaultWeekdayHours,
		Saturday:  ClosedHours,
		Sunday:    ClosedHours,
	}
}

func (n *Normalizer) foundedYear(v *float64) int {
	if v != nil && isFinite(*v) && *v >= 1 && *v <= 9999 {
		return int(*v)
	}
	return n.clock.Now().Year()
}

func normalizeReviews(raw []models.PartialReview) []models.Review {
	reviews := make([]models.Review, 0, len(raw))
	for _, r := range raw {
		rating := 0
		if r.Rating != nil {
			rating = int(math.Round(clampRating(*r.Rating)))
		}
		reviews = append(reviews, models.Review{
			Name:    str(r.Name, ""),
			Email:   str(r.Email, ""),
			Rating:  rating,
			Comment: str(r.Comment, ""),
			Date:    str(r.Date, ""),
		})
	}
	return reviews
}

// str treats empty strings as absent, like the stored data's writers do.
func str(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}
