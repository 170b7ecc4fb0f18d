package listings

import (
	"net/url"

	"github.com/salone-startups/api-go/directory"
	"github.com/salone-startups/api-go/models"
)

// StartupInput represents the admin-editable fields of a listing. Reviews
// are not part of it; they only grow through SubmitReview.
type StartupInput struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Category       string                 `json:"category"`
	Rating         *float64               `json:"rating,omitempty"`
	Featured       bool                   `json:"featured"`
	FoundedYear    int                    `json:"foundedYear,omitempty"`
	ImageURL       string                 `json:"imageUrl"`
	Address        string                 `json:"address"`
	Contact        models.ContactInfo     `json:"contact"`
	Social         models.SocialLinks     `json:"social"`
	Services       []string               `json:"services"`
	OperatingHours *models.OperatingHours `json:"operatingHours,omitempty"`
}

// ReviewInput represents a visitor's review before it is dated.
type ReviewInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// BrowseResult is one filtered view of the directory.
type BrowseResult struct {
	Startups []models.Startup     `json:"startups"`
	Filters  directory.FilterState `json:"filters"`
	// Params is Filters in canonical URL form.
	Params url.Values `json:"-"`
	Total  int        `json:"total"`
}

// ImportResult summarizes a bulk import. Records carrying an id are
// written at that id and counted as Overwritten.
type ImportResult struct {
	Created     int           `json:"created"`
	Overwritten int           `json:"overwritten"`
	Failed      int           `json:"failed"`
	Errors      []ImportError `json:"errors,omitempty"`
}

type ImportError struct {
	Index   int    `json:"index"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// adminFields lists the document keys an admin may write.
var adminFields = map[string]struct{}{
	"name":           {},
	"description":    {},
	"category":       {},
	"rating":         {},
	"featured":       {},
	"foundedYear":    {},
	"imageUrl":       {},
	"address":        {},
	"contact":        {},
	"social":         {},
	"services":       {},
	"operatingHours": {},
}

var requiredFields = []string{"name", "description", "category"}

// optionalFields are the admin fields StartupInput.fields omits when unset.
var optionalFields = []string{"rating", "foundedYear", "operatingHours"}

func (in StartupInput) fields() map[string]any {
	services := in.Services
	if services == nil {
		services = []string{}
	}
	fields := map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"category":    in.Category,
		"featured":    in.Featured,
		"imageUrl":    in.ImageURL,
		"address":     in.Address,
		"contact":     in.Contact,
		"social":      in.Social,
		"services":    services,
	}
	if in.Rating != nil {
		fields["rating"] = *in.Rating
	}
	if in.FoundedYear > 0 {
		fields["foundedYear"] = in.FoundedYear
	}
	if in.OperatingHours != nil {
		fields["operatingHours"] = *in.OperatingHours
	}
	return fields
}
