package types

import (
	"encoding/json"
	"fmt"

	"github.com/salone-startups/api-go/directory"
	"github.com/salone-startups/api-go/listings"
	"github.com/salone-startups/api-go/models"
	"github.com/salone-startups/api-go/utils"
)

type StartupListQuery struct {
	Query   string `form:"q"`
	Visible int    `form:"visible" binding:"omitempty,min=1"`
}

type FeaturedQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// ServiceList accepts either a JSON array of strings or one comma-separated
// string, which is what the admin form submits.
type ServiceList []string

func (l *ServiceList) UnmarshalJSON(data []byte) error {
	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*l = utils.SplitList(joined, ",")
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("services must be a list or a comma-separated string")
	}
	*l = items
	return nil
}

type StartupRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Description    string                 `json:"description" binding:"required"`
	Category       string                 `json:"category" binding:"required"`
	Rating         *float64               `json:"rating"`
	Featured       bool                   `json:"featured"`
	FoundedYear    int                    `json:"foundedYear"`
	ImageURL       string                 `json:"imageUrl"`
	Address        string                 `json:"address"`
	Contact        models.ContactInfo     `json:"contact"`
	Social         models.SocialLinks     `json:"social"`
	Services       ServiceList            `json:"services"`
	OperatingHours *models.OperatingHours `json:"operatingHours"`
}

func (r StartupRequest) ToInput() listings.StartupInput {
	return listings.StartupInput{
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		Rating:         r.Rating,
		Featured:       r.Featured,
		FoundedYear:    r.FoundedYear,
		ImageURL:       r.ImageURL,
		Address:        r.Address,
		Contact:        r.Contact,
		Social:         r.Social,
		Services:       []string(r.Services),
		OperatingHours: r.OperatingHours,
	}
}

type ReviewRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

func (r ReviewRequest) ToInput() listings.ReviewInput {
	return listings.ReviewInput{
		Name:    r.Name,
		Email:   r.Email,
		Rating:  r.Rating,
		Comment: r.Comment,
	}
}

type ImportRequest struct {
	Startups []map[string]any `json:"startups" binding:"required,min=1"`
}

// RevealMeta describes the "show more" window over a filtered list.
type RevealMeta struct {
	Total   int                   `json:"total"`
	Visible int                   `json:"visible"`
	HasMore bool                  `json:"hasMore"`
	Filters directory.FilterState `json:"filters"`
	// Params is the canonical query string of Filters.
	Params string `json:"params"`
}
