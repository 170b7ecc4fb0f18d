package models

// Startup is a fully populated directory listing. Every field is set after
// normalization; see directory.Normalizer for the defaults.
type Startup struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Category       string         `json:"category"`
	CategorySlug   string         `json:"categorySlug"`
	Rating         float64        `json:"rating"`
	Featured       bool           `json:"featured"`
	FoundedYear    int            `json:"foundedYear"`
	ImageURL       string         `json:"imageUrl"`
	Address        string         `json:"address"`
	Contact        ContactInfo    `json:"contact"`
	Social         SocialLinks    `json:"social"`
	Services       []string       `json:"services"`
	OperatingHours OperatingHours `json:"operatingHours"`
	Reviews        []Review       `json:"reviews"`
}

type ContactInfo struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

// OperatingHours keys are the English day names, as stored in the
// document store.
type OperatingHours struct {
	Monday    string `json:"Monday"`
	Tuesday   string `json:"Tuesday"`
	Wednesday string `json:"Wednesday"`
	Thursday  string `json:"Thursday"`
	Friday    string `json:"Friday"`
	Saturday  string `json:"Saturday"`
	Sunday    string `json:"Sunday"`
}

// Review is one visitor submission. Date is an ISO-8601 timestamp written
// by the submitting side, never by readers.
type Review struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}
