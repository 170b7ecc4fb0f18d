package models

// PartialRecord is a stored listing as it comes out of the document store.
// A nil field was missing, null or of the wrong type.
type PartialRecord struct {
	Name           *string
	Description    *string
	Category       *string
	Rating         *float64
	Featured       *bool
	FoundedYear    *float64
	ImageURL       *string
	Address        *string
	Contact        *PartialContact
	Social         *PartialSocial
	OperatingHours *PartialOperatingHours
	Services       []string
	Reviews        []PartialReview
}

type PartialContact struct {
	Phone   *string
	Email   *string
	Website *string
}

type PartialSocial struct {
	Facebook  *string
	Instagram *string
}

type PartialOperatingHours struct {
	Monday    *string
	Tuesday   *string
	Wednesday *string
	Thursday  *string
	Friday    *string
	Saturday  *string
	Sunday    *string
}

type PartialReview struct {
	Name    *string
	Email   *string
	Rating  *float64
	Comment *string
	Date    *string
}
