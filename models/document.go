package models

import (
	"time"
)

// Document is one record of a loosely typed collection. Data holds the
// record body as a JSON object.
type Document struct {
	Collection string    `json:"collection" gorm:"primaryKey;type:varchar(64)"`
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Data       string    `json:"data" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
