package entity

import (
	"github.com/google/uuid"
)

// Service is a catalog entry with the authoritative price.
type Service struct {
	BaseNoDelete
	EnglishName        string     `db:"english_name"`
	ArabicName         string     `db:"arabic_name"`
	EnglishDescription *string    `db:"english_description"`
	ArabicDescription  *string    `db:"arabic_description"`
	Price              float64    `db:"price"`
	Duration           int        `db:"duration"` // minutes
	Category           *uuid.UUID `db:"category"`
	Subcategory        *uuid.UUID `db:"subcategory"`
	Image              *string    `db:"image"`
	Disabled           bool       `db:"disabled"`
}
