package entity

import (
	"github.com/google/uuid"
)

// Category groups services. Groups (IsGroup) are top level categories;
// the others are subcategories under Parent.
type Category struct {
	BaseNoDelete
	EnglishName string     `db:"english_name"`
	ArabicName  string     `db:"arabic_name"`
	IsGroup     bool       `db:"is_group"`
	Parent      *uuid.UUID `db:"parent"`
	Image       *string    `db:"image"`
	Disabled    bool       `db:"disabled"`
}
