package entity

import (
	"github.com/google/uuid"
)

// BookingItem is one row of a booking's service table. Qty, Price and
// TotalPrice are nullable; the pricing rules decide what absent means.
type BookingItem struct {
	BaseSimple
	BookingID  uuid.UUID  `db:"booking_id"`
	Idx        int        `db:"idx"`
	ServiceID  *uuid.UUID `db:"service_id"`
	Qty        *int       `db:"qty"`
	Price      *float64   `db:"price"`
	TotalPrice *float64   `db:"total_price"`
}
