package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancel"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "Unpaid"
	PaymentStatusPaid   PaymentStatus = "Paid"
)

// Booking is a scheduled salon appointment. Total is derived from Items
// and is never set directly by a user.
type Booking struct {
	BaseNoDelete
	Name             string        `db:"name"`
	Customer         string        `db:"customer"`
	State            string        `db:"state"`
	Branch           string        `db:"branch"`
	Driver           *string       `db:"driver"`
	Staff            string        `db:"staff"`
	Date             time.Time     `db:"date"`
	Slot             string        `db:"slot"`
	Location         *string       `db:"location"`
	LatLng           *string       `db:"lat_lng"`
	Status           BookingStatus `db:"status"`
	PaymentStatus    PaymentStatus `db:"payment_status"`
	PaymentReference *string       `db:"payment_reference"`
	PaymentMethod    *string       `db:"payment_method"`
	Note             *string       `db:"note"`
	Gift             Gift
	Total            float64 `db:"total"`

	Items []*BookingItem
}

// Gift holds the optional gift details of a booking.
type Gift struct {
	IsGift   bool    `db:"is_gift"`
	To       *string `db:"gift_to"`
	From     *string `db:"gift_from"`
	Message  *string `db:"gift_message"`
	Number   *string `db:"gift_number"`
	Location *string `db:"gift_location"`
}

// FindItem returns the attached item with the given id.
func (b *Booking) FindItem(id uuid.UUID) *BookingItem {
	for _, item := range b.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// HasItem reports whether item is still part of the booking.
func (b *Booking) HasItem(item *BookingItem) bool {
	for _, it := range b.Items {
		if it == item {
			return true
		}
	}
	return false
}
