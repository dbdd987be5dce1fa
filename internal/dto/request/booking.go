package request

import (
	"bytes"
	"encoding/json"
)

type SaveBookingRequest struct {
	Customer         string               `json:"customer" validate:"required,max=140"`
	State            string               `json:"state" validate:"required,max=140"`
	Branch           string               `json:"branch" validate:"required,max=140"`
	Driver           *string              `json:"driver,omitempty" validate:"omitempty,max=140"`
	Staff            string               `json:"staff" validate:"required,max=140"`
	Date             string               `json:"date" validate:"required,datetime=2006-01-02"`
	Slot             string               `json:"slot" validate:"required,max=140"`
	Location         *string              `json:"location,omitempty" validate:"omitempty,max=140"`
	LatLng           *string              `json:"lat_lng,omitempty" validate:"omitempty,max=140"`
	Status           string               `json:"status,omitempty" validate:"omitempty,oneof=Pending Confirmed Completed Cancel"`
	PaymentStatus    string               `json:"payment_status,omitempty" validate:"omitempty,oneof=Unpaid Paid"`
	PaymentReference *string              `json:"payment_reference,omitempty"`
	PaymentMethod    *string              `json:"payment_method,omitempty"`
	Note             *string              `json:"note,omitempty"`
	IsGift           bool                 `json:"is_gift"`
	GiftTo           *string              `json:"gift_to,omitempty"`
	GiftFrom         *string              `json:"gift_from,omitempty"`
	GiftMessage      *string              `json:"gift_message,omitempty"`
	GiftNumber       *string              `json:"gift_number,omitempty"`
	GiftLocation     *string              `json:"gift_location,omitempty"`
	Items            []BookingItemRequest `json:"table_services" validate:"required,min=1,dive"`
}

type BookingItemRequest struct {
	ServiceID *string  `json:"service,omitempty" validate:"omitempty,uuid"`
	Qty       *int     `json:"qty,omitempty" validate:"omitempty,gte=0"`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// UpdateBookingItemRequest changes only the fields present in the body;
// an explicit null clears the field.
type UpdateBookingItemRequest struct {
	ServiceID Nullable[string]  `json:"service"`
	Qty       Nullable[int]     `json:"qty"`
	Price     Nullable[float64] `json:"price"`
}

// Nullable distinguishes an omitted JSON field from an explicit null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

type BookingListRequest struct {
	Staff string `json:"staff" validate:"required"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	PaginatedRequest
}
