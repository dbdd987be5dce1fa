package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type BookingResponse struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Customer         string                `json:"customer"`
	State            string                `json:"state"`
	Branch           string                `json:"branch"`
	Driver           *string               `json:"driver,omitempty"`
	Staff            string                `json:"staff"`
	Date             string                `json:"date"`
	Slot             string                `json:"slot"`
	Location         *string               `json:"location,omitempty"`
	LatLng           *string               `json:"lat_lng,omitempty"`
	Status           entity.BookingStatus  `json:"status"`
	PaymentStatus    entity.PaymentStatus  `json:"payment_status"`
	PaymentReference *string               `json:"payment_reference,omitempty"`
	PaymentMethod    *string               `json:"payment_method,omitempty"`
	Note             *string               `json:"note,omitempty"`
	Gift             *GiftResponse         `json:"gift,omitempty"`
	Items            []BookingItemResponse `json:"table_services"`
	Total            float64               `json:"total"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

type GiftResponse struct {
	To       *string `json:"gift_to,omitempty"`
	From     *string `json:"gift_from,omitempty"`
	Message  *string `json:"gift_message,omitempty"`
	Number   *string `json:"gift_number,omitempty"`
	Location *string `json:"gift_location,omitempty"`
}

type BookingItemResponse struct {
	ID         string   `json:"id"`
	Idx        int      `json:"idx"`
	ServiceID  *string  `json:"service"`
	Qty        *int     `json:"qty"`
	Price      *float64 `json:"price"`
	TotalPrice *float64 `json:"total_price"`
}

type LocationResponse struct {
	BookingID string `json:"booking_id"`
	URL       string `json:"url"`
}

// BookingToResponse converts a booking and its rows.
func BookingToResponse(b *entity.Booking) BookingResponse {
	items := make([]BookingItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = BookingItemToResponse(item)
	}

	resp := BookingResponse{
		ID:               b.ID.String(),
		Name:             b.Name,
		Customer:         b.Customer,
		State:            b.State,
		Branch:           b.Branch,
		Driver:           b.Driver,
		Staff:            b.Staff,
		Date:             b.Date.Format("2006-01-02"),
		Slot:             b.Slot,
		Location:         b.Location,
		LatLng:           b.LatLng,
		Status:           b.Status,
		PaymentStatus:    b.PaymentStatus,
		PaymentReference: b.PaymentReference,
		PaymentMethod:    b.PaymentMethod,
		Note:             b.Note,
		Items:            items,
		Total:            b.Total,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.Gift.IsGift {
		resp.Gift = &GiftResponse{
			To:       b.Gift.To,
			From:     b.Gift.From,
			Message:  b.Gift.Message,
			Number:   b.Gift.Number,
			Location: b.Gift.Location,
		}
	}

	return resp
}

func BookingItemToResponse(item *entity.BookingItem) BookingItemResponse {
	var serviceID *string
	if item.ServiceID != nil {
		id := item.ServiceID.String()
		serviceID = &id
	}

	return BookingItemResponse{
		ID:         item.ID.String(),
		Idx:        item.Idx,
		ServiceID:  serviceID,
		Qty:        item.Qty,
		Price:      item.Price,
		TotalPrice: item.TotalPrice,
	}
}
