// Package pricing keeps a booking's line item subtotals and total consistent.
//
// The functions here are the handlers a booking form runs on field and
// collection events. They mutate the booking in place and never fail, except
// for the remote price lookup whose error is handed back to the caller.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrPriceLookup wraps every failed service price lookup.
var ErrPriceLookup = errors.New("price lookup failed")

// PriceLookup fetches the authoritative price of a service.
// found is false when the service does not exist or carries no price.
type PriceLookup interface {
	ServicePrice(ctx context.Context, serviceID uuid.UUID) (price float64, found bool, err error)
}

// RecalculateTotal sets b.Total to the sum of item subtotals. Absent
// subtotals count as 0 and an empty booking totals 0.
func RecalculateTotal(b *entity.Booking) {
	total := decimal.Zero
	for _, item := range b.Items {
		if item.TotalPrice != nil {
			total = total.Add(decimal.NewFromFloat(*item.TotalPrice))
		}
	}
	b.Total = total.InexactFloat64()
}

func OnLineItemAdded(b *entity.Booking) {
	RecalculateTotal(b)
}

func OnLineItemRemoved(b *entity.Booking) {
	RecalculateTotal(b)
}

// OnQuantityChanged recomputes the row subtotal as (qty or 0) * (price or 0)
// and then the booking total.
func OnQuantityChanged(b *entity.Booking, item *entity.BookingItem) {
	recalculateLine(b, item)
}

// OnPriceChanged behaves exactly like OnQuantityChanged.
func OnPriceChanged(b *entity.Booking, item *entity.BookingItem) {
	recalculateLine(b, item)
}

func recalculateLine(b *entity.Booking, item *entity.BookingItem) {
	subtotal := Subtotal(intOr(item.Qty, 0), floatOr(item.Price, 0))
	item.TotalPrice = &subtotal
	RecalculateTotal(b)
}

// OnServiceSelected fetches the price of the item's service and, when it is
// positive, fills the row and recalculates. It reports whether the booking
// was mutated. A row without a service is left alone.
func OnServiceSelected(ctx context.Context, b *entity.Booking, item *entity.BookingItem, lookup PriceLookup) (bool, error) {
	if item.ServiceID == nil {
		return false, nil
	}

	price, found, err := lookup.ServicePrice(ctx, *item.ServiceID)
	if err != nil {
		return false, lookupError(*item.ServiceID, err)
	}

	return ApplyServicePrice(b, item, price, found), nil
}

// ApplyServicePrice is the continuation of a price lookup. A missing or
// non-positive price leaves the row and total untouched. Otherwise the row
// gets price and subtotal qty * price, where an absent or zero qty counts as 1.
func ApplyServicePrice(b *entity.Booking, item *entity.BookingItem, price float64, found bool) bool {
	// a zero priced service never fills the row; kept for compatibility with existing bookings
	if !found || price <= 0 {
		return false
	}

	// an empty or zero quantity prices as one unit
	qty := intOr(item.Qty, 0)
	if qty == 0 {
		qty = 1
	}

	p := price
	subtotal := Subtotal(qty, price)
	item.Price = &p
	item.TotalPrice = &subtotal
	RecalculateTotal(b)
	return true
}

// Validate normalizes every row to (qty or 0) * (price or 0) and recomputes
// the total. It runs before a booking is persisted.
func Validate(b *entity.Booking) {
	for _, item := range b.Items {
		subtotal := Subtotal(intOr(item.Qty, 0), floatOr(item.Price, 0))
		item.TotalPrice = &subtotal
	}
	RecalculateTotal(b)
}

// Subtotal multiplies quantity by unit price without float drift.
func Subtotal(qty int, price float64) float64 {
	return decimal.NewFromInt(int64(qty)).Mul(decimal.NewFromFloat(price)).InexactFloat64()
}

func lookupError(serviceID uuid.UUID, err error) error {
	return fmt.Errorf("%w: service %s: %w", ErrPriceLookup, serviceID.String(), err)
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
