package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - save a booking with its service rows
		r.Post("/", bookingHandler.SaveBooking)

		// GET /api/bookings?staff=&date= - active bookings of a staff member on a day
		r.Get("/", bookingHandler.GetBookings)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", bookingHandler.GetBookingByID)

			// GET /api/bookings/{id}/location - "Open Location in Maps"
			r.Get("/location", bookingHandler.OpenLocation)

			// row edits recalculate subtotals and the booking total
			r.Post("/items", bookingHandler.AddItem)
			r.Patch("/items/{itemID}", bookingHandler.UpdateItem)
			r.Delete("/items/{itemID}", bookingHandler.RemoveItem)
		})
	})
}
