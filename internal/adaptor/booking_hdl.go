package adaptor

import (
	"encoding/json"
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// SaveBooking handles POST /api/bookings
func (h *BookingHandler) SaveBooking(w http.ResponseWriter, r *http.Request) {
	var req request.SaveBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.SaveBooking(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "save booking")
		return
	}

	utils.ResponseCreated(w, "Booking saved successfully", booking)
}

// GetBookingByID handles GET /api/bookings/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBookings handles GET /api/bookings?staff=&date=
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.BookingListRequest{
		Staff: query.Get("staff"),
		Date:  query.Get("date"),
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
	}

	bookings, err := h.service.GetBookingsByStaffDate(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// AddItem handles POST /api/bookings/{id}/items
func (h *BookingHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var req request.BookingItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.AddItem(r.Context(), bookingID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add booking item")
		return
	}

	utils.ResponseCreated(w, "Item added", booking)
}

// UpdateItem handles PATCH /api/bookings/{id}/items/{itemID}
func (h *BookingHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	var req request.UpdateBookingItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.UpdateItem(r.Context(), bookingID, itemID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update booking item")
		return
	}

	utils.ResponseSuccess(w, "Item updated", booking)
}

// RemoveItem handles DELETE /api/bookings/{id}/items/{itemID}
func (h *BookingHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID"))
	if err != nil {
		handleServiceError(h.log, w, err, "remove booking item")
		return
	}

	utils.ResponseSuccess(w, "Item removed", booking)
}

// OpenLocation handles GET /api/bookings/{id}/location
func (h *BookingHandler) OpenLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := h.service.OpenLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "open location")
		return
	}

	utils.ResponseSuccess(w, "success", loc)
}
