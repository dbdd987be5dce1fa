package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/location"
	"salon-booking/internal/pricing"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) SaveBooking(ctx context.Context, req *request.SaveBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *MockBookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *MockBookingService) GetBookingsByStaffDate(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.PaginatedResponse[response.BookingResponse])
	return resp, args.Error(1)
}

func (m *MockBookingService) AddItem(ctx context.Context, bookingID string, req *request.BookingItemRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *MockBookingService) UpdateItem(ctx context.Context, bookingID, itemID string, req *request.UpdateBookingItemRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, itemID, req)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *MockBookingService) RemoveItem(ctx context.Context, bookingID, itemID string) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID, itemID)
	resp, _ := args.Get(0).(*response.BookingResponse)
	return resp, args.Error(1)
}

func (m *MockBookingService) OpenLocation(ctx context.Context, bookingID string) (*response.LocationResponse, error) {
	args := m.Called(ctx, bookingID)
	resp, _ := args.Get(0).(*response.LocationResponse)
	return resp, args.Error(1)
}

func newBookingRouter(svc *MockBookingService) http.Handler {
	h := NewBookingHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/bookings", h.SaveBooking)
	r.Get("/api/bookings", h.GetBookings)
	r.Get("/api/bookings/{id}", h.GetBookingByID)
	r.Get("/api/bookings/{id}/location", h.OpenLocation)
	r.Post("/api/bookings/{id}/items", h.AddItem)
	r.Patch("/api/bookings/{id}/items/{itemID}", h.UpdateItem)
	r.Delete("/api/bookings/{id}/items/{itemID}", h.RemoveItem)
	return r
}

func serve(h http.Handler, method, target, body string) (*httptest.ResponseRecorder, utils.Response) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp utils.Response
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestSaveBooking_Created(t *testing.T) {
	svc := &MockBookingService{}
	svc.On("SaveBooking", mock.Anything, mock.MatchedBy(func(req *request.SaveBookingRequest) bool {
		return req.Customer == "Noura" && len(req.Items) == 1 && *req.Items[0].Qty == 2
	})).Return(&response.BookingResponse{Name: "BOOK-1", Total: 20}, nil)

	body := `{"customer":"Noura","state":"Riyadh","branch":"Olaya","staff":"Huda",
		"date":"2026-03-20","slot":"10:00","table_services":[{"qty":2,"price":10}]}`
	rec, resp := serve(newBookingRouter(svc), http.MethodPost, "/api/bookings", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Status)
	svc.AssertExpectations(t)
}

func TestSaveBooking_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"customer":`},
		{"missing rows", `{"customer":"Noura","state":"Riyadh","branch":"Olaya","staff":"Huda","date":"2026-03-20","slot":"10:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{}
			rec, resp := serve(newBookingRouter(svc), http.MethodPost, "/api/bookings", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, resp.Status)
			svc.AssertNotCalled(t, "SaveBooking", mock.Anything, mock.Anything)
		})
	}
}

func TestOpenLocation_Responses(t *testing.T) {
	tests := []struct {
		name     string
		resp     *response.LocationResponse
		err      error
		wantCode int
		wantMsg  string
	}{
		{"url", &response.LocationResponse{URL: "https://www.google.com/maps?q=1,2"}, nil, http.StatusOK, "success"},
		{"no location", nil, location.ErrNoLocation, http.StatusUnprocessableEntity, "No location found for this booking."},
		{"bad format", nil, location.ErrInvalidFormat, http.StatusUnprocessableEntity, "Invalid location format."},
		{"bad data", nil, location.ErrInvalidData, http.StatusUnprocessableEntity, "Invalid location data."},
		{"unknown booking", nil, errors.New("booking b1 not found"), http.StatusNotFound, "booking b1 not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{}
			svc.On("OpenLocation", mock.Anything, "b1").Return(tt.resp, tt.err)

			rec, resp := serve(newBookingRouter(svc), http.MethodGet, "/api/bookings/b1/location", "")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestUpdateItem_PassesExplicitNull(t *testing.T) {
	svc := &MockBookingService{}
	svc.On("UpdateItem", mock.Anything, "b1", "i1", mock.MatchedBy(func(req *request.UpdateBookingItemRequest) bool {
		return req.Price.Set && req.Price.Value == nil && req.Qty.Set && *req.Qty.Value == 4 && !req.ServiceID.Set
	})).Return(&response.BookingResponse{}, nil)

	rec, _ := serve(newBookingRouter(svc), http.MethodPatch, "/api/bookings/b1/items/i1", `{"price":null,"qty":4}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestRemoveItem_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown row", fmt.Errorf("%w: i1", pricing.ErrItemNotFound), http.StatusNotFound},
		{"bad id", errors.New("invalid item ID format i1"), http.StatusBadRequest},
		{"price lookup", fmt.Errorf("remove item: %w: timeout", pricing.ErrPriceLookup), http.StatusBadGateway},
		{"price lookup with not found text", fmt.Errorf("update item: %w: redis: key not found", pricing.ErrPriceLookup), http.StatusBadGateway},
		{"price lookup with invalid text", fmt.Errorf("update item: %w: invalid connection", pricing.ErrPriceLookup), http.StatusBadGateway},
		{"database", errors.New("remove item: conn closed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{}
			svc.On("RemoveItem", mock.Anything, "b1", "i1").Return(nil, tt.err)

			rec, resp := serve(newBookingRouter(svc), http.MethodDelete, "/api/bookings/b1/items/i1", "")

			require.Equal(t, tt.wantCode, rec.Code)
			assert.False(t, resp.Status)
		})
	}
}

func TestGetBookings_QueryParams(t *testing.T) {
	svc := &MockBookingService{}
	svc.On("GetBookingsByStaffDate", mock.Anything, mock.MatchedBy(func(req *request.BookingListRequest) bool {
		return req.Staff == "Huda" && req.Date == "2026-03-20" && req.Page == 2 && req.PerPage == 10
	})).Return(response.NewPaginatedResponse[response.BookingResponse](nil, 2, 10, 0), nil)

	rec, resp := serve(newBookingRouter(svc), http.MethodGet, "/api/bookings?staff=Huda&date=2026-03-20&page=2", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Status)
	svc.AssertExpectations(t)
}
