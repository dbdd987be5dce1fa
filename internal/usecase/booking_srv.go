package usecase

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/event"
	"salon-booking/internal/location"
	"salon-booking/internal/pricing"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	dateLayout      = "2006-01-02"
	editLockStripes = 64
)

type BookingService interface {
	SaveBooking(ctx context.Context, req *request.SaveBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookingsByStaffDate(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Row edits. Each one runs the pricing handlers and persists the result.
	AddItem(ctx context.Context, bookingID string, req *request.BookingItemRequest) (*response.BookingResponse, error)
	UpdateItem(ctx context.Context, bookingID, itemID string, req *request.UpdateBookingItemRequest) (*response.BookingResponse, error)
	RemoveItem(ctx context.Context, bookingID, itemID string) (*response.BookingResponse, error)

	OpenLocation(ctx context.Context, bookingID string) (*response.LocationResponse, error)
}

type bookingService struct {
	repo          *repository.Repository
	prices        pricing.PriceLookup
	events        event.Publisher
	lookupTimeout time.Duration
	log           *zap.Logger
	now           func() time.Time

	// edits of one booking are serialized so they cannot overwrite each
	// other's rows; bookings share a fixed set of stripes
	locks [editLockStripes]sync.Mutex
}

func NewBookingService(
	repo *repository.Repository,
	prices pricing.PriceLookup,
	events event.Publisher,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:          repo,
		prices:        prices,
		events:        events,
		lookupTimeout: config.Pricing.LookupTimeout,
		log:           log.With(zap.String("service", "booking")),
		now:           time.Now,
	}
}

func (s *bookingService) SaveBooking(ctx context.Context, req *request.SaveBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Save booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s: %w", req.Date, err)
	}

	now := s.now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:             utils.GenerateBookingName(now),
		Customer:         req.Customer,
		State:            req.State,
		Branch:           req.Branch,
		Driver:           req.Driver,
		Staff:            req.Staff,
		Date:             date,
		Slot:             req.Slot,
		Location:         req.Location,
		LatLng:           req.LatLng,
		Status:           entity.BookingStatusPending,
		PaymentStatus:    entity.PaymentStatusUnpaid,
		PaymentReference: req.PaymentReference,
		PaymentMethod:    req.PaymentMethod,
		Note:             req.Note,
		Gift: entity.Gift{
			IsGift:   req.IsGift,
			To:       req.GiftTo,
			From:     req.GiftFrom,
			Message:  req.GiftMessage,
			Number:   req.GiftNumber,
			Location: req.GiftLocation,
		},
	}
	if req.Status != "" {
		booking.Status = entity.BookingStatus(req.Status)
	}
	if req.PaymentStatus != "" {
		booking.PaymentStatus = entity.PaymentStatus(req.PaymentStatus)
	}

	booking.Items = make([]*entity.BookingItem, len(req.Items))
	for i, it := range req.Items {
		serviceID, err := parseOptionalUUID(it.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("invalid service ID format at row %d: %w", i+1, err)
		}

		qty := 1
		if it.Qty != nil {
			qty = *it.Qty
		}
		price := 0.0
		if it.Price != nil {
			price = *it.Price
		}

		booking.Items[i] = &entity.BookingItem{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID: booking.ID,
			Idx:       i + 1,
			ServiceID: serviceID,
			Qty:       &qty,
			Price:     &price,
		}
	}

	pricing.Validate(booking)

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to save booking",
			zap.Error(err),
			zap.String("customer", req.Customer),
			zap.String("staff", req.Staff),
		)
		return nil, fmt.Errorf("save booking: %w", err)
	}

	s.log.Info("Booking saved",
		zap.String("booking_id", booking.ID.String()),
		zap.String("name", booking.Name),
		zap.Int("items", len(booking.Items)),
		zap.Float64("total", booking.Total),
	)

	s.publish(ctx, event.TypeBookingSaved, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingsByStaffDate(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("List bookings validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s: %w", req.Date, err)
	}

	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindActiveByStaffAndDate(ctx, req.Staff, date, limit, offset)
	if err != nil {
		s.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("staff", req.Staff),
			zap.String("date", req.Date),
		)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountActiveByStaffAndDate(ctx, req.Staff, date)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	data := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		data[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(data, req.Page, limit, total), nil
}

func (s *bookingService) AddItem(ctx context.Context, bookingID string, req *request.BookingItemRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add item validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	serviceID, err := parseOptionalUUID(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format: %w", err)
	}

	return s.editBooking(ctx, bookingID, "add item", func(f *pricing.Form) error {
		item := &entity.BookingItem{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: s.now(),
			},
			ServiceID: serviceID,
			Qty:       req.Qty,
			Price:     req.Price,
		}
		f.AddItem(ctx, item)
		return nil
	})
}

// UpdateItem applies the fields present in req in the order service, qty,
// price, the way a form fires one change event per field.
func (s *bookingService) UpdateItem(ctx context.Context, bookingID, itemID string, req *request.UpdateBookingItemRequest) (*response.BookingResponse, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item ID format %s: %w", itemID, err)
	}
	if req.Qty.Set && req.Qty.Value != nil && *req.Qty.Value < 0 {
		return nil, fmt.Errorf("validation failed: qty must be greater than or equal to 0")
	}
	if req.Price.Set && req.Price.Value != nil && *req.Price.Value < 0 {
		return nil, fmt.Errorf("validation failed: price must be greater than or equal to 0")
	}

	var serviceID *uuid.UUID
	if req.ServiceID.Set {
		serviceID, err = parseOptionalUUID(req.ServiceID.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid service ID format: %w", err)
		}
	}

	return s.editBooking(ctx, bookingID, "update item", func(f *pricing.Form) error {
		if req.ServiceID.Set {
			if err := f.SetService(ctx, id, serviceID); err != nil {
				return err
			}
		}
		if req.Qty.Set {
			if err := f.SetQuantity(ctx, id, req.Qty.Value); err != nil {
				return err
			}
		}
		if req.Price.Set {
			if err := f.SetPrice(ctx, id, req.Price.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *bookingService) RemoveItem(ctx context.Context, bookingID, itemID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item ID format %s: %w", itemID, err)
	}

	return s.editBooking(ctx, bookingID, "remove item", func(f *pricing.Form) error {
		return f.RemoveItem(ctx, id)
	})
}

// OpenLocation returns the map link for the booking's coordinates. The
// location warnings are returned unwrapped so callers can show them as is.
func (s *bookingService) OpenLocation(ctx context.Context, bookingID string) (*response.LocationResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	url, err := location.Open(booking.Location)
	if err != nil {
		s.log.Info("Location not opened",
			zap.String("booking_id", bookingID),
			zap.String("reason", err.Error()),
		)
		return nil, err
	}

	return &response.LocationResponse{
		BookingID: booking.ID.String(),
		URL:       url,
	}, nil
}

// editBooking loads the booking into a pricing form, applies edit, waits for
// the price lookups it started and saves the booking when anything changed.
// Field changes are saved even when a lookup failed; the lookup error is
// returned afterwards.
func (s *bookingService) editBooking(ctx context.Context, bookingID, operation string, edit func(f *pricing.Form) error) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	unlock := s.lock(id)
	defer unlock()

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	form := pricing.NewForm(booking, s.prices, s.log, pricing.WithLookupTimeout(s.lookupTimeout))
	if err := edit(form); err != nil {
		if errors.Is(err, pricing.ErrItemNotFound) {
			s.log.Warn(operation+" failed - item not found", zap.Error(err), zap.String("booking_id", bookingID))
		}
		return nil, err
	}

	lookupErr := form.Wait()
	if lookupErr != nil {
		s.log.Error("Price lookup failed",
			zap.Error(lookupErr),
			zap.String("booking_id", bookingID),
			zap.String("operation", operation),
		)
	}

	booking = form.Booking()
	if form.Dirty() {
		booking.UpdatedAt = s.now()
		if err := s.repo.Booking.Update(ctx, booking); err != nil {
			s.log.Error("Failed to save booking",
				zap.Error(err),
				zap.String("booking_id", bookingID),
				zap.String("operation", operation),
			)
			return nil, fmt.Errorf("%s: %w", operation, err)
		}

		s.log.Info("Booking updated",
			zap.String("booking_id", bookingID),
			zap.String("operation", operation),
			zap.Float64("total", booking.Total),
		)
		s.publish(ctx, event.TypeBookingUpdated, booking)
	}

	if lookupErr != nil {
		return nil, fmt.Errorf("%s: %w", operation, lookupErr)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	return booking, nil
}

func (s *bookingService) editLock(id uuid.UUID) *sync.Mutex {
	h := fnv.New32a()
	h.Write(id[:])
	return &s.locks[h.Sum32()%editLockStripes]
}

func (s *bookingService) lock(id uuid.UUID) func() {
	mu := s.editLock(id)
	mu.Lock()
	return mu.Unlock
}

// publish is best effort; a failed publish never fails the request.
func (s *bookingService) publish(ctx context.Context, eventType string, b *entity.Booking) {
	evt := event.BookingEvent{
		Type:       eventType,
		BookingID:  b.ID.String(),
		Name:       b.Name,
		Customer:   b.Customer,
		Staff:      b.Staff,
		ItemsCount: len(b.Items),
		Total:      b.Total,
		OccurredAt: s.now(),
	}
	if err := s.events.Publish(ctx, b.ID.String(), evt); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", eventType),
			zap.String("booking_id", b.ID.String()),
		)
	}
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
