package usecase

import (
	"context"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindActiveByStaffAndDate(ctx context.Context, staff string, date time.Time, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, staff, date, limit, offset)
	bookings, _ := args.Get(0).([]*entity.Booking)
	return bookings, args.Error(1)
}

func (m *MockBookingRepository) CountActiveByStaffAndDate(ctx context.Context, staff string, date time.Time) (int64, error) {
	args := m.Called(ctx, staff, date)
	return args.Get(0).(int64), args.Error(1)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) FindAll(ctx context.Context, filter repository.ServiceFilter) ([]*entity.Service, error) {
	args := m.Called(ctx, filter)
	services, _ := args.Get(0).([]*entity.Service)
	return services, args.Error(1)
}

func (m *MockServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.Service)
	return s, args.Error(1)
}

func (m *MockServiceRepository) FindPrice(ctx context.Context, id uuid.UUID) (float64, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

type MockPriceLookup struct {
	mock.Mock
}

func (m *MockPriceLookup) ServicePrice(ctx context.Context, serviceID uuid.UUID) (float64, bool, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key string, evt event.BookingEvent) error {
	args := m.Called(ctx, key, evt)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

func intPtr(v int) *int              { return &v }
func floatPtr(v float64) *float64    { return &v }
func strPtr(v string) *string        { return &v }
func uuidPtr(v uuid.UUID) *uuid.UUID { return &v }

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindGroups(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*entity.Category)
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) FindByParent(ctx context.Context, parentID uuid.UUID) ([]*entity.Category, error) {
	args := m.Called(ctx, parentID)
	categories, _ := args.Get(0).([]*entity.Category)
	return categories, args.Error(1)
}
