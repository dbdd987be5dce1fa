package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) FindPrice(ctx context.Context, id uuid.UUID) (float64, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

func TestPriceCache_Hit(t *testing.T) {
	id := uuid.New()
	store := &MockStore{}
	source := &MockPriceSource{}
	store.On("Get", mock.Anything, priceKey(id)).Return("35.5", true, nil)

	c := NewPriceCache(store, source, time.Minute, zap.NewNop())
	price, found, err := c.ServicePrice(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 35.5, price)
	source.AssertNotCalled(t, "FindPrice", mock.Anything, mock.Anything)
}

func TestPriceCache_MissLoadsAndStores(t *testing.T) {
	id := uuid.New()
	store := &MockStore{}
	source := &MockPriceSource{}
	store.On("Get", mock.Anything, priceKey(id)).Return("", false, nil)
	source.On("FindPrice", mock.Anything, id).Return(120.0, true, nil)
	store.On("Set", mock.Anything, priceKey(id), "120", time.Minute).Return(nil)

	c := NewPriceCache(store, source, time.Minute, zap.NewNop())
	price, found, err := c.ServicePrice(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 120.0, price)
	store.AssertExpectations(t)
	source.AssertExpectations(t)
}

func TestPriceCache_UnknownServiceNotCached(t *testing.T) {
	id := uuid.New()
	store := &MockStore{}
	source := &MockPriceSource{}
	store.On("Get", mock.Anything, priceKey(id)).Return("", false, nil)
	source.On("FindPrice", mock.Anything, id).Return(0.0, false, nil)

	c := NewPriceCache(store, source, time.Minute, zap.NewNop())
	_, found, err := c.ServicePrice(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, found)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPriceCache_StoreFailureFallsBackToSource(t *testing.T) {
	id := uuid.New()
	store := &MockStore{}
	source := &MockPriceSource{}
	store.On("Get", mock.Anything, priceKey(id)).Return("", false, errors.New("dial tcp: connection refused"))
	source.On("FindPrice", mock.Anything, id).Return(15.0, true, nil)
	store.On("Set", mock.Anything, priceKey(id), "15", time.Minute).Return(errors.New("dial tcp: connection refused"))

	c := NewPriceCache(store, source, time.Minute, zap.NewNop())
	price, found, err := c.ServicePrice(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 15.0, price)
}

func TestPriceCache_CorruptEntryReloads(t *testing.T) {
	id := uuid.New()
	store := &MockStore{}
	source := &MockPriceSource{}
	store.On("Get", mock.Anything, priceKey(id)).Return("not-a-number", true, nil)
	source.On("FindPrice", mock.Anything, id).Return(9.0, true, nil)
	store.On("Set", mock.Anything, priceKey(id), "9", time.Minute).Return(nil)

	c := NewPriceCache(store, source, time.Minute, zap.NewNop())
	price, _, err := c.ServicePrice(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, 9.0, price)
}

func TestPriceCache_SourceError(t *testing.T) {
	id := uuid.New()
	dbErr := errors.New("conn closed")
	source := &MockPriceSource{}
	source.On("FindPrice", mock.Anything, id).Return(0.0, false, dbErr)

	c := NewPriceCache(nil, source, time.Minute, zap.NewNop())
	_, found, err := c.ServicePrice(context.Background(), id)

	assert.ErrorIs(t, err, dbErr)
	assert.False(t, found)
}
