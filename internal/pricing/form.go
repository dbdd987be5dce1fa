package pricing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"salon-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrItemNotFound = errors.New("booking item not found")

// Entities and event names a Form dispatches on.
const (
	EntityBooking = "booking"
	EntityItem    = "booking_item"

	FieldService = "service"
	FieldQty     = "qty"
	FieldPrice   = "price"

	ItemsAdded   = "items_add"
	ItemsRemoved = "items_remove"
)

// EventKey identifies a field change (EntityItem, field) or a collection
// mutation (EntityBooking, ItemsAdded/ItemsRemoved).
type EventKey struct {
	Entity string
	Name   string
}

// Handler reacts to an event. item is nil for booking level events.
// Handlers run with the form lock held.
type Handler func(ctx context.Context, item *entity.BookingItem)

type pendingLookup struct {
	seq    uint64
	cancel context.CancelFunc
}

// Form is the editing state of one booking. It serializes all field and
// collection events so they behave as if run on a single event loop; the
// service price lookup is the only step that runs outside the lock.
type Form struct {
	mu       sync.Mutex
	booking  *entity.Booking
	lookup   PriceLookup
	timeout  time.Duration
	log      *zap.Logger
	handlers map[EventKey][]Handler

	pending map[*entity.BookingItem]pendingLookup
	seq     uint64
	wg      sync.WaitGroup
	errs    []error
	dirty   bool
}

type FormOption func(*Form)

// WithLookupTimeout bounds every price lookup.
func WithLookupTimeout(d time.Duration) FormOption {
	return func(f *Form) {
		f.timeout = d
	}
}

// NewForm wraps b and registers the pricing handlers.
func NewForm(b *entity.Booking, lookup PriceLookup, log *zap.Logger, opts ...FormOption) *Form {
	f := &Form{
		booking:  b,
		lookup:   lookup,
		log:      log.With(zap.String("form", b.ID.String())),
		handlers: make(map[EventKey][]Handler),
		pending:  make(map[*entity.BookingItem]pendingLookup),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.On(EventKey{EntityBooking, ItemsAdded}, func(_ context.Context, _ *entity.BookingItem) {
		OnLineItemAdded(f.booking)
	})
	f.On(EventKey{EntityBooking, ItemsRemoved}, func(_ context.Context, _ *entity.BookingItem) {
		OnLineItemRemoved(f.booking)
	})
	f.On(EventKey{EntityItem, FieldQty}, func(_ context.Context, item *entity.BookingItem) {
		OnQuantityChanged(f.booking, item)
	})
	f.On(EventKey{EntityItem, FieldPrice}, func(_ context.Context, item *entity.BookingItem) {
		OnPriceChanged(f.booking, item)
	})
	f.On(EventKey{EntityItem, FieldService}, f.selectService)

	return f
}

// On registers an extra handler; handlers for a key run in registration order.
func (f *Form) On(key EventKey, h Handler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[key] = append(f.handlers[key], h)
}

func (f *Form) trigger(ctx context.Context, key EventKey, item *entity.BookingItem) {
	for _, h := range f.handlers[key] {
		h(ctx, item)
	}
}

// AddItem attaches item to the booking. A row that arrives with a quantity
// or price gets its subtotal computed; a row with a service but no price
// starts a price lookup.
func (f *Form) AddItem(ctx context.Context, item *entity.BookingItem) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item.BookingID = f.booking.ID
	item.Idx = len(f.booking.Items) + 1
	f.booking.Items = append(f.booking.Items, item)
	f.dirty = true

	if item.Qty != nil || item.Price != nil {
		f.trigger(ctx, EventKey{EntityItem, FieldQty}, item)
	}
	f.trigger(ctx, EventKey{EntityBooking, ItemsAdded}, nil)
	if item.ServiceID != nil && item.Price == nil {
		f.trigger(ctx, EventKey{EntityItem, FieldService}, item)
	}
}

// RemoveItem detaches the row and cancels its pending price lookup.
func (f *Form) RemoveItem(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := -1
	for i, item := range f.booking.Items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id.String())
	}

	removed := f.booking.Items[idx]
	f.cancelPending(removed)
	f.booking.Items = append(f.booking.Items[:idx], f.booking.Items[idx+1:]...)
	for i, item := range f.booking.Items {
		item.Idx = i + 1
	}
	f.dirty = true

	f.trigger(ctx, EventKey{EntityBooking, ItemsRemoved}, nil)
	return nil
}

func (f *Form) SetQuantity(ctx context.Context, id uuid.UUID, qty *int) error {
	return f.setField(ctx, id, FieldQty, func(item *entity.BookingItem) {
		item.Qty = qty
	})
}

func (f *Form) SetPrice(ctx context.Context, id uuid.UUID, price *float64) error {
	return f.setField(ctx, id, FieldPrice, func(item *entity.BookingItem) {
		item.Price = price
	})
}

// SetService changes the row's service. A lookup still running for the
// previous service is cancelled; clearing the service is a no-op for prices.
func (f *Form) SetService(ctx context.Context, id uuid.UUID, serviceID *uuid.UUID) error {
	return f.setField(ctx, id, FieldService, func(item *entity.BookingItem) {
		f.cancelPending(item)
		item.ServiceID = serviceID
	})
}

func (f *Form) setField(ctx context.Context, id uuid.UUID, field string, set func(*entity.BookingItem)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	item := f.booking.FindItem(id)
	if item == nil {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id.String())
	}

	set(item)
	f.dirty = true
	f.trigger(ctx, EventKey{EntityItem, field}, item)
	return nil
}

// selectService runs under the lock and hands the lookup to a goroutine.
func (f *Form) selectService(ctx context.Context, item *entity.BookingItem) {
	if item.ServiceID == nil {
		return
	}

	var lookupCtx context.Context
	var cancel context.CancelFunc
	if f.timeout > 0 {
		lookupCtx, cancel = context.WithTimeout(ctx, f.timeout)
	} else {
		lookupCtx, cancel = context.WithCancel(ctx)
	}

	f.seq++
	seq := f.seq
	f.pending[item] = pendingLookup{seq: seq, cancel: cancel}

	serviceID := *item.ServiceID
	f.wg.Add(1)
	go f.resolvePrice(lookupCtx, seq, item, serviceID)
}

func (f *Form) resolvePrice(ctx context.Context, seq uint64, item *entity.BookingItem, serviceID uuid.UUID) {
	defer f.wg.Done()

	price, found, err := f.lookup.ServicePrice(ctx, serviceID)

	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.pending[item]
	if !ok || current.seq != seq {
		f.log.Debug("Price lookup superseded", zap.String("service_id", serviceID.String()))
		return
	}
	delete(f.pending, item)
	current.cancel()

	if err != nil {
		f.errs = append(f.errs, lookupError(serviceID, err))
		return
	}
	if !f.booking.HasItem(item) {
		f.log.Debug("Price lookup finished for detached row", zap.String("item_id", item.ID.String()))
		return
	}

	if ApplyServicePrice(f.booking, item, price, found) {
		f.dirty = true
		return
	}
	f.log.Debug("Service has no positive price, row left unchanged",
		zap.String("service_id", serviceID.String()),
		zap.Bool("found", found),
	)
}

// cancelPending must be called with the lock held.
func (f *Form) cancelPending(item *entity.BookingItem) {
	if p, ok := f.pending[item]; ok {
		p.cancel()
		delete(f.pending, item)
	}
}

// Wait blocks until every started price lookup has settled and returns
// their errors, if any.
func (f *Form) Wait() error {
	f.wg.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	err := errors.Join(f.errs...)
	f.errs = nil
	return err
}

// Booking returns the edited booking. Call Wait first when lookups may be running.
func (f *Form) Booking() *entity.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.booking
}

func (f *Form) Total() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.booking.Total
}

// Dirty reports whether any field or row changed since the form was opened.
func (f *Form) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dirty
}
