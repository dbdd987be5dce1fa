package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error

	// Business queries
	FindActiveByStaffAndDate(ctx context.Context, staff string, date time.Time, limit, offset int) ([]*entity.Booking, error)
	CountActiveByStaffAndDate(ctx context.Context, staff string, date time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, name, customer, state, branch, driver, staff, date, slot,
		location, lat_lng, status, payment_status, payment_reference, payment_method, note,
		is_gift, gift_to, gift_from, gift_message, gift_number, gift_location,
		total, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Customer,
		&b.State,
		&b.Branch,
		&b.Driver,
		&b.Staff,
		&b.Date,
		&b.Slot,
		&b.Location,
		&b.LatLng,
		&b.Status,
		&b.PaymentStatus,
		&b.PaymentReference,
		&b.PaymentMethod,
		&b.Note,
		&b.Gift.IsGift,
		&b.Gift.To,
		&b.Gift.From,
		&b.Gift.Message,
		&b.Gift.Number,
		&b.Gift.Location,
		&b.Total,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts the booking and its rows in one transaction.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking %s: %w", booking.Name, err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25)
	`

	_, err = tx.Exec(ctx, query,
		booking.ID,
		booking.Name,
		booking.Customer,
		booking.State,
		booking.Branch,
		booking.Driver,
		booking.Staff,
		booking.Date,
		booking.Slot,
		booking.Location,
		booking.LatLng,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentReference,
		booking.PaymentMethod,
		booking.Note,
		booking.Gift.IsGift,
		booking.Gift.To,
		booking.Gift.From,
		booking.Gift.Message,
		booking.Gift.Number,
		booking.Gift.Location,
		booking.Total,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("name", booking.Name),
			zap.String("customer", booking.Customer),
		)
		return fmt.Errorf("create booking %s: %w", booking.Name, err)
	}

	if err := r.insertItems(ctx, tx, booking.Items); err != nil {
		return fmt.Errorf("create booking %s: %w", booking.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking %s: %w", booking.Name, err)
	}

	return nil
}

func (r *bookingRepository) insertItems(ctx context.Context, tx pgx.Tx, items []*entity.BookingItem) error {
	query := `
		INSERT INTO booking_items (id, booking_id, idx, service_id, qty, price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, item := range items {
		_, err := tx.Exec(ctx, query,
			item.ID,
			item.BookingID,
			item.Idx,
			item.ServiceID,
			item.Qty,
			item.Price,
			item.TotalPrice,
			item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to insert booking item",
				zap.Error(err),
				zap.String("booking_id", item.BookingID.String()),
				zap.Int("idx", item.Idx),
			)
			return fmt.Errorf("insert booking item %d: %w", item.Idx, err)
		}
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	booking.Items = items

	return booking, nil
}

func (r *bookingRepository) findItems(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingItem, error) {
	query := `
		SELECT id, booking_id, idx, service_id, qty, price, total_price, created_at
		FROM booking_items
		WHERE booking_id = $1
		ORDER BY idx
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking items",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find items of booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var items []*entity.BookingItem
	for rows.Next() {
		var item entity.BookingItem
		err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.Idx,
			&item.ServiceID,
			&item.Qty,
			&item.Price,
			&item.TotalPrice,
			&item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking item row", zap.Error(err))
			return nil, fmt.Errorf("scan booking item row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking item rows: %w", err)
	}

	return items, nil
}

// Update rewrites the booking header and replaces its rows.
func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update booking %s: %w", booking.ID.String(), err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE bookings
		SET location = $2, lat_lng = $3, status = $4, payment_status = $5,
		    payment_reference = $6, payment_method = $7, note = $8, total = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		booking.ID,
		booking.Location,
		booking.LatLng,
		booking.Status,
		booking.PaymentStatus,
		booking.PaymentReference,
		booking.PaymentMethod,
		booking.Note,
		booking.Total,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	if _, err := tx.Exec(ctx, `DELETE FROM booking_items WHERE booking_id = $1`, booking.ID); err != nil {
		r.log.Error("Failed to clear booking items",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("clear items of booking %s: %w", booking.ID.String(), err)
	}

	if err := r.insertItems(ctx, tx, booking.Items); err != nil {
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindActiveByStaffAndDate(ctx context.Context, staff string, date time.Time, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE staff = $1 AND date = $2 AND status <> $3
		ORDER BY slot, created_at
		LIMIT $4 OFFSET $5
	`

	rows, err := r.db.Query(ctx, query, staff, date, entity.BookingStatusCancelled, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by staff and date",
			zap.Error(err),
			zap.String("staff", staff),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find bookings of staff %s: %w", staff, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountActiveByStaffAndDate(ctx context.Context, staff string, date time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE staff = $1 AND date = $2 AND status <> $3`

	var count int64
	err := r.db.QueryRow(ctx, query, staff, date, entity.BookingStatusCancelled).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by staff and date",
			zap.Error(err),
			zap.String("staff", staff),
		)
		return 0, fmt.Errorf("count bookings of staff %s: %w", staff, err)
	}

	return count, nil
}
