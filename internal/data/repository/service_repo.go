package repository

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ServiceFilter narrows the catalog listing. Zero values mean "any".
type ServiceFilter struct {
	CategoryID    *uuid.UUID
	SubcategoryID *uuid.UUID
	Search        string
}

type ServiceRepository interface {
	FindAll(ctx context.Context, filter ServiceFilter) ([]*entity.Service, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindPrice(ctx context.Context, id uuid.UUID) (float64, bool, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, english_name, arabic_name, english_description, arabic_description,
		price, duration, category, subcategory, image, disabled, created_at, updated_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	err := row.Scan(
		&s.ID,
		&s.EnglishName,
		&s.ArabicName,
		&s.EnglishDescription,
		&s.ArabicDescription,
		&s.Price,
		&s.Duration,
		&s.Category,
		&s.Subcategory,
		&s.Image,
		&s.Disabled,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *serviceRepository) FindAll(ctx context.Context, filter ServiceFilter) ([]*entity.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE disabled = false
		  AND ($1::uuid IS NULL OR category = $1)
		  AND ($2::uuid IS NULL OR subcategory = $2)
		  AND ($3 = '' OR english_name ILIKE '%' || $3 || '%' OR arabic_name ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, filter.CategoryID, filter.SubcategoryID, filter.Search)
	if err != nil {
		r.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service rows: %w", err)
	}

	return services, nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	s, err := scanService(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return s, nil
}

// FindPrice reads only the price column; found is false for unknown services.
func (r *serviceRepository) FindPrice(ctx context.Context, id uuid.UUID) (float64, bool, error) {
	query := `SELECT price FROM services WHERE id = $1`

	var price *float64
	err := r.db.QueryRow(ctx, query, id).Scan(&price)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		r.log.Error("Failed to find service price",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return 0, false, fmt.Errorf("find price of service %s: %w", id.String(), err)
	}
	if price == nil {
		return 0, false, nil
	}

	return *price, true, nil
}
