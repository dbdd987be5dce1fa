package repository

import (
	"context"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CategoryRepository interface {
	FindGroups(ctx context.Context) ([]*entity.Category, error)
	FindByParent(ctx context.Context, parentID uuid.UUID) ([]*entity.Category, error)
}

type categoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

const categoryColumns = `id, english_name, arabic_name, is_group, parent, image, disabled, created_at, updated_at`

// FindGroups returns the enabled top level categories.
func (r *categoryRepository) FindGroups(ctx context.Context) ([]*entity.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE disabled = false AND is_group = true
		ORDER BY english_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return r.collect(rows)
}

// FindByParent returns the enabled subcategories of parentID.
func (r *categoryRepository) FindByParent(ctx context.Context, parentID uuid.UUID) ([]*entity.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE disabled = false AND is_group = false AND parent = $1
		ORDER BY english_name
	`

	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		r.log.Error("Failed to list subcategories",
			zap.Error(err),
			zap.String("parent_id", parentID.String()),
		)
		return nil, fmt.Errorf("list subcategories of %s: %w", parentID.String(), err)
	}

	return r.collect(rows)
}

func (r *categoryRepository) collect(rows pgx.Rows) ([]*entity.Category, error) {
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var c entity.Category
		err := rows.Scan(
			&c.ID,
			&c.EnglishName,
			&c.ArabicName,
			&c.IsGroup,
			&c.Parent,
			&c.Image,
			&c.Disabled,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}
