package repository

import (
	"salon-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking  BookingRepository
	Service  ServiceRepository
	Category CategoryRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Booking:  NewBookingRepository(db, log),
		Service:  NewServiceRepository(db, log),
		Category: NewCategoryRepository(db, log),
	}
}
