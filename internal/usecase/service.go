package usecase

import (
	"salon-booking/internal/data/repository"
	"salon-booking/internal/event"
	"salon-booking/internal/pricing"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking BookingService
	Catalog CatalogService
}

func NewService(
	repo *repository.Repository,
	prices pricing.PriceLookup,
	publisher event.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Booking: NewBookingService(repo, prices, publisher, config, log),
		Catalog: NewCatalogService(repo, prices, config, log),
	}
}
