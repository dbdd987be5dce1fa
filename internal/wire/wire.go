package wire

import (
	"net/http"

	"salon-booking/internal/adaptor"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/event"
	"salon-booking/internal/pricing"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/middleware"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired HTTP router
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers and mounts their routes
func Wiring(
	repo *repository.Repository,
	prices pricing.PriceLookup,
	publisher event.Publisher,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, prices, publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, logger),
	}
}

func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireBooking(r, handler.Booking)
	wireCatalog(r, handler.Catalog)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
