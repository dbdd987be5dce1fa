package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// GET /api/categories - enabled top level categories
	r.Get("/api/categories", catalogHandler.GetCategories)

	// GET /api/categories/{id}/subcategories - enabled subcategories of a category
	r.Get("/api/categories/{id}/subcategories", catalogHandler.GetSubcategories)

	// GET /api/services - catalog with optional category_id, subcategory_id and search
	r.Get("/api/services", catalogHandler.GetServices)

	// GET /api/services/{id} - one catalog entry
	r.Get("/api/services/{id}", catalogHandler.GetService)

	// GET /api/services/{id}/price - price lookup for a selected service
	r.Get("/api/services/{id}/price", catalogHandler.GetServicePrice)
}
