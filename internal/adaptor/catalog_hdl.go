package adaptor

import (
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetCategories handles GET /api/categories
func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get categories")
		return
	}

	utils.ResponseSuccess(w, "Categories fetched successfully", categories)
}

// GetSubcategories handles GET /api/categories/{id}/subcategories
func (h *CatalogHandler) GetSubcategories(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "id")
	if categoryID == "" {
		utils.ResponseBadRequest(w, "Category ID is required", nil)
		return
	}

	categories, err := h.service.GetSubcategories(r.Context(), categoryID)
	if err != nil {
		handleServiceError(h.log, w, err, "get subcategories")
		return
	}

	utils.ResponseSuccess(w, "Sub-Categories fetched successfully", categories)
}

// GetServices handles GET /api/services
func (h *CatalogHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ServiceListRequest{
		CategoryID:    query.Get("category_id"),
		SubcategoryID: query.Get("subcategory_id"),
		Search:        query.Get("search"),
	}

	services, err := h.service.GetServices(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// GetService handles GET /api/services/{id}
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	service, err := h.service.GetService(r.Context(), serviceID)
	if err != nil {
		handleServiceError(h.log, w, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// GetServicePrice handles GET /api/services/{id}/price
func (h *CatalogHandler) GetServicePrice(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	price, err := h.service.GetServicePrice(r.Context(), serviceID)
	if err != nil {
		handleServiceError(h.log, w, err, "get service price")
		return
	}

	utils.ResponseSuccess(w, "success", price)
}
