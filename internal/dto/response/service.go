package response

import (
	"salon-booking/internal/data/entity"

	"github.com/google/uuid"
)

type ServiceResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	NameAr        string  `json:"name_ar"`
	DescriptionEn *string `json:"description_en"`
	DescriptionAr *string `json:"description_ar"`
	DefaultPrice  float64 `json:"default_price"`
	DurationMin   int     `json:"duration_min"`
	CategoryID    *string `json:"category_id"`
	SubCategoryID *string `json:"sub_category_id"`
	Status        int     `json:"status"`
	ServiceImage  *string `json:"service_image"`
}

type ServicePriceResponse struct {
	ServiceID string  `json:"service_id"`
	Price     float64 `json:"price"`
}

// ServiceToResponse converts a catalog entry; image paths are prefixed with siteURL.
func ServiceToResponse(s *entity.Service, siteURL string) ServiceResponse {
	var image *string
	if s.Image != nil && *s.Image != "" {
		full := siteURL + *s.Image
		image = &full
	}

	status := 1
	if s.Disabled {
		status = 0
	}

	return ServiceResponse{
		ID:            s.ID.String(),
		Name:          s.EnglishName,
		NameAr:        s.ArabicName,
		DescriptionEn: s.EnglishDescription,
		DescriptionAr: s.ArabicDescription,
		DefaultPrice:  s.Price,
		DurationMin:   s.Duration,
		CategoryID:    uuidString(s.Category),
		SubCategoryID: uuidString(s.Subcategory),
		Status:        status,
		ServiceImage:  image,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
