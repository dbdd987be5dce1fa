package response

import "salon-booking/internal/data/entity"

type CategoryResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	NameArabic    string  `json:"name_arabic"`
	ParentID      *string `json:"parent_id"`
	Status        int     `json:"status"`
	CategoryImage string  `json:"category_image"`
	IsGift        int     `json:"is_gift"`
}

// CategoryToResponse converts a category; the image path is prefixed with
// siteURL and is empty when the category has none.
func CategoryToResponse(c *entity.Category, siteURL string) CategoryResponse {
	image := ""
	if c.Image != nil && *c.Image != "" {
		image = siteURL + *c.Image
	}

	status := 1
	if c.Disabled {
		status = 0
	}

	return CategoryResponse{
		ID:            c.ID.String(),
		Name:          c.EnglishName,
		NameArabic:    c.ArabicName,
		ParentID:      uuidString(c.Parent),
		Status:        status,
		CategoryImage: image,
	}
}
