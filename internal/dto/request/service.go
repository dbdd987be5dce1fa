package request

type ServiceListRequest struct {
	CategoryID    string `json:"category_id" validate:"omitempty,uuid"`
	SubcategoryID string `json:"subcategory_id" validate:"omitempty,uuid"`
	Search        string `json:"search" validate:"max=100"`
}
