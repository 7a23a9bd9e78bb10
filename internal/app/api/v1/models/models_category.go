package models

import (
	"github.com/tkrause/expense-portal/internal/domain"
)

// CategoryCreateRequest is the payload for creating a new spend category.
type CategoryCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=3,max=30"`
	SpendLimit  float64 `json:"spend_limit" validate:"required,gt=0"`
	Description string  `json:"description" validate:"omitempty,max=100"`
}

// Category represents a spend category in API responses.
type Category struct {
	Id          string  `json:"id"`
	CompanyId   string  `json:"company_id"`
	Name        string  `json:"name"`
	SpendLimit  float64 `json:"spend_limit"`
	Description string  `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewCategory(src *domain.Category) *Category {
	return &Category{
		Id:          string(src.Identifier),
		CompanyId:   string(src.CompanyId),
		Name:        src.Name,
		SpendLimit:  src.SpendLimit,
		Description: src.Description,
		CreatedAt:   formatTime(src.CreatedAt),
		UpdatedAt:   formatTime(src.UpdatedAt),
	}
}

func NewCategories(src []domain.Category) []Category {
	results := make([]Category, len(src))
	for i := range src {
		results[i] = *NewCategory(&src[i])
	}

	return results
}

// NewDomainCategory converts a create request into a domain category.
// The identifier and company scope are filled in by the manager.
func NewDomainCategory(src *CategoryCreateRequest) *domain.Category {
	return &domain.Category{
		Name:        src.Name,
		SpendLimit:  src.SpendLimit,
		Description: src.Description,
	}
}
