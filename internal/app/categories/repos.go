package categories

import (
	"context"

	"github.com/tkrause/expense-portal/internal/domain"
)

type DatabaseRepo interface {
	// CreateCategory stores a new category record.
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	// GetCategory returns the category with the given id.
	// If no category is found, an error domain.ErrNotFound is returned.
	GetCategory(ctx context.Context, id domain.CategoryIdentifier) (*domain.Category, error)
	// GetCompanyCategories returns all categories of the given company. An empty result is not an error.
	GetCompanyCategories(ctx context.Context, companyId domain.CompanyIdentifier) ([]domain.Category, error)
	// DeleteCategory deletes the category with the given id.
	DeleteCategory(ctx context.Context, id domain.CategoryIdentifier) error
}

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
}
