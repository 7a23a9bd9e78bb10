package categories

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tkrause/expense-portal/internal/app"
	"github.com/tkrause/expense-portal/internal/domain"
)

type Manager struct {
	bus EventBus

	db DatabaseRepo
}

func NewManager(bus EventBus, db DatabaseRepo) *Manager {
	return &Manager{
		bus: bus,
		db:  db,
	}
}

// CreateCategory stores a new category for the company of the current user.
func (m *Manager) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	currentUser := domain.GetUserInfo(ctx)

	category.Identifier = domain.CategoryIdentifier(uuid.New().String())
	category.CompanyId = currentUser.CompanyId

	created, err := m.db.CreateCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "category created",
		"category", created.Identifier, "company", created.CompanyId)
	m.bus.Publish(app.TopicCategoryCreated, *created)

	return created, nil
}

// GetCompanyCategories returns the categories of the given company.
// An empty result is treated as absence and yields a not-found error.
func (m *Manager) GetCompanyCategories(ctx context.Context, companyId domain.CompanyIdentifier) (
	[]domain.Category,
	error,
) {
	categories, err := m.db.GetCompanyCategories(ctx, companyId)
	if err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		return nil, domain.NewNotFoundError("no category found for this company", "CATEGORIES_NOT_FOUND",
			[]domain.DetailEntry{{"company_id": companyId}})
	}

	return categories, nil
}

// DeleteCategory removes the category with the given id. Deleting a missing
// category yields a not-found error, repeated deletes behave the same way.
func (m *Manager) DeleteCategory(ctx context.Context, id domain.CategoryIdentifier) error {
	existing, err := m.db.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFoundError("category not found", "CATEGORY_NOT_FOUND",
				[]domain.DetailEntry{{"field": "category_id", "reason": "no category found with given id"}})
		}
		return err
	}

	if err := m.db.DeleteCategory(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "category deleted", "category", id, "company", existing.CompanyId)
	m.bus.Publish(app.TopicCategoryDeleted, *existing)

	return nil
}
