package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkrause/expense-portal/internal/domain"
)

type testBus struct {
	topics []string
}

func (b *testBus) Publish(topic string, _ ...any) {
	b.topics = append(b.topics, topic)
}

type testDb struct {
	categories map[domain.CategoryIdentifier]*domain.Category
}

func newTestDb() *testDb {
	return &testDb{categories: make(map[domain.CategoryIdentifier]*domain.Category)}
}

func (db *testDb) CreateCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	stored := *category
	db.categories[category.Identifier] = &stored
	return &stored, nil
}

func (db *testDb) GetCategory(_ context.Context, id domain.CategoryIdentifier) (*domain.Category, error) {
	category, ok := db.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

func (db *testDb) GetCompanyCategories(
	_ context.Context,
	companyId domain.CompanyIdentifier,
) ([]domain.Category, error) {
	var result []domain.Category
	for _, category := range db.categories {
		if category.CompanyId == companyId {
			result = append(result, *category)
		}
	}
	return result, nil
}

func (db *testDb) DeleteCategory(_ context.Context, id domain.CategoryIdentifier) error {
	delete(db.categories, id)
	return nil
}

func companyContext(companyId string) context.Context {
	return domain.SetUserInfo(context.Background(), &domain.ContextUserInfo{
		Id:        "1",
		CompanyId: domain.CompanyIdentifier(companyId),
	})
}

func TestManager_CreateCategory(t *testing.T) {
	bus := &testBus{}
	mgr := NewManager(bus, newTestDb())

	created, err := mgr.CreateCategory(companyContext("c1"), &domain.Category{
		Name:       "Travel",
		SpendLimit: 1000,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.Identifier)
	assert.Equal(t, domain.CompanyIdentifier("c1"), created.CompanyId)
	assert.Len(t, bus.topics, 1)
}

func TestManager_GetCompanyCategories(t *testing.T) {
	mgr := NewManager(&testBus{}, newTestDb())

	_, err := mgr.CreateCategory(companyContext("c1"), &domain.Category{Name: "Travel", SpendLimit: 1000})
	require.NoError(t, err)
	_, err = mgr.CreateCategory(companyContext("c2"), &domain.Category{Name: "Office", SpendLimit: 500})
	require.NoError(t, err)

	categories, err := mgr.GetCompanyCategories(context.Background(), "c1")

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Travel", categories[0].Name)
}

func TestManager_GetCompanyCategories_Empty(t *testing.T) {
	mgr := NewManager(&testBus{}, newTestDb())

	_, err := mgr.GetCompanyCategories(context.Background(), "c1")

	dErr, ok := domain.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, 404, dErr.StatusCode)
	assert.Equal(t, "CATEGORIES_NOT_FOUND", dErr.Code)
}

func TestManager_DeleteCategory(t *testing.T) {
	bus := &testBus{}
	mgr := NewManager(bus, newTestDb())

	created, err := mgr.CreateCategory(companyContext("c1"), &domain.Category{Name: "Travel", SpendLimit: 1000})
	require.NoError(t, err)

	require.NoError(t, mgr.DeleteCategory(context.Background(), created.Identifier))

	err = mgr.DeleteCategory(context.Background(), created.Identifier)
	dErr, ok := domain.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "CATEGORY_NOT_FOUND", dErr.Code)
}
