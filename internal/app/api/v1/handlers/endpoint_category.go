package handlers

import (
	"context"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/tkrause/expense-portal/internal/app/api/core/request"
	"github.com/tkrause/expense-portal/internal/app/api/core/respond"
	"github.com/tkrause/expense-portal/internal/app/api/v1/models"
	"github.com/tkrause/expense-portal/internal/domain"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetCompanyCategories(ctx context.Context, companyId domain.CompanyIdentifier) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, id domain.CategoryIdentifier) error
}

type CategoryEndpoint struct {
	categories CategoryService
	validator  Validator
}

func NewCategoryEndpoint(categoryService CategoryService, validator Validator) *CategoryEndpoint {
	return &CategoryEndpoint{
		categories: categoryService,
		validator:  validator,
	}
}

func (e CategoryEndpoint) GetName() string {
	return "CategoryEndpoint"
}

func (e CategoryEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	g.HandleFunc("POST /categories", e.handleCreatePost())

	apiGroup := g.Mount("/categories")
	apiGroup.HandleFunc("GET /{company_id}", e.handleListGet())
	apiGroup.HandleFunc("DELETE /{category_id}", e.handleDelete())
}

// handleCreatePost creates a new spend category for the caller's company.
// The request body is validated field by field; a caller without a company
// association is rejected.
func (e CategoryEndpoint) handleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CategoryCreateRequest
		if err := request.BodyJson(r, &req); err != nil {
			SendError(w, r, domain.NewInvalidCategoryData(e.validator.BindErrorDetails(err, &req)))
			return
		}

		if details := e.validator.Struct(&req); details != nil {
			SendError(w, r, domain.NewInvalidCategoryData(details))
			return
		}

		currentUser := domain.GetUserInfo(r.Context())
		if currentUser.CompanyId == domain.CtxUnknownCompanyId {
			SendError(w, r, domain.NewUnauthorized([]domain.DetailEntry{
				{"field": "company_id", "reason": "user does not belong to a valid company"},
			}))
			return
		}

		category, err := e.categories.CreateCategory(r.Context(), models.NewDomainCategory(&req))
		if err != nil {
			SendError(w, r, domain.WrapError(err, http.StatusBadRequest,
				"failed to add category", "ADD_CATEGORY_FAILED"))
			return
		}

		respond.JSON(w, http.StatusCreated,
			models.NewResponse(http.StatusCreated, models.NewCategory(category), "Category added successfully"))
	}
}

// handleListGet returns all categories of the given company.
func (e CategoryEndpoint) handleListGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyId := request.Path(r, "company_id")
		if companyId == "" {
			SendError(w, r, domain.NewUnauthorized([]domain.DetailEntry{
				{"field": "company_id", "reason": "company id is required"},
			}))
			return
		}

		categories, err := e.categories.GetCompanyCategories(r.Context(), domain.CompanyIdentifier(companyId))
		if err != nil {
			SendError(w, r, domain.WrapError(err, http.StatusInternalServerError,
				"failed to load categories", "GET_CATEGORY_ERROR"))
			return
		}

		respond.JSON(w, http.StatusOK,
			models.NewResponse(http.StatusOK, models.NewCategories(categories), ""))
	}
}

// handleDelete removes a single category by its id.
func (e CategoryEndpoint) handleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "category_id")
		if id == "" {
			SendError(w, r, domain.NewInvalidCategoryData([]domain.DetailEntry{
				{"field": "category_id", "code": "MISSING_CATEGORY_ID", "reason": "category id is required"},
			}))
			return
		}

		if err := e.categories.DeleteCategory(r.Context(), domain.CategoryIdentifier(id)); err != nil {
			SendError(w, r, domain.WrapError(err, http.StatusInternalServerError,
				"failed to delete category", "DELETE_CATEGORY_ERROR"))
			return
		}

		respond.JSON(w, http.StatusOK,
			models.NewResponse(http.StatusOK, map[string]any{"category_id": id}, "Category deleted successfully"))
	}
}
