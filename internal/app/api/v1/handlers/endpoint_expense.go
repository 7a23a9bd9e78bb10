package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/tkrause/expense-portal/internal/app/api/core/request"
	"github.com/tkrause/expense-portal/internal/app/api/core/respond"
	"github.com/tkrause/expense-portal/internal/app/api/v1/models"
	"github.com/tkrause/expense-portal/internal/domain"
)

type ExpenseService interface {
	CreateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	GetUserExpenses(ctx context.Context, userId domain.UserIdentifier) ([]domain.Expense, error)
	GetExpense(ctx context.Context, id domain.ExpenseIdentifier) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, id domain.ExpenseIdentifier, patch domain.ExpensePatch) (*domain.Expense, error)
	UpdateExpenseStatus(ctx context.Context, id domain.ExpenseIdentifier, status domain.ExpenseStatus) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id domain.ExpenseIdentifier) error
}

type ExpenseEndpoint struct {
	expenses  ExpenseService
	validator Validator
}

func NewExpenseEndpoint(expenseService ExpenseService, validator Validator) *ExpenseEndpoint {
	return &ExpenseEndpoint{
		expenses:  expenseService,
		validator: validator,
	}
}

func (e ExpenseEndpoint) GetName() string {
	return "ExpenseEndpoint"
}

func (e ExpenseEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	g.HandleFunc("POST /expenses", e.handleCreatePost())
	g.HandleFunc("GET /expenses", e.handleListGet())

	apiGroup := g.Mount("/expenses")
	apiGroup.HandleFunc("GET /{expense_id}", e.handleSingleGet())
	apiGroup.HandleFunc("PUT /{expense_id}", e.handleUpdatePut())
	apiGroup.HandleFunc("PATCH /{expense_id}/status", e.handleStatusPatch())
	apiGroup.HandleFunc("DELETE /{expense_id}", e.handleDelete())
}

// handleCreatePost creates a new expense for the current user. All field
// violations are collected and reported together.
func (e ExpenseEndpoint) handleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ExpenseCreateRequest
		if err := request.BodyJson(r, &req); err != nil {
			SendError(w, r, domain.NewInvalidExpenseData(e.validator.BindErrorDetails(err, &req)))
			return
		}

		if details := e.validator.Struct(&req); details != nil {
			SendError(w, r, domain.NewInvalidExpenseData(details))
			return
		}

		expense, err := e.expenses.CreateExpense(r.Context(), models.NewDomainExpense(&req))
		if err != nil {
			SendError(w, r, domain.WrapError(err, http.StatusBadRequest,
				"failed to add expense", "ADD_EXPENSE_FAILED"))
			return
		}

		respond.JSON(w, http.StatusCreated,
			models.NewResponse(http.StatusCreated, models.NewExpense(expense), "Expense added successfully"))
	}
}

// handleListGet returns all expenses of the user given by the user_id query
// parameter.
func (e ExpenseEndpoint) handleListGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := request.Query(r, "user_id")
		if userId == "" {
			SendError(w, r, domain.NewDomainError(http.StatusBadRequest,
				"user id is required", "USER_ID_MISSING",
				[]domain.DetailEntry{{"field": "user_id", "reason": "query parameter user_id is required"}}))
			return
		}

		expenses, err := e.expenses.GetUserExpenses(r.Context(), domain.UserIdentifier(userId))
		if err != nil {
			SendError(w, r, domain.WrapError(err, http.StatusInternalServerError,
				"failed to load expenses", "GET_EXPENSES_ERROR"))
			return
		}

		respond.JSON(w, http.StatusOK,
			models.NewResponse(http.StatusOK, models.NewExpenses(expenses), ""))
	}
}

// handleSingleGet returns one expense by its id.
func (e ExpenseEndpoint) handleSingleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "expense_id")

		expense, err := e.expenses.GetExpense(r.Context(), domain.ExpenseIdentifier(id))
		if err != nil {
			SendError(w, r, domain.WrapError(err, http.StatusInternalServerError,
				"failed to load expense", "GET_EXPENSE_FAILED"))
			return
		}

		respond.JSON(w, http.StatusOK,
			models.NewResponse(http.StatusOK, models.NewExpense(expense), ""))
	}
}

// handleUpdatePut applies a partial update to an expense.
func (e ExpenseEndpoint) handleUpdatePut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "expense_id")

		var req models.ExpenseUpdateRequest
		if err := request.BodyJson(r, &req); err != nil {
			SendError(w, r, domain.NewInvalidExpenseData(e.validator.BindErrorDetails(err, &req)))
			return
		}

		if details := e.validator.Struct(&req); details != nil {
			SendError(w, r, domain.NewInvalidExpenseData(details))
			return
		}

		expense, err := e.expenses.UpdateExpense(r.Context(), domain.ExpenseIdentifier(id),
			models.NewDomainExpensePatch(&req))
		if err != nil {
			SendError(w, r, domain.WrapError(err, http.StatusInternalServerError,
				"failed to update expense", "EXPENSE_UPDATE_FAILED"))
			return
		}

		respond.JSON(w, http.StatusOK,
			models.NewResponse(http.StatusOK, models.NewExpense(expense), "Expense updated successfully"))
	}
}

// handleStatusPatch moves an expense into a new state. The status value is
// checked against the closed set before anything is persisted.
func (e ExpenseEndpoint) handleStatusPatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "expense_id")

		var req models.ExpenseStatusUpdateRequest
		if err := request.BodyJson(r, &req); err != nil {
			SendError(w, r, domain.NewInvalidExpenseData(e.validator.BindErrorDetails(err, &req)))
			return
		}

		if details := e.validator.Struct(&req); details != nil {
			SendError(w, r, domain.NewInvalidExpenseData(details))
			return
		}

		status := domain.ExpenseStatus(req.Status)
		if !status.IsValid() {
			SendError(w, r, domain.NewDomainError(http.StatusBadRequest,
				"invalid expense status", "INVALID_EXPENSE_STATUS",
				[]domain.DetailEntry{{
					"field":  "status",
					"reason": fmt.Sprintf("allowed values: %v", domain.ExpenseStatuses),
					"value":  req.Status,
				}}))
			return
		}

		expense, err := e.expenses.UpdateExpenseStatus(r.Context(), domain.ExpenseIdentifier(id), status)
		if err != nil {
			SendError(w, r, domain.WrapError(err, http.StatusInternalServerError,
				"failed to update expense status", "UPDATE_EXPENSE_STATUS_FAILED"))
			return
		}

		respond.JSON(w, http.StatusOK,
			models.NewResponse(http.StatusOK, models.NewExpense(expense), "Expense status updated successfully"))
	}
}

// handleDelete removes one expense by its id. Deleting the same expense a
// second time yields a not-found error.
func (e ExpenseEndpoint) handleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "expense_id")

		if err := e.expenses.DeleteExpense(r.Context(), domain.ExpenseIdentifier(id)); err != nil {
			SendError(w, r, domain.WrapError(err, http.StatusInternalServerError,
				"failed to delete expense", "DELETE_EXPENSE_FAILED"))
			return
		}

		respond.JSON(w, http.StatusOK,
			models.NewResponse(http.StatusOK, map[string]any{"expense_id": id}, "Expense deleted successfully"))
	}
}
