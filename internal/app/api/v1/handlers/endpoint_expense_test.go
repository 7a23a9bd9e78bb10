package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkrause/expense-portal/internal/domain"
	"github.com/tkrause/expense-portal/internal/validation"
)

type expenseServiceMock struct {
	createFn       func(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	listFn         func(ctx context.Context, userId domain.UserIdentifier) ([]domain.Expense, error)
	getFn          func(ctx context.Context, id domain.ExpenseIdentifier) (*domain.Expense, error)
	updateFn       func(ctx context.Context, id domain.ExpenseIdentifier, patch domain.ExpensePatch) (*domain.Expense, error)
	updateStatusFn func(ctx context.Context, id domain.ExpenseIdentifier, status domain.ExpenseStatus) (*domain.Expense, error)
	deleteFn       func(ctx context.Context, id domain.ExpenseIdentifier) error
}

func (m *expenseServiceMock) CreateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	return m.createFn(ctx, expense)
}

func (m *expenseServiceMock) GetUserExpenses(ctx context.Context, userId domain.UserIdentifier) ([]domain.Expense, error) {
	return m.listFn(ctx, userId)
}

func (m *expenseServiceMock) GetExpense(ctx context.Context, id domain.ExpenseIdentifier) (*domain.Expense, error) {
	return m.getFn(ctx, id)
}

func (m *expenseServiceMock) UpdateExpense(
	ctx context.Context,
	id domain.ExpenseIdentifier,
	patch domain.ExpensePatch,
) (*domain.Expense, error) {
	return m.updateFn(ctx, id, patch)
}

func (m *expenseServiceMock) UpdateExpenseStatus(
	ctx context.Context,
	id domain.ExpenseIdentifier,
	status domain.ExpenseStatus,
) (*domain.Expense, error) {
	return m.updateStatusFn(ctx, id, status)
}

func (m *expenseServiceMock) DeleteExpense(ctx context.Context, id domain.ExpenseIdentifier) error {
	return m.deleteFn(ctx, id)
}

func sampleExpense(id string) *domain.Expense {
	return &domain.Expense{
		Identifier:  domain.ExpenseIdentifier(id),
		UserId:      "1",
		CompanyId:   "c1",
		CategoryId:  "cat-1",
		Title:       "Team lunch",
		Amount:      42.5,
		Currency:    "EUR",
		ExpenseDate: time.Now().AddDate(0, 0, -1),
		Status:      domain.ExpenseStatusDraft,
	}
}

func validExpenseBody() string {
	expenseDate := time.Now().AddDate(0, 0, -1).Format(validation.DateLayout)
	return `{
		"title": "Team lunch",
		"amount": 42.5,
		"currency": "EUR",
		"category_id": "cat-1",
		"expense_date": "` + expenseDate + `"
	}`
}

func TestExpenseEndpoint_Create(t *testing.T) {
	svc := &expenseServiceMock{
		createFn: func(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
			expense.Identifier = "e1"
			expense.UserId = domain.GetUserInfo(ctx).Id
			expense.Status = domain.ExpenseStatusDraft
			return expense, nil
		},
	}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", strings.NewReader(validExpenseBody()))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	resp := decodeResponse(t, rr)
	assert.True(t, resp.Success)
	assert.Equal(t, "Expense added successfully", resp.Message)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "e1", data["id"])
	assert.Equal(t, "DRAFT", data["status"])
}

func TestExpenseEndpoint_CreateNegativeAmount(t *testing.T) {
	svc := &expenseServiceMock{
		createFn: func(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
			t.Fatal("service must not be called for invalid input")
			return nil, nil
		},
	}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	body := strings.Replace(validExpenseBody(), "42.5", "-5", 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", strings.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	resp := decodeErrorResponse(t, rr)
	assert.Equal(t, "INVALID_EXPENSE_DATA", resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "amount", resp.Error.Details[0]["field"])
	assert.Equal(t, "INVALID_AMOUNT", resp.Error.Details[0]["code"])
	assert.Equal(t, -5.0, resp.Error.Details[0]["value"])
}

func TestExpenseEndpoint_CreateAmountTypeMismatch(t *testing.T) {
	svc := &expenseServiceMock{}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	body := strings.Replace(validExpenseBody(), "42.5", `"lots"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", strings.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	resp := decodeErrorResponse(t, rr)
	assert.Equal(t, "INVALID_EXPENSE_DATA", resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "INVALID_AMOUNT_TYPE", resp.Error.Details[0]["code"])
	assert.Equal(t, "amount must be a number", resp.Error.Details[0]["message"])
}

func TestExpenseEndpoint_CreateAmountTypeMismatchWithOtherViolations(t *testing.T) {
	svc := &expenseServiceMock{}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	// a decodable body with a mis-typed amount must still report the
	// violations of all other fields, here the missing title
	body := strings.Replace(validExpenseBody(), "42.5", `"lots"`, 1)
	body = strings.Replace(body, `"Team lunch"`, `""`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", strings.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	resp := decodeErrorResponse(t, rr)
	assert.Equal(t, "INVALID_EXPENSE_DATA", resp.Error.Code)
	require.Len(t, resp.Error.Details, 2)

	byField := map[string]string{}
	for _, d := range resp.Error.Details {
		byField[d["field"].(string)] = d["code"].(string)
	}

	assert.Equal(t, "INVALID_AMOUNT_TYPE", byField["amount"])
	assert.Equal(t, "MISSING_FIELD", byField["title"])
}

func TestExpenseEndpoint_CreateServiceFailure(t *testing.T) {
	svc := &expenseServiceMock{
		createFn: func(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
			return nil, assert.AnError
		},
	}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", strings.NewReader(validExpenseBody()))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	resp := decodeErrorResponse(t, rr)
	assert.Equal(t, "ADD_EXPENSE_FAILED", resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.NotEmpty(t, resp.Error.Details[0]["reason"])
}

func TestExpenseEndpoint_ListMissingUserId(t *testing.T) {
	svc := &expenseServiceMock{}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	resp := decodeErrorResponse(t, rr)
	assert.Equal(t, "USER_ID_MISSING", resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "user_id", resp.Error.Details[0]["field"])
}

func TestExpenseEndpoint_ListEmpty(t *testing.T) {
	svc := &expenseServiceMock{
		listFn: func(ctx context.Context, userId domain.UserIdentifier) ([]domain.Expense, error) {
			return nil, domain.NewNotFoundError("no expenses found for this user", "EXPENSES_NOT_FOUND",
				[]domain.DetailEntry{{"user_id": userId}})
		},
	}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses?user_id=42", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	// the not-found error must pass through unchanged, not rewrapped as a 500
	require.Equal(t, http.StatusNotFound, rr.Code)

	resp := decodeErrorResponse(t, rr)
	assert.Equal(t, "EXPENSES_NOT_FOUND", resp.Error.Code)
}

func TestExpenseEndpoint_List(t *testing.T) {
	svc := &expenseServiceMock{
		listFn: func(ctx context.Context, userId domain.UserIdentifier) ([]domain.Expense, error) {
			return []domain.Expense{*sampleExpense("e1"), *sampleExpense("e2")}, nil
		},
	}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses?user_id=1", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeResponse(t, rr)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 2)
}

func TestExpenseEndpoint_StatusUpdate(t *testing.T) {
	svc := &expenseServiceMock{
		updateStatusFn: func(
			ctx context.Context,
			id domain.ExpenseIdentifier,
			status domain.ExpenseStatus,
		) (*domain.Expense, error) {
			expense := sampleExpense(string(id))
			expense.Status = status
			return expense, nil
		},
	}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/expenses/e1/status",
		strings.NewReader(`{"status": "SUBMITTED"}`))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeResponse(t, rr)
	assert.Equal(t, "Expense status updated successfully", resp.Message)
	assert.Equal(t, "SUBMITTED", resp.Data.(map[string]any)["status"])
}

func TestExpenseEndpoint_StatusUnknown(t *testing.T) {
	svc := &expenseServiceMock{
		updateStatusFn: func(
			ctx context.Context,
			id domain.ExpenseIdentifier,
			status domain.ExpenseStatus,
		) (*domain.Expense, error) {
			t.Fatal("service must not be called for an unknown status")
			return nil, nil
		},
	}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/expenses/e1/status",
		strings.NewReader(`{"status": "UNKNOWN"}`))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	resp := decodeErrorResponse(t, rr)
	assert.Equal(t, "INVALID_EXPENSE_STATUS", resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "status", resp.Error.Details[0]["field"])
	assert.Equal(t, "UNKNOWN", resp.Error.Details[0]["value"])
}

func TestExpenseEndpoint_Update(t *testing.T) {
	svc := &expenseServiceMock{
		updateFn: func(
			ctx context.Context,
			id domain.ExpenseIdentifier,
			patch domain.ExpensePatch,
		) (*domain.Expense, error) {
			expense := sampleExpense(string(id))
			patch.ApplyTo(expense)
			return expense, nil
		},
	}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/expenses/e1",
		strings.NewReader(`{"title": "Client dinner", "amount": 99.9}`))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeResponse(t, rr)
	assert.Equal(t, "Expense updated successfully", resp.Message)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "Client dinner", data["title"])
	assert.Equal(t, 99.9, data["amount"])
	assert.Equal(t, "EUR", data["currency"]) // untouched field keeps its value
}

func TestExpenseEndpoint_Delete(t *testing.T) {
	svc := &expenseServiceMock{
		deleteFn: func(ctx context.Context, id domain.ExpenseIdentifier) error {
			return nil
		},
	}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/expenses/e1", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeResponse(t, rr)
	assert.True(t, resp.Success)
	assert.Equal(t, "Expense deleted successfully", resp.Message)
	assert.Equal(t, "e1", resp.Data.(map[string]any)["expense_id"])
}

func TestExpenseEndpoint_DeleteMissing(t *testing.T) {
	svc := &expenseServiceMock{
		deleteFn: func(ctx context.Context, id domain.ExpenseIdentifier) error {
			return domain.NewNotFoundError("expense not found", "EXPENSE_NOT_FOUND",
				[]domain.DetailEntry{{"field": "expense_id", "reason": "no matching expense found"}})
		},
	}
	server := newTestServer(t, "c1", NewExpenseEndpoint(svc, validation.NewValidator()))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/expenses/gone", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)

	resp := decodeErrorResponse(t, rr)
	assert.Equal(t, "EXPENSE_NOT_FOUND", resp.Error.Code)
}
