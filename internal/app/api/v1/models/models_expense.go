package models

import (
	"time"

	"github.com/tkrause/expense-portal/internal/domain"
	"github.com/tkrause/expense-portal/internal/validation"
)

// ExpenseCreateRequest is the payload for creating a new expense.
type ExpenseCreateRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255,alphanumspace"`
	Amount      float64  `json:"amount" validate:"required,gt=0"`
	Currency    string   `json:"currency" validate:"required,len=3,uppercase"`
	CategoryId  string   `json:"category_id" validate:"required"`
	ExpenseDate string   `json:"expense_date" validate:"required,datetime=2006-01-02,notfuture,minrecency"`
	Description string   `json:"description" validate:"omitempty,max=1000"`
	Merchant    string   `json:"merchant" validate:"omitempty,max=255"`
	ProjectId   string   `json:"project_id" validate:"omitempty,max=100"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,max=50"`
	Attendees   []string `json:"attendees" validate:"omitempty,max=10,dive,max=50"`
}

// ExpenseUpdateRequest is the payload for a partial expense update.
// All fields are optional; absent fields keep their stored value.
type ExpenseUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=255,alphanumspace"`
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	Currency    *string  `json:"currency" validate:"omitempty,len=3,uppercase"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	ExpenseDate *string  `json:"expense_date" validate:"omitempty,datetime=2006-01-02,notfuture,minrecency"`
	Status      *string  `json:"status" validate:"omitempty,oneof=DRAFT SUBMITTED APPROVED REJECTED REIMBURSED CANCELED"`
}

// ExpenseStatusUpdateRequest is the payload for a status transition.
type ExpenseStatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// Expense represents an expense in API responses.
type Expense struct {
	Id          string   `json:"id"`
	UserId      string   `json:"user_id"`
	CompanyId   string   `json:"company_id"`
	CategoryId  string   `json:"category_id"`
	Title       string   `json:"title"`
	Amount      float64  `json:"amount"`
	Currency    string   `json:"currency"`
	ExpenseDate string   `json:"expense_date"`
	Description string   `json:"description,omitempty"`
	Merchant    string   `json:"merchant,omitempty"`
	ProjectId   string   `json:"project_id,omitempty"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func NewExpense(src *domain.Expense) *Expense {
	return &Expense{
		Id:          string(src.Identifier),
		UserId:      string(src.UserId),
		CompanyId:   string(src.CompanyId),
		CategoryId:  string(src.CategoryId),
		Title:       src.Title,
		Amount:      src.Amount,
		Currency:    src.Currency,
		ExpenseDate: src.ExpenseDate.Format(validation.DateLayout),
		Description: src.Description,
		Merchant:    src.Merchant,
		ProjectId:   src.ProjectId,
		Status:      string(src.Status),
		Tags:        src.Tags,
		Attendees:   src.Attendees,
		CreatedAt:   formatTime(src.CreatedAt),
		UpdatedAt:   formatTime(src.UpdatedAt),
	}
}

func NewExpenses(src []domain.Expense) []Expense {
	results := make([]Expense, len(src))
	for i := range src {
		results[i] = *NewExpense(&src[i])
	}

	return results
}

// NewDomainExpense converts a create request into a domain expense.
// The identifier, owner and status are filled in by the manager.
// The expense date string has already been validated at this point.
func NewDomainExpense(src *ExpenseCreateRequest) *domain.Expense {
	expenseDate, _ := time.Parse(validation.DateLayout, src.ExpenseDate)

	return &domain.Expense{
		CategoryId:  domain.CategoryIdentifier(src.CategoryId),
		Title:       src.Title,
		Amount:      src.Amount,
		Currency:    src.Currency,
		ExpenseDate: expenseDate,
		Description: src.Description,
		Merchant:    src.Merchant,
		ProjectId:   src.ProjectId,
		Tags:        src.Tags,
		Attendees:   src.Attendees,
	}
}

// NewDomainExpensePatch converts an update request into a domain patch.
func NewDomainExpensePatch(src *ExpenseUpdateRequest) domain.ExpensePatch {
	patch := domain.ExpensePatch{
		Title:       src.Title,
		Amount:      src.Amount,
		Currency:    src.Currency,
		Description: src.Description,
	}

	if src.ExpenseDate != nil {
		expenseDate, _ := time.Parse(validation.DateLayout, *src.ExpenseDate)
		patch.ExpenseDate = &expenseDate
	}
	if src.Status != nil {
		status := domain.ExpenseStatus(*src.Status)
		patch.Status = &status
	}

	return patch
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
