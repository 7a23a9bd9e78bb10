package domain

import (
	"slices"
	"time"
)

type ExpenseIdentifier string

func (i ExpenseIdentifier) String() string {
	return string(i)
}

type ExpenseStatus string

const (
	ExpenseStatusDraft      ExpenseStatus = "DRAFT"
	ExpenseStatusSubmitted  ExpenseStatus = "SUBMITTED"
	ExpenseStatusApproved   ExpenseStatus = "APPROVED"
	ExpenseStatusRejected   ExpenseStatus = "REJECTED"
	ExpenseStatusReimbursed ExpenseStatus = "REIMBURSED"
	ExpenseStatusCanceled   ExpenseStatus = "CANCELED"
)

// ExpenseStatuses is the closed set of valid expense states.
var ExpenseStatuses = []ExpenseStatus{
	ExpenseStatusDraft,
	ExpenseStatusSubmitted,
	ExpenseStatusApproved,
	ExpenseStatusRejected,
	ExpenseStatusReimbursed,
	ExpenseStatusCanceled,
}

func (s ExpenseStatus) IsValid() bool {
	return slices.Contains(ExpenseStatuses, s)
}

// Expense is a single expense record, owned by a user and scoped to a
// company. Receipts are linked through their expense identifier.
type Expense struct {
	BaseModel

	Identifier ExpenseIdentifier  `gorm:"primaryKey;column:identifier"`
	UserId     UserIdentifier     `gorm:"index;column:user_id"`
	CompanyId  CompanyIdentifier  `gorm:"index;column:company_id"`
	CategoryId CategoryIdentifier `gorm:"index;column:category_id"`

	Title       string
	Amount      float64
	Currency    string
	ExpenseDate time.Time
	Description string
	Merchant    string
	ProjectId   string        `gorm:"column:project_id"`
	Status      ExpenseStatus `gorm:"index"`

	Tags      []string `gorm:"serializer:json"`
	Attendees []string `gorm:"serializer:json"`
}

// ExpensePatch describes a partial update of an expense.
// Nil fields are left untouched.
type ExpensePatch struct {
	Title       *string
	Amount      *float64
	Currency    *string
	Description *string
	ExpenseDate *time.Time
	Status      *ExpenseStatus
}

// ApplyTo copies all set patch fields onto the given expense.
func (p ExpensePatch) ApplyTo(e *Expense) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Currency != nil {
		e.Currency = *p.Currency
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.ExpenseDate != nil {
		e.ExpenseDate = *p.ExpenseDate
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
}
