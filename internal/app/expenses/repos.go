package expenses

import (
	"context"

	"github.com/tkrause/expense-portal/internal/domain"
)

type DatabaseRepo interface {
	// CreateExpense stores a new expense record.
	CreateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	// GetExpense returns the expense with the given id.
	// If no expense is found, an error domain.ErrNotFound is returned.
	GetExpense(ctx context.Context, id domain.ExpenseIdentifier) (*domain.Expense, error)
	// GetUserExpenses returns all expenses of the given user. An empty result is not an error.
	GetUserExpenses(ctx context.Context, userId domain.UserIdentifier) ([]domain.Expense, error)
	// SaveExpense updates the expense with the given id inside a transaction.
	// If no expense is found, an error domain.ErrNotFound is returned.
	SaveExpense(
		ctx context.Context,
		id domain.ExpenseIdentifier,
		updateFunc func(e *domain.Expense) (*domain.Expense, error),
	) (*domain.Expense, error)
	// DeleteExpense deletes the expense with the given id.
	DeleteExpense(ctx context.Context, id domain.ExpenseIdentifier) error
}

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
}
