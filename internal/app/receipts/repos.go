package receipts

import (
	"context"
	"io"

	"github.com/tkrause/expense-portal/internal/domain"
)

type DatabaseRepo interface {
	// GetExpense returns the expense with the given id.
	// If no expense is found, an error domain.ErrNotFound is returned.
	GetExpense(ctx context.Context, id domain.ExpenseIdentifier) (*domain.Expense, error)
	// CreateReceipt stores a new receipt metadata record.
	CreateReceipt(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error)
	// GetExpenseReceipts returns all receipts attached to the given expense. An empty result is not an error.
	GetExpenseReceipts(ctx context.Context, expenseId domain.ExpenseIdentifier) ([]domain.Receipt, error)
	// DeleteExpenseReceipts deletes all receipts attached to the given expense.
	DeleteExpenseReceipts(ctx context.Context, expenseId domain.ExpenseIdentifier) error
}

type FileRepo interface {
	// StoreUpload writes an uploaded file below the given kind directory and
	// returns the path of the stored file, relative to the storage base path.
	StoreUpload(kind, originalName string, contents io.Reader) (string, error)
}

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
}
