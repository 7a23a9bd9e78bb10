package expenses

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

// CreateExpense stores a new expense for the current user. New expenses
// always start in the DRAFT state.
func (m *Manager) CreateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	currentUser := domain.GetUserInfo(ctx)

	expense.Identifier = domain.ExpenseIdentifier(uuid.New().String())
	expense.UserId = currentUser.Id
	expense.CompanyId = currentUser.CompanyId
	expense.Status = domain.ExpenseStatusDraft

	created, err := m.db.CreateExpense(ctx, expense)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "expense created",
		"expense", created.Identifier, "user", created.UserId, "amount", created.Amount)
	m.bus.Publish(app.TopicExpenseCreated, *created)

	return created, nil
}

// GetUserExpenses returns all expenses of the given user.
// An empty result is treated as absence and yields a not-found error.
func (m *Manager) GetUserExpenses(ctx context.Context, userId domain.UserIdentifier) ([]domain.Expense, error) {
	expenses, err := m.db.GetUserExpenses(ctx, userId)
	if err != nil {
		return nil, err
	}

	if len(expenses) == 0 {
		return nil, domain.NewNotFoundError("no expenses found for this user", "EXPENSES_NOT_FOUND",
			[]domain.DetailEntry{{"user_id": userId}})
	}

	return expenses, nil
}

// GetExpense returns the expense with the given id.
func (m *Manager) GetExpense(ctx context.Context, id domain.ExpenseIdentifier) (*domain.Expense, error) {
	expense, err := m.db.GetExpense(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, expenseNotFound()
		}
		return nil, err
	}

	return expense, nil
}

// UpdateExpense applies a partial update to the expense with the given id.
func (m *Manager) UpdateExpense(
	ctx context.Context,
	id domain.ExpenseIdentifier,
	patch domain.ExpensePatch,
) (*domain.Expense, error) {
	updated, err := m.db.SaveExpense(ctx, id, func(e *domain.Expense) (*domain.Expense, error) {
		patch.ApplyTo(e)
		return e, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, expenseNotFound()
		}
		return nil, err
	}

	slog.InfoContext(ctx, "expense updated", "expense", updated.Identifier)
	m.bus.Publish(app.TopicExpenseUpdated, *updated)

	return updated, nil
}

// UpdateExpenseStatus moves the expense with the given id into the given
// state. The status value must already be checked against the closed set.
func (m *Manager) UpdateExpenseStatus(
	ctx context.Context,
	id domain.ExpenseIdentifier,
	status domain.ExpenseStatus,
) (*domain.Expense, error) {
	updated, err := m.db.SaveExpense(ctx, id, func(e *domain.Expense) (*domain.Expense, error) {
		e.Status = status
		return e, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, expenseNotFound()
		}
		return nil, err
	}

	slog.InfoContext(ctx, "expense status updated", "expense", updated.Identifier, "status", status)
	m.bus.Publish(app.TopicExpenseStatusChanged, *updated)

	return updated, nil
}

// DeleteExpense removes the expense with the given id. Deleting a missing
// expense yields a not-found error, repeated deletes behave the same way.
func (m *Manager) DeleteExpense(ctx context.Context, id domain.ExpenseIdentifier) error {
	existing, err := m.db.GetExpense(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return expenseNotFound()
		}
		return err
	}

	if err := m.db.DeleteExpense(ctx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "expense deleted", "expense", id, "user", existing.UserId)
	m.bus.Publish(app.TopicExpenseDeleted, *existing)

	return nil
}

func expenseNotFound() *domain.DomainError {
	return domain.NewNotFoundError("expense not found", "EXPENSE_NOT_FOUND",
		[]domain.DetailEntry{{"field": "expense_id", "reason": "no matching expense found"}})
}
