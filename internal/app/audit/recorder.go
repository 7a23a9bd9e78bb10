package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tkrause/expense-portal/internal/app"
	"github.com/tkrause/expense-portal/internal/config"
	"github.com/tkrause/expense-portal/internal/domain"
)

// Recorder listens for domain events on the message bus and writes one audit
// entry per event. Recording is disabled through the statistics config.
type Recorder struct {
	cfg *config.Config
	bus EventBus

	db DatabaseRepo
}

func NewAuditRecorder(cfg *config.Config, bus EventBus, db DatabaseRepo) (*Recorder, error) {
	r := &Recorder{
		cfg: cfg,
		bus: bus,

		db: db,
	}

	if err := r.connectToMessageBus(); err != nil {
		return nil, fmt.Errorf("failed to setup message bus: %w", err)
	}

	return r, nil
}

func (r *Recorder) connectToMessageBus() error {
	if !r.cfg.Statistics.CollectAuditData {
		return nil // nothing to do
	}

	if err := r.bus.Subscribe(app.TopicCategoryCreated, r.categoryCreatedEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicCategoryCreated, err)
	}
	if err := r.bus.Subscribe(app.TopicCategoryDeleted, r.categoryDeletedEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicCategoryDeleted, err)
	}
	if err := r.bus.Subscribe(app.TopicExpenseCreated, r.expenseCreatedEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicExpenseCreated, err)
	}
	if err := r.bus.Subscribe(app.TopicExpenseStatusChanged, r.expenseStatusChangedEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicExpenseStatusChanged, err)
	}
	if err := r.bus.Subscribe(app.TopicExpenseDeleted, r.expenseDeletedEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicExpenseDeleted, err)
	}
	if err := r.bus.Subscribe(app.TopicReceiptStored, r.receiptStoredEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicReceiptStored, err)
	}

	return nil
}

func (r *Recorder) categoryCreatedEvent(category domain.Category) {
	r.record("categoryCreatedEvent", domain.AuditSeverityLevelLow,
		fmt.Sprintf("category %s created for company %s", category.Identifier, category.CompanyId))
}

func (r *Recorder) categoryDeletedEvent(category domain.Category) {
	r.record("categoryDeletedEvent", domain.AuditSeverityLevelMedium,
		fmt.Sprintf("category %s deleted", category.Identifier))
}

func (r *Recorder) expenseCreatedEvent(expense domain.Expense) {
	r.record("expenseCreatedEvent", domain.AuditSeverityLevelLow,
		fmt.Sprintf("expense %s created by user %s", expense.Identifier, expense.UserId))
}

func (r *Recorder) expenseStatusChangedEvent(expense domain.Expense) {
	r.record("expenseStatusChangedEvent", domain.AuditSeverityLevelMedium,
		fmt.Sprintf("expense %s moved to status %s", expense.Identifier, expense.Status))
}

func (r *Recorder) expenseDeletedEvent(expense domain.Expense) {
	r.record("expenseDeletedEvent", domain.AuditSeverityLevelMedium,
		fmt.Sprintf("expense %s deleted", expense.Identifier))
}

func (r *Recorder) receiptStoredEvent(receipt domain.Receipt) {
	r.record("receiptStoredEvent", domain.AuditSeverityLevelLow,
		fmt.Sprintf("receipt %s stored for expense %s", receipt.Identifier, receipt.ExpenseId))
}

func (r *Recorder) record(origin string, severity domain.AuditSeverityLevel, message string) {
	err := r.db.SaveAuditEntry(context.Background(), &domain.AuditEntry{
		CreatedAt: time.Now(),
		Severity:  severity,
		Origin:    origin,
		Message:   message,
	})
	if err != nil {
		slog.Error("failed to create audit entry", "origin", origin, "error", err)
	}
}
