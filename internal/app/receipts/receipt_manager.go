package receipts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/tkrause/expense-portal/internal/app"
	"github.com/tkrause/expense-portal/internal/config"
	"github.com/tkrause/expense-portal/internal/domain"
)

const uploadKind = "receipts"

// Upload describes a single uploaded receipt file as provided by the
// multipart form parser.
type Upload struct {
	FileName  string
	MimeType  string
	SizeBytes int64
	Content   io.Reader
}

type Manager struct {
	cfg *config.UploadConfig
	bus EventBus

	db    DatabaseRepo
	files FileRepo
}

func NewManager(cfg *config.UploadConfig, bus EventBus, db DatabaseRepo, files FileRepo) *Manager {
	return &Manager{
		cfg: cfg,
		bus: bus,

		db:    db,
		files: files,
	}
}

// StoreReceipt writes the uploaded file to durable storage and records its
// metadata for the given expense. The referenced expense must exist and the
// file type must be on the allow-list.
func (m *Manager) StoreReceipt(
	ctx context.Context,
	expenseId domain.ExpenseIdentifier,
	upload Upload,
) (*domain.Receipt, error) {
	if _, err := m.db.GetExpense(ctx, expenseId); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("expense not found", "EXPENSE_NOT_FOUND",
				[]domain.DetailEntry{{"field": "expense_id", "reason": "no matching expense found"}})
		}
		return nil, err
	}

	if !slices.Contains(m.cfg.AllowedTypes, upload.MimeType) {
		return nil, domain.NewInvalidReceipt([]domain.DetailEntry{{
			"field":   "file",
			"code":    "INVALID_FILE_TYPE",
			"message": "only images or PDFs are allowed",
			"value":   upload.MimeType,
		}})
	}

	storedPath, err := m.files.StoreUpload(uploadKind, upload.FileName, upload.Content)
	if err != nil {
		return nil, err
	}

	receipt := &domain.Receipt{
		Identifier: domain.ReceiptIdentifier(uuid.New().String()),
		ExpenseId:  expenseId,
		FileName:   upload.FileName,
		FilePath:   storedPath,
		MimeType:   upload.MimeType,
		SizeBytes:  upload.SizeBytes,
	}

	created, err := m.db.CreateReceipt(ctx, receipt)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "receipt stored",
		"receipt", created.Identifier, "expense", expenseId, "size", created.SizeBytes)
	m.bus.Publish(app.TopicReceiptStored, *created)

	return created, nil
}

// GetExpenseReceipts returns all receipts of the given expense.
// An empty result is treated as absence and yields a not-found error.
func (m *Manager) GetExpenseReceipts(ctx context.Context, expenseId domain.ExpenseIdentifier) (
	[]domain.Receipt,
	error,
) {
	receipts, err := m.db.GetExpenseReceipts(ctx, expenseId)
	if err != nil {
		return nil, err
	}

	if len(receipts) == 0 {
		return nil, receiptsNotFound(expenseId)
	}

	return receipts, nil
}

// DeleteExpenseReceipts removes all receipt records of the given expense.
// The stored files are left in place, their cleanup is not handled here.
func (m *Manager) DeleteExpenseReceipts(ctx context.Context, expenseId domain.ExpenseIdentifier) error {
	receipts, err := m.db.GetExpenseReceipts(ctx, expenseId)
	if err != nil {
		return err
	}

	if len(receipts) == 0 {
		return receiptsNotFound(expenseId)
	}

	if err := m.db.DeleteExpenseReceipts(ctx, expenseId); err != nil {
		return err
	}

	slog.InfoContext(ctx, "receipts deleted", "expense", expenseId, "count", len(receipts))
	m.bus.Publish(app.TopicReceiptsDeleted, expenseId)

	return nil
}

func receiptsNotFound(expenseId domain.ExpenseIdentifier) *domain.DomainError {
	return domain.NewNotFoundError("no receipts found for this expense", "RECEIPTS_NOT_FOUND",
		[]domain.DetailEntry{{"expense_id": expenseId}})
}
