package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/tkrause/expense-portal/internal/app/api/core/request"
	"github.com/tkrause/expense-portal/internal/app/api/core/respond"
	"github.com/tkrause/expense-portal/internal/app/api/v1/models"
	"github.com/tkrause/expense-portal/internal/app/receipts"
	"github.com/tkrause/expense-portal/internal/config"
	"github.com/tkrause/expense-portal/internal/domain"
)

type ReceiptService interface {
	StoreReceipt(ctx context.Context, expenseId domain.ExpenseIdentifier, upload receipts.Upload) (*domain.Receipt, error)
	GetExpenseReceipts(ctx context.Context, expenseId domain.ExpenseIdentifier) ([]domain.Receipt, error)
	DeleteExpenseReceipts(ctx context.Context, expenseId domain.ExpenseIdentifier) error
}

type ReceiptEndpoint struct {
	cfg      *config.UploadConfig
	receipts ReceiptService
}

func NewReceiptEndpoint(cfg *config.UploadConfig, receiptService ReceiptService) *ReceiptEndpoint {
	return &ReceiptEndpoint{
		cfg:      cfg,
		receipts: receiptService,
	}
}

func (e ReceiptEndpoint) GetName() string {
	return "ReceiptEndpoint"
}

func (e ReceiptEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/expenses")

	apiGroup.HandleFunc("POST /{expense_id}/receipts", e.handleUploadPost())
	apiGroup.HandleFunc("GET /{expense_id}/receipts", e.handleListGet())
	apiGroup.HandleFunc("DELETE /{expense_id}/receipts", e.handleDelete())
}

// handleUploadPost stores an uploaded receipt file for an expense. The file
// is expected in the "file" field of a multipart form and must stay below
// the configured size limit.
func (e ReceiptEndpoint) handleUploadPost() http.HandlerFunc {
	maxMemory := int64(e.cfg.MaxSizeMB) * 1024 * 1024

	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "expense_id")

		if err := r.ParseMultipartForm(maxMemory); err != nil {
			SendError(w, r, domain.NewInvalidReceipt([]domain.DetailEntry{
				{"field": "file", "reason": "request is not a valid multipart form"},
			}))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			SendError(w, r, domain.NewInvalidReceipt([]domain.DetailEntry{
				{"field": "file", "reason": "a receipt file is required"},
			}))
			return
		}
		defer func() {
			_ = file.Close()
		}()

		if sizeMB := float64(header.Size) / (1024 * 1024); sizeMB > float64(e.cfg.MaxSizeMB) {
			SendError(w, r, domain.NewInvalidReceipt([]domain.DetailEntry{{
				"field":  "file",
				"reason": fmt.Sprintf("file exceeds the maximum size of %d MB", e.cfg.MaxSizeMB),
			}}))
			return
		}

		upload := receipts.Upload{
			FileName:  header.Filename,
			MimeType:  header.Header.Get("Content-Type"),
			SizeBytes: header.Size,
			Content:   file,
		}

		receipt, err := e.receipts.StoreReceipt(r.Context(), domain.ExpenseIdentifier(id), upload)
		if err != nil {
			SendError(w, r, domain.WrapError(err, http.StatusInternalServerError,
				"failed to upload receipt", "UPLOAD_RECEIPT_FAILED"))
			return
		}

		respond.JSON(w, http.StatusCreated,
			models.NewResponse(http.StatusCreated, models.NewReceipt(receipt), "Receipt uploaded successfully"))
	}
}

// handleListGet returns the stored receipts of an expense.
func (e ReceiptEndpoint) handleListGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "expense_id")

		receiptList, err := e.receipts.GetExpenseReceipts(r.Context(), domain.ExpenseIdentifier(id))
		if err != nil {
			SendError(w, r, domain.WrapError(err, http.StatusInternalServerError,
				"failed to load receipts", "GET_RECEIPTS_ERROR"))
			return
		}

		respond.JSON(w, http.StatusOK,
			models.NewResponse(http.StatusOK, models.NewReceipts(receiptList), ""))
	}
}

// handleDelete removes all receipt records of an expense.
func (e ReceiptEndpoint) handleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "expense_id")

		if err := e.receipts.DeleteExpenseReceipts(r.Context(), domain.ExpenseIdentifier(id)); err != nil {
			SendError(w, r, domain.WrapError(err, http.StatusInternalServerError,
				"failed to delete receipts", "DELETE_RECEIPTS_ERROR"))
			return
		}

		respond.JSON(w, http.StatusOK,
			models.NewResponse(http.StatusOK, map[string]any{"expense_id": id}, "Receipts deleted successfully"))
	}
}
