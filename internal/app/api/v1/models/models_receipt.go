package models

import (
	"github.com/tkrause/expense-portal/internal/domain"
)

// Receipt represents an uploaded receipt in API responses.
// The file contents are not included, only the stored metadata.
type Receipt struct {
	Id        string `json:"id"`
	ExpenseId string `json:"expense_id"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	CreatedAt string `json:"created_at"`
}

func NewReceipt(src *domain.Receipt) *Receipt {
	return &Receipt{
		Id:        string(src.Identifier),
		ExpenseId: string(src.ExpenseId),
		FileName:  src.FileName,
		MimeType:  src.MimeType,
		SizeBytes: src.SizeBytes,
		CreatedAt: formatTime(src.CreatedAt),
	}
}

func NewReceipts(src []domain.Receipt) []Receipt {
	results := make([]Receipt, len(src))
	for i := range src {
		results[i] = *NewReceipt(&src[i])
	}

	return results
}
