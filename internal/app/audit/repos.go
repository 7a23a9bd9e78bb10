package audit

import (
	"context"

	"github.com/tkrause/expense-portal/internal/domain"
)

type DatabaseRepo interface {
	// SaveAuditEntry persists a single audit entry.
	SaveAuditEntry(ctx context.Context, entry *domain.AuditEntry) error
}

type EventBus interface {
	// Subscribe registers a handler function for the given topic.
	Subscribe(topic string, fn any) error
}
