package ports

import (
	"context"

	"github.com/identik/identity-service/internal/core/domain"
)

// AuditRepository persists account events to the audit trail.
type AuditRepository interface {
	InsertEntry(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditRecorder processes audit entries dequeued by the dispatcher.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// AuditSink accepts audit entries from the request path. Implementations must
// not block the caller beyond a bounded buffer; audit is never on the
// critical path of an authentication decision.
type AuditSink interface {
	Enqueue(entry domain.AuditEntry)
}
