package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/identik/identity-service/internal/api/metrics"
	"github.com/identik/identity-service/internal/core/domain"
	"github.com/identik/identity-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditRecorder persisting entries through repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditRecorder {
	return &auditService{repo: repo, log: log}
}

// Record persists a single audit entry. Failures are reported to the caller
// (the dispatcher logs and drops them); the audit trail never blocks or fails
// an account operation.
func (s *auditService) Record(ctx context.Context, entry domain.AuditEntry) error {
	if err := s.repo.InsertEntry(ctx, &entry); err != nil {
		metrics.AuditEntriesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("record audit entry: %w", err)
	}

	metrics.AuditEntriesTotal.WithLabelValues("ok").Inc()
	s.log.Debug().
		Str("user_id", entry.UserID).
		Str("action", string(entry.Action)).
		Msg("audit entry recorded")
	return nil
}
