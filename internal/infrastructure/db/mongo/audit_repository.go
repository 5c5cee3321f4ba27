package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/identik/identity-service/internal/core/domain"
	"github.com/identik/identity-service/internal/core/ports"
)

const auditCollection = "audit_entries"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates an AuditRepository over the audit collection.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// InsertEntry appends one account event to the audit trail.
func (r *AuditRepository) InsertEntry(ctx context.Context, entry *domain.AuditEntry) error {
	doc := bson.M{
		"user_id":     entry.UserID,
		"action":      string(entry.Action),
		"at":          entry.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if entry.RequestID != "" {
		doc["request_id"] = entry.RequestID
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

var _ ports.AuditRepository = (*AuditRepository)(nil)
