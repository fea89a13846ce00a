package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/restohub/staff-service/internal/core/domain"
)

const auditCollection = "staff_events"

// AuditRepository persists staff lifecycle events to the staff_events
// collection. Entries are append-only.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) Record(ctx context.Context, event *domain.StaffEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"staff_id":    event.StaffID,
		"email":       event.Email,
		"action":      string(event.Action),
		"occurred_at": event.OccurredAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("record staff event: %w", err)
	}
	return nil
}
