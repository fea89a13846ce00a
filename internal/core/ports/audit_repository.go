package ports

import (
	"context"

	"github.com/restohub/staff-service/internal/core/domain"
)

// AuditRecorder persists staff lifecycle events to the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, event *domain.StaffEvent) error
}
