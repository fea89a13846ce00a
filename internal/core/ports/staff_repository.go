package ports

import (
	"context"

	"github.com/restohub/staff-service/internal/core/domain"
)

// StaffRepository defines persistence operations for staff records.
// Implementations enforce email uniqueness on Create and Update, surfacing
// violations as domain.ErrEmailTaken.
type StaffRepository interface {
	// Create persists a new record and returns it with the store-assigned ID.
	Create(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	FindByID(ctx context.Context, id string) (*domain.Staff, error)
	FindByEmail(ctx context.Context, email string) (*domain.Staff, error)
	Update(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	Delete(ctx context.Context, id string) error
	// ListAll returns every record in insertion order.
	ListAll(ctx context.Context) ([]*domain.Staff, error)
}
