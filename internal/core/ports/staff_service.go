package ports

import (
	"context"
	"time"

	"github.com/restohub/staff-service/internal/core/domain"
)

// RegisterStaffInput is the DTO passed from the transport layer when
// registering or updating a staff member. Password is plaintext here and is
// hashed before anything touches storage.
type RegisterStaffInput struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Email       string
	Password    string
	PhoneNumber string
	Role        string
	Experience  int
}

// StaffSummary is the public view of a staff record. FullName is the first
// and last name concatenated without a separator, and Age is the plain
// calendar-year difference; both formats are load-bearing for existing
// consumers. It never carries password material.
type StaffSummary struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Age         int    `json:"age"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

// StaffService defines the staff lifecycle use cases.
type StaffService interface {
	// Register validates the input, hashes the password, and persists a new
	// record. A session token is issued as a side effect but not returned;
	// callers needing the token should Login afterwards.
	Register(ctx context.Context, input RegisterStaffInput) (*StaffSummary, error)
	// Login exchanges credentials for a signed session token.
	Login(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id string) (*StaffSummary, error)
	ListAll(ctx context.Context) ([]StaffSummary, error)
	// Update overwrites every mutable field, re-hashing the password and
	// re-applying registration validation.
	Update(ctx context.Context, id string, input RegisterStaffInput) (*StaffSummary, error)
	// Delete removes the record and returns a human-readable confirmation
	// containing the deleted member's email.
	Delete(ctx context.Context, id string) (string, error)
}

// AuditPublisher hands a staff lifecycle event to the asynchronous audit
// pipeline. Publishing never blocks the calling use case beyond the worker
// channel buffer.
type AuditPublisher interface {
	Publish(event domain.StaffEvent)
}
