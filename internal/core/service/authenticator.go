package service

import (
	"context"
	"errors"

	"github.com/restohub/staff-service/internal/core/domain"
	"github.com/restohub/staff-service/internal/core/ports"
)

// CredentialAuthenticator verifies an email/password pair against the
// stored, hashed credential. Every failure collapses to
// domain.ErrInvalidCredentials so an attacker cannot tell an unknown email
// from a wrong password.
type CredentialAuthenticator struct {
	repo   ports.StaffRepository
	hasher ports.PasswordHasher
}

func NewCredentialAuthenticator(repo ports.StaffRepository, hasher ports.PasswordHasher) *CredentialAuthenticator {
	return &CredentialAuthenticator{repo: repo, hasher: hasher}
}

func (a *CredentialAuthenticator) Authenticate(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	staff, err := a.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	if !a.hasher.Verify(password, staff.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	return nil
}
