package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/restohub/staff-service/internal/core/domain"
	"github.com/restohub/staff-service/internal/core/ports"
)

// StaffService implements the staff lifecycle use cases on top of the
// repository, hasher, authenticator, and token issuer collaborators.
type StaffService struct {
	repo   ports.StaffRepository
	hasher ports.PasswordHasher
	authn  ports.Authenticator
	tokens ports.TokenIssuer
	audit  ports.AuditPublisher
	log    zerolog.Logger
}

func NewStaffService(
	repo ports.StaffRepository,
	hasher ports.PasswordHasher,
	authn ports.Authenticator,
	tokens ports.TokenIssuer,
	audit ports.AuditPublisher,
	log zerolog.Logger,
) *StaffService {
	return &StaffService{
		repo:   repo,
		hasher: hasher,
		authn:  authn,
		tokens: tokens,
		audit:  audit,
		log:    log,
	}
}

// Register validates the payload, hashes the password, and persists a new
// staff record. A session token is issued and logged but not returned;
// callers needing the token should Login afterwards.
func (s *StaffService) Register(ctx context.Context, input ports.RegisterStaffInput) (*ports.StaffSummary, error) {
	now := time.Now().UTC()
	role, err := ValidateRegistration(input, now)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	staff := &domain.Staff{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		DateOfBirth:  input.DateOfBirth,
		Email:        input.Email,
		PasswordHash: hash,
		PhoneNumber:  input.PhoneNumber,
		Role:         role,
		Experience:   input.Experience,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, staff)
	if err != nil {
		return nil, err
	}

	// The token is a registration side effect only; it never reaches the
	// response body.
	if token, err := s.tokens.Generate(created); err != nil {
		s.log.Warn().Err(err).Str("staff_id", created.ID).Msg("registration token not issued")
	} else {
		s.log.Debug().Str("staff_id", created.ID).Str("token", token).Msg("registration token issued")
	}

	s.log.Info().Str("staff_id", created.ID).Str("role", string(created.Role)).Msg("staff member registered")
	s.publish(created, domain.ActionRegistered)

	return summaryOf(created), nil
}

// Login exchanges credentials for a signed session token.
func (s *StaffService) Login(ctx context.Context, email, password string) (string, error) {
	if err := s.authn.Authenticate(ctx, email, password); err != nil {
		return "", err
	}

	// Defensive re-read: authentication succeeded, so the record should
	// exist unless it was deleted concurrently.
	staff, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Generate(staff)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("staff_id", staff.ID).Msg("staff member logged in")
	return token, nil
}

func (s *StaffService) GetByID(ctx context.Context, id string) (*ports.StaffSummary, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			return nil, fmt.Errorf("no staff member with id %s: %w", id, domain.ErrStaffNotFound)
		}
		return nil, err
	}
	return summaryOf(staff), nil
}

func (s *StaffService) ListAll(ctx context.Context) ([]ports.StaffSummary, error) {
	members, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.StaffSummary, 0, len(members))
	for _, m := range members {
		summaries = append(summaries, *summaryOf(m))
	}
	return summaries, nil
}

// Update overwrites every mutable field of an existing record. Validation is
// re-applied with the same rules as Register, and the password is re-hashed.
// The ID is never touched.
func (s *StaffService) Update(ctx context.Context, id string, input ports.RegisterStaffInput) (*ports.StaffSummary, error) {
	now := time.Now().UTC()
	role, err := ValidateRegistration(input, now)
	if err != nil {
		return nil, err
	}

	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			return nil, fmt.Errorf("no staff member with id %s: %w", id, domain.ErrStaffNotFound)
		}
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	staff.FirstName = input.FirstName
	staff.LastName = input.LastName
	staff.DateOfBirth = input.DateOfBirth
	staff.Email = input.Email
	staff.PasswordHash = hash
	staff.PhoneNumber = input.PhoneNumber
	staff.Role = role
	staff.Experience = input.Experience
	staff.UpdatedAt = now

	updated, err := s.repo.Update(ctx, staff)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("staff_id", updated.ID).Msg("staff member updated")
	s.publish(updated, domain.ActionUpdated)

	return summaryOf(updated), nil
}

// Delete removes the record and returns a confirmation naming the deleted
// member's email.
func (s *StaffService) Delete(ctx context.Context, id string) (string, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			return "", fmt.Errorf("no staff member with id %s: %w", id, domain.ErrStaffNotFound)
		}
		return "", err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}

	s.log.Info().Str("staff_id", id).Msg("staff member deleted")
	s.publish(staff, domain.ActionDeleted)

	return fmt.Sprintf("%s is deleted", staff.Email), nil
}

func (s *StaffService) publish(staff *domain.Staff, action domain.StaffEventAction) {
	if s.audit == nil {
		return
	}
	s.audit.Publish(domain.StaffEvent{
		StaffID:    staff.ID,
		Email:      staff.Email,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	})
}

func summaryOf(staff *domain.Staff) *ports.StaffSummary {
	return &ports.StaffSummary{
		ID:          staff.ID,
		FullName:    staff.FullName(),
		Age:         domain.AgeYears(staff.DateOfBirth, time.Now()),
		Email:       staff.Email,
		PhoneNumber: staff.PhoneNumber,
		Role:        string(staff.Role),
	}
}
