package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/restohub/staff-service/internal/core/domain"
	"github.com/restohub/staff-service/internal/core/ports"
)

// ValidateRegistration checks a registration (or update) payload against the
// structural constraints and the role-specific hiring rules. The first
// failing rule wins. On success it returns the parsed role; the input itself
// needs no normalisation.
//
// The age brackets deliberately resolve an ambiguity in the legacy rules:
// chefs must be between 25 and 44 inclusive, waiters between 18 and 30
// inclusive, and a candidate outside the bracket is rejected. Age is the
// plain calendar-year difference.
func ValidateRegistration(input ports.RegisterStaffInput, now time.Time) (domain.Role, error) {
	if err := checkComplete(input, now); err != nil {
		return "", err
	}

	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return "", fmt.Errorf("%w: unknown role %q", domain.ErrIncompleteRequest, input.Role)
	}

	req := role.Requirements()
	if input.Experience < req.MinExperience {
		return "", fmt.Errorf("%w: %s must have experience >= %d",
			domain.ErrInsufficientExperience, strings.ToLower(string(role)), req.MinExperience)
	}
	if req.HasAgeBracket() {
		age := domain.AgeYears(input.DateOfBirth, now)
		if age < req.MinAge || age > req.MaxAge {
			return "", fmt.Errorf("%w: %s must be between %d and %d years old",
				domain.ErrAgeOutOfRange, strings.ToLower(string(role)), req.MinAge, req.MaxAge)
		}
	}

	if !validPhoneNumber(input.PhoneNumber) {
		return "", fmt.Errorf("%w: must start with +996 or be exactly 13 characters",
			domain.ErrInvalidPhoneNumber)
	}

	return role, nil
}

func checkComplete(input ports.RegisterStaffInput, now time.Time) error {
	switch {
	case strings.TrimSpace(input.FirstName) == "":
		return fmt.Errorf("%w: first name is blank", domain.ErrIncompleteRequest)
	case strings.TrimSpace(input.LastName) == "":
		return fmt.Errorf("%w: last name is blank", domain.ErrIncompleteRequest)
	case input.DateOfBirth.IsZero():
		return fmt.Errorf("%w: date of birth is missing", domain.ErrIncompleteRequest)
	case !input.DateOfBirth.Before(now):
		return fmt.Errorf("%w: date of birth must be in the past", domain.ErrIncompleteRequest)
	case strings.TrimSpace(input.Email) == "":
		return fmt.Errorf("%w: email is blank", domain.ErrIncompleteRequest)
	case strings.TrimSpace(input.Password) == "":
		return fmt.Errorf("%w: password is blank", domain.ErrIncompleteRequest)
	case strings.TrimSpace(input.PhoneNumber) == "":
		return fmt.Errorf("%w: phone number is blank", domain.ErrIncompleteRequest)
	case strings.TrimSpace(input.Role) == "":
		return fmt.Errorf("%w: role is missing", domain.ErrIncompleteRequest)
	case input.Experience < 0:
		return fmt.Errorf("%w: experience must be >= 0", domain.ErrIncompleteRequest)
	}
	return nil
}

// validPhoneNumber accepts numbers with the national +996 prefix, or any
// string of exactly 13 characters.
func validPhoneNumber(phone string) bool {
	return strings.HasPrefix(phone, "+996") || len(phone) == 13
}
