package domain

import "errors"

// Sentinel errors surfaced by the core. The HTTP layer maps each one to a
// deterministic status code.
var (
	// ErrIncompleteRequest signals a missing or blank required field.
	ErrIncompleteRequest = errors.New("incomplete request")

	// ErrInsufficientExperience signals the candidate does not meet the
	// minimum years of experience for the requested role.
	ErrInsufficientExperience = errors.New("insufficient experience")

	// ErrAgeOutOfRange signals the candidate's age falls outside the
	// bracket allowed for the requested role.
	ErrAgeOutOfRange = errors.New("age out of range")

	// ErrInvalidPhoneNumber signals the phone number is neither a +996
	// number nor exactly 13 characters long.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")

	ErrStaffNotFound = errors.New("staff member not found")
	ErrEmailTaken    = errors.New("email already registered")

	// ErrInvalidCredentials is returned on any login failure. It is
	// deliberately generic so callers cannot probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
