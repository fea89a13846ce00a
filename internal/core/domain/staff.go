package domain

import "time"

// Role is the closed set of staff categories. Each role carries its own
// hiring rules (see Requirements).
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleChef   Role = "CHEF"
	RoleWaiter Role = "WAITER"
)

// ParseRole maps a wire-level role string to a Role. The second return
// value reports whether the string names a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleChef, RoleWaiter:
		return Role(s), true
	default:
		return "", false
	}
}

// RoleRequirements captures the hiring rules for a single role. A zero
// MaxAge means the role has no age bracket.
type RoleRequirements struct {
	MinExperience int
	MinAge        int
	MaxAge        int
}

// HasAgeBracket reports whether the role restricts candidate age.
func (r RoleRequirements) HasAgeBracket() bool {
	return r.MaxAge > 0
}

// roleRequirements is the rule table driving registration validation.
// Admins are exempt from experience and age checks.
var roleRequirements = map[Role]RoleRequirements{
	RoleAdmin:  {},
	RoleChef:   {MinExperience: 2, MinAge: 25, MaxAge: 44},
	RoleWaiter: {MinExperience: 1, MinAge: 18, MaxAge: 30},
}

// Requirements returns the hiring rules for the role.
func (r Role) Requirements() RoleRequirements {
	return roleRequirements[r]
}

// Staff is the persisted employee record.
type Staff struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhoneNumber  string    `json:"phone_number"`
	Role         Role      `json:"role"`
	Experience   int       `json:"experience"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName concatenates first and last name without a separator, matching
// the historical response format consumers already depend on.
func (s *Staff) FullName() string {
	return s.FirstName + s.LastName
}

// AgeYears computes age as a plain calendar-year difference. Whether the
// birthday has passed this year is intentionally ignored.
func AgeYears(dateOfBirth, now time.Time) int {
	return now.Year() - dateOfBirth.Year()
}
