package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// staffRequest is the payload for both registration and update. Structural
// format checks (email shape, date format, role spelling) run at the
// transport edge; presence and the role-specific hiring rules are enforced
// by the core validator so its error taxonomy stays authoritative.
type staffRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Email       string `json:"email"         validate:"omitempty,email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"          validate:"omitempty,oneof=ADMIN CHEF WAITER"`
	Experience  int    `json:"experience"`
}

type staffResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Age         int    `json:"age"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

type deleteStaffResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type logoutResponse struct {
	Message string `json:"message"`
}
