package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/restohub/staff-service/internal/api/metrics"
	"github.com/restohub/staff-service/internal/core/domain"
	"github.com/restohub/staff-service/internal/core/ports"
)

// StaffHandler handles HTTP requests for staff lifecycle operations.
type StaffHandler struct {
	service ports.StaffService
}

func NewStaffHandler(service ports.StaffService) *StaffHandler {
	return &StaffHandler{service: service}
}

// Register handles POST /v1/staff.
//
// @Summary      Register a new staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        body  body      staffRequest  true  "Staff member details"
// @Success      201   {object}  staffResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/staff [post]
func (h *StaffHandler) Register(c echo.Context) error {
	input, err := bindStaffRequest(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Register(c.Request().Context(), *input)
	if err != nil {
		if reason := rejectionReason(err); reason != "" {
			metrics.ValidationRejectionsTotal.WithLabelValues(reason).Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(summary.Role).Inc()
	return c.JSON(http.StatusCreated, toStaffResponse(summary))
}

// Get handles GET /v1/staff/:id.
//
// @Summary      Get a staff member by id
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Staff id"
// @Success      200  {object}  staffResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/staff/{id} [get]
func (h *StaffHandler) Get(c echo.Context) error {
	summary, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStaffResponse(summary))
}

// List handles GET /v1/staff.
//
// @Summary      List all staff members
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   staffResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/staff [get]
func (h *StaffHandler) List(c echo.Context) error {
	summaries, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]staffResponse, 0, len(summaries))
	for i := range summaries {
		resp = append(resp, toStaffResponse(&summaries[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PUT /v1/staff/:id.
//
// @Summary      Update a staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Staff id"
// @Param        body  body      staffRequest  true  "Replacement staff details"
// @Success      200   {object}  staffResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/staff/{id} [put]
func (h *StaffHandler) Update(c echo.Context) error {
	input, err := bindStaffRequest(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Update(c.Request().Context(), c.Param("id"), *input)
	if err != nil {
		if reason := rejectionReason(err); reason != "" {
			metrics.ValidationRejectionsTotal.WithLabelValues(reason).Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, toStaffResponse(summary))
}

// Delete handles DELETE /v1/staff/:id.
//
// @Summary      Delete a staff member
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Staff id"
// @Success      200  {object}  deleteStaffResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/staff/{id} [delete]
func (h *StaffHandler) Delete(c echo.Context) error {
	confirmation, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteStaffResponse{Message: confirmation})
}

// bindStaffRequest binds and format-checks the shared register/update
// payload, converting it to the service input DTO.
func bindStaffRequest(c echo.Context) (*ports.RegisterStaffInput, error) {
	var req staffRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		}
		dob = parsed
	}

	return &ports.RegisterStaffInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		Experience:  req.Experience,
	}, nil
}

func toStaffResponse(s *ports.StaffSummary) staffResponse {
	return staffResponse{
		ID:          s.ID,
		FullName:    s.FullName,
		Age:         s.Age,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
		Role:        s.Role,
	}
}

// rejectionReason classifies a validation error for the rejection counter.
// Returns "" for errors that are not validation rejections.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrIncompleteRequest):
		return "incomplete_request"
	case errors.Is(err, domain.ErrInsufficientExperience):
		return "insufficient_experience"
	case errors.Is(err, domain.ErrAgeOutOfRange):
		return "age_out_of_range"
	case errors.Is(err, domain.ErrInvalidPhoneNumber):
		return "invalid_phone_number"
	default:
		return ""
	}
}
