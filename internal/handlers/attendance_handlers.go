package handlers

import (
	"net/http"

	"restomart/internal/services"

	"github.com/labstack/echo/v4"
)

// AttendanceHandlers handles shift check-in and check-out.
type AttendanceHandlers struct {
	attendanceService services.AttendanceService
}

func NewAttendanceHandlers(attendanceService services.AttendanceService) *AttendanceHandlers {
	return &AttendanceHandlers{attendanceService: attendanceService}
}

func (h *AttendanceHandlers) CheckIn(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, userID, err := identity(ctx)
	if err != nil {
		return err
	}

	record, err := h.attendanceService.CheckIn(ctx, businessID, userID)
	if err != nil {
		return domainError(err, "Failed to check in")
	}
	return c.JSON(http.StatusCreated, record)
}

func (h *AttendanceHandlers) CheckOut(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, userID, err := identity(ctx)
	if err != nil {
		return err
	}

	record, err := h.attendanceService.CheckOut(ctx, businessID, userID)
	if err != nil {
		return domainError(err, "Failed to check out")
	}
	return c.JSON(http.StatusOK, record)
}
