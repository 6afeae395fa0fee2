package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/labstack/echo/v4"
)

// EmployeeHandlers handles employee account management requests.
type EmployeeHandlers struct {
	employeeService services.EmployeeService
}

func NewEmployeeHandlers(employeeService services.EmployeeService) *EmployeeHandlers {
	return &EmployeeHandlers{employeeService: employeeService}
}

type CreateEmployeeRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *EmployeeHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	actorRole, ok := common.GetRoleFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing role")
	}

	var req CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.employeeService.Create(ctx, businessID, actorRole, req.FullName, req.Email, req.Password, req.Role)
	if err != nil {
		return domainError(err, "Failed to create employee")
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *EmployeeHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	employeeID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.employeeService.Get(ctx, businessID, employeeID)
	if err != nil {
		return domainError(err, "Failed to load employee")
	}
	return c.JSON(http.StatusOK, user)
}

type UpdateEmployeeRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

func (h *EmployeeHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	actorRole, ok := common.GetRoleFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing role")
	}
	employeeID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	existing, err := h.employeeService.Get(ctx, businessID, employeeID)
	if err != nil {
		return domainError(err, "Failed to load employee")
	}

	user := &models.User{
		ID:         employeeID,
		BusinessID: businessID,
		Email:      existing.Email,
		FullName:   existing.FullName,
		Role:       existing.Role,
		IsActive:   existing.IsActive,
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	updated, err := h.employeeService.Update(ctx, actorRole, user)
	if err != nil {
		return domainError(err, "Failed to update employee")
	}
	return c.JSON(http.StatusOK, updated)
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (h *EmployeeHandlers) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	employeeID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.employeeService.ChangePassword(ctx, businessID, employeeID, req.NewPassword); err != nil {
		return domainError(err, "Failed to change password")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EmployeeHandlers) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	employeeID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.employeeService.Deactivate(ctx, businessID, employeeID); err != nil {
		return domainError(err, "Failed to deactivate employee")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EmployeeHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	employeeID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.employeeService.Delete(ctx, businessID, employeeID); err != nil {
		return domainError(err, "Failed to delete employee")
	}
	return c.NoContent(http.StatusNoContent)
}

type ListEmployeesRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *EmployeeHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	var req ListEmployeesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	users, err := h.employeeService.List(ctx, businessID, limit, offset)
	if err != nil {
		return domainError(err, "Failed to list employees")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"employees": users,
		"limit":     limit,
		"offset":    offset,
	})
}
