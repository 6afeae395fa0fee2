package handlers

import (
	"net/http"

	"restomart/internal/analytics"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers serves the aggregated back-office summary.
type DashboardHandlers struct {
	analyticsService analytics.Service
}

func NewDashboardHandlers(analyticsService analytics.Service) *DashboardHandlers {
	return &DashboardHandlers{analyticsService: analyticsService}
}

func (h *DashboardHandlers) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	summary, err := h.analyticsService.Summary(ctx, businessID)
	if err != nil {
		return domainError(err, "Failed to load dashboard summary")
	}
	return c.JSON(http.StatusOK, summary)
}
