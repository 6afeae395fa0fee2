package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/services"

	"github.com/labstack/echo/v4"
)

// MovementHandlers exposes the read-only movement log and the revert action.
type MovementHandlers struct {
	ledgerService services.LedgerService
}

func NewMovementHandlers(ledgerService services.LedgerService) *MovementHandlers {
	return &MovementHandlers{ledgerService: ledgerService}
}

type ListMovementsRequest struct {
	Type   string `query:"type"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (h *MovementHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	var req ListMovementsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	movements, err := h.ledgerService.ListMovements(ctx, businessID, req.Type, limit, offset)
	if err != nil {
		return domainError(err, "Failed to list movements")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"movements": movements,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *MovementHandlers) ListByItem(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	itemID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req ListMovementsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	movements, err := h.ledgerService.ListItemMovements(ctx, businessID, itemID, limit, offset)
	if err != nil {
		return domainError(err, "Failed to list item movements")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"movements": movements,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *MovementHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	movementID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movement, err := h.ledgerService.GetMovement(ctx, businessID, movementID)
	if err != nil {
		return domainError(err, "Failed to load movement")
	}
	return c.JSON(http.StatusOK, movement)
}

type RevertMovementRequest struct {
	Reason string `json:"reason"`
}

func (h *MovementHandlers) Revert(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, userID, err := identity(ctx)
	if err != nil {
		return err
	}
	movementID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// The body is optional; an omitted reason gets a generated one.
	var req RevertMovementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	compensation, err := h.ledgerService.RevertMovement(ctx, businessID, movementID, userID, req.Reason)
	if err != nil {
		return domainError(err, "Failed to revert movement")
	}
	return c.JSON(http.StatusCreated, compensation)
}
