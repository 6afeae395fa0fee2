package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransferHandlers handles cross-business inventory transfers.
type TransferHandlers struct {
	transferService services.TransferService
}

func NewTransferHandlers(transferService services.TransferService) *TransferHandlers {
	return &TransferHandlers{transferService: transferService}
}

type CreateTransferRequest struct {
	ToBusinessID uuid.UUID               `json:"to_business_id"`
	Notes        *string                 `json:"notes"`
	Items        []services.TransferLine `json:"items"`
}

func (h *TransferHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, userID, err := identity(ctx)
	if err != nil {
		return err
	}

	var req CreateTransferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.ToBusinessID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "to_business_id is required")
	}
	if len(req.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one item is required")
	}

	transfer, err := h.transferService.Create(ctx, businessID, req.ToBusinessID, userID, req.Notes, req.Items)
	if err != nil {
		return domainError(err, "Failed to create transfer")
	}
	return c.JSON(http.StatusCreated, transfer)
}

func (h *TransferHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	transferID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	transfer, err := h.transferService.Get(ctx, businessID, transferID)
	if err != nil {
		return domainError(err, "Failed to load transfer")
	}
	return c.JSON(http.StatusOK, transfer)
}

type ListTransfersRequest struct {
	Status    string `query:"status"`
	Direction string `query:"direction"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

func (h *TransferHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	var req ListTransfersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	transfers, err := h.transferService.List(ctx, businessID, req.Status, req.Direction, limit, offset)
	if err != nil {
		return domainError(err, "Failed to list transfers")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"transfers": transfers,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *TransferHandlers) Accept(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, userID, err := identity(ctx)
	if err != nil {
		return err
	}
	transferID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	transfer, err := h.transferService.Accept(ctx, businessID, transferID, userID)
	if err != nil {
		return domainError(err, "Failed to accept transfer")
	}
	return c.JSON(http.StatusOK, transfer)
}

func (h *TransferHandlers) Reject(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	transferID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	transfer, err := h.transferService.Reject(ctx, businessID, transferID)
	if err != nil {
		return domainError(err, "Failed to reject transfer")
	}
	return c.JSON(http.StatusOK, transfer)
}

func (h *TransferHandlers) Cancel(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	transferID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	transfer, err := h.transferService.Cancel(ctx, businessID, transferID)
	if err != nil {
		return domainError(err, "Failed to cancel transfer")
	}
	return c.JSON(http.StatusOK, transfer)
}
