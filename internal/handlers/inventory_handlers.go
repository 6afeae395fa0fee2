package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InventoryHandlers handles inventory item and stock adjustment requests.
type InventoryHandlers struct {
	inventoryService services.InventoryService
	ledgerService    services.LedgerService
}

func NewInventoryHandlers(inventoryService services.InventoryService, ledgerService services.LedgerService) *InventoryHandlers {
	return &InventoryHandlers{inventoryService: inventoryService, ledgerService: ledgerService}
}

type CreateItemRequest struct {
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	UnitOfMeasure   string     `json:"unit_of_measure"`
	SKU             *string    `json:"sku"`
	UnitPrice       float64    `json:"unit_price"`
	TaxPercentage   float64    `json:"tax_percentage"`
	IncludeTax      bool       `json:"include_tax"`
	MinStock        float64    `json:"min_stock"`
	MaxStock        float64    `json:"max_stock"`
	InitialQuantity float64    `json:"initial_quantity"`
	SupplierID      *uuid.UUID `json:"supplier_id"`
}

func (h *InventoryHandlers) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, userID, err := identity(ctx)
	if err != nil {
		return err
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	item := &models.InventoryItem{
		BusinessID:    businessID,
		Name:          req.Name,
		Category:      req.Category,
		UnitOfMeasure: req.UnitOfMeasure,
		SKU:           req.SKU,
		UnitPrice:     req.UnitPrice,
		TaxPercentage: req.TaxPercentage,
		IncludeTax:    req.IncludeTax,
		MinStock:      req.MinStock,
		MaxStock:      req.MaxStock,
		SupplierID:    req.SupplierID,
	}
	created, err := h.inventoryService.CreateItem(ctx, item, req.InitialQuantity, userID)
	if err != nil {
		return domainError(err, "Failed to create inventory item")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *InventoryHandlers) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	itemID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.inventoryService.GetItem(ctx, businessID, itemID)
	if err != nil {
		return domainError(err, "Failed to load inventory item")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"item":      item,
		"low_stock": item.LowStock(),
	})
}

type UpdateItemRequest struct {
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	UnitOfMeasure string     `json:"unit_of_measure"`
	SKU           *string    `json:"sku"`
	UnitPrice     *float64   `json:"unit_price"`
	TaxPercentage *float64   `json:"tax_percentage"`
	IncludeTax    *bool      `json:"include_tax"`
	MinStock      *float64   `json:"min_stock"`
	MaxStock      *float64   `json:"max_stock"`
	SupplierID    *uuid.UUID `json:"supplier_id"`
}

func (h *InventoryHandlers) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	itemID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	existing, err := h.inventoryService.GetItem(ctx, businessID, itemID)
	if err != nil {
		return domainError(err, "Failed to load inventory item")
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Category != "" {
		existing.Category = req.Category
	}
	if req.UnitOfMeasure != "" {
		existing.UnitOfMeasure = req.UnitOfMeasure
	}
	if req.SKU != nil {
		existing.SKU = req.SKU
	}
	if req.UnitPrice != nil {
		existing.UnitPrice = *req.UnitPrice
	}
	if req.TaxPercentage != nil {
		existing.TaxPercentage = *req.TaxPercentage
	}
	if req.IncludeTax != nil {
		existing.IncludeTax = *req.IncludeTax
	}
	if req.MinStock != nil {
		existing.MinStock = *req.MinStock
	}
	if req.MaxStock != nil {
		existing.MaxStock = *req.MaxStock
	}
	if req.SupplierID != nil {
		existing.SupplierID = req.SupplierID
	}

	updated, err := h.inventoryService.UpdateItem(ctx, existing)
	if err != nil {
		return domainError(err, "Failed to update inventory item")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *InventoryHandlers) DeactivateItem(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	itemID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.inventoryService.DeactivateItem(ctx, businessID, itemID); err != nil {
		return domainError(err, "Failed to deactivate inventory item")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *InventoryHandlers) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	var filter models.InventoryItemFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	filter.Limit, filter.Offset = common.ValidatePaginationParams(filter.Limit, filter.Offset)

	items, err := h.inventoryService.ListItems(ctx, businessID, &filter)
	if err != nil {
		return domainError(err, "Failed to list inventory items")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// AdjustStockRequest is a signed manual correction.
type AdjustStockRequest struct {
	QuantityChange float64 `json:"quantity_change"`
	Reason         string  `json:"reason"`
}

func (h *InventoryHandlers) AdjustStock(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, userID, err := identity(ctx)
	if err != nil {
		return err
	}
	itemID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.QuantityChange == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity_change must be non-zero")
	}

	movement, err := h.ledgerService.AdjustStock(ctx, businessID, itemID, req.QuantityChange, req.Reason, userID)
	if err != nil {
		return domainError(err, "Failed to adjust stock")
	}
	return c.JSON(http.StatusCreated, movement)
}

func (h *InventoryHandlers) LowStockAlerts(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	items, err := h.ledgerService.LowStockAlerts(ctx, businessID)
	if err != nil {
		return domainError(err, "Failed to load low stock alerts")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": items,
		"count":  len(items),
	})
}
