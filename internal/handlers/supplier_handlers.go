package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/labstack/echo/v4"
)

// SupplierHandlers handles supplier directory requests.
type SupplierHandlers struct {
	supplierService services.SupplierService
}

func NewSupplierHandlers(supplierService services.SupplierService) *SupplierHandlers {
	return &SupplierHandlers{supplierService: supplierService}
}

type SupplierRequest struct {
	Name                string  `json:"name"`
	SupplierType        *string `json:"supplier_type"`
	TaxID               *string `json:"tax_id"`
	LegalRepresentative *string `json:"legal_representative"`
	Phone               *string `json:"phone"`
	Email               *string `json:"email"`
	Address             *string `json:"address"`
}

func (h *SupplierHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	supplier := &models.Supplier{
		BusinessID:          businessID,
		Name:                req.Name,
		SupplierType:        req.SupplierType,
		TaxID:               req.TaxID,
		LegalRepresentative: req.LegalRepresentative,
		Phone:               req.Phone,
		Email:               req.Email,
		Address:             req.Address,
	}
	created, err := h.supplierService.Create(ctx, supplier)
	if err != nil {
		return domainError(err, "Failed to create supplier")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *SupplierHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	supplierID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	supplier, err := h.supplierService.Get(ctx, businessID, supplierID)
	if err != nil {
		return domainError(err, "Failed to load supplier")
	}
	return c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	supplierID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	existing, err := h.supplierService.Get(ctx, businessID, supplierID)
	if err != nil {
		return domainError(err, "Failed to load supplier")
	}

	existing.SupplierType = req.SupplierType
	existing.TaxID = req.TaxID
	existing.LegalRepresentative = req.LegalRepresentative
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Address = req.Address
	if req.Name != "" {
		existing.Name = req.Name
	}

	updated, err := h.supplierService.Update(ctx, existing)
	if err != nil {
		return domainError(err, "Failed to update supplier")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *SupplierHandlers) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	supplierID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.supplierService.Deactivate(ctx, businessID, supplierID); err != nil {
		return domainError(err, "Failed to deactivate supplier")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SupplierHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	supplierID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.supplierService.Delete(ctx, businessID, supplierID); err != nil {
		return domainError(err, "Failed to delete supplier")
	}
	return c.NoContent(http.StatusNoContent)
}

type ListSuppliersRequest struct {
	ActiveOnly bool `query:"active_only"`
	Limit      int  `query:"limit"`
	Offset     int  `query:"offset"`
}

func (h *SupplierHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	var req ListSuppliersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	suppliers, err := h.supplierService.List(ctx, businessID, req.ActiveOnly, limit, offset)
	if err != nil {
		return domainError(err, "Failed to list suppliers")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"limit":     limit,
		"offset":    offset,
	})
}
