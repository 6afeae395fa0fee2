package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ModifierHandlers handles modifier groups, modifiers and assignments.
type ModifierHandlers struct {
	modifierService services.ModifierService
}

func NewModifierHandlers(modifierService services.ModifierService) *ModifierHandlers {
	return &ModifierHandlers{modifierService: modifierService}
}

type ModifierGroupRequest struct {
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	AllowMultiple bool    `json:"allow_multiple"`
	IsRequired    bool    `json:"is_required"`
	IsActive      *bool   `json:"is_active"`
}

func (h *ModifierHandlers) CreateGroup(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	var req ModifierGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	group := &models.ModifierGroup{
		BusinessID:    businessID,
		Name:          req.Name,
		Description:   req.Description,
		AllowMultiple: req.AllowMultiple,
		IsRequired:    req.IsRequired,
	}
	created, err := h.modifierService.CreateGroup(ctx, group)
	if err != nil {
		return domainError(err, "Failed to create modifier group")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ModifierHandlers) GetGroup(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	groupID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	group, err := h.modifierService.GetGroup(ctx, businessID, groupID)
	if err != nil {
		return domainError(err, "Failed to load modifier group")
	}
	return c.JSON(http.StatusOK, group)
}

func (h *ModifierHandlers) UpdateGroup(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	groupID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req ModifierGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	group := &models.ModifierGroup{
		ID:            groupID,
		BusinessID:    businessID,
		Name:          req.Name,
		Description:   req.Description,
		AllowMultiple: req.AllowMultiple,
		IsRequired:    req.IsRequired,
		IsActive:      true,
	}
	if req.IsActive != nil {
		group.IsActive = *req.IsActive
	}
	updated, err := h.modifierService.UpdateGroup(ctx, group)
	if err != nil {
		return domainError(err, "Failed to update modifier group")
	}
	return c.JSON(http.StatusOK, updated)
}

type ListGroupsRequest struct {
	ActiveOnly bool `query:"active_only"`
	Limit      int  `query:"limit"`
	Offset     int  `query:"offset"`
}

func (h *ModifierHandlers) ListGroups(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	var req ListGroupsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	groups, err := h.modifierService.ListGroups(ctx, businessID, req.ActiveOnly, limit, offset)
	if err != nil {
		return domainError(err, "Failed to list modifier groups")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"groups": groups,
		"limit":  limit,
		"offset": offset,
	})
}

type CreateModifierRequest struct {
	ModifierGroupID uuid.UUID                   `json:"modifier_group_id"`
	Name            string                      `json:"name"`
	Description     *string                     `json:"description"`
	PriceExtra      float64                     `json:"price_extra"`
	InventoryItems  []services.ModifierItemLine `json:"inventory_items"`
}

func (h *ModifierHandlers) CreateModifier(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	var req CreateModifierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.ModifierGroupID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "modifier_group_id is required")
	}

	modifier := &models.Modifier{
		ModifierGroupID: req.ModifierGroupID,
		Name:            req.Name,
		Description:     req.Description,
		PriceExtra:      req.PriceExtra,
	}
	created, err := h.modifierService.CreateModifier(ctx, businessID, modifier, req.InventoryItems)
	if err != nil {
		return domainError(err, "Failed to create modifier")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ModifierHandlers) GetModifier(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	modifierID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	modifier, err := h.modifierService.GetModifier(ctx, businessID, modifierID)
	if err != nil {
		return domainError(err, "Failed to load modifier")
	}
	return c.JSON(http.StatusOK, modifier)
}

type UpdateModifierRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	PriceExtra  *float64 `json:"price_extra"`
	IsActive    *bool    `json:"is_active"`
}

func (h *ModifierHandlers) UpdateModifier(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	modifierID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UpdateModifierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	// Full replace; the payload carries every mutable field.
	modifier := &models.Modifier{
		ID:          modifierID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.PriceExtra != nil {
		modifier.PriceExtra = *req.PriceExtra
	}
	if req.IsActive != nil {
		modifier.IsActive = *req.IsActive
	}
	updated, err := h.modifierService.UpdateModifier(ctx, businessID, modifier)
	if err != nil {
		return domainError(err, "Failed to update modifier")
	}
	return c.JSON(http.StatusOK, updated)
}

type ListModifiersRequest struct {
	ActiveOnly bool `query:"active_only"`
}

// ListModifiers lists the modifiers of the group in the path.
func (h *ModifierHandlers) ListModifiers(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	groupID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req ListModifiersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	modifiers, err := h.modifierService.ListByGroup(ctx, businessID, groupID, req.ActiveOnly)
	if err != nil {
		return domainError(err, "Failed to list modifiers")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"modifiers": modifiers})
}

type AssignModifierRequest struct {
	ModifierID uuid.UUID `json:"modifier_id"`
}

func (h *ModifierHandlers) Assign(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	productID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req AssignModifierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.ModifierID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "modifier_id is required")
	}

	if err := h.modifierService.Assign(ctx, businessID, productID, req.ModifierID); err != nil {
		return domainError(err, "Failed to assign modifier")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ModifierHandlers) Unassign(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	productID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	modifierID, err := common.ValidateUUIDParam(c, "modifierId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.modifierService.Unassign(ctx, businessID, productID, modifierID); err != nil {
		return domainError(err, "Failed to unassign modifier")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ModifierHandlers) ListByProduct(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	productID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	modifiers, err := h.modifierService.ListByProduct(ctx, businessID, productID)
	if err != nil {
		return domainError(err, "Failed to list product modifiers")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"modifiers": modifiers})
}
