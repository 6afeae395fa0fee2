package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RelationshipHandlers handles the business partnership handshake.
type RelationshipHandlers struct {
	relationshipService services.RelationshipService
}

func NewRelationshipHandlers(relationshipService services.RelationshipService) *RelationshipHandlers {
	return &RelationshipHandlers{relationshipService: relationshipService}
}

type RequestRelationshipRequest struct {
	TargetBusinessID uuid.UUID `json:"target_business_id"`
}

func (h *RelationshipHandlers) Request(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	var req RequestRelationshipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.TargetBusinessID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "target_business_id is required")
	}

	rel, err := h.relationshipService.Request(ctx, businessID, req.TargetBusinessID)
	if err != nil {
		return domainError(err, "Failed to request relationship")
	}
	return c.JSON(http.StatusCreated, rel)
}

func (h *RelationshipHandlers) Accept(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	relationshipID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rel, err := h.relationshipService.Accept(ctx, businessID, relationshipID)
	if err != nil {
		return domainError(err, "Failed to accept relationship")
	}
	return c.JSON(http.StatusOK, rel)
}

func (h *RelationshipHandlers) Reject(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	relationshipID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rel, err := h.relationshipService.Reject(ctx, businessID, relationshipID)
	if err != nil {
		return domainError(err, "Failed to reject relationship")
	}
	return c.JSON(http.StatusOK, rel)
}

func (h *RelationshipHandlers) ListActive(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	rels, err := h.relationshipService.ListActive(ctx, businessID)
	if err != nil {
		return domainError(err, "Failed to list relationships")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"relationships": rels})
}

func (h *RelationshipHandlers) ListPending(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	rels, err := h.relationshipService.ListPending(ctx, businessID)
	if err != nil {
		return domainError(err, "Failed to list pending requests")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"relationships": rels})
}
