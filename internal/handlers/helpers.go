package handlers

import (
	"context"
	"errors"
	"net/http"

	"restomart/internal/common"
	"restomart/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// identity pulls the authenticated business and user from the request context.
func identity(ctx context.Context) (businessID, userID uuid.UUID, err error) {
	businessID, ok := common.GetBusinessIDFromContext(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Business not found in context")
	}
	userID, ok = common.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "User not found in context")
	}
	return businessID, userID, nil
}

// domainError maps service errors onto HTTP status codes. Anything unknown
// becomes a 500 with a generic message.
func domainError(err error, fallback string) *echo.HTTPError {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return echo.NewHTTPError(http.StatusNotFound, "Resource not found")
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrIngredientMismatch),
		errors.Is(err, services.ErrItemMappingNotFound):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrAlreadyReverted),
		errors.Is(err, services.ErrDuplicateRelationship),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrShiftAlreadyOpen),
		errors.Is(err, services.ErrNoOpenShift),
		errors.Is(err, services.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrRelationshipRequired):
		return echo.NewHTTPError(http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, services.ErrNotTransferParty),
		errors.Is(err, services.ErrNotRelationshipTarget):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback)
}
