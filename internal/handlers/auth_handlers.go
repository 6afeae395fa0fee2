package handlers

import (
	"net/http"
	"time"

	"restomart/internal/caching"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// AuthHandlers handles registration, login and token lifecycle requests.
type AuthHandlers struct {
	authService services.AuthService
	cacheSvc    caching.CacheService
}

func NewAuthHandlers(authService services.AuthService, cacheSvc caching.CacheService) *AuthHandlers {
	return &AuthHandlers{authService: authService, cacheSvc: cacheSvc}
}

// RegisterRequest creates a business and its owner account in one call.
type RegisterRequest struct {
	BusinessName string `json:"business_name"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.BusinessName == "" || req.FullName == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "business_name, full_name and email are required")
	}
	if len(req.Password) < 8 {
		return echo.NewHTTPError(http.StatusBadRequest, "Password must be at least 8 characters")
	}

	tokens, user, err := h.authService.Register(ctx, req.BusinessName, req.FullName, req.Email, req.Password)
	if err != nil {
		return domainError(err, "Failed to register")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"tokens": tokens,
		"user":   user,
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	// Rate limit by client IP to slow credential stuffing.
	rateKey := "login:" + c.RealIP()
	if limited, err := h.cacheSvc.IsRateLimited(ctx, rateKey, loginRateLimit, loginRateWindow); err == nil && limited {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts, try again later")
	}

	tokens, user, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if incErr := h.cacheSvc.IncrementRateLimit(ctx, rateKey, loginRateWindow); incErr != nil {
			c.Logger().Warnf("Failed to increment login rate limit: %v", incErr)
		}
		return domainError(err, "Failed to log in")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tokens": tokens,
		"user":   user,
	})
}

func (h *AuthHandlers) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh_token is required")
	}

	tokens, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return domainError(err, "Failed to refresh token")
	}
	return c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, userID, err := identity(ctx)
	if err != nil {
		return err
	}
	user, business, err := h.authService.Me(ctx, businessID, userID)
	if err != nil {
		return domainError(err, "Failed to load profile")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":     user,
		"business": business,
	})
}
