package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"restomart/internal/common"
	"restomart/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func requestWithRole(t *testing.T, role string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if role != "" {
		ctx := context.WithValue(req.Context(), common.RoleKey, role)
		req = req.WithContext(ctx)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestRequireRoles_AllowsListedRole(t *testing.T) {
	called := false
	handler := RequireRoles(models.RoleOwner)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	err := handler(requestWithRole(t, models.RoleOwner))
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestRequireRoles_RejectsOtherRole(t *testing.T) {
	handler := RequireRoles(models.RoleOwner)(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})

	err := handler(requestWithRole(t, models.RoleAdmin))
	httpErr, ok := err.(*echo.HTTPError)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	}
}

func TestRequireRoles_MissingRole(t *testing.T) {
	handler := RequireRoles(models.RoleOwner, models.RoleAdmin)(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})

	err := handler(requestWithRole(t, ""))
	httpErr, ok := err.(*echo.HTTPError)
	if assert.True(t, ok) {
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	}
}
