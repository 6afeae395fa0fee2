package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restomart/internal/handlers"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "router-test-secret"

// testRouter wires the full route table with empty handlers. Requests in these
// tests are expected to be stopped by middleware before any handler runs.
func testRouter() *echo.Echo {
	return newRouter(testSecret, routerHandlers{
		health:       handlers.NewHealthHandlers(nil),
		auth:         handlers.NewAuthHandlers(nil, nil),
		employee:     handlers.NewEmployeeHandlers(nil),
		supplier:     handlers.NewSupplierHandlers(nil),
		inventory:    handlers.NewInventoryHandlers(nil, nil),
		movement:     handlers.NewMovementHandlers(nil),
		transfer:     handlers.NewTransferHandlers(nil),
		relationship: handlers.NewRelationshipHandlers(nil),
		product:      handlers.NewProductHandlers(nil),
		modifier:     handlers.NewModifierHandlers(nil),
		attendance:   handlers.NewAttendanceHandlers(nil),
		dashboard:    handlers.NewDashboardHandlers(nil),
	})
}

func signedToken(t *testing.T, role string) string {
	t.Helper()
	claims := &services.TokenClaims{
		UserID:     uuid.New().String(),
		BusinessID: uuid.New().String(),
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// Movement revert and the relationship lifecycle are reserved to owners; an
// admin token must be stopped with 403 before the handler runs.
func TestRouter_OwnerOnlyRoutes(t *testing.T) {
	router := testRouter()
	admin := signedToken(t, models.RoleAdmin)
	id := uuid.New().String()

	ownerOnly := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/inventory/movements/" + id + "/revert"},
		{http.MethodPost, "/business/relationships"},
		{http.MethodPost, "/business/relationships/" + id + "/accept"},
		{http.MethodPost, "/business/relationships/" + id + "/reject"},
	}
	for _, route := range ownerOnly {
		rec := doRequest(router, route.method, route.target, admin)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", route.method, route.target)
	}
}

func TestRouter_TrailingSlashNormalized(t *testing.T) {
	router := testRouter()
	admin := signedToken(t, models.RoleAdmin)
	id := uuid.New().String()

	// Hits the owner-only gate, not a 404: the slash was stripped first.
	rec := doRequest(router, http.MethodPost, "/inventory/movements/"+id+"/revert/", admin)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(router, http.MethodPost, "/business/relationships/", admin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_UnauthenticatedRejected(t *testing.T) {
	router := testRouter()

	rec := doRequest(router, http.MethodGet, "/inventory/items", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RegisteredPaths(t *testing.T) {
	e := testRouter()

	registered := make(map[string]bool)
	for _, route := range e.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /inventory/items/alerts/low-stock",
		"GET /inventory/movements/:id",
		"POST /inventory/movements/:id/revert",
		"GET /modifiers/groups/:id",
		"GET /modifiers/groups/:id/modifiers",
		"GET /modifiers/:id",
	}
	for _, want := range expected {
		assert.True(t, registered[want], "missing route %s", want)
	}
}
