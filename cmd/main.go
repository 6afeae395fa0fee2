package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"restomart/internal/analytics"
	"restomart/internal/caching"
	"restomart/internal/config"
	"restomart/internal/handlers"
	"restomart/internal/jobs"
	"restomart/internal/jobs/background"
	"restomart/internal/middleware"
	"restomart/internal/models"
	"restomart/internal/repositories"
	"restomart/internal/services"
	"restomart/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	minioSvc, err := services.NewMinioService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(context.Background(), cfg.MinioBucket); err != nil {
		log.Printf("WARN: Failed to ensure MinIO bucket %s: %v", cfg.MinioBucket, err)
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	businessRepo := repositories.NewBusinessRepo(pool)
	supplierRepo := repositories.NewSupplierRepo(pool)
	itemRepo := repositories.NewInventoryItemRepo(pool)
	transferRepo := repositories.NewTransferRepo(pool)
	relationshipRepo := repositories.NewRelationshipRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	modifierRepo := repositories.NewModifierRepo(pool)
	attendanceRepo := repositories.NewAttendanceRepo(pool)

	// Services
	authSvc := services.NewAuthService(userRepo, businessRepo, cacheSvc, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	employeeSvc := services.NewEmployeeService(userRepo)
	supplierSvc := services.NewSupplierService(supplierRepo)
	inventorySvc := services.NewInventoryService(pool, supplierRepo, cacheSvc)
	ledgerSvc := services.NewLedgerService(pool, cacheSvc)
	transferSvc := services.NewTransferService(pool, relationshipRepo, cacheSvc)
	relationshipSvc := services.NewRelationshipService(relationshipRepo, businessRepo)
	productSvc := services.NewProductService(pool, cacheSvc, minioSvc, cfg.MinioBucket)
	modifierSvc := services.NewModifierService(pool, modifierRepo, productRepo, itemRepo)
	attendanceSvc := services.NewAttendanceService(attendanceRepo)
	analyticsSvc := analytics.NewService(itemRepo, transferRepo, cacheSvc)

	// Background jobs
	scanner := jobs.NewStockAlertScanner(businessRepo, itemRepo)
	scheduler := background.NewJobScheduler(scanner)
	if err := scheduler.Start(); err != nil {
		log.Printf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	e := newRouter(cfg.JWTSecret, routerHandlers{
		health:       handlers.NewHealthHandlers(pool),
		auth:         handlers.NewAuthHandlers(authSvc, cacheSvc),
		employee:     handlers.NewEmployeeHandlers(employeeSvc),
		supplier:     handlers.NewSupplierHandlers(supplierSvc),
		inventory:    handlers.NewInventoryHandlers(inventorySvc, ledgerSvc),
		movement:     handlers.NewMovementHandlers(ledgerSvc),
		transfer:     handlers.NewTransferHandlers(transferSvc),
		relationship: handlers.NewRelationshipHandlers(relationshipSvc),
		product:      handlers.NewProductHandlers(productSvc),
		modifier:     handlers.NewModifierHandlers(modifierSvc),
		attendance:   handlers.NewAttendanceHandlers(attendanceSvc),
		dashboard:    handlers.NewDashboardHandlers(analyticsSvc),
	})

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

type routerHandlers struct {
	health       *handlers.HealthHandlers
	auth         *handlers.AuthHandlers
	employee     *handlers.EmployeeHandlers
	supplier     *handlers.SupplierHandlers
	inventory    *handlers.InventoryHandlers
	movement     *handlers.MovementHandlers
	transfer     *handlers.TransferHandlers
	relationship *handlers.RelationshipHandlers
	product      *handlers.ProductHandlers
	modifier     *handlers.ModifierHandlers
	attendance   *handlers.AttendanceHandlers
	dashboard    *handlers.DashboardHandlers
}

func newRouter(jwtSecret string, h routerHandlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.CORS())

	e.GET("/health", h.health.Health)

	e.POST("/auth/register", h.auth.Register)
	e.POST("/auth/login", h.auth.Login)
	e.POST("/auth/refresh", h.auth.Refresh)

	auth := e.Group("", middleware.JWTMiddleware(jwtSecret))
	manager := middleware.RequireRoles(models.RoleOwner, models.RoleAdmin)
	ownerOnly := middleware.RequireRoles(models.RoleOwner)

	auth.GET("/users/me", h.auth.Me)

	auth.POST("/employees", h.employee.Create, manager)
	auth.GET("/employees", h.employee.List, manager)
	auth.GET("/employees/:id", h.employee.Get, manager)
	auth.PUT("/employees/:id", h.employee.Update, manager)
	auth.PUT("/employees/:id/password", h.employee.ChangePassword, manager)
	auth.DELETE("/employees/:id", h.employee.Deactivate, manager)
	auth.DELETE("/employees/:id/permanent", h.employee.Delete, ownerOnly)

	auth.POST("/suppliers", h.supplier.Create, manager)
	auth.GET("/suppliers", h.supplier.List)
	auth.GET("/suppliers/:id", h.supplier.Get)
	auth.PUT("/suppliers/:id", h.supplier.Update, manager)
	auth.DELETE("/suppliers/:id", h.supplier.Deactivate, manager)
	auth.DELETE("/suppliers/:id/permanent", h.supplier.Delete, ownerOnly)

	auth.POST("/inventory/items", h.inventory.CreateItem, manager)
	auth.GET("/inventory/items", h.inventory.ListItems)
	auth.GET("/inventory/items/:id", h.inventory.GetItem)
	auth.PUT("/inventory/items/:id", h.inventory.UpdateItem, manager)
	auth.DELETE("/inventory/items/:id", h.inventory.DeactivateItem, manager)
	auth.POST("/inventory/items/:id/adjust", h.inventory.AdjustStock, manager)
	auth.GET("/inventory/items/alerts/low-stock", h.inventory.LowStockAlerts)

	auth.GET("/inventory/movements", h.movement.List)
	auth.GET("/inventory/movements/item/:id", h.movement.ListByItem)
	auth.GET("/inventory/movements/:id", h.movement.Get)
	auth.POST("/inventory/movements/:id/revert", h.movement.Revert, ownerOnly)

	auth.POST("/inventory/transfers", h.transfer.Create, manager)
	auth.GET("/inventory/transfers", h.transfer.List)
	auth.GET("/inventory/transfers/:id", h.transfer.Get)
	auth.POST("/inventory/transfers/:id/accept", h.transfer.Accept, manager)
	auth.POST("/inventory/transfers/:id/reject", h.transfer.Reject, manager)
	auth.POST("/inventory/transfers/:id/cancel", h.transfer.Cancel, manager)

	auth.POST("/business/relationships", h.relationship.Request, ownerOnly)
	auth.GET("/business/relationships/active", h.relationship.ListActive)
	auth.GET("/business/relationships/pending", h.relationship.ListPending)
	auth.POST("/business/relationships/:id/accept", h.relationship.Accept, ownerOnly)
	auth.POST("/business/relationships/:id/reject", h.relationship.Reject, ownerOnly)

	auth.POST("/products", h.product.Create, manager)
	auth.GET("/products", h.product.List)
	auth.GET("/products/:id", h.product.Get)
	auth.PUT("/products/:id", h.product.Update, manager)
	auth.DELETE("/products/:id", h.product.Deactivate, manager)
	auth.PUT("/products/:id/ingredients", h.product.ReplaceIngredients, manager)
	auth.POST("/products/:id/prepare", h.product.Prepare)
	auth.POST("/products/:id/image", h.product.UploadImage, manager)

	auth.POST("/modifiers/groups", h.modifier.CreateGroup, manager)
	auth.GET("/modifiers/groups", h.modifier.ListGroups)
	auth.GET("/modifiers/groups/:id", h.modifier.GetGroup)
	auth.PUT("/modifiers/groups/:id", h.modifier.UpdateGroup, manager)
	auth.GET("/modifiers/groups/:id/modifiers", h.modifier.ListModifiers)
	auth.POST("/modifiers", h.modifier.CreateModifier, manager)
	auth.GET("/modifiers/:id", h.modifier.GetModifier)
	auth.PUT("/modifiers/:id", h.modifier.UpdateModifier, manager)
	auth.GET("/modifiers/products/:id/modifiers", h.modifier.ListByProduct)
	auth.POST("/modifiers/products/:id/modifiers", h.modifier.Assign, manager)
	auth.DELETE("/modifiers/products/:id/modifiers/:modifierId", h.modifier.Unassign, manager)

	auth.POST("/attendance/check-in", h.attendance.CheckIn)
	auth.POST("/attendance/check-out", h.attendance.CheckOut)

	auth.GET("/dashboard/summary", h.dashboard.Summary)

	return e
}
