package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"restomart/internal/caching"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
)

// LedgerService owns every stock mutation. Stock never changes except through
// a movement row written in the same transaction as the quantity update, so
// the movement log always reconciles with quantity_in_stock.
type LedgerService interface {
	AdjustStock(ctx context.Context, businessID, itemID uuid.UUID, delta float64, reason string, actorID uuid.UUID) (*models.Movement, error)
	RecordConsumption(ctx context.Context, businessID, itemID uuid.UUID, quantity float64, reason string, actorID uuid.UUID) (*models.Movement, error)
	RevertMovement(ctx context.Context, businessID, movementID, actorID uuid.UUID, reason string) (*models.Movement, error)
	GetMovement(ctx context.Context, businessID, movementID uuid.UUID) (*models.Movement, error)
	ListMovements(ctx context.Context, businessID uuid.UUID, movementType string, limit, offset int) ([]*models.Movement, error)
	ListItemMovements(ctx context.Context, businessID, itemID uuid.UUID, limit, offset int) ([]*models.Movement, error)
	LowStockAlerts(ctx context.Context, businessID uuid.UUID) ([]*models.InventoryItem, error)
}

type ledgerService struct {
	db       repositories.DB
	cacheSvc caching.CacheService
}

func NewLedgerService(db repositories.DB, cacheSvc caching.CacheService) LedgerService {
	return &ledgerService{db: db, cacheSvc: cacheSvc}
}

// AdjustStock applies a signed manual correction. Positive deltas become
// manual_in movements, negative ones manual_out. The resulting stock can reach
// zero but never go below it.
func (s *ledgerService) AdjustStock(ctx context.Context, businessID, itemID uuid.UUID, delta float64, reason string, actorID uuid.UUID) (*models.Movement, error) {
	movementType := models.MovementManualIn
	if delta < 0 {
		movementType = models.MovementManualOut
	}
	return s.applyDelta(ctx, businessID, itemID, delta, movementType, reason, actorID)
}

// RecordConsumption deducts ingredients consumed by preparing a product.
func (s *ledgerService) RecordConsumption(ctx context.Context, businessID, itemID uuid.UUID, quantity float64, reason string, actorID uuid.UUID) (*models.Movement, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("consumption quantity must be positive, got %v", quantity)
	}
	return s.applyDelta(ctx, businessID, itemID, -quantity, models.MovementRecipeConsumption, reason, actorID)
}

func (s *ledgerService) applyDelta(ctx context.Context, businessID, itemID uuid.UUID, delta float64, movementType, reason string, actorID uuid.UUID) (*models.Movement, error) {
	if delta == 0 {
		return nil, fmt.Errorf("stock delta must be non-zero")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	itemRepo := repositories.NewInventoryItemRepo(tx)
	movementRepo := repositories.NewMovementRepo(tx)

	item, err := itemRepo.GetByID(ctx, businessID, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory item: %w", err)
	}

	newQuantity := item.QuantityInStock + delta
	if newQuantity < 0 {
		return nil, fmt.Errorf("%w: item %s has %v in stock, delta %v", ErrInsufficientStock, item.Name, item.QuantityInStock, delta)
	}

	movement := &models.Movement{
		ID:              uuid.New(),
		BusinessID:      businessID,
		InventoryItemID: itemID,
		QuantityChange:  delta,
		MovementType:    movementType,
		CreatedBy:       actorID,
		CreatedAt:       time.Now(),
	}
	if reason != "" {
		movement.Reason = &reason
	}
	if err := movementRepo.Create(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to record movement: %w", err)
	}

	if err := itemRepo.UpdateQuantity(ctx, businessID, itemID, newQuantity); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit stock adjustment: %w", err)
	}

	s.invalidateItem(ctx, businessID, itemID)

	if newQuantity < item.MinStock {
		log.Printf("Low stock: item %s (%s) at %v, minimum %v", item.Name, itemID, newQuantity, item.MinStock)
	}
	return movement, nil
}

// RevertMovement writes a compensating movement with the negated delta and
// flags the original row. Reverting twice is rejected; reverting a revert is
// allowed and yields yet another compensation.
func (s *ledgerService) RevertMovement(ctx context.Context, businessID, movementID, actorID uuid.UUID, reason string) (*models.Movement, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	itemRepo := repositories.NewInventoryItemRepo(tx)
	movementRepo := repositories.NewMovementRepo(tx)

	original, err := movementRepo.GetByID(ctx, businessID, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to load movement: %w", err)
	}
	if original.Reverted {
		return nil, ErrAlreadyReverted
	}

	item, err := itemRepo.GetByID(ctx, businessID, original.InventoryItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory item: %w", err)
	}

	newQuantity := item.QuantityInStock - original.QuantityChange
	if newQuantity < 0 {
		return nil, fmt.Errorf("%w: reverting movement %s would drive stock to %v", ErrInsufficientStock, movementID, newQuantity)
	}

	if reason == "" {
		reason = fmt.Sprintf("revert of movement %s", movementID)
	}
	compensation := &models.Movement{
		ID:              uuid.New(),
		BusinessID:      businessID,
		InventoryItemID: original.InventoryItemID,
		QuantityChange:  -original.QuantityChange,
		MovementType:    models.MovementRevert,
		Reason:          &reason,
		CreatedBy:       actorID,
		CreatedAt:       time.Now(),
	}
	if err := movementRepo.Create(ctx, compensation); err != nil {
		return nil, fmt.Errorf("failed to record compensating movement: %w", err)
	}
	if err := movementRepo.MarkReverted(ctx, businessID, movementID); err != nil {
		return nil, fmt.Errorf("failed to flag reverted movement: %w", err)
	}
	if err := itemRepo.UpdateQuantity(ctx, businessID, original.InventoryItemID, newQuantity); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit revert: %w", err)
	}

	s.invalidateItem(ctx, businessID, original.InventoryItemID)
	return compensation, nil
}

func (s *ledgerService) GetMovement(ctx context.Context, businessID, movementID uuid.UUID) (*models.Movement, error) {
	return repositories.NewMovementRepo(s.db).GetByID(ctx, businessID, movementID)
}

func (s *ledgerService) ListMovements(ctx context.Context, businessID uuid.UUID, movementType string, limit, offset int) ([]*models.Movement, error) {
	return repositories.NewMovementRepo(s.db).List(ctx, businessID, movementType, limit, offset)
}

func (s *ledgerService) ListItemMovements(ctx context.Context, businessID, itemID uuid.UUID, limit, offset int) ([]*models.Movement, error) {
	return repositories.NewMovementRepo(s.db).ListByItem(ctx, businessID, itemID, limit, offset)
}

// LowStockAlerts is derived on read; the low-stock flag is never stored.
func (s *ledgerService) LowStockAlerts(ctx context.Context, businessID uuid.UUID) ([]*models.InventoryItem, error) {
	return repositories.NewInventoryItemRepo(s.db).LowStock(ctx, businessID)
}

func (s *ledgerService) invalidateItem(ctx context.Context, businessID, itemID uuid.UUID) {
	if err := s.cacheSvc.DeleteItem(ctx, businessID, itemID); err != nil {
		log.Printf("Failed to invalidate item cache for %s: %v", itemID, err)
	}
	if err := s.cacheSvc.DeleteSummary(ctx, businessID); err != nil {
		log.Printf("Failed to invalidate summary cache for business %s: %v", businessID, err)
	}
}
