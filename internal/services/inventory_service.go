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

const itemCacheTTL = 5 * time.Minute

// InventoryService manages item metadata. Stock itself belongs to the ledger:
// the only quantity this service ever writes is the opening balance, and that
// goes through a movement like everything else.
type InventoryService interface {
	CreateItem(ctx context.Context, item *models.InventoryItem, initialQuantity float64, actorID uuid.UUID) (*models.InventoryItem, error)
	GetItem(ctx context.Context, businessID, itemID uuid.UUID) (*models.InventoryItem, error)
	UpdateItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error)
	DeactivateItem(ctx context.Context, businessID, itemID uuid.UUID) error
	ListItems(ctx context.Context, businessID uuid.UUID, filter *models.InventoryItemFilter) ([]*models.InventoryItem, error)
}

type inventoryService struct {
	db           repositories.DB
	supplierRepo repositories.SupplierRepository
	cacheSvc     caching.CacheService
}

func NewInventoryService(db repositories.DB, supplierRepo repositories.SupplierRepository, cacheSvc caching.CacheService) InventoryService {
	return &inventoryService{db: db, supplierRepo: supplierRepo, cacheSvc: cacheSvc}
}

// CreateItem writes the item and, when an opening balance is given, a
// manual_in movement in the same transaction.
func (s *inventoryService) CreateItem(ctx context.Context, item *models.InventoryItem, initialQuantity float64, actorID uuid.UUID) (*models.InventoryItem, error) {
	if item.Name == "" {
		return nil, fmt.Errorf("item name is required")
	}
	if item.UnitOfMeasure == "" {
		return nil, fmt.Errorf("unit of measure is required")
	}
	if initialQuantity < 0 {
		return nil, fmt.Errorf("initial quantity cannot be negative")
	}
	if item.MinStock < 0 || item.UnitPrice < 0 {
		return nil, fmt.Errorf("min stock and unit price cannot be negative")
	}
	if item.SupplierID != nil {
		if _, err := s.supplierRepo.GetByID(ctx, item.BusinessID, *item.SupplierID); err != nil {
			return nil, fmt.Errorf("failed to load supplier: %w", err)
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	itemRepo := repositories.NewInventoryItemRepo(tx)

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.QuantityInStock = initialQuantity
	item.IsActive = true
	if err := itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	if initialQuantity > 0 {
		reason := "opening balance"
		movement := &models.Movement{
			ID:              uuid.New(),
			BusinessID:      item.BusinessID,
			InventoryItemID: item.ID,
			QuantityChange:  initialQuantity,
			MovementType:    models.MovementManualIn,
			Reason:          &reason,
			CreatedBy:       actorID,
		}
		if err := repositories.NewMovementRepo(tx).Create(ctx, movement); err != nil {
			return nil, fmt.Errorf("failed to record opening balance: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit inventory item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) GetItem(ctx context.Context, businessID, itemID uuid.UUID) (*models.InventoryItem, error) {
	if cached, err := s.cacheSvc.GetItem(ctx, businessID, itemID); err == nil && cached != nil {
		return cached, nil
	}

	item, err := repositories.NewInventoryItemRepo(s.db).GetByID(ctx, businessID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cacheSvc.SetItem(ctx, businessID, item, itemCacheTTL); err != nil {
		log.Printf("Failed to cache item %s: %v", itemID, err)
	}
	return item, nil
}

// UpdateItem writes metadata only; quantity_in_stock is untouched.
func (s *inventoryService) UpdateItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if item.MinStock < 0 || item.UnitPrice < 0 {
		return nil, fmt.Errorf("min stock and unit price cannot be negative")
	}
	if item.SupplierID != nil {
		if _, err := s.supplierRepo.GetByID(ctx, item.BusinessID, *item.SupplierID); err != nil {
			return nil, fmt.Errorf("failed to load supplier: %w", err)
		}
	}

	itemRepo := repositories.NewInventoryItemRepo(s.db)
	if _, err := itemRepo.GetByID(ctx, item.BusinessID, item.ID); err != nil {
		return nil, fmt.Errorf("failed to load inventory item: %w", err)
	}
	if err := itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	if err := s.cacheSvc.DeleteItem(ctx, item.BusinessID, item.ID); err != nil {
		log.Printf("Failed to invalidate item cache for %s: %v", item.ID, err)
	}
	return itemRepo.GetByID(ctx, item.BusinessID, item.ID)
}

func (s *inventoryService) DeactivateItem(ctx context.Context, businessID, itemID uuid.UUID) error {
	if err := repositories.NewInventoryItemRepo(s.db).Deactivate(ctx, businessID, itemID); err != nil {
		return fmt.Errorf("failed to deactivate inventory item: %w", err)
	}
	if err := s.cacheSvc.DeleteItem(ctx, businessID, itemID); err != nil {
		log.Printf("Failed to invalidate item cache for %s: %v", itemID, err)
	}
	return nil
}

func (s *inventoryService) ListItems(ctx context.Context, businessID uuid.UUID, filter *models.InventoryItemFilter) ([]*models.InventoryItem, error) {
	return repositories.NewInventoryItemRepo(s.db).List(ctx, businessID, filter)
}
