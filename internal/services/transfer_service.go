package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"restomart/internal/caching"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransferLine is one requested line of an outgoing transfer.
type TransferLine struct {
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Quantity        float64   `json:"quantity"`
	Notes           *string   `json:"notes"`
}

// TransferService moves stock between businesses. Creating a transfer reserves
// nothing; stock moves only when the destination accepts, atomically across
// both ledgers.
type TransferService interface {
	Create(ctx context.Context, fromBusinessID, toBusinessID, createdBy uuid.UUID, notes *string, lines []TransferLine) (*models.Transfer, error)
	Get(ctx context.Context, businessID, transferID uuid.UUID) (*models.Transfer, error)
	List(ctx context.Context, businessID uuid.UUID, status, direction string, limit, offset int) ([]*models.Transfer, error)
	Accept(ctx context.Context, businessID, transferID, actorID uuid.UUID) (*models.Transfer, error)
	Reject(ctx context.Context, businessID, transferID uuid.UUID) (*models.Transfer, error)
	Cancel(ctx context.Context, businessID, transferID uuid.UUID) (*models.Transfer, error)
}

type transferService struct {
	db               repositories.DB
	relationshipRepo repositories.RelationshipRepository
	cacheSvc         caching.CacheService
}

func NewTransferService(db repositories.DB, relationshipRepo repositories.RelationshipRepository, cacheSvc caching.CacheService) TransferService {
	return &transferService{db: db, relationshipRepo: relationshipRepo, cacheSvc: cacheSvc}
}

func (s *transferService) Create(ctx context.Context, fromBusinessID, toBusinessID, createdBy uuid.UUID, notes *string, lines []TransferLine) (*models.Transfer, error) {
	if fromBusinessID == toBusinessID {
		return nil, fmt.Errorf("cannot transfer to the same business")
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("transfer requires at least one line")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("transfer quantity must be positive, got %v", line.Quantity)
		}
	}

	active, err := s.relationshipRepo.HasActive(ctx, fromBusinessID, toBusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to check relationship: %w", err)
	}
	if !active {
		return nil, ErrRelationshipRequired
	}

	// Verify ownership and advisory stock before writing anything. Stock is
	// re-checked at accept time, where it actually moves.
	itemRepo := repositories.NewInventoryItemRepo(s.db)
	for _, line := range lines {
		item, err := itemRepo.GetByID(ctx, fromBusinessID, line.InventoryItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to load inventory item %s: %w", line.InventoryItemID, err)
		}
		if item.QuantityInStock < line.Quantity {
			return nil, fmt.Errorf("%w: item %s has %v in stock, requested %v", ErrInsufficientStock, item.Name, item.QuantityInStock, line.Quantity)
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	transferRepo := repositories.NewTransferRepo(tx)
	transfer := &models.Transfer{
		ID:             uuid.New(),
		FromBusinessID: fromBusinessID,
		ToBusinessID:   toBusinessID,
		Status:         models.TransferPending,
		Notes:          notes,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now(),
	}
	if err := transferRepo.Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}
	for _, line := range lines {
		item := &models.TransferItem{
			ID:              uuid.New(),
			TransferID:      transfer.ID,
			InventoryItemID: line.InventoryItemID,
			Quantity:        line.Quantity,
			Notes:           line.Notes,
		}
		if err := transferRepo.CreateItem(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to create transfer line: %w", err)
		}
		transfer.Items = append(transfer.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}
	return transfer, nil
}

func (s *transferService) Get(ctx context.Context, businessID, transferID uuid.UUID) (*models.Transfer, error) {
	transferRepo := repositories.NewTransferRepo(s.db)
	transfer, err := transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if transfer.FromBusinessID != businessID && transfer.ToBusinessID != businessID {
		return nil, ErrNotTransferParty
	}
	items, err := transferRepo.GetItems(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer lines: %w", err)
	}
	transfer.Items = items
	return transfer, nil
}

func (s *transferService) List(ctx context.Context, businessID uuid.UUID, status, direction string, limit, offset int) ([]*models.Transfer, error) {
	return repositories.NewTransferRepo(s.db).List(ctx, businessID, status, direction, limit, offset)
}

// Accept completes a pending transfer. Every line must be deliverable: the
// source must still hold the quantity, and a matching destination item must
// exist (by SKU when the source item has one, otherwise by exact name,
// case-insensitive). Any failing line aborts the whole accept.
func (s *transferService) Accept(ctx context.Context, businessID, transferID, actorID uuid.UUID) (*models.Transfer, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	transferRepo := repositories.NewTransferRepo(tx)
	itemRepo := repositories.NewInventoryItemRepo(tx)
	movementRepo := repositories.NewMovementRepo(tx)

	transfer, err := transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer: %w", err)
	}
	if transfer.ToBusinessID != businessID {
		return nil, ErrNotTransferParty
	}
	if transfer.Status != models.TransferPending {
		return nil, fmt.Errorf("%w: transfer is %s", ErrInvalidTransition, transfer.Status)
	}

	lines, err := transferRepo.GetItems(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer lines: %w", err)
	}

	reason := fmt.Sprintf("transfer %s", transferID)
	var touched [][2]uuid.UUID
	for _, line := range lines {
		source, err := itemRepo.GetByID(ctx, transfer.FromBusinessID, line.InventoryItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to load source item %s: %w", line.InventoryItemID, err)
		}
		if source.QuantityInStock < line.Quantity {
			return nil, fmt.Errorf("%w: item %s has %v in stock, transfer needs %v", ErrInsufficientStock, source.Name, source.QuantityInStock, line.Quantity)
		}

		dest, err := s.resolveDestination(ctx, itemRepo, transfer.ToBusinessID, source)
		if err != nil {
			return nil, err
		}

		out := &models.Movement{
			ID:              uuid.New(),
			BusinessID:      transfer.FromBusinessID,
			InventoryItemID: source.ID,
			QuantityChange:  -line.Quantity,
			MovementType:    models.MovementTransferOut,
			Reason:          &reason,
			CreatedBy:       actorID,
		}
		if err := movementRepo.Create(ctx, out); err != nil {
			return nil, fmt.Errorf("failed to record outgoing movement: %w", err)
		}
		if err := itemRepo.UpdateQuantity(ctx, transfer.FromBusinessID, source.ID, source.QuantityInStock-line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to deduct source stock: %w", err)
		}

		in := &models.Movement{
			ID:              uuid.New(),
			BusinessID:      transfer.ToBusinessID,
			InventoryItemID: dest.ID,
			QuantityChange:  line.Quantity,
			MovementType:    models.MovementTransferIn,
			Reason:          &reason,
			CreatedBy:       actorID,
		}
		if err := movementRepo.Create(ctx, in); err != nil {
			return nil, fmt.Errorf("failed to record incoming movement: %w", err)
		}
		if err := itemRepo.UpdateQuantity(ctx, transfer.ToBusinessID, dest.ID, dest.QuantityInStock+line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to add destination stock: %w", err)
		}
		touched = append(touched, [2]uuid.UUID{transfer.FromBusinessID, source.ID}, [2]uuid.UUID{transfer.ToBusinessID, dest.ID})
	}

	if err := transferRepo.UpdateStatus(ctx, transferID, models.TransferCompleted, true); err != nil {
		return nil, fmt.Errorf("failed to complete transfer: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transfer accept: %w", err)
	}

	s.invalidate(ctx, transfer.FromBusinessID)
	s.invalidate(ctx, transfer.ToBusinessID)
	for _, pair := range touched {
		if err := s.cacheSvc.DeleteItem(ctx, pair[0], pair[1]); err != nil {
			log.Printf("Failed to invalidate item cache for %s: %v", pair[1], err)
		}
	}

	transfer.Status = models.TransferCompleted
	now := time.Now()
	transfer.CompletedAt = &now
	transfer.Items = lines
	return transfer, nil
}

// resolveDestination maps a source item onto the destination business's
// catalog. SKU wins when the source item carries one.
func (s *transferService) resolveDestination(ctx context.Context, itemRepo repositories.InventoryItemRepository, toBusinessID uuid.UUID, source *models.InventoryItem) (*models.InventoryItem, error) {
	if source.SKU != nil && *source.SKU != "" {
		dest, err := itemRepo.FindBySKU(ctx, toBusinessID, *source.SKU)
		if err == nil {
			return dest, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to resolve destination item: %w", err)
		}
	}
	dest, err := itemRepo.FindByName(ctx, toBusinessID, source.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrItemMappingNotFound, source.Name)
		}
		return nil, fmt.Errorf("failed to resolve destination item: %w", err)
	}
	return dest, nil
}

// Reject is the destination's refusal of a pending transfer.
func (s *transferService) Reject(ctx context.Context, businessID, transferID uuid.UUID) (*models.Transfer, error) {
	return s.resolve(ctx, businessID, transferID, models.TransferRejected, false)
}

// Cancel withdraws a pending transfer; only the sender may cancel.
func (s *transferService) Cancel(ctx context.Context, businessID, transferID uuid.UUID) (*models.Transfer, error) {
	return s.resolve(ctx, businessID, transferID, models.TransferCancelled, true)
}

func (s *transferService) resolve(ctx context.Context, businessID, transferID uuid.UUID, status string, bySender bool) (*models.Transfer, error) {
	transferRepo := repositories.NewTransferRepo(s.db)
	transfer, err := transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer: %w", err)
	}
	if bySender && transfer.FromBusinessID != businessID {
		return nil, ErrNotTransferParty
	}
	if !bySender && transfer.ToBusinessID != businessID {
		return nil, ErrNotTransferParty
	}
	if transfer.Status != models.TransferPending {
		return nil, fmt.Errorf("%w: transfer is %s", ErrInvalidTransition, transfer.Status)
	}
	if err := transferRepo.UpdateStatus(ctx, transferID, status, false); err != nil {
		return nil, fmt.Errorf("failed to update transfer status: %w", err)
	}
	transfer.Status = status
	return transfer, nil
}

func (s *transferService) invalidate(ctx context.Context, businessID uuid.UUID) {
	if err := s.cacheSvc.DeleteSummary(ctx, businessID); err != nil {
		log.Printf("Failed to invalidate summary cache for business %s: %v", businessID, err)
	}
}
