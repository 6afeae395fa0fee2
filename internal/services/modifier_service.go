package services

import (
	"context"
	"fmt"

	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
)

// ModifierItemLine is one inventory delta of a modifier. Negative quantities
// return stock (e.g. "no cheese").
type ModifierItemLine struct {
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Quantity        float64   `json:"quantity"`
}

// ModifierService manages modifier groups, modifiers and their assignment to
// products. A modifier can only be assigned to a product whose recipe already
// contains every inventory item the modifier touches.
type ModifierService interface {
	CreateGroup(ctx context.Context, group *models.ModifierGroup) (*models.ModifierGroup, error)
	GetGroup(ctx context.Context, businessID, groupID uuid.UUID) (*models.ModifierGroup, error)
	UpdateGroup(ctx context.Context, group *models.ModifierGroup) (*models.ModifierGroup, error)
	ListGroups(ctx context.Context, businessID uuid.UUID, activeOnly bool, limit, offset int) ([]*models.ModifierGroup, error)

	CreateModifier(ctx context.Context, businessID uuid.UUID, modifier *models.Modifier, items []ModifierItemLine) (*models.Modifier, error)
	GetModifier(ctx context.Context, businessID, modifierID uuid.UUID) (*models.Modifier, error)
	UpdateModifier(ctx context.Context, businessID uuid.UUID, modifier *models.Modifier) (*models.Modifier, error)
	ListByGroup(ctx context.Context, businessID, groupID uuid.UUID, activeOnly bool) ([]*models.Modifier, error)

	Assign(ctx context.Context, businessID, productID, modifierID uuid.UUID) error
	Unassign(ctx context.Context, businessID, productID, modifierID uuid.UUID) error
	ListByProduct(ctx context.Context, businessID, productID uuid.UUID) ([]*models.Modifier, error)
}

type modifierService struct {
	db           repositories.DB
	modifierRepo repositories.ModifierRepository
	productRepo  repositories.ProductRepository
	itemRepo     repositories.InventoryItemRepository
}

func NewModifierService(db repositories.DB, modifierRepo repositories.ModifierRepository,
	productRepo repositories.ProductRepository, itemRepo repositories.InventoryItemRepository) ModifierService {
	return &modifierService{db: db, modifierRepo: modifierRepo, productRepo: productRepo, itemRepo: itemRepo}
}

func (s *modifierService) CreateGroup(ctx context.Context, group *models.ModifierGroup) (*models.ModifierGroup, error) {
	if group.Name == "" {
		return nil, fmt.Errorf("group name is required")
	}
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	group.IsActive = true
	if err := s.modifierRepo.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create modifier group: %w", err)
	}
	return group, nil
}

func (s *modifierService) GetGroup(ctx context.Context, businessID, groupID uuid.UUID) (*models.ModifierGroup, error) {
	return s.modifierRepo.GetGroupByID(ctx, businessID, groupID)
}

func (s *modifierService) UpdateGroup(ctx context.Context, group *models.ModifierGroup) (*models.ModifierGroup, error) {
	if _, err := s.modifierRepo.GetGroupByID(ctx, group.BusinessID, group.ID); err != nil {
		return nil, fmt.Errorf("failed to load modifier group: %w", err)
	}
	if err := s.modifierRepo.UpdateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to update modifier group: %w", err)
	}
	return group, nil
}

func (s *modifierService) ListGroups(ctx context.Context, businessID uuid.UUID, activeOnly bool, limit, offset int) ([]*models.ModifierGroup, error) {
	return s.modifierRepo.ListGroups(ctx, businessID, activeOnly, limit, offset)
}

// CreateModifier writes the modifier and its inventory deltas in one
// transaction. Every referenced item must belong to the caller's business.
func (s *modifierService) CreateModifier(ctx context.Context, businessID uuid.UUID, modifier *models.Modifier, items []ModifierItemLine) (*models.Modifier, error) {
	if modifier.Name == "" {
		return nil, fmt.Errorf("modifier name is required")
	}
	if modifier.PriceExtra < 0 {
		return nil, fmt.Errorf("price extra cannot be negative")
	}
	for _, line := range items {
		if line.Quantity == 0 {
			return nil, fmt.Errorf("modifier item quantity must be non-zero")
		}
		if _, err := s.itemRepo.GetByID(ctx, businessID, line.InventoryItemID); err != nil {
			return nil, fmt.Errorf("failed to load inventory item %s: %w", line.InventoryItemID, err)
		}
	}
	if _, err := s.modifierRepo.GetGroupByID(ctx, businessID, modifier.ModifierGroupID); err != nil {
		return nil, fmt.Errorf("failed to load modifier group: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txRepo := repositories.NewModifierRepo(tx)
	if modifier.ID == uuid.Nil {
		modifier.ID = uuid.New()
	}
	modifier.IsActive = true
	if err := txRepo.CreateModifier(ctx, modifier); err != nil {
		return nil, fmt.Errorf("failed to create modifier: %w", err)
	}
	for _, line := range items {
		item := &models.ModifierItem{
			ID:              uuid.New(),
			ModifierID:      modifier.ID,
			InventoryItemID: line.InventoryItemID,
			Quantity:        line.Quantity,
		}
		if err := txRepo.CreateModifierItem(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to create modifier item: %w", err)
		}
		modifier.InventoryItems = append(modifier.InventoryItems, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit modifier: %w", err)
	}
	return modifier, nil
}

func (s *modifierService) GetModifier(ctx context.Context, businessID, modifierID uuid.UUID) (*models.Modifier, error) {
	modifier, err := s.modifierRepo.GetModifierByID(ctx, businessID, modifierID)
	if err != nil {
		return nil, err
	}
	items, err := s.modifierRepo.GetModifierItems(ctx, modifierID)
	if err != nil {
		return nil, fmt.Errorf("failed to load modifier items: %w", err)
	}
	modifier.InventoryItems = items
	return modifier, nil
}

func (s *modifierService) UpdateModifier(ctx context.Context, businessID uuid.UUID, modifier *models.Modifier) (*models.Modifier, error) {
	if modifier.PriceExtra < 0 {
		return nil, fmt.Errorf("price extra cannot be negative")
	}
	if _, err := s.modifierRepo.GetModifierByID(ctx, businessID, modifier.ID); err != nil {
		return nil, fmt.Errorf("failed to load modifier: %w", err)
	}
	if err := s.modifierRepo.UpdateModifier(ctx, modifier); err != nil {
		return nil, fmt.Errorf("failed to update modifier: %w", err)
	}
	return modifier, nil
}

func (s *modifierService) ListByGroup(ctx context.Context, businessID, groupID uuid.UUID, activeOnly bool) ([]*models.Modifier, error) {
	if _, err := s.modifierRepo.GetGroupByID(ctx, businessID, groupID); err != nil {
		return nil, fmt.Errorf("failed to load modifier group: %w", err)
	}
	modifiers, err := s.modifierRepo.ListByGroup(ctx, groupID, activeOnly)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, modifiers)
}

// Assign links a modifier to a product after checking that the product's
// recipe covers every inventory item the modifier references. Assigning an
// already assigned pair is a no-op.
func (s *modifierService) Assign(ctx context.Context, businessID, productID, modifierID uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, businessID, productID)
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}
	if _, err := s.modifierRepo.GetModifierByID(ctx, businessID, modifierID); err != nil {
		return fmt.Errorf("failed to load modifier: %w", err)
	}

	ingredients, err := s.productRepo.GetIngredients(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to load ingredients: %w", err)
	}
	recipe := make(map[uuid.UUID]bool, len(ingredients))
	for _, ing := range ingredients {
		recipe[ing.InventoryItemID] = true
	}

	modifierItems, err := s.modifierRepo.GetModifierItems(ctx, modifierID)
	if err != nil {
		return fmt.Errorf("failed to load modifier items: %w", err)
	}
	for _, mi := range modifierItems {
		if !recipe[mi.InventoryItemID] {
			return fmt.Errorf("%w: %s is not an ingredient of %s", ErrIngredientMismatch, mi.ItemName, product.Name)
		}
	}

	pm := &models.ProductModifier{
		ID:         uuid.New(),
		ProductID:  productID,
		ModifierID: modifierID,
	}
	if err := s.modifierRepo.AssignToProduct(ctx, pm); err != nil {
		return fmt.Errorf("failed to assign modifier: %w", err)
	}
	return nil
}

func (s *modifierService) Unassign(ctx context.Context, businessID, productID, modifierID uuid.UUID) error {
	if _, err := s.productRepo.GetByID(ctx, businessID, productID); err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}
	if err := s.modifierRepo.RemoveFromProduct(ctx, productID, modifierID); err != nil {
		return fmt.Errorf("failed to unassign modifier: %w", err)
	}
	return nil
}

func (s *modifierService) ListByProduct(ctx context.Context, businessID, productID uuid.UUID) ([]*models.Modifier, error) {
	if _, err := s.productRepo.GetByID(ctx, businessID, productID); err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	modifiers, err := s.modifierRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, modifiers)
}

func (s *modifierService) attachItems(ctx context.Context, modifiers []*models.Modifier) ([]*models.Modifier, error) {
	for _, modifier := range modifiers {
		items, err := s.modifierRepo.GetModifierItems(ctx, modifier.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load modifier items: %w", err)
		}
		modifier.InventoryItems = items
	}
	return modifiers, nil
}
