package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type ModifierRepository interface {
	CreateGroup(ctx context.Context, group *models.ModifierGroup) error
	GetGroupByID(ctx context.Context, businessID, id uuid.UUID) (*models.ModifierGroup, error)
	UpdateGroup(ctx context.Context, group *models.ModifierGroup) error
	ListGroups(ctx context.Context, businessID uuid.UUID, activeOnly bool, limit, offset int) ([]*models.ModifierGroup, error)

	CreateModifier(ctx context.Context, modifier *models.Modifier) error
	CreateModifierItem(ctx context.Context, item *models.ModifierItem) error
	GetModifierByID(ctx context.Context, businessID, id uuid.UUID) (*models.Modifier, error)
	UpdateModifier(ctx context.Context, modifier *models.Modifier) error
	ListByGroup(ctx context.Context, groupID uuid.UUID, activeOnly bool) ([]*models.Modifier, error)
	GetModifierItems(ctx context.Context, modifierID uuid.UUID) ([]*models.ModifierItem, error)

	AssignToProduct(ctx context.Context, pm *models.ProductModifier) error
	RemoveFromProduct(ctx context.Context, productID, modifierID uuid.UUID) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Modifier, error)
	IsAssigned(ctx context.Context, productID, modifierID uuid.UUID) (bool, error)
}

type modifierRepo struct {
	db DBTX
}

func NewModifierRepo(db DBTX) ModifierRepository {
	return &modifierRepo{db: db}
}

func (r *modifierRepo) CreateGroup(ctx context.Context, group *models.ModifierGroup) error {
	query := `
		INSERT INTO modifier_groups (id, business_id, name, description, allow_multiple, is_required, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, group.ID, group.BusinessID, group.Name, group.Description,
		group.AllowMultiple, group.IsRequired, group.IsActive)
	return err
}

func (r *modifierRepo) GetGroupByID(ctx context.Context, businessID, id uuid.UUID) (*models.ModifierGroup, error) {
	group := &models.ModifierGroup{}
	query := `
		SELECT id, business_id, name, description, allow_multiple, is_required, is_active, created_at, updated_at
		FROM modifier_groups
		WHERE business_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, businessID, id).Scan(&group.ID, &group.BusinessID, &group.Name,
		&group.Description, &group.AllowMultiple, &group.IsRequired, &group.IsActive, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *modifierRepo) UpdateGroup(ctx context.Context, group *models.ModifierGroup) error {
	query := `
		UPDATE modifier_groups
		SET name = $1, description = $2, allow_multiple = $3, is_required = $4, is_active = $5, updated_at = NOW()
		WHERE business_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, group.Name, group.Description, group.AllowMultiple, group.IsRequired,
		group.IsActive, group.BusinessID, group.ID)
	return err
}

func (r *modifierRepo) ListGroups(ctx context.Context, businessID uuid.UUID, activeOnly bool, limit, offset int) ([]*models.ModifierGroup, error) {
	query := `
		SELECT id, business_id, name, description, allow_multiple, is_required, is_active, created_at, updated_at
		FROM modifier_groups
		WHERE business_id = $1 AND ($2 = FALSE OR is_active = TRUE)
		ORDER BY name
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, businessID, activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*models.ModifierGroup
	for rows.Next() {
		group := &models.ModifierGroup{}
		if err := rows.Scan(&group.ID, &group.BusinessID, &group.Name, &group.Description, &group.AllowMultiple,
			&group.IsRequired, &group.IsActive, &group.CreatedAt, &group.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *modifierRepo) CreateModifier(ctx context.Context, modifier *models.Modifier) error {
	query := `
		INSERT INTO modifiers (id, modifier_group_id, name, description, price_extra, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, modifier.ID, modifier.ModifierGroupID, modifier.Name, modifier.Description,
		modifier.PriceExtra, modifier.IsActive)
	return err
}

func (r *modifierRepo) CreateModifierItem(ctx context.Context, item *models.ModifierItem) error {
	query := `
		INSERT INTO modifier_items (id, modifier_id, inventory_item_id, quantity)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.ModifierID, item.InventoryItemID, item.Quantity)
	return err
}

// GetModifierByID scopes through the group's business to keep tenant isolation.
func (r *modifierRepo) GetModifierByID(ctx context.Context, businessID, id uuid.UUID) (*models.Modifier, error) {
	modifier := &models.Modifier{}
	query := `
		SELECT m.id, m.modifier_group_id, m.name, m.description, m.price_extra, m.is_active, m.created_at, m.updated_at
		FROM modifiers m
		JOIN modifier_groups g ON g.id = m.modifier_group_id
		WHERE g.business_id = $1 AND m.id = $2
	`
	err := r.db.QueryRow(ctx, query, businessID, id).Scan(&modifier.ID, &modifier.ModifierGroupID, &modifier.Name,
		&modifier.Description, &modifier.PriceExtra, &modifier.IsActive, &modifier.CreatedAt, &modifier.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return modifier, nil
}

func (r *modifierRepo) UpdateModifier(ctx context.Context, modifier *models.Modifier) error {
	query := `
		UPDATE modifiers
		SET name = $1, description = $2, price_extra = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, modifier.Name, modifier.Description, modifier.PriceExtra, modifier.IsActive, modifier.ID)
	return err
}

func (r *modifierRepo) ListByGroup(ctx context.Context, groupID uuid.UUID, activeOnly bool) ([]*models.Modifier, error) {
	query := `
		SELECT id, modifier_group_id, name, description, price_extra, is_active, created_at, updated_at
		FROM modifiers
		WHERE modifier_group_id = $1 AND ($2 = FALSE OR is_active = TRUE)
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, groupID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanModifiers(rows)
}

func (r *modifierRepo) GetModifierItems(ctx context.Context, modifierID uuid.UUID) ([]*models.ModifierItem, error) {
	query := `
		SELECT mi.id, mi.modifier_id, mi.inventory_item_id, mi.quantity, ii.name
		FROM modifier_items mi
		JOIN inventory_items ii ON ii.id = mi.inventory_item_id
		WHERE mi.modifier_id = $1
	`
	rows, err := r.db.Query(ctx, query, modifierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.ModifierItem
	for rows.Next() {
		item := &models.ModifierItem{}
		if err := rows.Scan(&item.ID, &item.ModifierID, &item.InventoryItemID, &item.Quantity, &item.ItemName); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *modifierRepo) AssignToProduct(ctx context.Context, pm *models.ProductModifier) error {
	query := `
		INSERT INTO product_modifiers (id, product_id, modifier_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (product_id, modifier_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, pm.ID, pm.ProductID, pm.ModifierID)
	return err
}

func (r *modifierRepo) RemoveFromProduct(ctx context.Context, productID, modifierID uuid.UUID) error {
	query := `DELETE FROM product_modifiers WHERE product_id = $1 AND modifier_id = $2`
	_, err := r.db.Exec(ctx, query, productID, modifierID)
	return err
}

func (r *modifierRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Modifier, error) {
	query := `
		SELECT m.id, m.modifier_group_id, m.name, m.description, m.price_extra, m.is_active, m.created_at, m.updated_at
		FROM modifiers m
		JOIN product_modifiers pm ON pm.modifier_id = m.id
		WHERE pm.product_id = $1
		ORDER BY m.name
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanModifiers(rows)
}

func (r *modifierRepo) IsAssigned(ctx context.Context, productID, modifierID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM product_modifiers WHERE product_id = $1 AND modifier_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, productID, modifierID).Scan(&exists)
	return exists, err
}

func scanModifiers(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*models.Modifier, error) {
	var modifiers []*models.Modifier
	for rows.Next() {
		modifier := &models.Modifier{}
		if err := rows.Scan(&modifier.ID, &modifier.ModifierGroupID, &modifier.Name, &modifier.Description,
			&modifier.PriceExtra, &modifier.IsActive, &modifier.CreatedAt, &modifier.UpdatedAt); err != nil {
			return nil, err
		}
		modifiers = append(modifiers, modifier)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return modifiers, nil
}
