package models

import (
	"time"

	"github.com/google/uuid"
)

type ModifierGroup struct {
	ID            uuid.UUID `json:"id" db:"id"`
	BusinessID    uuid.UUID `json:"business_id" db:"business_id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description" db:"description"`
	AllowMultiple bool      `json:"allow_multiple" db:"allow_multiple"`
	IsRequired    bool      `json:"is_required" db:"is_required"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Modifier carries its own inventory deltas: positive quantities consume
// extra stock when applied at sale time, negative quantities return stock.
type Modifier struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ModifierGroupID uuid.UUID `json:"modifier_group_id" db:"modifier_group_id"`
	Name            string    `json:"name" db:"name"`
	Description     *string   `json:"description" db:"description"`
	PriceExtra      float64   `json:"price_extra" db:"price_extra"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	InventoryItems []*ModifierItem `json:"inventory_items,omitempty" db:"-"`
}

type ModifierItem struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ModifierID      uuid.UUID `json:"modifier_id" db:"modifier_id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id" db:"inventory_item_id"`
	Quantity        float64   `json:"quantity" db:"quantity"`

	ItemName string `json:"item_name,omitempty" db:"-"`
}

type ProductModifier struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ProductID  uuid.UUID `json:"product_id" db:"product_id"`
	ModifierID uuid.UUID `json:"modifier_id" db:"modifier_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
