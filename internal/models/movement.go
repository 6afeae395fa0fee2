package models

import (
	"time"

	"github.com/google/uuid"
)

// Movement types. A revert never mutates the original row beyond its
// reverted flag; compensation is a new row of type MovementRevert.
const (
	MovementManualIn          = "manual_in"
	MovementManualOut         = "manual_out"
	MovementSale              = "sale"
	MovementTransferIn        = "transfer_in"
	MovementTransferOut       = "transfer_out"
	MovementRecipeConsumption = "recipe_consumption"
	MovementRevert            = "revert"
)

// Movement is a single signed stock change. Rows are append-only: the sum of
// non-reverted deltas for an item equals its current stock.
type Movement struct {
	ID              uuid.UUID `json:"id" db:"id"`
	BusinessID      uuid.UUID `json:"business_id" db:"business_id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id" db:"inventory_item_id"`
	QuantityChange  float64   `json:"quantity_change" db:"quantity_change"`
	MovementType    string    `json:"movement_type" db:"movement_type"`
	Reason          *string   `json:"reason" db:"reason"`
	CreatedBy       uuid.UUID `json:"created_by" db:"created_by"`
	Reverted        bool      `json:"reverted" db:"reverted"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
