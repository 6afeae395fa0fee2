package models

import (
	"time"

	"github.com/google/uuid"
)

// Transfer states. pending is the only non-terminal state.
const (
	TransferPending   = "pending"
	TransferCompleted = "completed"
	TransferCancelled = "cancelled"
	TransferRejected  = "rejected"
)

// Transfer is a cross-business stock relocation. Stock moves only on accept,
// atomically across both ledgers.
type Transfer struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	FromBusinessID uuid.UUID  `json:"from_business_id" db:"from_business_id"`
	ToBusinessID   uuid.UUID  `json:"to_business_id" db:"to_business_id"`
	Status         string     `json:"status" db:"status"`
	Notes          *string    `json:"notes" db:"notes"`
	CreatedBy      uuid.UUID  `json:"created_by" db:"created_by"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	CompletedAt    *time.Time `json:"completed_at" db:"completed_at"`

	Items []*TransferItem `json:"items,omitempty" db:"-"`
}

type TransferItem struct {
	ID              uuid.UUID `json:"id" db:"id"`
	TransferID      uuid.UUID `json:"transfer_id" db:"transfer_id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id" db:"inventory_item_id"`
	Quantity        float64   `json:"quantity" db:"quantity"`
	Notes           *string   `json:"notes" db:"notes"`

	// Joined from the source item for display and destination mapping
	ItemName string  `json:"item_name,omitempty" db:"-"`
	ItemSKU  *string `json:"item_sku,omitempty" db:"-"`
}
