package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a business-scoped stock keeping unit. QuantityInStock is
// never written directly; it only changes through ledger movements.
type InventoryItem struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	BusinessID      uuid.UUID  `json:"business_id" db:"business_id"`
	Name            string     `json:"name" db:"name"`
	Category        string     `json:"category" db:"category"`
	UnitOfMeasure   string     `json:"unit_of_measure" db:"unit_of_measure"`
	SKU             *string    `json:"sku" db:"sku"`
	UnitPrice       float64    `json:"unit_price" db:"unit_price"`
	TaxPercentage   float64    `json:"tax_percentage" db:"tax_percentage"`
	IncludeTax      bool       `json:"include_tax" db:"include_tax"`
	MinStock        float64    `json:"min_stock" db:"min_stock"`
	MaxStock        float64    `json:"max_stock" db:"max_stock"`
	QuantityInStock float64    `json:"quantity_in_stock" db:"quantity_in_stock"`
	SupplierID      *uuid.UUID `json:"supplier_id" db:"supplier_id"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// LowStock reports whether the item sits below its minimum threshold.
// Derived on read, never stored.
func (i *InventoryItem) LowStock() bool {
	return i.QuantityInStock < i.MinStock
}

// InventoryItemFilter holds list filters for inventory item queries.
type InventoryItemFilter struct {
	Category   string     `query:"category"`
	SupplierID *uuid.UUID `query:"supplier_id"`
	ActiveOnly bool       `query:"active_only"`
	Limit      int        `query:"limit"`
	Offset     int        `query:"offset"`
}
