package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a recipe: a sale price plus an ordered list of ingredient links.
// TotalCost and Profit are computed from current ingredient unit prices at
// read time; a negative profit is surfaced as a warning, never an error.
type Product struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	BusinessID      uuid.UUID  `json:"business_id" db:"business_id"`
	Name            string     `json:"name" db:"name"`
	Category        *string    `json:"category" db:"category"`
	SalePrice       float64    `json:"sale_price" db:"sale_price"`
	ProfitMarginPct *float64   `json:"profit_margin_pct" db:"profit_margin_pct"`
	ImageURL        *string    `json:"image_url" db:"image_url"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	CreatedBy       uuid.UUID  `json:"created_by" db:"created_by"`
	UpdatedBy       *uuid.UUID `json:"updated_by" db:"updated_by"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`

	Ingredients []*Ingredient `json:"ingredients,omitempty" db:"-"`
	TotalCost   float64       `json:"total_cost" db:"-"`
	Profit      float64       `json:"profit" db:"-"`
	LossWarning bool          `json:"loss_warning" db:"-"`
}

type Ingredient struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ProductID       uuid.UUID `json:"product_id" db:"product_id"`
	InventoryItemID uuid.UUID `json:"inventory_item_id" db:"inventory_item_id"`
	Quantity        float64   `json:"quantity" db:"quantity"`
	Position        int       `json:"position" db:"position"`

	// Joined from the inventory item for costing and display
	ItemName  string  `json:"item_name,omitempty" db:"-"`
	UnitPrice float64 `json:"unit_price,omitempty" db:"-"`
}
