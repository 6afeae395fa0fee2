package models

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	BusinessID          uuid.UUID `json:"business_id" db:"business_id"`
	Name                string    `json:"name" db:"name"`
	SupplierType        *string   `json:"supplier_type" db:"supplier_type"`
	TaxID               *string   `json:"tax_id" db:"tax_id"`
	LegalRepresentative *string   `json:"legal_representative" db:"legal_representative"`
	Phone               *string   `json:"phone" db:"phone"`
	Email               *string   `json:"email" db:"email"`
	Address             *string   `json:"address" db:"address"`
	IsActive            bool      `json:"is_active" db:"is_active"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}
