package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Deactivate(ctx context.Context, businessID, id uuid.UUID) error
	DeletePermanent(ctx context.Context, businessID, id uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID, activeOnly bool, limit, offset int) ([]*models.Supplier, error)
}

type supplierRepo struct {
	db DBTX
}

func NewSupplierRepo(db DBTX) SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (id, business_id, name, supplier_type, tax_id, legal_representative, phone, email, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, supplier.ID, supplier.BusinessID, supplier.Name, supplier.SupplierType,
		supplier.TaxID, supplier.LegalRepresentative, supplier.Phone, supplier.Email, supplier.Address, supplier.IsActive)
	return err
}

func (r *supplierRepo) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `
		SELECT id, business_id, name, supplier_type, tax_id, legal_representative, phone, email, address, is_active, created_at, updated_at
		FROM suppliers
		WHERE business_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, businessID, id).Scan(&supplier.ID, &supplier.BusinessID, &supplier.Name,
		&supplier.SupplierType, &supplier.TaxID, &supplier.LegalRepresentative, &supplier.Phone, &supplier.Email,
		&supplier.Address, &supplier.IsActive, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

func (r *supplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, supplier_type = $2, tax_id = $3, legal_representative = $4, phone = $5, email = $6, address = $7, is_active = $8, updated_at = NOW()
		WHERE business_id = $9 AND id = $10
	`
	_, err := r.db.Exec(ctx, query, supplier.Name, supplier.SupplierType, supplier.TaxID, supplier.LegalRepresentative,
		supplier.Phone, supplier.Email, supplier.Address, supplier.IsActive, supplier.BusinessID, supplier.ID)
	return err
}

func (r *supplierRepo) Deactivate(ctx context.Context, businessID, id uuid.UUID) error {
	query := `UPDATE suppliers SET is_active = FALSE, updated_at = NOW() WHERE business_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, businessID, id)
	return err
}

func (r *supplierRepo) DeletePermanent(ctx context.Context, businessID, id uuid.UUID) error {
	query := `DELETE FROM suppliers WHERE business_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, businessID, id)
	return err
}

func (r *supplierRepo) List(ctx context.Context, businessID uuid.UUID, activeOnly bool, limit, offset int) ([]*models.Supplier, error) {
	query := `
		SELECT id, business_id, name, supplier_type, tax_id, legal_representative, phone, email, address, is_active, created_at, updated_at
		FROM suppliers
		WHERE business_id = $1 AND ($2 = FALSE OR is_active = TRUE)
		ORDER BY name
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, businessID, activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		supplier := &models.Supplier{}
		if err := rows.Scan(&supplier.ID, &supplier.BusinessID, &supplier.Name, &supplier.SupplierType, &supplier.TaxID,
			&supplier.LegalRepresentative, &supplier.Phone, &supplier.Email, &supplier.Address, &supplier.IsActive,
			&supplier.CreatedAt, &supplier.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return suppliers, nil
}
