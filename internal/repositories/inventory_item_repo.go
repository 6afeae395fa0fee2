package repositories

import (
	"context"
	"fmt"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type InventoryItemRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	UpdateQuantity(ctx context.Context, businessID, id uuid.UUID, quantity float64) error
	Deactivate(ctx context.Context, businessID, id uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID, filter *models.InventoryItemFilter) ([]*models.InventoryItem, error)
	LowStock(ctx context.Context, businessID uuid.UUID) ([]*models.InventoryItem, error)
	FindBySKU(ctx context.Context, businessID uuid.UUID, sku string) (*models.InventoryItem, error)
	FindByName(ctx context.Context, businessID uuid.UUID, name string) (*models.InventoryItem, error)
	StockSummary(ctx context.Context, businessID uuid.UUID) (itemCount int, stockValue float64, lowStockCount int, err error)
}

type inventoryItemRepo struct {
	db DBTX
}

func NewInventoryItemRepo(db DBTX) InventoryItemRepository {
	return &inventoryItemRepo{db: db}
}

const itemColumns = `id, business_id, name, category, unit_of_measure, sku, unit_price, tax_percentage, include_tax,
	min_stock, max_stock, quantity_in_stock, supplier_id, is_active, created_at, updated_at`

func scanItem(row interface{ Scan(dest ...any) error }) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	err := row.Scan(&item.ID, &item.BusinessID, &item.Name, &item.Category, &item.UnitOfMeasure, &item.SKU,
		&item.UnitPrice, &item.TaxPercentage, &item.IncludeTax, &item.MinStock, &item.MaxStock,
		&item.QuantityInStock, &item.SupplierID, &item.IsActive, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *inventoryItemRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, business_id, name, category, unit_of_measure, sku, unit_price, tax_percentage,
			include_tax, min_stock, max_stock, quantity_in_stock, supplier_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.BusinessID, item.Name, item.Category, item.UnitOfMeasure, item.SKU,
		item.UnitPrice, item.TaxPercentage, item.IncludeTax, item.MinStock, item.MaxStock, item.QuantityInStock,
		item.SupplierID, item.IsActive)
	return err
}

func (r *inventoryItemRepo) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.InventoryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE business_id = $1 AND id = $2`, itemColumns)
	return scanItem(r.db.QueryRow(ctx, query, businessID, id))
}

// Update writes item metadata only. Stock is mutated exclusively through
// UpdateQuantity inside a ledger transaction.
func (r *inventoryItemRepo) Update(ctx context.Context, item *models.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $1, category = $2, unit_of_measure = $3, sku = $4, unit_price = $5, tax_percentage = $6,
			include_tax = $7, min_stock = $8, max_stock = $9, supplier_id = $10, is_active = $11, updated_at = NOW()
		WHERE business_id = $12 AND id = $13
	`
	_, err := r.db.Exec(ctx, query, item.Name, item.Category, item.UnitOfMeasure, item.SKU, item.UnitPrice,
		item.TaxPercentage, item.IncludeTax, item.MinStock, item.MaxStock, item.SupplierID, item.IsActive,
		item.BusinessID, item.ID)
	return err
}

func (r *inventoryItemRepo) UpdateQuantity(ctx context.Context, businessID, id uuid.UUID, quantity float64) error {
	query := `UPDATE inventory_items SET quantity_in_stock = $1, updated_at = NOW() WHERE business_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, quantity, businessID, id)
	return err
}

func (r *inventoryItemRepo) Deactivate(ctx context.Context, businessID, id uuid.UUID) error {
	query := `UPDATE inventory_items SET is_active = FALSE, updated_at = NOW() WHERE business_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, businessID, id)
	return err
}

func (r *inventoryItemRepo) List(ctx context.Context, businessID uuid.UUID, filter *models.InventoryItemFilter) ([]*models.InventoryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE business_id = $1`, itemColumns)
	args := []any{businessID}
	argn := 1

	if filter.Category != "" {
		argn++
		query += fmt.Sprintf(` AND category = $%d`, argn)
		args = append(args, filter.Category)
	}
	if filter.SupplierID != nil {
		argn++
		query += fmt.Sprintf(` AND supplier_id = $%d`, argn)
		args = append(args, *filter.SupplierID)
	}
	if filter.ActiveOnly {
		query += ` AND is_active = TRUE`
	}

	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, argn+1, argn+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryItemRepo) LowStock(ctx context.Context, businessID uuid.UUID) ([]*models.InventoryItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM inventory_items
		WHERE business_id = $1 AND is_active = TRUE AND quantity_in_stock < min_stock
		ORDER BY quantity_in_stock / NULLIF(min_stock, 0)
	`, itemColumns)
	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryItemRepo) FindBySKU(ctx context.Context, businessID uuid.UUID, sku string) (*models.InventoryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE business_id = $1 AND sku = $2 AND is_active = TRUE`, itemColumns)
	return scanItem(r.db.QueryRow(ctx, query, businessID, sku))
}

func (r *inventoryItemRepo) FindByName(ctx context.Context, businessID uuid.UUID, name string) (*models.InventoryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE business_id = $1 AND LOWER(name) = LOWER($2) AND is_active = TRUE`, itemColumns)
	return scanItem(r.db.QueryRow(ctx, query, businessID, name))
}

func (r *inventoryItemRepo) StockSummary(ctx context.Context, businessID uuid.UUID) (int, float64, int, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(quantity_in_stock * unit_price), 0),
			COUNT(*) FILTER (WHERE quantity_in_stock < min_stock)
		FROM inventory_items
		WHERE business_id = $1 AND is_active = TRUE
	`
	var itemCount, lowStockCount int
	var stockValue float64
	err := r.db.QueryRow(ctx, query, businessID).Scan(&itemCount, &stockValue, &lowStockCount)
	if err != nil {
		return 0, 0, 0, err
	}
	return itemCount, stockValue, lowStockCount, nil
}
