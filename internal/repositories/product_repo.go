package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Deactivate(ctx context.Context, businessID, id uuid.UUID, updatedBy uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID, category string, activeOnly bool, limit, offset int) ([]*models.Product, error)
	GetIngredients(ctx context.Context, productID uuid.UUID) ([]*models.Ingredient, error)
	DeleteIngredients(ctx context.Context, productID uuid.UUID) error
	CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error
	SetImageURL(ctx context.Context, businessID, id uuid.UUID, imageURL string) error
}

type productRepo struct {
	db DBTX
}

func NewProductRepo(db DBTX) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, business_id, name, category, sale_price, profit_margin_pct, image_url, is_active,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.BusinessID, product.Name, product.Category,
		product.SalePrice, product.ProfitMarginPct, product.ImageURL, product.IsActive, product.CreatedBy, product.UpdatedBy)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, business_id, name, category, sale_price, profit_margin_pct, image_url, is_active,
			created_by, updated_by, created_at, updated_at
		FROM products
		WHERE business_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, businessID, id).Scan(&product.ID, &product.BusinessID, &product.Name,
		&product.Category, &product.SalePrice, &product.ProfitMarginPct, &product.ImageURL, &product.IsActive,
		&product.CreatedBy, &product.UpdatedBy, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, category = $2, sale_price = $3, profit_margin_pct = $4, is_active = $5, updated_by = $6, updated_at = NOW()
		WHERE business_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, product.Name, product.Category, product.SalePrice, product.ProfitMarginPct,
		product.IsActive, product.UpdatedBy, product.BusinessID, product.ID)
	return err
}

func (r *productRepo) Deactivate(ctx context.Context, businessID, id uuid.UUID, updatedBy uuid.UUID) error {
	query := `UPDATE products SET is_active = FALSE, updated_by = $1, updated_at = NOW() WHERE business_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, updatedBy, businessID, id)
	return err
}

func (r *productRepo) List(ctx context.Context, businessID uuid.UUID, category string, activeOnly bool, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT id, business_id, name, category, sale_price, profit_margin_pct, image_url, is_active,
			created_by, updated_by, created_at, updated_at
		FROM products
		WHERE business_id = $1
			AND ($2 = '' OR category = $2)
			AND ($3 = FALSE OR is_active = TRUE)
		ORDER BY name
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.Query(ctx, query, businessID, category, activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.BusinessID, &product.Name, &product.Category, &product.SalePrice,
			&product.ProfitMarginPct, &product.ImageURL, &product.IsActive, &product.CreatedBy, &product.UpdatedBy,
			&product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// GetIngredients joins the inventory item so costing uses the current unit
// price rather than a stored snapshot.
func (r *productRepo) GetIngredients(ctx context.Context, productID uuid.UUID) ([]*models.Ingredient, error) {
	query := `
		SELECT i.id, i.product_id, i.inventory_item_id, i.quantity, i.position, ii.name, ii.unit_price
		FROM ingredients i
		JOIN inventory_items ii ON ii.id = i.inventory_item_id
		WHERE i.product_id = $1
		ORDER BY i.position
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*models.Ingredient
	for rows.Next() {
		ing := &models.Ingredient{}
		if err := rows.Scan(&ing.ID, &ing.ProductID, &ing.InventoryItemID, &ing.Quantity, &ing.Position,
			&ing.ItemName, &ing.UnitPrice); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *productRepo) DeleteIngredients(ctx context.Context, productID uuid.UUID) error {
	query := `DELETE FROM ingredients WHERE product_id = $1`
	_, err := r.db.Exec(ctx, query, productID)
	return err
}

func (r *productRepo) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, product_id, inventory_item_id, quantity, position)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, ingredient.ID, ingredient.ProductID, ingredient.InventoryItemID,
		ingredient.Quantity, ingredient.Position)
	return err
}

func (r *productRepo) SetImageURL(ctx context.Context, businessID, id uuid.UUID, imageURL string) error {
	query := `UPDATE products SET image_url = $1, updated_at = NOW() WHERE business_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, imageURL, businessID, id)
	return err
}
