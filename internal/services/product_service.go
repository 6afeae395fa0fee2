package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"restomart/internal/caching"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
)

const (
	productCacheTTL   = 5 * time.Minute
	imageURLExpiry    = 24 * time.Hour
	maxImageSizeBytes = 5 << 20
)

// IngredientLine is one requested recipe line.
type IngredientLine struct {
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Quantity        float64   `json:"quantity"`
}

// ProductService manages recipes and their costing. Cost and profit are always
// computed from current ingredient unit prices, never stored.
type ProductService interface {
	Create(ctx context.Context, product *models.Product, lines []IngredientLine) (*models.Product, error)
	Get(ctx context.Context, businessID, productID uuid.UUID) (*models.Product, error)
	List(ctx context.Context, businessID uuid.UUID, category string, activeOnly bool, limit, offset int) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	ReplaceIngredients(ctx context.Context, businessID, productID uuid.UUID, lines []IngredientLine) (*models.Product, error)
	Deactivate(ctx context.Context, businessID, productID, actorID uuid.UUID) error
	Prepare(ctx context.Context, businessID, productID, actorID uuid.UUID, servings float64) ([]*models.Movement, error)
	UploadImage(ctx context.Context, businessID, productID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type productService struct {
	db       repositories.DB
	cacheSvc caching.CacheService
	minioSvc MinioService
	bucket   string
}

func NewProductService(db repositories.DB, cacheSvc caching.CacheService, minioSvc MinioService, bucket string) ProductService {
	return &productService{db: db, cacheSvc: cacheSvc, minioSvc: minioSvc, bucket: bucket}
}

// Create writes the product header and its recipe lines in one transaction.
// Every referenced inventory item must belong to the product's business.
func (s *productService) Create(ctx context.Context, product *models.Product, lines []IngredientLine) (*models.Product, error) {
	if product.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if product.SalePrice < 0 {
		return nil, fmt.Errorf("sale price cannot be negative")
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	productRepo := repositories.NewProductRepo(tx)
	itemRepo := repositories.NewInventoryItemRepo(tx)

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.IsActive = true
	if err := productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	if err := s.writeIngredients(ctx, productRepo, itemRepo, product.BusinessID, product.ID, lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit product: %w", err)
	}
	return s.load(ctx, product.BusinessID, product.ID)
}

func (s *productService) Get(ctx context.Context, businessID, productID uuid.UUID) (*models.Product, error) {
	if cached, err := s.cacheSvc.GetProduct(ctx, businessID, productID); err == nil && cached != nil {
		return cached, nil
	}

	product, err := s.load(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.cacheSvc.SetProduct(ctx, businessID, product, productCacheTTL); err != nil {
		log.Printf("Failed to cache product %s: %v", productID, err)
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, businessID uuid.UUID, category string, activeOnly bool, limit, offset int) ([]*models.Product, error) {
	productRepo := repositories.NewProductRepo(s.db)
	products, err := productRepo.List(ctx, businessID, category, activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		ingredients, err := productRepo.GetIngredients(ctx, product.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load ingredients for product %s: %w", product.ID, err)
		}
		s.decorate(ctx, product, ingredients)
	}
	return products, nil
}

func (s *productService) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.SalePrice < 0 {
		return nil, fmt.Errorf("sale price cannot be negative")
	}
	productRepo := repositories.NewProductRepo(s.db)
	if _, err := productRepo.GetByID(ctx, product.BusinessID, product.ID); err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if err := productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	s.invalidate(ctx, product.BusinessID, product.ID)
	return s.load(ctx, product.BusinessID, product.ID)
}

// ReplaceIngredients swaps the entire recipe atomically.
func (s *productService) ReplaceIngredients(ctx context.Context, businessID, productID uuid.UUID, lines []IngredientLine) (*models.Product, error) {
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	productRepo := repositories.NewProductRepo(tx)
	itemRepo := repositories.NewInventoryItemRepo(tx)

	if _, err := productRepo.GetByID(ctx, businessID, productID); err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if err := productRepo.DeleteIngredients(ctx, productID); err != nil {
		return nil, fmt.Errorf("failed to clear ingredients: %w", err)
	}
	if err := s.writeIngredients(ctx, productRepo, itemRepo, businessID, productID, lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit recipe: %w", err)
	}

	s.invalidate(ctx, businessID, productID)
	return s.load(ctx, businessID, productID)
}

func (s *productService) Deactivate(ctx context.Context, businessID, productID, actorID uuid.UUID) error {
	if err := repositories.NewProductRepo(s.db).Deactivate(ctx, businessID, productID, actorID); err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	s.invalidate(ctx, businessID, productID)
	return nil
}

// Prepare deducts the recipe's ingredients for the given number of servings.
// All lines succeed or none do.
func (s *productService) Prepare(ctx context.Context, businessID, productID, actorID uuid.UUID, servings float64) ([]*models.Movement, error) {
	if servings <= 0 {
		return nil, fmt.Errorf("servings must be positive, got %v", servings)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	productRepo := repositories.NewProductRepo(tx)
	itemRepo := repositories.NewInventoryItemRepo(tx)
	movementRepo := repositories.NewMovementRepo(tx)

	product, err := productRepo.GetByID(ctx, businessID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	ingredients, err := productRepo.GetIngredients(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("product %s has no recipe", product.Name)
	}

	reason := fmt.Sprintf("preparation of %s", product.Name)
	var movements []*models.Movement
	for _, ing := range ingredients {
		needed := ing.Quantity * servings
		item, err := itemRepo.GetByID(ctx, businessID, ing.InventoryItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to load ingredient item %s: %w", ing.InventoryItemID, err)
		}
		if item.QuantityInStock < needed {
			return nil, fmt.Errorf("%w: item %s has %v in stock, recipe needs %v", ErrInsufficientStock, item.Name, item.QuantityInStock, needed)
		}

		movement := &models.Movement{
			ID:              uuid.New(),
			BusinessID:      businessID,
			InventoryItemID: item.ID,
			QuantityChange:  -needed,
			MovementType:    models.MovementRecipeConsumption,
			Reason:          &reason,
			CreatedBy:       actorID,
		}
		if err := movementRepo.Create(ctx, movement); err != nil {
			return nil, fmt.Errorf("failed to record consumption: %w", err)
		}
		if err := itemRepo.UpdateQuantity(ctx, businessID, item.ID, item.QuantityInStock-needed); err != nil {
			return nil, fmt.Errorf("failed to deduct stock: %w", err)
		}
		movements = append(movements, movement)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit preparation: %w", err)
	}

	for _, ing := range ingredients {
		if err := s.cacheSvc.DeleteItem(ctx, businessID, ing.InventoryItemID); err != nil {
			log.Printf("Failed to invalidate item cache for %s: %v", ing.InventoryItemID, err)
		}
	}
	if err := s.cacheSvc.DeleteSummary(ctx, businessID); err != nil {
		log.Printf("Failed to invalidate summary cache for business %s: %v", businessID, err)
	}
	return movements, nil
}

// UploadImage stores the image in object storage and records the object name.
// Reads replace the stored name with a presigned URL.
func (s *productService) UploadImage(ctx context.Context, businessID, productID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if size <= 0 || size > maxImageSizeBytes {
		return "", fmt.Errorf("image size must be between 1 byte and %d bytes", maxImageSizeBytes)
	}

	productRepo := repositories.NewProductRepo(s.db)
	if _, err := productRepo.GetByID(ctx, businessID, productID); err != nil {
		return "", fmt.Errorf("failed to load product: %w", err)
	}

	ext := path.Ext(filename)
	objectName := fmt.Sprintf("products/%s/%s%s", businessID, productID, ext)
	if err := s.minioSvc.UploadImage(ctx, s.bucket, objectName, reader, size, contentType); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if err := productRepo.SetImageURL(ctx, businessID, productID, objectName); err != nil {
		return "", fmt.Errorf("failed to record image: %w", err)
	}
	s.invalidate(ctx, businessID, productID)

	url, err := s.minioSvc.GetPresignedURL(ctx, s.bucket, objectName, imageURLExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign image URL: %w", err)
	}
	return url, nil
}

func (s *productService) load(ctx context.Context, businessID, productID uuid.UUID) (*models.Product, error) {
	productRepo := repositories.NewProductRepo(s.db)
	product, err := productRepo.GetByID(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}
	ingredients, err := productRepo.GetIngredients(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}
	s.decorate(ctx, product, ingredients)
	return product, nil
}

// decorate fills the computed costing fields and presigns the image URL.
func (s *productService) decorate(ctx context.Context, product *models.Product, ingredients []*models.Ingredient) {
	product.Ingredients = ingredients
	product.TotalCost = 0
	for _, ing := range ingredients {
		product.TotalCost += ing.Quantity * ing.UnitPrice
	}
	product.Profit = product.SalePrice - product.TotalCost
	product.LossWarning = product.Profit < 0

	if product.ImageURL != nil && *product.ImageURL != "" && !strings.HasPrefix(*product.ImageURL, "http") {
		if url, err := s.minioSvc.GetPresignedURL(ctx, s.bucket, *product.ImageURL, imageURLExpiry); err == nil {
			product.ImageURL = &url
		} else {
			log.Printf("Failed to presign image URL for product %s: %v", product.ID, err)
		}
	}
}

func (s *productService) writeIngredients(ctx context.Context, productRepo repositories.ProductRepository,
	itemRepo repositories.InventoryItemRepository, businessID, productID uuid.UUID, lines []IngredientLine) error {
	for i, line := range lines {
		if _, err := itemRepo.GetByID(ctx, businessID, line.InventoryItemID); err != nil {
			return fmt.Errorf("failed to load ingredient item %s: %w", line.InventoryItemID, err)
		}
		ingredient := &models.Ingredient{
			ID:              uuid.New(),
			ProductID:       productID,
			InventoryItemID: line.InventoryItemID,
			Quantity:        line.Quantity,
			Position:        i,
		}
		if err := productRepo.CreateIngredient(ctx, ingredient); err != nil {
			return fmt.Errorf("failed to create ingredient: %w", err)
		}
	}
	return nil
}

func (s *productService) invalidate(ctx context.Context, businessID, productID uuid.UUID) {
	if err := s.cacheSvc.DeleteProduct(ctx, businessID, productID); err != nil {
		log.Printf("Failed to invalidate product cache for %s: %v", productID, err)
	}
}

func validateLines(lines []IngredientLine) error {
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("ingredient quantity must be positive, got %v", line.Quantity)
		}
		if seen[line.InventoryItemID] {
			return fmt.Errorf("duplicate ingredient %s", line.InventoryItemID)
		}
		seen[line.InventoryItemID] = true
	}
	return nil
}
