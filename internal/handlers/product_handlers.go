package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/labstack/echo/v4"
)

// ProductHandlers handles recipe and costing requests.
type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

type CreateProductRequest struct {
	Name            string                    `json:"name"`
	Category        *string                   `json:"category"`
	SalePrice       float64                   `json:"sale_price"`
	ProfitMarginPct *float64                  `json:"profit_margin_pct"`
	Ingredients     []services.IngredientLine `json:"ingredients"`
}

func (h *ProductHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, userID, err := identity(ctx)
	if err != nil {
		return err
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	product := &models.Product{
		BusinessID:      businessID,
		Name:            req.Name,
		Category:        req.Category,
		SalePrice:       req.SalePrice,
		ProfitMarginPct: req.ProfitMarginPct,
		CreatedBy:       userID,
	}
	created, err := h.productService.Create(ctx, product, req.Ingredients)
	if err != nil {
		return domainError(err, "Failed to create product")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ProductHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	productID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.productService.Get(ctx, businessID, productID)
	if err != nil {
		return domainError(err, "Failed to load product")
	}
	return c.JSON(http.StatusOK, product)
}

type ListProductsRequest struct {
	Category   string `query:"category"`
	ActiveOnly bool   `query:"active_only"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

func (h *ProductHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}

	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	products, err := h.productService.List(ctx, businessID, req.Category, req.ActiveOnly, limit, offset)
	if err != nil {
		return domainError(err, "Failed to list products")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

type UpdateProductRequest struct {
	Name            string   `json:"name"`
	Category        *string  `json:"category"`
	SalePrice       *float64 `json:"sale_price"`
	ProfitMarginPct *float64 `json:"profit_margin_pct"`
	IsActive        *bool    `json:"is_active"`
}

func (h *ProductHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, userID, err := identity(ctx)
	if err != nil {
		return err
	}
	productID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	existing, err := h.productService.Get(ctx, businessID, productID)
	if err != nil {
		return domainError(err, "Failed to load product")
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Category != nil {
		existing.Category = req.Category
	}
	if req.SalePrice != nil {
		existing.SalePrice = *req.SalePrice
	}
	if req.ProfitMarginPct != nil {
		existing.ProfitMarginPct = req.ProfitMarginPct
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	existing.UpdatedBy = &userID

	updated, err := h.productService.Update(ctx, existing)
	if err != nil {
		return domainError(err, "Failed to update product")
	}
	return c.JSON(http.StatusOK, updated)
}

type ReplaceIngredientsRequest struct {
	Ingredients []services.IngredientLine `json:"ingredients"`
}

func (h *ProductHandlers) ReplaceIngredients(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	productID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req ReplaceIngredientsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	product, err := h.productService.ReplaceIngredients(ctx, businessID, productID, req.Ingredients)
	if err != nil {
		return domainError(err, "Failed to replace ingredients")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandlers) Deactivate(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, userID, err := identity(ctx)
	if err != nil {
		return err
	}
	productID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.productService.Deactivate(ctx, businessID, productID, userID); err != nil {
		return domainError(err, "Failed to deactivate product")
	}
	return c.NoContent(http.StatusNoContent)
}

type PrepareProductRequest struct {
	Servings float64 `json:"servings"`
}

func (h *ProductHandlers) Prepare(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, userID, err := identity(ctx)
	if err != nil {
		return err
	}
	productID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req := PrepareProductRequest{Servings: 1}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	movements, err := h.productService.Prepare(ctx, businessID, productID, userID, req.Servings)
	if err != nil {
		return domainError(err, "Failed to prepare product")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"movements": movements})
}

func (h *ProductHandlers) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()

	businessID, _, err := identity(ctx)
	if err != nil {
		return err
	}
	productID, err := common.ValidateUUIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to open uploaded file")
	}
	defer src.Close()

	url, err := h.productService.UploadImage(ctx, businessID, productID, file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return domainError(err, "Failed to upload image")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"image_url": url})
}
