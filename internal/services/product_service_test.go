package services

import (
	"context"
	"testing"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var productRowColumns = []string{"id", "business_id", "name", "category", "sale_price", "profit_margin_pct",
	"image_url", "is_active", "created_by", "updated_by", "created_at", "updated_at"}

var ingredientRowColumns = []string{"id", "product_id", "inventory_item_id", "quantity", "position", "name", "unit_price"}

type ProductServiceTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	service    ProductService
	businessID uuid.UUID
	productID  uuid.UUID
	actorID    uuid.UUID
	flourID    uuid.UUID
	cheeseID   uuid.UUID
	ctx        context.Context
}

func (suite *ProductServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.service = NewProductService(mock, newFakeCache(), nil, "product-images")
	suite.businessID = uuid.New()
	suite.productID = uuid.New()
	suite.actorID = uuid.New()
	suite.flourID = uuid.New()
	suite.cheeseID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *ProductServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func (suite *ProductServiceTestSuite) expectProductRow(name string, salePrice float64) {
	now := time.Now()
	category := "mains"
	suite.mock.ExpectQuery(`FROM products\s+WHERE business_id = \$1 AND id = \$2`).
		WithArgs(suite.businessID, suite.productID).
		WillReturnRows(pgxmock.NewRows(productRowColumns).
			AddRow(suite.productID, suite.businessID, name, &category, salePrice, nil,
				nil, true, suite.actorID, nil, now, now))
}

func (suite *ProductServiceTestSuite) expectIngredientRows(rows *pgxmock.Rows) {
	suite.mock.ExpectQuery(`FROM ingredients i`).
		WithArgs(suite.productID).
		WillReturnRows(rows)
}

// Cost is recomputed from current ingredient prices on every read.
func (suite *ProductServiceTestSuite) TestGet_Costing() {
	suite.expectProductRow("Margherita", 12.0)
	suite.expectIngredientRows(pgxmock.NewRows(ingredientRowColumns).
		AddRow(uuid.New(), suite.productID, suite.flourID, 0.25, 0, "Flour", 2.0).
		AddRow(uuid.New(), suite.productID, suite.cheeseID, 0.1, 1, "Cheese", 15.0))

	product, err := suite.service.Get(suite.ctx, suite.businessID, suite.productID)
	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 2.0, product.TotalCost, 0.0001)
	assert.InDelta(suite.T(), 10.0, product.Profit, 0.0001)
	assert.False(suite.T(), product.LossWarning)
}

// Selling below ingredient cost flags a loss, nothing more; the sale price is
// the merchant's call.
func (suite *ProductServiceTestSuite) TestGet_LossWarning() {
	suite.expectProductRow("Loss Leader", 1.0)
	suite.expectIngredientRows(pgxmock.NewRows(ingredientRowColumns).
		AddRow(uuid.New(), suite.productID, suite.cheeseID, 0.2, 0, "Cheese", 15.0))

	product, err := suite.service.Get(suite.ctx, suite.businessID, suite.productID)
	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 3.0, product.TotalCost, 0.0001)
	assert.True(suite.T(), product.LossWarning)
}

func (suite *ProductServiceTestSuite) TestPrepare() {
	suite.mock.ExpectBegin()
	suite.expectProductRow("Margherita", 12.0)
	suite.expectIngredientRows(pgxmock.NewRows(ingredientRowColumns).
		AddRow(uuid.New(), suite.productID, suite.flourID, 0.25, 0, "Flour", 2.0))
	now := time.Now()
	suite.mock.ExpectQuery(`FROM inventory_items WHERE business_id = \$1 AND id = \$2`).
		WithArgs(suite.businessID, suite.flourID).
		WillReturnRows(pgxmock.NewRows(itemRowColumns).
			AddRow(suite.flourID, suite.businessID, "Flour", "dry goods", "kg", nil, 2.0,
				0.0, false, 5.0, 500.0, 10.0, nil, true, now, now))
	suite.mock.ExpectExec(`INSERT INTO movements`).
		WithArgs(pgxmock.AnyArg(), suite.businessID, suite.flourID, -1.0, models.MovementRecipeConsumption,
			pgxmock.AnyArg(), suite.actorID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`UPDATE inventory_items SET quantity_in_stock`).
		WithArgs(9.0, suite.businessID, suite.flourID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	movements, err := suite.service.Prepare(suite.ctx, suite.businessID, suite.productID, suite.actorID, 4)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), movements, 1)
	assert.Equal(suite.T(), -1.0, movements[0].QuantityChange)
	assert.Equal(suite.T(), models.MovementRecipeConsumption, movements[0].MovementType)
}

func (suite *ProductServiceTestSuite) TestPrepare_InsufficientStock() {
	suite.mock.ExpectBegin()
	suite.expectProductRow("Margherita", 12.0)
	suite.expectIngredientRows(pgxmock.NewRows(ingredientRowColumns).
		AddRow(uuid.New(), suite.productID, suite.flourID, 0.25, 0, "Flour", 2.0))
	now := time.Now()
	suite.mock.ExpectQuery(`FROM inventory_items WHERE business_id = \$1 AND id = \$2`).
		WithArgs(suite.businessID, suite.flourID).
		WillReturnRows(pgxmock.NewRows(itemRowColumns).
			AddRow(suite.flourID, suite.businessID, "Flour", "dry goods", "kg", nil, 2.0,
				0.0, false, 5.0, 500.0, 0.5, nil, true, now, now))
	suite.mock.ExpectRollback()

	movements, err := suite.service.Prepare(suite.ctx, suite.businessID, suite.productID, suite.actorID, 4)
	assert.ErrorIs(suite.T(), err, ErrInsufficientStock)
	assert.Nil(suite.T(), movements)
}

func (suite *ProductServiceTestSuite) TestPrepare_RejectsNonPositiveServings() {
	_, err := suite.service.Prepare(suite.ctx, suite.businessID, suite.productID, suite.actorID, 0)
	assert.Error(suite.T(), err)
}

func (suite *ProductServiceTestSuite) TestPrepare_RequiresRecipe() {
	suite.mock.ExpectBegin()
	suite.expectProductRow("Empty Plate", 5.0)
	suite.expectIngredientRows(pgxmock.NewRows(ingredientRowColumns))
	suite.mock.ExpectRollback()

	_, err := suite.service.Prepare(suite.ctx, suite.businessID, suite.productID, suite.actorID, 1)
	assert.Error(suite.T(), err)
}

func (suite *ProductServiceTestSuite) TestCreate_RejectsDuplicateIngredient() {
	product := &models.Product{BusinessID: suite.businessID, Name: "Margherita", SalePrice: 12}
	lines := []IngredientLine{
		{InventoryItemID: suite.flourID, Quantity: 0.25},
		{InventoryItemID: suite.flourID, Quantity: 0.5},
	}
	_, err := suite.service.Create(suite.ctx, product, lines)
	assert.Error(suite.T(), err)
}

func (suite *ProductServiceTestSuite) TestCreate_RejectsNonPositiveQuantity() {
	product := &models.Product{BusinessID: suite.businessID, Name: "Margherita", SalePrice: 12}
	lines := []IngredientLine{{InventoryItemID: suite.flourID, Quantity: -1}}
	_, err := suite.service.Create(suite.ctx, product, lines)
	assert.Error(suite.T(), err)
}

func (suite *ProductServiceTestSuite) TestUploadImage_RejectsOversize() {
	_, err := suite.service.UploadImage(suite.ctx, suite.businessID, suite.productID,
		"photo.png", nil, maxImageSizeBytes+1, "image/png")
	assert.Error(suite.T(), err)
}
