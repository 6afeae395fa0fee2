package repositories

import (
	"context"
	"testing"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var itemCols = []string{"id", "business_id", "name", "category", "unit_of_measure", "sku", "unit_price",
	"tax_percentage", "include_tax", "min_stock", "max_stock", "quantity_in_stock", "supplier_id", "is_active",
	"created_at", "updated_at"}

type InventoryItemRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       InventoryItemRepository
	businessID uuid.UUID
	itemID     uuid.UUID
	ctx        context.Context
}

func (suite *InventoryItemRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewInventoryItemRepo(mock)
	suite.businessID = uuid.New()
	suite.itemID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *InventoryItemRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestInventoryItemRepoTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryItemRepoTestSuite))
}

func (suite *InventoryItemRepoTestSuite) flourRow(quantity float64) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(itemCols).
		AddRow(suite.itemID, suite.businessID, "Flour", "dry goods", "kg", nil, 1.2,
			0.0, false, 20.0, 500.0, quantity, nil, true, now, now)
}

func (suite *InventoryItemRepoTestSuite) TestCreate() {
	item := &models.InventoryItem{
		ID:            uuid.New(),
		BusinessID:    suite.businessID,
		Name:          "Flour",
		Category:      "dry goods",
		UnitOfMeasure: "kg",
		UnitPrice:     1.2,
		MinStock:      20,
		MaxStock:      500,
		IsActive:      true,
	}
	suite.mock.ExpectExec(`INSERT INTO inventory_items`).
		WithArgs(item.ID, suite.businessID, "Flour", "dry goods", "kg", pgxmock.AnyArg(), 1.2,
			0.0, false, 20.0, 500.0, 0.0, pgxmock.AnyArg(), true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, item)
	assert.NoError(suite.T(), err)
}

func (suite *InventoryItemRepoTestSuite) TestGetByID() {
	suite.mock.ExpectQuery(`FROM inventory_items WHERE business_id = \$1 AND id = \$2`).
		WithArgs(suite.businessID, suite.itemID).
		WillReturnRows(suite.flourRow(100))

	item, err := suite.repo.GetByID(suite.ctx, suite.businessID, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Flour", item.Name)
	assert.Equal(suite.T(), 100.0, item.QuantityInStock)
}

// Items are only visible through their own business scope.
func (suite *InventoryItemRepoTestSuite) TestGetByID_OtherBusinessNotFound() {
	otherBusiness := uuid.New()
	suite.mock.ExpectQuery(`FROM inventory_items WHERE business_id = \$1 AND id = \$2`).
		WithArgs(otherBusiness, suite.itemID).
		WillReturnError(pgx.ErrNoRows)

	item, err := suite.repo.GetByID(suite.ctx, otherBusiness, suite.itemID)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), item)
}

func (suite *InventoryItemRepoTestSuite) TestUpdateQuantity() {
	suite.mock.ExpectExec(`UPDATE inventory_items SET quantity_in_stock = \$1`).
		WithArgs(42.5, suite.businessID, suite.itemID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateQuantity(suite.ctx, suite.businessID, suite.itemID, 42.5)
	assert.NoError(suite.T(), err)
}

func (suite *InventoryItemRepoTestSuite) TestList_WithFilter() {
	supplierID := uuid.New()
	filter := &models.InventoryItemFilter{
		Category:   "dry goods",
		SupplierID: &supplierID,
		ActiveOnly: true,
		Limit:      50,
		Offset:     0,
	}
	suite.mock.ExpectQuery(`AND category = \$2 AND supplier_id = \$3 AND is_active = TRUE`).
		WithArgs(suite.businessID, "dry goods", supplierID, 50, 0).
		WillReturnRows(suite.flourRow(100))

	items, err := suite.repo.List(suite.ctx, suite.businessID, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 1)
}

func (suite *InventoryItemRepoTestSuite) TestLowStock() {
	suite.mock.ExpectQuery(`quantity_in_stock < min_stock`).
		WithArgs(suite.businessID).
		WillReturnRows(suite.flourRow(10))

	items, err := suite.repo.LowStock(suite.ctx, suite.businessID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 1)
	assert.True(suite.T(), items[0].LowStock())
}

func (suite *InventoryItemRepoTestSuite) TestFindBySKU() {
	sku := "FL-01"
	suite.mock.ExpectQuery(`WHERE business_id = \$1 AND sku = \$2 AND is_active = TRUE`).
		WithArgs(suite.businessID, sku).
		WillReturnRows(suite.flourRow(100))

	item, err := suite.repo.FindBySKU(suite.ctx, suite.businessID, sku)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.itemID, item.ID)
}

func (suite *InventoryItemRepoTestSuite) TestFindByName_CaseInsensitive() {
	suite.mock.ExpectQuery(`LOWER\(name\) = LOWER\(\$2\)`).
		WithArgs(suite.businessID, "flour").
		WillReturnRows(suite.flourRow(100))

	item, err := suite.repo.FindByName(suite.ctx, suite.businessID, "flour")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Flour", item.Name)
}

func (suite *InventoryItemRepoTestSuite) TestStockSummary() {
	suite.mock.ExpectQuery(`COUNT\(\*\) FILTER \(WHERE quantity_in_stock < min_stock\)`).
		WithArgs(suite.businessID).
		WillReturnRows(pgxmock.NewRows([]string{"count", "coalesce", "count"}).AddRow(12, 340.5, 3))

	itemCount, stockValue, lowStockCount, err := suite.repo.StockSummary(suite.ctx, suite.businessID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 12, itemCount)
	assert.Equal(suite.T(), 340.5, stockValue)
	assert.Equal(suite.T(), 3, lowStockCount)
}
