package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var movementCols = []string{"id", "business_id", "inventory_item_id", "quantity_change", "movement_type",
	"reason", "created_by", "reverted", "created_at"}

type MovementRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       MovementRepository
	businessID uuid.UUID
	itemID     uuid.UUID
	actorID    uuid.UUID
	ctx        context.Context
}

func (suite *MovementRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewMovementRepo(mock)
	suite.businessID = uuid.New()
	suite.itemID = uuid.New()
	suite.actorID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *MovementRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestMovementRepoTestSuite(t *testing.T) {
	suite.Run(t, new(MovementRepoTestSuite))
}

func (suite *MovementRepoTestSuite) TestCreate() {
	reason := "delivery"
	movement := &models.Movement{
		ID:              uuid.New(),
		BusinessID:      suite.businessID,
		InventoryItemID: suite.itemID,
		QuantityChange:  25,
		MovementType:    models.MovementManualIn,
		Reason:          &reason,
		CreatedBy:       suite.actorID,
	}
	suite.mock.ExpectExec(`INSERT INTO movements`).
		WithArgs(movement.ID, suite.businessID, suite.itemID, 25.0, models.MovementManualIn, &reason, suite.actorID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, movement)
	assert.NoError(suite.T(), err)
}

func (suite *MovementRepoTestSuite) TestGetByID() {
	movementID := uuid.New()
	suite.mock.ExpectQuery(`FROM movements WHERE business_id = \$1 AND id = \$2`).
		WithArgs(suite.businessID, movementID).
		WillReturnRows(pgxmock.NewRows(movementCols).
			AddRow(movementID, suite.businessID, suite.itemID, -10.0, models.MovementManualOut,
				nil, suite.actorID, false, time.Now()))

	movement, err := suite.repo.GetByID(suite.ctx, suite.businessID, movementID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), movementID, movement.ID)
	assert.Equal(suite.T(), -10.0, movement.QuantityChange)
	assert.False(suite.T(), movement.Reverted)
}

func (suite *MovementRepoTestSuite) TestMarkReverted() {
	movementID := uuid.New()
	suite.mock.ExpectExec(`UPDATE movements SET reverted = TRUE`).
		WithArgs(suite.businessID, movementID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.MarkReverted(suite.ctx, suite.businessID, movementID)
	assert.NoError(suite.T(), err)
}

func (suite *MovementRepoTestSuite) TestList_FilteredByType() {
	suite.mock.ExpectQuery(`FROM movements WHERE business_id = \$1 AND movement_type = \$2`).
		WithArgs(suite.businessID, models.MovementTransferOut, 50, 0).
		WillReturnRows(pgxmock.NewRows(movementCols).
			AddRow(uuid.New(), suite.businessID, suite.itemID, -5.0, models.MovementTransferOut,
				nil, suite.actorID, false, time.Now()))

	movements, err := suite.repo.List(suite.ctx, suite.businessID, models.MovementTransferOut, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), movements, 1)
}

func (suite *MovementRepoTestSuite) TestListByItem() {
	suite.mock.ExpectQuery(`WHERE business_id = \$1 AND inventory_item_id = \$2`).
		WithArgs(suite.businessID, suite.itemID, 50, 0).
		WillReturnRows(pgxmock.NewRows(movementCols).
			AddRow(uuid.New(), suite.businessID, suite.itemID, 25.0, models.MovementManualIn,
				nil, suite.actorID, false, time.Now()).
			AddRow(uuid.New(), suite.businessID, suite.itemID, -10.0, models.MovementManualOut,
				nil, suite.actorID, false, time.Now()))

	movements, err := suite.repo.ListByItem(suite.ctx, suite.businessID, suite.itemID, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), movements, 2)
}

// A query that fails mid-stream must surface the error, not a short list.
func (suite *MovementRepoTestSuite) TestList_RowError() {
	suite.mock.ExpectQuery(`FROM movements WHERE business_id = \$1`).
		WithArgs(suite.businessID, 50, 0).
		WillReturnRows(pgxmock.NewRows(movementCols).
			AddRow(uuid.New(), suite.businessID, suite.itemID, 25.0, models.MovementManualIn,
				nil, suite.actorID, false, time.Now()).
			AddRow(uuid.New(), suite.businessID, suite.itemID, -10.0, models.MovementManualOut,
				nil, suite.actorID, false, time.Now()).
			RowError(1, errors.New("connection reset")))

	movements, err := suite.repo.List(suite.ctx, suite.businessID, "", 50, 0)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), movements)
}

func (suite *MovementRepoTestSuite) TestSumDeltas() {
	suite.mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity_change\), 0\)`).
		WithArgs(suite.businessID, suite.itemID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(15.0))

	sum, err := suite.repo.SumDeltas(suite.ctx, suite.businessID, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 15.0, sum)
}
