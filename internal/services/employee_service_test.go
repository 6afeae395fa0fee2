package services

import (
	"context"
	"testing"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceTestSuite struct {
	suite.Suite
	userRepo   *MockUserRepository
	service    EmployeeService
	businessID uuid.UUID
	ctx        context.Context
}

func (suite *EmployeeServiceTestSuite) SetupTest() {
	suite.userRepo = new(MockUserRepository)
	suite.service = NewEmployeeService(suite.userRepo)
	suite.businessID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *EmployeeServiceTestSuite) TearDownTest() {
	suite.userRepo.AssertExpectations(suite.T())
}

func TestEmployeeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeServiceTestSuite))
}

func (suite *EmployeeServiceTestSuite) TestCreate_OwnerCreatesAdmin() {
	suite.userRepo.On("GetByEmail", suite.ctx, "admin@example.com").Return(nil, pgx.ErrNoRows)
	suite.userRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := suite.service.Create(suite.ctx, suite.businessID, models.RoleOwner,
		"Ada Admin", "admin@example.com", "long-enough-password", models.RoleAdmin)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RoleAdmin, user.Role)
	assert.True(suite.T(), user.IsActive)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("long-enough-password")))
}

func (suite *EmployeeServiceTestSuite) TestCreate_AdminCreatesCashier() {
	suite.userRepo.On("GetByEmail", suite.ctx, "cash@example.com").Return(nil, pgx.ErrNoRows)
	suite.userRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := suite.service.Create(suite.ctx, suite.businessID, models.RoleAdmin,
		"Carl Cash", "cash@example.com", "long-enough-password", models.RoleCashier)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RoleCashier, user.Role)
}

func (suite *EmployeeServiceTestSuite) TestCreate_AdminCannotCreateAdmin() {
	_, err := suite.service.Create(suite.ctx, suite.businessID, models.RoleAdmin,
		"Second Admin", "admin2@example.com", "long-enough-password", models.RoleAdmin)
	assert.Error(suite.T(), err)
}

// There is exactly one owner per business, created at registration.
func (suite *EmployeeServiceTestSuite) TestCreate_NobodyCreatesOwner() {
	_, err := suite.service.Create(suite.ctx, suite.businessID, models.RoleOwner,
		"Second Owner", "owner2@example.com", "long-enough-password", models.RoleOwner)
	assert.Error(suite.T(), err)
}

func (suite *EmployeeServiceTestSuite) TestCreate_CashierCannotCreate() {
	_, err := suite.service.Create(suite.ctx, suite.businessID, models.RoleCashier,
		"New Cook", "cook@example.com", "long-enough-password", models.RoleCook)
	assert.Error(suite.T(), err)
}

func (suite *EmployeeServiceTestSuite) TestCreate_EmailTaken() {
	existing := &models.User{ID: uuid.New(), Email: "taken@example.com"}
	suite.userRepo.On("GetByEmail", suite.ctx, "taken@example.com").Return(existing, nil)

	_, err := suite.service.Create(suite.ctx, suite.businessID, models.RoleOwner,
		"New Waiter", "taken@example.com", "long-enough-password", models.RoleWaiter)
	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
}

func (suite *EmployeeServiceTestSuite) TestCreate_ShortPassword() {
	_, err := suite.service.Create(suite.ctx, suite.businessID, models.RoleOwner,
		"New Waiter", "waiter@example.com", "short", models.RoleWaiter)
	assert.Error(suite.T(), err)
}

func (suite *EmployeeServiceTestSuite) TestCreate_UnknownRole() {
	_, err := suite.service.Create(suite.ctx, suite.businessID, models.RoleOwner,
		"New Person", "person@example.com", "long-enough-password", "janitor")
	assert.Error(suite.T(), err)
}

func (suite *EmployeeServiceTestSuite) TestUpdate_PreservesPasswordHash() {
	userID := uuid.New()
	existing := &models.User{
		ID: userID, BusinessID: suite.businessID, Email: "w@example.com",
		PasswordHash: "hash-stays", FullName: "Wanda", Role: models.RoleWaiter, IsActive: true,
	}
	suite.userRepo.On("GetByID", suite.ctx, suite.businessID, userID).Return(existing, nil)
	suite.userRepo.On("Update", suite.ctx, mock.AnythingOfType("*models.User")).Return(nil)

	updated, err := suite.service.Update(suite.ctx, models.RoleOwner, &models.User{
		ID: userID, BusinessID: suite.businessID, Email: "w@example.com",
		FullName: "Wanda Waiter", Role: models.RoleWaiter, IsActive: true,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "hash-stays", updated.PasswordHash)
}

func (suite *EmployeeServiceTestSuite) TestUpdate_OwnerCannotBeDemoted() {
	userID := uuid.New()
	existing := &models.User{
		ID: userID, BusinessID: suite.businessID, Role: models.RoleOwner, IsActive: true,
	}
	suite.userRepo.On("GetByID", suite.ctx, suite.businessID, userID).Return(existing, nil)

	_, err := suite.service.Update(suite.ctx, models.RoleOwner, &models.User{
		ID: userID, BusinessID: suite.businessID, Role: models.RoleAdmin, IsActive: true,
	})
	assert.Error(suite.T(), err)
}

func (suite *EmployeeServiceTestSuite) TestDeactivate_OwnerProtected() {
	userID := uuid.New()
	owner := &models.User{ID: userID, BusinessID: suite.businessID, Role: models.RoleOwner}
	suite.userRepo.On("GetByID", suite.ctx, suite.businessID, userID).Return(owner, nil)

	err := suite.service.Deactivate(suite.ctx, suite.businessID, userID)
	assert.Error(suite.T(), err)
}

func (suite *EmployeeServiceTestSuite) TestDelete_OwnerProtected() {
	userID := uuid.New()
	owner := &models.User{ID: userID, BusinessID: suite.businessID, Role: models.RoleOwner}
	suite.userRepo.On("GetByID", suite.ctx, suite.businessID, userID).Return(owner, nil)

	err := suite.service.Delete(suite.ctx, suite.businessID, userID)
	assert.Error(suite.T(), err)
}

func (suite *EmployeeServiceTestSuite) TestDeactivate() {
	userID := uuid.New()
	cook := &models.User{ID: userID, BusinessID: suite.businessID, Role: models.RoleCook}
	suite.userRepo.On("GetByID", suite.ctx, suite.businessID, userID).Return(cook, nil)
	suite.userRepo.On("Deactivate", suite.ctx, suite.businessID, userID).Return(nil)

	err := suite.service.Deactivate(suite.ctx, suite.businessID, userID)
	assert.NoError(suite.T(), err)
}
