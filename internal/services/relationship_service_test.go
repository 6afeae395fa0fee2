package services

import (
	"context"
	"testing"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RelationshipServiceTestSuite struct {
	suite.Suite
	relRepo      *MockRelationshipRepository
	businessRepo *MockBusinessRepository
	service      RelationshipService
	requester    uuid.UUID
	target       uuid.UUID
	ctx          context.Context
}

func (suite *RelationshipServiceTestSuite) SetupTest() {
	suite.relRepo = new(MockRelationshipRepository)
	suite.businessRepo = new(MockBusinessRepository)
	suite.service = NewRelationshipService(suite.relRepo, suite.businessRepo)
	suite.requester = uuid.New()
	suite.target = uuid.New()
	suite.ctx = context.Background()
}

func (suite *RelationshipServiceTestSuite) TearDownTest() {
	suite.relRepo.AssertExpectations(suite.T())
	suite.businessRepo.AssertExpectations(suite.T())
}

func TestRelationshipServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RelationshipServiceTestSuite))
}

func (suite *RelationshipServiceTestSuite) pendingRelationship() *models.BusinessRelationship {
	return &models.BusinessRelationship{
		ID:                  uuid.New(),
		RequesterBusinessID: suite.requester,
		TargetBusinessID:    suite.target,
		Status:              models.RelationshipPending,
		CreatedAt:           time.Now(),
	}
}

func (suite *RelationshipServiceTestSuite) TestRequest() {
	suite.businessRepo.On("GetByID", suite.ctx, suite.target).
		Return(&models.Business{ID: suite.target, Name: "Corner Cafe"}, nil)
	suite.relRepo.On("ExistsNonRejected", suite.ctx, suite.requester, suite.target).Return(false, nil)
	suite.relRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.BusinessRelationship")).Return(nil)

	rel, err := suite.service.Request(suite.ctx, suite.requester, suite.target)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RelationshipPending, rel.Status)
	assert.Equal(suite.T(), suite.requester, rel.RequesterBusinessID)
	assert.Equal(suite.T(), suite.target, rel.TargetBusinessID)
}

func (suite *RelationshipServiceTestSuite) TestRequest_SelfRejected() {
	_, err := suite.service.Request(suite.ctx, suite.requester, suite.requester)
	assert.Error(suite.T(), err)
}

// A pending or active pair cannot be requested again. Only a rejected pair
// may retry, which ExistsNonRejected ignores.
func (suite *RelationshipServiceTestSuite) TestRequest_Duplicate() {
	suite.businessRepo.On("GetByID", suite.ctx, suite.target).
		Return(&models.Business{ID: suite.target, Name: "Corner Cafe"}, nil)
	suite.relRepo.On("ExistsNonRejected", suite.ctx, suite.requester, suite.target).Return(true, nil)

	rel, err := suite.service.Request(suite.ctx, suite.requester, suite.target)
	assert.ErrorIs(suite.T(), err, ErrDuplicateRelationship)
	assert.Nil(suite.T(), rel)
}

func (suite *RelationshipServiceTestSuite) TestAccept() {
	rel := suite.pendingRelationship()
	suite.relRepo.On("GetByID", suite.ctx, rel.ID).Return(rel, nil)
	suite.relRepo.On("UpdateStatus", suite.ctx, rel.ID, models.RelationshipActive).Return(nil)

	accepted, err := suite.service.Accept(suite.ctx, suite.target, rel.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RelationshipActive, accepted.Status)
}

// The requester cannot accept its own request.
func (suite *RelationshipServiceTestSuite) TestAccept_NotTarget() {
	rel := suite.pendingRelationship()
	suite.relRepo.On("GetByID", suite.ctx, rel.ID).Return(rel, nil)

	accepted, err := suite.service.Accept(suite.ctx, suite.requester, rel.ID)
	assert.ErrorIs(suite.T(), err, ErrNotRelationshipTarget)
	assert.Nil(suite.T(), accepted)
}

func (suite *RelationshipServiceTestSuite) TestAccept_NotPending() {
	rel := suite.pendingRelationship()
	rel.Status = models.RelationshipActive
	suite.relRepo.On("GetByID", suite.ctx, rel.ID).Return(rel, nil)

	accepted, err := suite.service.Accept(suite.ctx, suite.target, rel.ID)
	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
	assert.Nil(suite.T(), accepted)
}

func (suite *RelationshipServiceTestSuite) TestReject() {
	rel := suite.pendingRelationship()
	suite.relRepo.On("GetByID", suite.ctx, rel.ID).Return(rel, nil)
	suite.relRepo.On("UpdateStatus", suite.ctx, rel.ID, models.RelationshipRejected).Return(nil)

	rejected, err := suite.service.Reject(suite.ctx, suite.target, rel.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RelationshipRejected, rejected.Status)
}
