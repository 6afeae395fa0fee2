package services

import (
	"context"
	"testing"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AttendanceServiceTestSuite struct {
	suite.Suite
	attendanceRepo *MockAttendanceRepository
	service        AttendanceService
	businessID     uuid.UUID
	userID         uuid.UUID
	ctx            context.Context
}

func (suite *AttendanceServiceTestSuite) SetupTest() {
	suite.attendanceRepo = new(MockAttendanceRepository)
	suite.service = NewAttendanceService(suite.attendanceRepo)
	suite.businessID = uuid.New()
	suite.userID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *AttendanceServiceTestSuite) TearDownTest() {
	suite.attendanceRepo.AssertExpectations(suite.T())
}

func TestAttendanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttendanceServiceTestSuite))
}

func (suite *AttendanceServiceTestSuite) TestCheckIn() {
	suite.attendanceRepo.On("GetOpenByUser", suite.ctx, suite.businessID, suite.userID).
		Return(nil, pgx.ErrNoRows)
	suite.attendanceRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.AttendanceRecord")).Return(nil)

	record, err := suite.service.CheckIn(suite.ctx, suite.businessID, suite.userID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID, record.UserID)
	assert.Nil(suite.T(), record.CheckOut)
}

func (suite *AttendanceServiceTestSuite) TestCheckIn_ShiftAlreadyOpen() {
	open := &models.AttendanceRecord{
		ID:         uuid.New(),
		BusinessID: suite.businessID,
		UserID:     suite.userID,
		CheckIn:    time.Now().Add(-2 * time.Hour),
	}
	suite.attendanceRepo.On("GetOpenByUser", suite.ctx, suite.businessID, suite.userID).
		Return(open, nil)

	record, err := suite.service.CheckIn(suite.ctx, suite.businessID, suite.userID)
	assert.ErrorIs(suite.T(), err, ErrShiftAlreadyOpen)
	assert.Nil(suite.T(), record)
}

func (suite *AttendanceServiceTestSuite) TestCheckOut() {
	open := &models.AttendanceRecord{
		ID:         uuid.New(),
		BusinessID: suite.businessID,
		UserID:     suite.userID,
		CheckIn:    time.Now().Add(-8 * time.Hour),
	}
	now := time.Now()
	closed := &models.AttendanceRecord{
		ID:         open.ID,
		BusinessID: suite.businessID,
		UserID:     suite.userID,
		CheckIn:    open.CheckIn,
		CheckOut:   &now,
	}
	suite.attendanceRepo.On("GetOpenByUser", suite.ctx, suite.businessID, suite.userID).
		Return(open, nil)
	suite.attendanceRepo.On("SetCheckOut", suite.ctx, open.ID).Return(closed, nil)

	record, err := suite.service.CheckOut(suite.ctx, suite.businessID, suite.userID)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), record.CheckOut)
}

func (suite *AttendanceServiceTestSuite) TestCheckOut_NoOpenShift() {
	suite.attendanceRepo.On("GetOpenByUser", suite.ctx, suite.businessID, suite.userID).
		Return(nil, pgx.ErrNoRows)

	record, err := suite.service.CheckOut(suite.ctx, suite.businessID, suite.userID)
	assert.ErrorIs(suite.T(), err, ErrNoOpenShift)
	assert.Nil(suite.T(), record)
}
