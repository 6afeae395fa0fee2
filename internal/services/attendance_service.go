package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AttendanceService tracks employee shifts. At most one open shift per user.
type AttendanceService interface {
	CheckIn(ctx context.Context, businessID, userID uuid.UUID) (*models.AttendanceRecord, error)
	CheckOut(ctx context.Context, businessID, userID uuid.UUID) (*models.AttendanceRecord, error)
}

type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
}

func NewAttendanceService(attendanceRepo repositories.AttendanceRepository) AttendanceService {
	return &attendanceService{attendanceRepo: attendanceRepo}
}

func (s *attendanceService) CheckIn(ctx context.Context, businessID, userID uuid.UUID) (*models.AttendanceRecord, error) {
	open, err := s.attendanceRepo.GetOpenByUser(ctx, businessID, userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check open shifts: %w", err)
	}
	if open != nil {
		return nil, ErrShiftAlreadyOpen
	}

	record := &models.AttendanceRecord{
		ID:         uuid.New(),
		BusinessID: businessID,
		UserID:     userID,
		CheckIn:    time.Now(),
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}
	return record, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, businessID, userID uuid.UUID) (*models.AttendanceRecord, error) {
	open, err := s.attendanceRepo.GetOpenByUser(ctx, businessID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoOpenShift
		}
		return nil, fmt.Errorf("failed to find open shift: %w", err)
	}
	record, err := s.attendanceRepo.SetCheckOut(ctx, open.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record check-out: %w", err)
	}
	return record, nil
}
