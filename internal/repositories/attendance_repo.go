package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	GetOpenByUser(ctx context.Context, businessID, userID uuid.UUID) (*models.AttendanceRecord, error)
	SetCheckOut(ctx context.Context, id uuid.UUID) (*models.AttendanceRecord, error)
}

type attendanceRepo struct {
	db DBTX
}

func NewAttendanceRepo(db DBTX) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (id, business_id, user_id, check_in)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, record.ID, record.BusinessID, record.UserID, record.CheckIn)
	return err
}

func (r *attendanceRepo) GetOpenByUser(ctx context.Context, businessID, userID uuid.UUID) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{}
	query := `
		SELECT id, business_id, user_id, check_in, check_out
		FROM attendance_records
		WHERE business_id = $1 AND user_id = $2 AND check_out IS NULL
		ORDER BY check_in DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, businessID, userID).Scan(&record.ID, &record.BusinessID, &record.UserID,
		&record.CheckIn, &record.CheckOut)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *attendanceRepo) SetCheckOut(ctx context.Context, id uuid.UUID) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{}
	query := `
		UPDATE attendance_records
		SET check_out = NOW()
		WHERE id = $1
		RETURNING id, business_id, user_id, check_in, check_out
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&record.ID, &record.BusinessID, &record.UserID,
		&record.CheckIn, &record.CheckOut)
	if err != nil {
		return nil, err
	}
	return record, nil
}
