package models

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is one work shift. CheckOut is nil while the shift is open;
// an employee has at most one open shift at a time.
type AttendanceRecord struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	BusinessID uuid.UUID  `json:"business_id" db:"business_id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	CheckIn    time.Time  `json:"check_in" db:"check_in"`
	CheckOut   *time.Time `json:"check_out" db:"check_out"`
}
