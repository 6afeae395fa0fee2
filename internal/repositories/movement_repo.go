package repositories

import (
	"context"
	"fmt"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type MovementRepository interface {
	Create(ctx context.Context, movement *models.Movement) error
	GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.Movement, error)
	MarkReverted(ctx context.Context, businessID, id uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID, movementType string, limit, offset int) ([]*models.Movement, error)
	ListByItem(ctx context.Context, businessID, itemID uuid.UUID, limit, offset int) ([]*models.Movement, error)
	SumDeltas(ctx context.Context, businessID, itemID uuid.UUID) (float64, error)
}

type movementRepo struct {
	db DBTX
}

func NewMovementRepo(db DBTX) MovementRepository {
	return &movementRepo{db: db}
}

const movementColumns = `id, business_id, inventory_item_id, quantity_change, movement_type, reason, created_by, reverted, created_at`

func scanMovement(row interface{ Scan(dest ...any) error }) (*models.Movement, error) {
	m := &models.Movement{}
	err := row.Scan(&m.ID, &m.BusinessID, &m.InventoryItemID, &m.QuantityChange, &m.MovementType, &m.Reason,
		&m.CreatedBy, &m.Reverted, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *movementRepo) Create(ctx context.Context, movement *models.Movement) error {
	query := `
		INSERT INTO movements (id, business_id, inventory_item_id, quantity_change, movement_type, reason, created_by, reverted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NOW())
	`
	_, err := r.db.Exec(ctx, query, movement.ID, movement.BusinessID, movement.InventoryItemID,
		movement.QuantityChange, movement.MovementType, movement.Reason, movement.CreatedBy)
	return err
}

func (r *movementRepo) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.Movement, error) {
	query := fmt.Sprintf(`SELECT %s FROM movements WHERE business_id = $1 AND id = $2`, movementColumns)
	return scanMovement(r.db.QueryRow(ctx, query, businessID, id))
}

// MarkReverted is the only write ever applied to an existing movement row.
func (r *movementRepo) MarkReverted(ctx context.Context, businessID, id uuid.UUID) error {
	query := `UPDATE movements SET reverted = TRUE WHERE business_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, businessID, id)
	return err
}

func (r *movementRepo) List(ctx context.Context, businessID uuid.UUID, movementType string, limit, offset int) ([]*models.Movement, error) {
	query := fmt.Sprintf(`SELECT %s FROM movements WHERE business_id = $1`, movementColumns)
	args := []any{businessID}
	argn := 1

	if movementType != "" {
		argn++
		query += fmt.Sprintf(` AND movement_type = $%d`, argn)
		args = append(args, movementType)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argn+1, argn+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *movementRepo) ListByItem(ctx context.Context, businessID, itemID uuid.UUID, limit, offset int) ([]*models.Movement, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM movements
		WHERE business_id = $1 AND inventory_item_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, movementColumns)
	rows, err := r.db.Query(ctx, query, businessID, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movements, nil
}

// SumDeltas returns the sum of non-reverted deltas for an item. Must equal the
// item's quantity_in_stock; used by tests and consistency checks.
func (r *movementRepo) SumDeltas(ctx context.Context, businessID, itemID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(quantity_change), 0)
		FROM movements
		WHERE business_id = $1 AND inventory_item_id = $2 AND reverted = FALSE
	`
	var sum float64
	err := r.db.QueryRow(ctx, query, businessID, itemID).Scan(&sum)
	return sum, err
}
