package repositories

import (
	"context"
	"fmt"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type TransferRepository interface {
	Create(ctx context.Context, transfer *models.Transfer) error
	CreateItem(ctx context.Context, item *models.TransferItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transfer, error)
	GetItems(ctx context.Context, transferID uuid.UUID) ([]*models.TransferItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, completed bool) error
	List(ctx context.Context, businessID uuid.UUID, status, direction string, limit, offset int) ([]*models.Transfer, error)
	CountPending(ctx context.Context, businessID uuid.UUID) (int, error)
}

type transferRepo struct {
	db DBTX
}

func NewTransferRepo(db DBTX) TransferRepository {
	return &transferRepo{db: db}
}

func (r *transferRepo) Create(ctx context.Context, transfer *models.Transfer) error {
	query := `
		INSERT INTO transfers (id, from_business_id, to_business_id, status, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, transfer.ID, transfer.FromBusinessID, transfer.ToBusinessID,
		transfer.Status, transfer.Notes, transfer.CreatedBy)
	return err
}

func (r *transferRepo) CreateItem(ctx context.Context, item *models.TransferItem) error {
	query := `
		INSERT INTO transfer_items (id, transfer_id, inventory_item_id, quantity, notes)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.TransferID, item.InventoryItemID, item.Quantity, item.Notes)
	return err
}

func (r *transferRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Transfer, error) {
	transfer := &models.Transfer{}
	query := `
		SELECT id, from_business_id, to_business_id, status, notes, created_by, created_at, completed_at
		FROM transfers
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&transfer.ID, &transfer.FromBusinessID, &transfer.ToBusinessID,
		&transfer.Status, &transfer.Notes, &transfer.CreatedBy, &transfer.CreatedAt, &transfer.CompletedAt)
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// GetItems joins the source item for its name and SKU, which the accept path
// uses to resolve the destination item.
func (r *transferRepo) GetItems(ctx context.Context, transferID uuid.UUID) ([]*models.TransferItem, error) {
	query := `
		SELECT ti.id, ti.transfer_id, ti.inventory_item_id, ti.quantity, ti.notes, ii.name, ii.sku
		FROM transfer_items ti
		JOIN inventory_items ii ON ii.id = ti.inventory_item_id
		WHERE ti.transfer_id = $1
		ORDER BY ii.name
	`
	rows, err := r.db.Query(ctx, query, transferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.TransferItem
	for rows.Next() {
		item := &models.TransferItem{}
		if err := rows.Scan(&item.ID, &item.TransferID, &item.InventoryItemID, &item.Quantity, &item.Notes,
			&item.ItemName, &item.ItemSKU); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *transferRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, completed bool) error {
	if completed {
		query := `UPDATE transfers SET status = $1, completed_at = NOW() WHERE id = $2`
		_, err := r.db.Exec(ctx, query, status, id)
		return err
	}
	query := `UPDATE transfers SET status = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *transferRepo) List(ctx context.Context, businessID uuid.UUID, status, direction string, limit, offset int) ([]*models.Transfer, error) {
	query := `
		SELECT id, from_business_id, to_business_id, status, notes, created_by, created_at, completed_at
		FROM transfers
	`
	args := []any{businessID}
	switch direction {
	case "outgoing":
		query += ` WHERE from_business_id = $1`
	case "incoming":
		query += ` WHERE to_business_id = $1`
	default:
		query += ` WHERE (from_business_id = $1 OR to_business_id = $1)`
	}
	argn := 1
	if status != "" {
		argn++
		query += fmt.Sprintf(` AND status = $%d`, argn)
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argn+1, argn+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*models.Transfer
	for rows.Next() {
		transfer := &models.Transfer{}
		if err := rows.Scan(&transfer.ID, &transfer.FromBusinessID, &transfer.ToBusinessID, &transfer.Status,
			&transfer.Notes, &transfer.CreatedBy, &transfer.CreatedAt, &transfer.CompletedAt); err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

func (r *transferRepo) CountPending(ctx context.Context, businessID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM transfers
		WHERE status = 'pending' AND (from_business_id = $1 OR to_business_id = $1)
	`
	var count int
	err := r.db.QueryRow(ctx, query, businessID).Scan(&count)
	return count, err
}
