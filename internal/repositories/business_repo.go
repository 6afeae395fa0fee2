package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
	GetByName(ctx context.Context, name string) (*models.Business, error)
	Update(ctx context.Context, business *models.Business) error
	List(ctx context.Context, limit, offset int) ([]*models.Business, error)
}

type businessRepo struct {
	db DBTX
}

func NewBusinessRepo(db DBTX) BusinessRepository {
	return &businessRepo{db: db}
}

func (r *businessRepo) Create(ctx context.Context, business *models.Business) error {
	query := `
		INSERT INTO businesses (id, name, address, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, business.ID, business.Name, business.Address, business.Phone, business.Status)
	return err
}

func (r *businessRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	business := &models.Business{}
	query := `
		SELECT id, name, address, phone, status, created_at, updated_at
		FROM businesses
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&business.ID, &business.Name, &business.Address, &business.Phone, &business.Status, &business.CreatedAt, &business.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return business, nil
}

func (r *businessRepo) GetByName(ctx context.Context, name string) (*models.Business, error) {
	business := &models.Business{}
	query := `
		SELECT id, name, address, phone, status, created_at, updated_at
		FROM businesses
		WHERE LOWER(name) = LOWER($1)
	`
	err := r.db.QueryRow(ctx, query, name).Scan(&business.ID, &business.Name, &business.Address, &business.Phone, &business.Status, &business.CreatedAt, &business.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return business, nil
}

func (r *businessRepo) Update(ctx context.Context, business *models.Business) error {
	query := `
		UPDATE businesses
		SET name = $1, address = $2, phone = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, business.Name, business.Address, business.Phone, business.Status, business.ID)
	return err
}

func (r *businessRepo) List(ctx context.Context, limit, offset int) ([]*models.Business, error) {
	query := `
		SELECT id, name, address, phone, status, created_at, updated_at
		FROM businesses
		WHERE status = 'active'
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []*models.Business
	for rows.Next() {
		business := &models.Business{}
		if err := rows.Scan(&business.ID, &business.Name, &business.Address, &business.Phone, &business.Status, &business.CreatedAt, &business.UpdatedAt); err != nil {
			return nil, err
		}
		businesses = append(businesses, business)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return businesses, nil
}
