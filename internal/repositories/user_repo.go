package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAnyByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Deactivate(ctx context.Context, businessID, id uuid.UUID) error
	DeletePermanent(ctx context.Context, businessID, id uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.User, error)
}

type userRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, business_id, email, password_hash, full_name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.BusinessID, user.Email, user.PasswordHash, user.FullName, user.Role, user.IsActive)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, business_id, email, password_hash, full_name, role, is_active, created_at, updated_at
		FROM users
		WHERE business_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, businessID, id).Scan(&user.ID, &user.BusinessID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail looks up across businesses; emails are globally unique.
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, business_id, email, password_hash, full_name, role, is_active, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.BusinessID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetAnyByID looks up without a business scope. Used by token refresh, where
// the business is not known until the user row is loaded.
func (r *userRepo) GetAnyByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, business_id, email, password_hash, full_name, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.BusinessID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $1, full_name = $2, role = $3, is_active = $4, password_hash = $5, updated_at = NOW()
		WHERE business_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, user.Email, user.FullName, user.Role, user.IsActive, user.PasswordHash, user.BusinessID, user.ID)
	return err
}

func (r *userRepo) Deactivate(ctx context.Context, businessID, id uuid.UUID) error {
	query := `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE business_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, businessID, id)
	return err
}

func (r *userRepo) DeletePermanent(ctx context.Context, businessID, id uuid.UUID) error {
	query := `DELETE FROM users WHERE business_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, businessID, id)
	return err
}

func (r *userRepo) List(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT id, business_id, email, password_hash, full_name, role, is_active, created_at, updated_at
		FROM users
		WHERE business_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.BusinessID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
