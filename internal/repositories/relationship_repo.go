package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type RelationshipRepository interface {
	Create(ctx context.Context, rel *models.BusinessRelationship) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BusinessRelationship, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ExistsNonRejected(ctx context.Context, businessA, businessB uuid.UUID) (bool, error)
	HasActive(ctx context.Context, businessA, businessB uuid.UUID) (bool, error)
	ListActive(ctx context.Context, businessID uuid.UUID) ([]*models.BusinessRelationship, error)
	ListPending(ctx context.Context, targetBusinessID uuid.UUID) ([]*models.BusinessRelationship, error)
}

type relationshipRepo struct {
	db DBTX
}

func NewRelationshipRepo(db DBTX) RelationshipRepository {
	return &relationshipRepo{db: db}
}

func (r *relationshipRepo) Create(ctx context.Context, rel *models.BusinessRelationship) error {
	query := `
		INSERT INTO business_relationships (id, requester_business_id, target_business_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, rel.ID, rel.RequesterBusinessID, rel.TargetBusinessID, rel.Status)
	return err
}

func (r *relationshipRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BusinessRelationship, error) {
	rel := &models.BusinessRelationship{}
	query := `
		SELECT id, requester_business_id, target_business_id, status, created_at, updated_at
		FROM business_relationships
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&rel.ID, &rel.RequesterBusinessID, &rel.TargetBusinessID,
		&rel.Status, &rel.CreatedAt, &rel.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rel, nil
}

func (r *relationshipRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE business_relationships SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

// ExistsNonRejected checks the unordered pair: at most one pending or active
// relationship may exist between two businesses in either direction.
func (r *relationshipRepo) ExistsNonRejected(ctx context.Context, businessA, businessB uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM business_relationships
			WHERE status <> 'rejected'
			AND ((requester_business_id = $1 AND target_business_id = $2)
				OR (requester_business_id = $2 AND target_business_id = $1))
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, businessA, businessB).Scan(&exists)
	return exists, err
}

func (r *relationshipRepo) HasActive(ctx context.Context, businessA, businessB uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM business_relationships
			WHERE status = 'active'
			AND ((requester_business_id = $1 AND target_business_id = $2)
				OR (requester_business_id = $2 AND target_business_id = $1))
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, businessA, businessB).Scan(&exists)
	return exists, err
}

func (r *relationshipRepo) ListActive(ctx context.Context, businessID uuid.UUID) ([]*models.BusinessRelationship, error) {
	query := `
		SELECT r.id, r.requester_business_id, r.target_business_id, r.status, r.created_at, r.updated_at,
			rb.name, tb.name
		FROM business_relationships r
		JOIN businesses rb ON rb.id = r.requester_business_id
		JOIN businesses tb ON tb.id = r.target_business_id
		WHERE r.status = 'active' AND (r.requester_business_id = $1 OR r.target_business_id = $1)
		ORDER BY r.updated_at DESC
	`
	return r.queryRelationships(ctx, query, businessID)
}

func (r *relationshipRepo) ListPending(ctx context.Context, targetBusinessID uuid.UUID) ([]*models.BusinessRelationship, error) {
	query := `
		SELECT r.id, r.requester_business_id, r.target_business_id, r.status, r.created_at, r.updated_at,
			rb.name, tb.name
		FROM business_relationships r
		JOIN businesses rb ON rb.id = r.requester_business_id
		JOIN businesses tb ON tb.id = r.target_business_id
		WHERE r.status = 'pending' AND r.target_business_id = $1
		ORDER BY r.created_at DESC
	`
	return r.queryRelationships(ctx, query, targetBusinessID)
}

func (r *relationshipRepo) queryRelationships(ctx context.Context, query string, args ...any) ([]*models.BusinessRelationship, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []*models.BusinessRelationship
	for rows.Next() {
		rel := &models.BusinessRelationship{}
		if err := rows.Scan(&rel.ID, &rel.RequesterBusinessID, &rel.TargetBusinessID, &rel.Status,
			&rel.CreatedAt, &rel.UpdatedAt, &rel.RequesterName, &rel.TargetName); err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rels, nil
}
