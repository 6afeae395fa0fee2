package services

import (
	"context"
	"fmt"
	"time"

	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
)

// RelationshipService manages the partnership handshake that gates transfers.
type RelationshipService interface {
	Request(ctx context.Context, requesterBusinessID, targetBusinessID uuid.UUID) (*models.BusinessRelationship, error)
	Accept(ctx context.Context, businessID, relationshipID uuid.UUID) (*models.BusinessRelationship, error)
	Reject(ctx context.Context, businessID, relationshipID uuid.UUID) (*models.BusinessRelationship, error)
	ListActive(ctx context.Context, businessID uuid.UUID) ([]*models.BusinessRelationship, error)
	ListPending(ctx context.Context, businessID uuid.UUID) ([]*models.BusinessRelationship, error)
}

type relationshipService struct {
	relationshipRepo repositories.RelationshipRepository
	businessRepo     repositories.BusinessRepository
}

func NewRelationshipService(relationshipRepo repositories.RelationshipRepository, businessRepo repositories.BusinessRepository) RelationshipService {
	return &relationshipService{relationshipRepo: relationshipRepo, businessRepo: businessRepo}
}

// Request creates a pending relationship. A rejected pair may re-request; a
// pending or active pair may not.
func (s *relationshipService) Request(ctx context.Context, requesterBusinessID, targetBusinessID uuid.UUID) (*models.BusinessRelationship, error) {
	if requesterBusinessID == targetBusinessID {
		return nil, fmt.Errorf("cannot request a relationship with your own business")
	}

	if _, err := s.businessRepo.GetByID(ctx, targetBusinessID); err != nil {
		return nil, fmt.Errorf("failed to load target business: %w", err)
	}

	exists, err := s.relationshipRepo.ExistsNonRejected(ctx, requesterBusinessID, targetBusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing relationships: %w", err)
	}
	if exists {
		return nil, ErrDuplicateRelationship
	}

	rel := &models.BusinessRelationship{
		ID:                  uuid.New(),
		RequesterBusinessID: requesterBusinessID,
		TargetBusinessID:    targetBusinessID,
		Status:              models.RelationshipPending,
		CreatedAt:           time.Now(),
	}
	if err := s.relationshipRepo.Create(ctx, rel); err != nil {
		return nil, fmt.Errorf("failed to create relationship request: %w", err)
	}
	return rel, nil
}

func (s *relationshipService) Accept(ctx context.Context, businessID, relationshipID uuid.UUID) (*models.BusinessRelationship, error) {
	return s.resolve(ctx, businessID, relationshipID, models.RelationshipActive)
}

func (s *relationshipService) Reject(ctx context.Context, businessID, relationshipID uuid.UUID) (*models.BusinessRelationship, error) {
	return s.resolve(ctx, businessID, relationshipID, models.RelationshipRejected)
}

func (s *relationshipService) resolve(ctx context.Context, businessID, relationshipID uuid.UUID, status string) (*models.BusinessRelationship, error) {
	rel, err := s.relationshipRepo.GetByID(ctx, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load relationship: %w", err)
	}
	if rel.TargetBusinessID != businessID {
		return nil, ErrNotRelationshipTarget
	}
	if rel.Status != models.RelationshipPending {
		return nil, fmt.Errorf("%w: relationship is %s", ErrInvalidTransition, rel.Status)
	}
	if err := s.relationshipRepo.UpdateStatus(ctx, relationshipID, status); err != nil {
		return nil, fmt.Errorf("failed to update relationship status: %w", err)
	}
	rel.Status = status
	return rel, nil
}

func (s *relationshipService) ListActive(ctx context.Context, businessID uuid.UUID) ([]*models.BusinessRelationship, error) {
	return s.relationshipRepo.ListActive(ctx, businessID)
}

func (s *relationshipService) ListPending(ctx context.Context, businessID uuid.UUID) ([]*models.BusinessRelationship, error) {
	return s.relationshipRepo.ListPending(ctx, businessID)
}
