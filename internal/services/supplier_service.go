package services

import (
	"context"
	"fmt"

	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
)

type SupplierService interface {
	Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error)
	Get(ctx context.Context, businessID, supplierID uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error)
	Deactivate(ctx context.Context, businessID, supplierID uuid.UUID) error
	Delete(ctx context.Context, businessID, supplierID uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID, activeOnly bool, limit, offset int) ([]*models.Supplier, error)
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
}

func NewSupplierService(supplierRepo repositories.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if supplier.Name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	supplier.IsActive = true
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) Get(ctx context.Context, businessID, supplierID uuid.UUID) (*models.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, businessID, supplierID)
}

func (s *supplierService) Update(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if supplier.Name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}
	if _, err := s.supplierRepo.GetByID(ctx, supplier.BusinessID, supplier.ID); err != nil {
		return nil, fmt.Errorf("failed to load supplier: %w", err)
	}
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) Deactivate(ctx context.Context, businessID, supplierID uuid.UUID) error {
	return s.supplierRepo.Deactivate(ctx, businessID, supplierID)
}

func (s *supplierService) Delete(ctx context.Context, businessID, supplierID uuid.UUID) error {
	return s.supplierRepo.DeletePermanent(ctx, businessID, supplierID)
}

func (s *supplierService) List(ctx context.Context, businessID uuid.UUID, activeOnly bool, limit, offset int) ([]*models.Supplier, error) {
	return s.supplierRepo.List(ctx, businessID, activeOnly, limit, offset)
}
