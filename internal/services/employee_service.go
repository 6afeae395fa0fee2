package services

import (
	"context"
	"fmt"

	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// EmployeeService manages the accounts of a business. Owners may create any
// role below them; admins may create staff but never other admins or owners.
type EmployeeService interface {
	Create(ctx context.Context, businessID uuid.UUID, actorRole, fullName, email, password, role string) (*models.User, error)
	Get(ctx context.Context, businessID, userID uuid.UUID) (*models.User, error)
	Update(ctx context.Context, actorRole string, user *models.User) (*models.User, error)
	ChangePassword(ctx context.Context, businessID, userID uuid.UUID, newPassword string) error
	Deactivate(ctx context.Context, businessID, userID uuid.UUID) error
	Delete(ctx context.Context, businessID, userID uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.User, error)
}

type employeeService struct {
	userRepo repositories.UserRepository
}

func NewEmployeeService(userRepo repositories.UserRepository) EmployeeService {
	return &employeeService{userRepo: userRepo}
}

func (s *employeeService) Create(ctx context.Context, businessID uuid.UUID, actorRole, fullName, email, password, role string) (*models.User, error) {
	if fullName == "" || email == "" {
		return nil, fmt.Errorf("full name and email are required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if err := checkRoleCreation(actorRole, role); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		BusinessID:   businessID,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return user, nil
}

// checkRoleCreation enforces who may hand out which role. There is exactly
// one owner per business, created at registration.
func checkRoleCreation(actorRole, newRole string) error {
	if newRole == models.RoleOwner {
		return fmt.Errorf("owner accounts are created only at registration")
	}
	switch actorRole {
	case models.RoleOwner:
		return nil
	case models.RoleAdmin:
		if newRole == models.RoleAdmin {
			return fmt.Errorf("admins cannot create other admins")
		}
		return nil
	default:
		return fmt.Errorf("role %q cannot create employees", actorRole)
	}
}

func (s *employeeService) Get(ctx context.Context, businessID, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, businessID, userID)
}

func (s *employeeService) Update(ctx context.Context, actorRole string, user *models.User) (*models.User, error) {
	existing, err := s.userRepo.GetByID(ctx, user.BusinessID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	if existing.Role == models.RoleOwner && user.Role != models.RoleOwner {
		return nil, fmt.Errorf("the owner role cannot be changed")
	}
	if user.Role != existing.Role {
		if !models.ValidRole(user.Role) {
			return nil, fmt.Errorf("unknown role %q", user.Role)
		}
		if err := checkRoleCreation(actorRole, user.Role); err != nil {
			return nil, err
		}
	}
	user.PasswordHash = existing.PasswordHash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return user, nil
}

func (s *employeeService) ChangePassword(ctx context.Context, businessID, userID uuid.UUID, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	user, err := s.userRepo.GetByID(ctx, businessID, userID)
	if err != nil {
		return fmt.Errorf("failed to load employee: %w", err)
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *employeeService) Deactivate(ctx context.Context, businessID, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, businessID, userID)
	if err != nil {
		return fmt.Errorf("failed to load employee: %w", err)
	}
	if user.Role == models.RoleOwner {
		return fmt.Errorf("the owner account cannot be deactivated")
	}
	return s.userRepo.Deactivate(ctx, businessID, userID)
}

func (s *employeeService) Delete(ctx context.Context, businessID, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, businessID, userID)
	if err != nil {
		return fmt.Errorf("failed to load employee: %w", err)
	}
	if user.Role == models.RoleOwner {
		return fmt.Errorf("the owner account cannot be deleted")
	}
	return s.userRepo.DeletePermanent(ctx, businessID, userID)
}

func (s *employeeService) List(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.User, error) {
	return s.userRepo.List(ctx, businessID, limit, offset)
}
