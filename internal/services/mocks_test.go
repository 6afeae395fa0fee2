package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// fakeCache is an in-memory stand-in for the Redis cache service. Only the
// string operations behave like a store; the typed operations act as a cache
// that never hits.
type fakeCache struct {
	mu      sync.Mutex
	strings map[string]string
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{strings: make(map[string]string)}
}

func (f *fakeCache) GetItem(ctx context.Context, businessID, itemID uuid.UUID) (*models.InventoryItem, error) {
	return nil, nil
}
func (f *fakeCache) SetItem(ctx context.Context, businessID uuid.UUID, item *models.InventoryItem, ttl time.Duration) error {
	return nil
}
func (f *fakeCache) DeleteItem(ctx context.Context, businessID, itemID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, "item:"+itemID.String())
	return nil
}
func (f *fakeCache) GetProduct(ctx context.Context, businessID, productID uuid.UUID) (*models.Product, error) {
	return nil, nil
}
func (f *fakeCache) SetProduct(ctx context.Context, businessID uuid.UUID, product *models.Product, ttl time.Duration) error {
	return nil
}
func (f *fakeCache) DeleteProduct(ctx context.Context, businessID, productID uuid.UUID) error {
	return nil
}
func (f *fakeCache) GetSummary(ctx context.Context, businessID uuid.UUID) (map[string]interface{}, error) {
	return nil, nil
}
func (f *fakeCache) SetSummary(ctx context.Context, businessID uuid.UUID, summary map[string]interface{}, ttl time.Duration) error {
	return nil
}
func (f *fakeCache) DeleteSummary(ctx context.Context, businessID uuid.UUID) error {
	return nil
}
func (f *fakeCache) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return false, nil
}
func (f *fakeCache) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	return nil
}
func (f *fakeCache) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strings[key] = value
	return nil
}
func (f *fakeCache) GetString(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.strings[key]
	if !ok {
		return "", errors.New("key not found")
	}
	return v, nil
}
func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.strings, key)
	return nil
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAnyByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Deactivate(ctx context.Context, businessID, id uuid.UUID) error {
	args := m.Called(ctx, businessID, id)
	return args.Error(0)
}

func (m *MockUserRepository) DeletePermanent(ctx context.Context, businessID, id uuid.UUID) error {
	args := m.Called(ctx, businessID, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, businessID uuid.UUID, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, businessID, limit, offset)
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) Create(ctx context.Context, business *models.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *MockBusinessRepository) GetByName(ctx context.Context, name string) (*models.Business, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *MockBusinessRepository) Update(ctx context.Context, business *models.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) List(ctx context.Context, limit, offset int) ([]*models.Business, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Business), args.Error(1)
}

type MockRelationshipRepository struct {
	mock.Mock
}

func (m *MockRelationshipRepository) Create(ctx context.Context, rel *models.BusinessRelationship) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *MockRelationshipRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BusinessRelationship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BusinessRelationship), args.Error(1)
}

func (m *MockRelationshipRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRelationshipRepository) ExistsNonRejected(ctx context.Context, businessA, businessB uuid.UUID) (bool, error) {
	args := m.Called(ctx, businessA, businessB)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationshipRepository) HasActive(ctx context.Context, businessA, businessB uuid.UUID) (bool, error) {
	args := m.Called(ctx, businessA, businessB)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationshipRepository) ListActive(ctx context.Context, businessID uuid.UUID) ([]*models.BusinessRelationship, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]*models.BusinessRelationship), args.Error(1)
}

func (m *MockRelationshipRepository) ListPending(ctx context.Context, targetBusinessID uuid.UUID) ([]*models.BusinessRelationship, error) {
	args := m.Called(ctx, targetBusinessID)
	return args.Get(0).([]*models.BusinessRelationship), args.Error(1)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAttendanceRepository) GetOpenByUser(ctx context.Context, businessID, userID uuid.UUID) (*models.AttendanceRecord, error) {
	args := m.Called(ctx, businessID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceRepository) SetCheckOut(ctx context.Context, id uuid.UUID) (*models.AttendanceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceRecord), args.Error(1)
}

type MockModifierRepository struct {
	mock.Mock
}

func (m *MockModifierRepository) CreateGroup(ctx context.Context, group *models.ModifierGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockModifierRepository) GetGroupByID(ctx context.Context, businessID, id uuid.UUID) (*models.ModifierGroup, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModifierGroup), args.Error(1)
}

func (m *MockModifierRepository) UpdateGroup(ctx context.Context, group *models.ModifierGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockModifierRepository) ListGroups(ctx context.Context, businessID uuid.UUID, activeOnly bool, limit, offset int) ([]*models.ModifierGroup, error) {
	args := m.Called(ctx, businessID, activeOnly, limit, offset)
	return args.Get(0).([]*models.ModifierGroup), args.Error(1)
}

func (m *MockModifierRepository) CreateModifier(ctx context.Context, modifier *models.Modifier) error {
	args := m.Called(ctx, modifier)
	return args.Error(0)
}

func (m *MockModifierRepository) CreateModifierItem(ctx context.Context, item *models.ModifierItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockModifierRepository) GetModifierByID(ctx context.Context, businessID, id uuid.UUID) (*models.Modifier, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Modifier), args.Error(1)
}

func (m *MockModifierRepository) UpdateModifier(ctx context.Context, modifier *models.Modifier) error {
	args := m.Called(ctx, modifier)
	return args.Error(0)
}

func (m *MockModifierRepository) ListByGroup(ctx context.Context, groupID uuid.UUID, activeOnly bool) ([]*models.Modifier, error) {
	args := m.Called(ctx, groupID, activeOnly)
	return args.Get(0).([]*models.Modifier), args.Error(1)
}

func (m *MockModifierRepository) GetModifierItems(ctx context.Context, modifierID uuid.UUID) ([]*models.ModifierItem, error) {
	args := m.Called(ctx, modifierID)
	return args.Get(0).([]*models.ModifierItem), args.Error(1)
}

func (m *MockModifierRepository) AssignToProduct(ctx context.Context, pm *models.ProductModifier) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}

func (m *MockModifierRepository) RemoveFromProduct(ctx context.Context, productID, modifierID uuid.UUID) error {
	args := m.Called(ctx, productID, modifierID)
	return args.Error(0)
}

func (m *MockModifierRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Modifier, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]*models.Modifier), args.Error(1)
}

func (m *MockModifierRepository) IsAssigned(ctx context.Context, productID, modifierID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID, modifierID)
	return args.Bool(0), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Deactivate(ctx context.Context, businessID, id uuid.UUID, updatedBy uuid.UUID) error {
	args := m.Called(ctx, businessID, id, updatedBy)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, businessID uuid.UUID, category string, activeOnly bool, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, businessID, category, activeOnly, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetIngredients(ctx context.Context, productID uuid.UUID) ([]*models.Ingredient, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]*models.Ingredient), args.Error(1)
}

func (m *MockProductRepository) DeleteIngredients(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockProductRepository) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockProductRepository) SetImageURL(ctx context.Context, businessID, id uuid.UUID, imageURL string) error {
	args := m.Called(ctx, businessID, id, imageURL)
	return args.Error(0)
}

type MockInventoryItemRepository struct {
	mock.Mock
}

func (m *MockInventoryItemRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.InventoryItem, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) UpdateQuantity(ctx context.Context, businessID, id uuid.UUID, quantity float64) error {
	args := m.Called(ctx, businessID, id, quantity)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) Deactivate(ctx context.Context, businessID, id uuid.UUID) error {
	args := m.Called(ctx, businessID, id)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) List(ctx context.Context, businessID uuid.UUID, filter *models.InventoryItemFilter) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, businessID, filter)
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) LowStock(ctx context.Context, businessID uuid.UUID) ([]*models.InventoryItem, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).([]*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindBySKU(ctx context.Context, businessID uuid.UUID, sku string) (*models.InventoryItem, error) {
	args := m.Called(ctx, businessID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindByName(ctx context.Context, businessID uuid.UUID, name string) (*models.InventoryItem, error) {
	args := m.Called(ctx, businessID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) StockSummary(ctx context.Context, businessID uuid.UUID) (int, float64, int, error) {
	args := m.Called(ctx, businessID)
	return args.Int(0), args.Get(1).(float64), args.Int(2), args.Error(3)
}
