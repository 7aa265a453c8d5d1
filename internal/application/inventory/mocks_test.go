package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, name, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]inventory.Item, error) {
	args := m.Called(ctx, ids, tenantID)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]inventory.Item, error) {
	args := m.Called(ctx, ids, tenantID)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) ExistsByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, tenantID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) CountOrderLineReferences(ctx context.Context, itemID uuid.UUID) (int64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	args := m.Called(ctx, id, tenantID)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of inventory.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*inventory.Category, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*inventory.Category, error) {
	args := m.Called(ctx, name, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Category, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]inventory.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *inventory.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	args := m.Called(ctx, id, tenantID)
	return args.Error(0)
}

// MockActivityRepository is a mock implementation of activity.Repository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Append(ctx context.Context, record *activity.Activity) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockActivityRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]activity.Activity, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]activity.Activity), args.Error(1)
}

func (m *MockActivityRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}
