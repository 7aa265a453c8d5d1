package bulk

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/partner"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/domain/trade"
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

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, name, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]partner.Client, error) {
	args := m.Called(ctx, ids, tenantID)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) ExistsByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, tenantID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) CountOrderReferences(ctx context.Context, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	args := m.Called(ctx, id, tenantID)
	return args.Error(0)
}

// MockSupplierOrderRepository is a mock implementation of trade.SupplierOrderRepository
type MockSupplierOrderRepository struct {
	mock.Mock
}

func (m *MockSupplierOrderRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*trade.SupplierOrder, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SupplierOrder), args.Error(1)
}

func (m *MockSupplierOrderRepository) FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]trade.SupplierOrder, error) {
	args := m.Called(ctx, ids, tenantID)
	return args.Get(0).([]trade.SupplierOrder), args.Error(1)
}

func (m *MockSupplierOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.SupplierOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]trade.SupplierOrder), args.Error(1)
}

func (m *MockSupplierOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierOrderRepository) Save(ctx context.Context, order *trade.SupplierOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSupplierOrderRepository) Update(ctx context.Context, order *trade.SupplierOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSupplierOrderRepository) SaveLine(ctx context.Context, line *trade.SupplierOrderedItem) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockSupplierOrderRepository) UpdateLine(ctx context.Context, line *trade.SupplierOrderedItem) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockSupplierOrderRepository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

func (m *MockSupplierOrderRepository) FindLinesByIDs(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]trade.SupplierOrderedItem, error) {
	args := m.Called(ctx, ids, tenantID)
	return args.Get(0).([]trade.SupplierOrderedItem), args.Error(1)
}

func (m *MockSupplierOrderRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	args := m.Called(ctx, id, tenantID)
	return args.Error(0)
}

// MockClientOrderRepository is a mock implementation of trade.ClientOrderRepository
type MockClientOrderRepository struct {
	mock.Mock
}

func (m *MockClientOrderRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*trade.ClientOrder, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ClientOrder), args.Error(1)
}

func (m *MockClientOrderRepository) FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]trade.ClientOrder, error) {
	args := m.Called(ctx, ids, tenantID)
	return args.Get(0).([]trade.ClientOrder), args.Error(1)
}

func (m *MockClientOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.ClientOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]trade.ClientOrder), args.Error(1)
}

func (m *MockClientOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientOrderRepository) Save(ctx context.Context, order *trade.ClientOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockClientOrderRepository) Update(ctx context.Context, order *trade.ClientOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockClientOrderRepository) SaveLine(ctx context.Context, line *trade.ClientOrderedItem) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockClientOrderRepository) UpdateLine(ctx context.Context, line *trade.ClientOrderedItem) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockClientOrderRepository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

func (m *MockClientOrderRepository) FindLinesByIDs(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]trade.ClientOrderedItem, error) {
	args := m.Called(ctx, ids, tenantID)
	return args.Get(0).([]trade.ClientOrderedItem), args.Error(1)
}

func (m *MockClientOrderRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	args := m.Called(ctx, id, tenantID)
	return args.Error(0)
}

// MockSaleRepository is a mock implementation of trade.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*trade.Sale, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Update(ctx context.Context, sale *trade.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteSoldLine(ctx context.Context, lineID uuid.UUID) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

func (m *MockSaleRepository) FindSoldLinesByIDs(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]trade.SoldItem, error) {
	args := m.Called(ctx, ids, tenantID)
	return args.Get(0).([]trade.SoldItem), args.Error(1)
}

func (m *MockSaleRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
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
