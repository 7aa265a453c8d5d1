package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSupplierOrderRepository implements trade.SupplierOrderRepository
// using GORM. Find methods preload the line set.
type GormSupplierOrderRepository struct {
	db *gorm.DB
}

var _ trade.SupplierOrderRepository = (*GormSupplierOrderRepository)(nil)

// NewGormSupplierOrderRepository creates a new GormSupplierOrderRepository
func NewGormSupplierOrderRepository(db *gorm.DB) *GormSupplierOrderRepository {
	return &GormSupplierOrderRepository{db: db}
}

// FindByIDForTenant finds a supplier order by ID within a tenant
func (r *GormSupplierOrderRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*trade.SupplierOrder, error) {
	var order trade.SupplierOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDsForTenant finds all listed supplier orders belonging to the tenant
func (r *GormSupplierOrderRepository) FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]trade.SupplierOrder, error) {
	var orders []trade.SupplierOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAllForTenant finds all supplier orders for a tenant
func (r *GormSupplierOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.SupplierOrder, error) {
	var orders []trade.SupplierOrder
	query := applyFilter(
		r.db.WithContext(ctx).Model(&trade.SupplierOrder{}).Preload("Items").Where("tenant_id = ?", tenantID),
		filter, OrderSortFields, "reference_id", "supplier_name")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountForTenant counts the tenant's supplier orders matching the filter
func (r *GormSupplierOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(
		r.db.WithContext(ctx).Model(&trade.SupplierOrder{}).Where("tenant_id = ?", tenantID),
		filter, OrderSortFields, "reference_id", "supplier_name")
	err := query.Count(&count).Error
	return count, err
}

// Save persists a new supplier order with its lines
func (r *GormSupplierOrderRepository) Save(ctx context.Context, order *trade.SupplierOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update persists changes to an order and upserts its current line set
func (r *GormSupplierOrderRepository) Update(ctx context.Context, order *trade.SupplierOrder) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error
}

// SaveLine persists a new order line
func (r *GormSupplierOrderRepository) SaveLine(ctx context.Context, line *trade.SupplierOrderedItem) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// UpdateLine persists changes to an existing order line
func (r *GormSupplierOrderRepository) UpdateLine(ctx context.Context, line *trade.SupplierOrderedItem) error {
	return r.db.WithContext(ctx).Save(line).Error
}

// DeleteLine removes an order line
func (r *GormSupplierOrderRepository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&trade.SupplierOrderedItem{}, "id = ?", lineID).Error
}

// FindLinesByIDs finds the listed lines whose parent order belongs to
// the tenant.
func (r *GormSupplierOrderRepository) FindLinesByIDs(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]trade.SupplierOrderedItem, error) {
	var lines []trade.SupplierOrderedItem
	if err := r.db.WithContext(ctx).
		Joins("JOIN supplier_orders ON supplier_orders.id = supplier_ordered_items.order_id").
		Where("supplier_orders.tenant_id = ? AND supplier_ordered_items.id IN ?", tenantID, ids).
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// DeleteForTenant removes a supplier order belonging to the tenant.
// Lines cascade at the database level.
func (r *GormSupplierOrderRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&trade.SupplierOrder{}, "id = ?", id).Error
}

// GormClientOrderRepository implements trade.ClientOrderRepository
// using GORM. Find methods preload the line set.
type GormClientOrderRepository struct {
	db *gorm.DB
}

var _ trade.ClientOrderRepository = (*GormClientOrderRepository)(nil)

// NewGormClientOrderRepository creates a new GormClientOrderRepository
func NewGormClientOrderRepository(db *gorm.DB) *GormClientOrderRepository {
	return &GormClientOrderRepository{db: db}
}

// FindByIDForTenant finds a client order by ID within a tenant
func (r *GormClientOrderRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*trade.ClientOrder, error) {
	var order trade.ClientOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDsForTenant finds all listed client orders belonging to the tenant
func (r *GormClientOrderRepository) FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]trade.ClientOrder, error) {
	var orders []trade.ClientOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAllForTenant finds all client orders for a tenant
func (r *GormClientOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.ClientOrder, error) {
	var orders []trade.ClientOrder
	query := applyFilter(
		r.db.WithContext(ctx).Model(&trade.ClientOrder{}).Preload("Items").Where("tenant_id = ?", tenantID),
		filter, OrderSortFields, "reference_id", "client_name")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountForTenant counts the tenant's client orders matching the filter
func (r *GormClientOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(
		r.db.WithContext(ctx).Model(&trade.ClientOrder{}).Where("tenant_id = ?", tenantID),
		filter, OrderSortFields, "reference_id", "client_name")
	err := query.Count(&count).Error
	return count, err
}

// Save persists a new client order with its lines
func (r *GormClientOrderRepository) Save(ctx context.Context, order *trade.ClientOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update persists changes to an order and upserts its current line set
func (r *GormClientOrderRepository) Update(ctx context.Context, order *trade.ClientOrder) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error
}

// SaveLine persists a new order line
func (r *GormClientOrderRepository) SaveLine(ctx context.Context, line *trade.ClientOrderedItem) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// UpdateLine persists changes to an existing order line
func (r *GormClientOrderRepository) UpdateLine(ctx context.Context, line *trade.ClientOrderedItem) error {
	return r.db.WithContext(ctx).Save(line).Error
}

// DeleteLine removes an order line
func (r *GormClientOrderRepository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&trade.ClientOrderedItem{}, "id = ?", lineID).Error
}

// FindLinesByIDs finds the listed lines whose parent order belongs to
// the tenant.
func (r *GormClientOrderRepository) FindLinesByIDs(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]trade.ClientOrderedItem, error) {
	var lines []trade.ClientOrderedItem
	if err := r.db.WithContext(ctx).
		Joins("JOIN client_orders ON client_orders.id = client_ordered_items.order_id").
		Where("client_orders.tenant_id = ? AND client_ordered_items.id IN ?", tenantID, ids).
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// DeleteForTenant removes a client order belonging to the tenant.
// Lines cascade at the database level.
func (r *GormClientOrderRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&trade.ClientOrder{}, "id = ?", id).Error
}
