package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

var _ trade.SaleRepository = (*GormSaleRepository)(nil)

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForTenant finds a sale by ID within a tenant
func (r *GormSaleRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByOrderID finds the sale linked to a client order
func (r *GormSaleRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_id = ?", orderID).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAllForTenant finds all sales for a tenant
func (r *GormSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	var sales []trade.Sale
	query := applyFilter(
		r.db.WithContext(ctx).Model(&trade.Sale{}).Preload("Items").Where("tenant_id = ?", tenantID),
		filter, OrderSortFields, "reference_id", "client_name")

	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// CountForTenant counts the tenant's sales matching the filter
func (r *GormSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(
		r.db.WithContext(ctx).Model(&trade.Sale{}).Where("tenant_id = ?", tenantID),
		filter, OrderSortFields, "reference_id", "client_name")
	err := query.Count(&count).Error
	return count, err
}

// Save persists a new sale with its sold lines
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// Update persists changes to an existing sale
func (r *GormSaleRepository) Update(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(sale).Error
}

// DeleteSoldLine removes a sold line
func (r *GormSaleRepository) DeleteSoldLine(ctx context.Context, lineID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&trade.SoldItem{}, "id = ?", lineID).Error
}

// FindSoldLinesByIDs finds the listed sold lines whose parent sale
// belongs to the tenant.
func (r *GormSaleRepository) FindSoldLinesByIDs(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]trade.SoldItem, error) {
	var lines []trade.SoldItem
	if err := r.db.WithContext(ctx).
		Joins("JOIN sales ON sales.id = sold_items.sale_id").
		Where("sales.tenant_id = ? AND sold_items.id IN ?", tenantID, ids).
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// DeleteForTenant removes a sale belonging to the tenant.
// Sold lines cascade at the database level.
func (r *GormSaleRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&trade.Sale{}, "id = ?", id).Error
}
