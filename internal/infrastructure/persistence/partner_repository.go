package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/partner"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByIDForTenant finds a supplier by ID within a tenant
func (r *GormSupplierRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindByNameForTenant finds a supplier by folded name within a tenant
func (r *GormSupplierRepository) FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name_key = ?", tenantID, shared.NormalizeName(name)).
		First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindByIDsForTenant finds all listed suppliers belonging to the tenant
func (r *GormSupplierRepository) FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// FindAllForTenant finds all suppliers for a tenant matching the filter
func (r *GormSupplierRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	query := applyFilter(
		r.db.WithContext(ctx).Model(&partner.Supplier{}).Where("tenant_id = ?", tenantID),
		filter, PartnerSortFields, "name", "email")

	if err := query.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// CountForTenant counts the tenant's suppliers matching the filter
func (r *GormSupplierRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(
		r.db.WithContext(ctx).Model(&partner.Supplier{}).Where("tenant_id = ?", tenantID),
		filter, PartnerSortFields, "name", "email")
	err := query.Count(&count).Error
	return count, err
}

// ExistsByNameForTenant reports whether another supplier already uses
// the folded name within the tenant.
func (r *GormSupplierRepository) ExistsByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&partner.Supplier{}).
		Where("tenant_id = ? AND name_key = ?", tenantID, shared.NormalizeName(name))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// CountOrderReferences counts supplier orders still naming the supplier
func (r *GormSupplierRepository) CountOrderReferences(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&trade.SupplierOrder{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error
	return count, err
}

// Save persists a new supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

// Update persists changes to an existing supplier
func (r *GormSupplierRepository) Update(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// DeleteForTenant removes a supplier belonging to the tenant
func (r *GormSupplierRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&partner.Supplier{}, "id = ?", id).Error
}

// GormClientRepository implements partner.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

var _ partner.ClientRepository = (*GormClientRepository)(nil)

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByIDForTenant finds a client by ID within a tenant
func (r *GormClientRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*partner.Client, error) {
	var client partner.Client
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindByNameForTenant finds a client by folded name within a tenant
func (r *GormClientRepository) FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*partner.Client, error) {
	var client partner.Client
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name_key = ?", tenantID, shared.NormalizeName(name)).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindByIDsForTenant finds all listed clients belonging to the tenant
func (r *GormClientRepository) FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]partner.Client, error) {
	var clients []partner.Client
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// FindAllForTenant finds all clients for a tenant matching the filter
func (r *GormClientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	var clients []partner.Client
	query := applyFilter(
		r.db.WithContext(ctx).Model(&partner.Client{}).Where("tenant_id = ?", tenantID),
		filter, PartnerSortFields, "name", "email")

	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// CountForTenant counts the tenant's clients matching the filter
func (r *GormClientRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(
		r.db.WithContext(ctx).Model(&partner.Client{}).Where("tenant_id = ?", tenantID),
		filter, PartnerSortFields, "name", "email")
	err := query.Count(&count).Error
	return count, err
}

// ExistsByNameForTenant reports whether another client already uses the
// folded name within the tenant.
func (r *GormClientRepository) ExistsByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&partner.Client{}).
		Where("tenant_id = ? AND name_key = ?", tenantID, shared.NormalizeName(name))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// CountOrderReferences counts client orders still naming the client
func (r *GormClientRepository) CountOrderReferences(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&trade.ClientOrder{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	return count, err
}

// Save persists a new client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// Update persists changes to an existing client
func (r *GormClientRepository) Update(ctx context.Context, client *partner.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// DeleteForTenant removes a client belonging to the tenant
func (r *GormClientRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&partner.Client{}, "id = ?", id).Error
}
