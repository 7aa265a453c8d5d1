package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/domain/trade"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

var _ inventory.ItemRepository = (*GormItemRepository)(nil)

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByIDForTenant finds an item by ID within a tenant
func (r *GormItemRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByNameForTenant finds an item by folded name within a tenant
func (r *GormItemRepository) FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("tenant_id = ? AND name_key = ?", tenantID, shared.NormalizeName(name)).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDsForTenant finds all listed items belonging to the tenant
func (r *GormItemRepository) FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]inventory.Item, error) {
	var items []inventory.Item
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByIDsForUpdate locks and returns the listed items. Rows are locked
// in ascending ID order so concurrent transactions cannot deadlock.
func (r *GormItemRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]inventory.Item, error) {
	var items []inventory.Item
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAllForTenant finds all items for a tenant matching the filter
func (r *GormItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Item{}).Preload("Variants").Where("tenant_id = ?", tenantID),
		filter, ItemSortFields, "name")

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountForTenant counts the tenant's items matching the filter
func (r *GormItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCountFilter(
		r.db.WithContext(ctx).Model(&inventory.Item{}).Where("tenant_id = ?", tenantID),
		filter, ItemSortFields, "name")
	err := query.Count(&count).Error
	return count, err
}

// ExistsByNameForTenant reports whether another item already uses the
// folded name within the tenant.
func (r *GormItemRepository) ExistsByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&inventory.Item{}).
		Where("tenant_id = ? AND name_key = ?", tenantID, shared.NormalizeName(name))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// CountOrderLineReferences counts order lines across both order kinds
// still referencing the item.
func (r *GormItemRepository) CountOrderLineReferences(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var supplierLines int64
	if err := r.db.WithContext(ctx).Model(&trade.SupplierOrderedItem{}).
		Where("item_id = ?", itemID).
		Count(&supplierLines).Error; err != nil {
		return 0, err
	}

	var clientLines int64
	if err := r.db.WithContext(ctx).Model(&trade.ClientOrderedItem{}).
		Where("item_id = ?", itemID).
		Count(&clientLines).Error; err != nil {
		return 0, err
	}

	return supplierLines + clientLines, nil
}

// Save persists a new item with its variants
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update persists changes to an existing item and its variant set
func (r *GormItemRepository) Update(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(item).Error
}

// DeleteForTenant removes an item belonging to the tenant
func (r *GormItemRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&inventory.Item{}, "id = ?", id).Error
}

// GormCategoryRepository implements inventory.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

var _ inventory.CategoryRepository = (*GormCategoryRepository)(nil)

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByIDForTenant finds a category by ID within a tenant
func (r *GormCategoryRepository) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*inventory.Category, error) {
	var category inventory.Category
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByNameForTenant finds a category by folded name within a tenant
func (r *GormCategoryRepository) FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*inventory.Category, error) {
	var category inventory.Category
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name_key = ?", tenantID, shared.NormalizeName(name)).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAllForTenant finds all categories for a tenant
func (r *GormCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Category, error) {
	var categories []inventory.Category
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Category{}).Where("tenant_id = ?", tenantID),
		filter, PartnerSortFields, "name")

	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save persists a new category
func (r *GormCategoryRepository) Save(ctx context.Context, category *inventory.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// DeleteForTenant removes a category belonging to the tenant
func (r *GormCategoryRepository) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&inventory.Category{}, "id = ?", id).Error
}
