package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormActivityRepository implements activity.Repository using GORM.
// The table is append-only; no update or delete paths exist.
type GormActivityRepository struct {
	db *gorm.DB
}

var _ activity.Repository = (*GormActivityRepository)(nil)

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Append persists one activity row
func (r *GormActivityRepository) Append(ctx context.Context, record *activity.Activity) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindAllForTenant returns the tenant's activity feed, newest first
func (r *GormActivityRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]activity.Activity, error) {
	var records []activity.Activity
	query := applyFilter(
		r.db.WithContext(ctx).Model(&activity.Activity{}).Where("tenant_id = ?", tenantID),
		filter, CommonSortFields)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountForTenant counts the tenant's activity rows
func (r *GormActivityRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&activity.Activity{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
