package persistence

import (
	"context"

	"github.com/stocker/backend/internal/infrastructure/cache"
	"gorm.io/gorm"
)

// GormStatusRepository reads the migration-seeded order-status tables.
// It backs the in-process status cache.
type GormStatusRepository struct {
	db *gorm.DB
}

var _ cache.StatusLoader = (*GormStatusRepository)(nil)

// NewGormStatusRepository creates a new GormStatusRepository
func NewGormStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// LoadDeliveryStatuses returns the seeded delivery status names
func (r *GormStatusRepository) LoadDeliveryStatuses(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("delivery_statuses").
		Order("sort_order ASC").
		Pluck("name", &names).Error
	return names, err
}

// LoadPaymentStatuses returns the seeded payment status names
func (r *GormStatusRepository) LoadPaymentStatuses(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("payment_statuses").
		Order("sort_order ASC").
		Pluck("name", &names).Error
	return names, err
}
