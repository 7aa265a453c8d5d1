package persistence

import (
	"context"

	"github.com/stocker/backend/internal/application/txn"
	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/partner"
	"github.com/stocker/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements txn.TransactionScope using GORM
// transactions. Every repository handed to the callback shares the
// same underlying transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

var _ txn.TransactionScope = (*GormTransactionScope)(nil)

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos txn.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides transaction-scoped repositories
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

var _ txn.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

func (r *gormTransactionalRepositories) ItemRepo() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) CategoryRepo() inventory.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

func (r *gormTransactionalRepositories) SupplierRepo() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

func (r *gormTransactionalRepositories) ClientRepo() partner.ClientRepository {
	return NewGormClientRepository(r.tx)
}

func (r *gormTransactionalRepositories) LocationRepo() partner.LocationRepository {
	return NewGormLocationRepository(r.tx)
}

func (r *gormTransactionalRepositories) SourceRepo() partner.AcquisitionSourceRepository {
	return NewGormAcquisitionSourceRepository(r.tx)
}

func (r *gormTransactionalRepositories) SupplierOrderRepo() trade.SupplierOrderRepository {
	return NewGormSupplierOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) ClientOrderRepo() trade.ClientOrderRepository {
	return NewGormClientOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) SaleRepo() trade.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormTransactionalRepositories) ActivityRepo() activity.Repository {
	return NewGormActivityRepository(r.tx)
}
