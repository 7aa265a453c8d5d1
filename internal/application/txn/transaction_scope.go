package txn

import (
	"context"

	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/partner"
	"github.com/stocker/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the engine repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all engine repositories
// within a transaction. All repositories returned share the same
// underlying database transaction.
//
// The activity repository is included so audit records land in the same
// transaction as the mutation they describe: a rolled-back mutation
// leaves no activity behind.
type TransactionalRepositories interface {
	ItemRepo() inventory.ItemRepository
	CategoryRepo() inventory.CategoryRepository
	SupplierRepo() partner.SupplierRepository
	ClientRepo() partner.ClientRepository
	LocationRepo() partner.LocationRepository
	SourceRepo() partner.AcquisitionSourceRepository
	SupplierOrderRepo() trade.SupplierOrderRepository
	ClientOrderRepo() trade.ClientOrderRepository
	SaleRepo() trade.SaleRepository
	ActivityRepo() activity.Repository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where repositories are mocked.
type NoOpTransactionScope struct {
	itemRepo          inventory.ItemRepository
	categoryRepo      inventory.CategoryRepository
	supplierRepo      partner.SupplierRepository
	clientRepo        partner.ClientRepository
	locationRepo      partner.LocationRepository
	sourceRepo        partner.AcquisitionSourceRepository
	supplierOrderRepo trade.SupplierOrderRepository
	clientOrderRepo   trade.ClientOrderRepository
	saleRepo          trade.SaleRepository
	activityRepo      activity.Repository
}

// NoOpOption configures a NoOpTransactionScope
type NoOpOption func(*NoOpTransactionScope)

// WithItemRepo sets the item repository
func WithItemRepo(r inventory.ItemRepository) NoOpOption {
	return func(s *NoOpTransactionScope) { s.itemRepo = r }
}

// WithCategoryRepo sets the category repository
func WithCategoryRepo(r inventory.CategoryRepository) NoOpOption {
	return func(s *NoOpTransactionScope) { s.categoryRepo = r }
}

// WithSupplierRepo sets the supplier repository
func WithSupplierRepo(r partner.SupplierRepository) NoOpOption {
	return func(s *NoOpTransactionScope) { s.supplierRepo = r }
}

// WithClientRepo sets the client repository
func WithClientRepo(r partner.ClientRepository) NoOpOption {
	return func(s *NoOpTransactionScope) { s.clientRepo = r }
}

// WithLocationRepo sets the location repository
func WithLocationRepo(r partner.LocationRepository) NoOpOption {
	return func(s *NoOpTransactionScope) { s.locationRepo = r }
}

// WithSourceRepo sets the acquisition source repository
func WithSourceRepo(r partner.AcquisitionSourceRepository) NoOpOption {
	return func(s *NoOpTransactionScope) { s.sourceRepo = r }
}

// WithSupplierOrderRepo sets the supplier order repository
func WithSupplierOrderRepo(r trade.SupplierOrderRepository) NoOpOption {
	return func(s *NoOpTransactionScope) { s.supplierOrderRepo = r }
}

// WithClientOrderRepo sets the client order repository
func WithClientOrderRepo(r trade.ClientOrderRepository) NoOpOption {
	return func(s *NoOpTransactionScope) { s.clientOrderRepo = r }
}

// WithSaleRepo sets the sale repository
func WithSaleRepo(r trade.SaleRepository) NoOpOption {
	return func(s *NoOpTransactionScope) { s.saleRepo = r }
}

// WithActivityRepo sets the activity repository
func WithActivityRepo(r activity.Repository) NoOpOption {
	return func(s *NoOpTransactionScope) { s.activityRepo = r }
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(opts ...NoOpOption) *NoOpTransactionScope {
	s := &NoOpTransactionScope{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the item repository
func (s *NoOpTransactionScope) ItemRepo() inventory.ItemRepository { return s.itemRepo }

// CategoryRepo returns the category repository
func (s *NoOpTransactionScope) CategoryRepo() inventory.CategoryRepository { return s.categoryRepo }

// SupplierRepo returns the supplier repository
func (s *NoOpTransactionScope) SupplierRepo() partner.SupplierRepository { return s.supplierRepo }

// ClientRepo returns the client repository
func (s *NoOpTransactionScope) ClientRepo() partner.ClientRepository { return s.clientRepo }

// LocationRepo returns the location repository
func (s *NoOpTransactionScope) LocationRepo() partner.LocationRepository { return s.locationRepo }

// SourceRepo returns the acquisition source repository
func (s *NoOpTransactionScope) SourceRepo() partner.AcquisitionSourceRepository { return s.sourceRepo }

// SupplierOrderRepo returns the supplier order repository
func (s *NoOpTransactionScope) SupplierOrderRepo() trade.SupplierOrderRepository {
	return s.supplierOrderRepo
}

// ClientOrderRepo returns the client order repository
func (s *NoOpTransactionScope) ClientOrderRepo() trade.ClientOrderRepository {
	return s.clientOrderRepo
}

// SaleRepo returns the sale repository
func (s *NoOpTransactionScope) SaleRepo() trade.SaleRepository { return s.saleRepo }

// ActivityRepo returns the activity repository
func (s *NoOpTransactionScope) ActivityRepo() activity.Repository { return s.activityRepo }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
