package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/shared"
)

// SupplierOrderRepository defines persistence operations for supplier orders.
// Find methods preload the order's line set.
type SupplierOrderRepository interface {
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*SupplierOrder, error)
	FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]SupplierOrder, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SupplierOrder, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *SupplierOrder) error
	Update(ctx context.Context, order *SupplierOrder) error
	SaveLine(ctx context.Context, line *SupplierOrderedItem) error
	UpdateLine(ctx context.Context, line *SupplierOrderedItem) error
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	FindLinesByIDs(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]SupplierOrderedItem, error)
	DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error
}

// ClientOrderRepository defines persistence operations for client orders.
// Find methods preload the order's line set.
type ClientOrderRepository interface {
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*ClientOrder, error)
	FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]ClientOrder, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ClientOrder, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *ClientOrder) error
	Update(ctx context.Context, order *ClientOrder) error
	SaveLine(ctx context.Context, line *ClientOrderedItem) error
	UpdateLine(ctx context.Context, line *ClientOrderedItem) error
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	FindLinesByIDs(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]ClientOrderedItem, error)
	DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error
}

// SaleRepository defines persistence operations for sales
type SaleRepository interface {
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*Sale, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Sale, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Sale, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, sale *Sale) error
	Update(ctx context.Context, sale *Sale) error
	DeleteSoldLine(ctx context.Context, lineID uuid.UUID) error
	FindSoldLinesByIDs(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]SoldItem, error)
	DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error
}
