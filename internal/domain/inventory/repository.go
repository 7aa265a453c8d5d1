package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocker/backend/internal/domain/shared"
)

// ItemRepository defines persistence operations for inventory items.
// FindByIDsForUpdate must return rows locked in ascending ID order so
// concurrent multi-item transactions cannot deadlock.
type ItemRepository interface {
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*Item, error)
	FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*Item, error)
	FindByIDsForTenant(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]Item, error)
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID, tenantID uuid.UUID) ([]Item, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Item, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID, excludeID *uuid.UUID) (bool, error)
	CountOrderLineReferences(ctx context.Context, itemID uuid.UUID) (int64, error)
	Save(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*Category, error)
	FindByNameForTenant(ctx context.Context, name string, tenantID uuid.UUID) (*Category, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error
}
