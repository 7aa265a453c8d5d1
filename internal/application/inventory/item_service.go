package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appactivity "github.com/stocker/backend/internal/application/activity"
	"github.com/stocker/backend/internal/application/txn"
	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const modelItem = "item"

// ItemService owns the inventory item store. Every write runs in one
// transaction together with its activity record.
type ItemService struct {
	items  inventory.ItemRepository
	scope  txn.TransactionScope
	logger *zap.Logger
}

// NewItemService creates a new ItemService
func NewItemService(items inventory.ItemRepository, scope txn.TransactionScope, logger *zap.Logger) *ItemService {
	return &ItemService{items: items, scope: scope, logger: logger}
}

// Create creates a new item for the tenant
func (s *ItemService) Create(ctx context.Context, tenantID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	var resp ItemResponse

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		exists, err := repos.ItemRepo().ExistsByNameForTenant(ctx, req.Name, tenantID, nil)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError(shared.CodeConflict,
				fmt.Sprintf("An item named %q already exists", req.Name))
		}

		item, err := inventory.NewItem(tenantID, req.Name, req.Quantity, req.Price)
		if err != nil {
			return err
		}
		item.Picture = req.Picture

		if req.Category != nil && *req.Category != "" {
			categoryID, err := s.resolveCategory(ctx, repos, tenantID, *req.Category)
			if err != nil {
				return err
			}
			item.CategoryID = categoryID
		}
		if req.Supplier != nil && *req.Supplier != "" {
			supplier, err := repos.SupplierRepo().FindByNameForTenant(ctx, *req.Supplier, tenantID)
			if err != nil {
				return shared.NewDomainError(shared.CodeNotFound,
					fmt.Sprintf("Unknown supplier %q", *req.Supplier))
			}
			item.SupplierID = &supplier.ID
		}
		if len(req.Variants) > 0 {
			variants, err := buildVariants(req.Variants)
			if err != nil {
				return err
			}
			if err := item.ReplaceVariants(variants); err != nil {
				return err
			}
			// creation is not an update
			item.Updated = false
		}

		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return err
		}
		if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionCreated, modelItem, []string{item.Name}); err != nil {
			return err
		}

		resp = ToItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("item", resp.Name))

	return &resp, nil
}

// Update applies a full or partial update; nil fields are untouched
func (s *ItemService) Update(ctx context.Context, tenantID, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	var resp ItemResponse

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByIDForTenant(ctx, itemID, tenantID)
		if err != nil {
			return err
		}

		if req.Name != nil && !shared.SameName(*req.Name, item.Name) {
			exists, err := repos.ItemRepo().ExistsByNameForTenant(ctx, *req.Name, tenantID, &item.ID)
			if err != nil {
				return err
			}
			if exists {
				return shared.NewDomainError(shared.CodeConflict,
					fmt.Sprintf("An item named %q already exists", *req.Name))
			}
			if err := item.Rename(*req.Name); err != nil {
				return err
			}
		}

		if req.Quantity != nil && *req.Quantity != item.Quantity {
			// Direct quantity edits are refused while order lines hold
			// this item; only the order engines may move locked stock.
			refs, err := repos.ItemRepo().CountOrderLineReferences(ctx, item.ID)
			if err != nil {
				return err
			}
			if refs > 0 {
				return shared.NewDomainError(shared.CodeConflict,
					fmt.Sprintf("Item %q has open order lines; quantity is managed by its orders", item.Name))
			}
			if err := item.SetQuantity(*req.Quantity); err != nil {
				return err
			}
		}
		if req.Price != nil {
			if err := item.SetPrice(*req.Price); err != nil {
				return err
			}
		}
		if req.Category != nil {
			if *req.Category == "" {
				item.SetCategory(nil)
			} else {
				categoryID, err := s.resolveCategory(ctx, repos, tenantID, *req.Category)
				if err != nil {
					return err
				}
				item.SetCategory(categoryID)
			}
		}
		if req.Supplier != nil {
			if *req.Supplier == "" {
				item.SetSupplier(nil)
			} else {
				supplier, err := repos.SupplierRepo().FindByNameForTenant(ctx, *req.Supplier, tenantID)
				if err != nil {
					return shared.NewDomainError(shared.CodeNotFound,
						fmt.Sprintf("Unknown supplier %q", *req.Supplier))
				}
				item.SetSupplier(&supplier.ID)
			}
		}
		if req.Variants != nil {
			variants, err := buildVariants(*req.Variants)
			if err != nil {
				return err
			}
			if err := item.ReplaceVariants(variants); err != nil {
				return err
			}
		}
		if req.Picture != nil {
			item.SetPicture(*req.Picture)
		}

		if err := repos.ItemRepo().Update(ctx, item); err != nil {
			return err
		}
		if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionUpdated, modelItem, []string{item.Name}); err != nil {
			return err
		}

		resp = ToItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// Delete removes an item unless outstanding order lines still reference it
func (s *ItemService) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByIDForTenant(ctx, itemID, tenantID)
		if err != nil {
			return err
		}

		refs, err := repos.ItemRepo().CountOrderLineReferences(ctx, item.ID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return shared.NewDomainError(shared.CodeConflict,
				fmt.Sprintf("Item %q is referenced by %d order line(s)", item.Name, refs))
		}

		if err := repos.ItemRepo().DeleteForTenant(ctx, item.ID, tenantID); err != nil {
			return err
		}
		return appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionDeleted, modelItem, []string{item.Name})
	})
}

// GetByID retrieves one item
func (s *ItemService) GetByID(ctx context.Context, tenantID, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.items.FindByIDForTenant(ctx, itemID, tenantID)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// List retrieves the tenant's items with filtering and pagination
func (s *ItemService) List(ctx context.Context, tenantID uuid.UUID, filter ItemListFilter) ([]ItemResponse, int64, error) {
	domainFilter := shared.NewFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.InInventory != nil {
		domainFilter.Filters["in_inventory"] = *filter.InInventory
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}

	items, err := s.items.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.items.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToItemResponses(items), total, nil
}

func (s *ItemService) resolveCategory(ctx context.Context, repos txn.TransactionalRepositories, tenantID uuid.UUID, name string) (*uuid.UUID, error) {
	existing, err := repos.CategoryRepo().FindByNameForTenant(ctx, name, tenantID)
	if err == nil {
		return &existing.ID, nil
	}
	if domainErr, ok := err.(*shared.DomainError); !ok || domainErr.Code != shared.CodeNotFound {
		return nil, err
	}

	category, err := inventory.NewCategory(tenantID, name)
	if err != nil {
		return nil, err
	}
	if err := repos.CategoryRepo().Save(ctx, category); err != nil {
		return nil, err
	}
	return &category.ID, nil
}

func buildVariants(inputs []VariantInput) ([]inventory.ItemVariant, error) {
	variants := make([]inventory.ItemVariant, 0, len(inputs))
	for _, in := range inputs {
		v, err := inventory.NewItemVariant(in.Name, in.Options)
		if err != nil {
			return nil, err
		}
		variants = append(variants, *v)
	}
	return variants, nil
}
