package bulk

import (
	"context"
	"sort"

	"github.com/google/uuid"
	appactivity "github.com/stocker/backend/internal/application/activity"
	"github.com/stocker/backend/internal/application/txn"
	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// BulkService deletes batches of rows in one transaction per batch.
// Rows refused by a pre-check are reported back instead of failing the
// whole batch; only a fully blocked batch deletes nothing.
type BulkService struct {
	scope  txn.TransactionScope
	logger *zap.Logger
}

// NewBulkService creates a new BulkService
func NewBulkService(scope txn.TransactionScope, logger *zap.Logger) *BulkService {
	return &BulkService{scope: scope, logger: logger}
}

// DeleteItems removes inventory items. Items referenced by any order
// line are blocked.
func (s *BulkService) DeleteItems(ctx context.Context, tenantID uuid.UUID, req DeleteRequest) (*Result, error) {
	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		items, err := repos.ItemRepo().FindByIDsForTenant(ctx, ids, tenantID)
		if err != nil {
			return err
		}
		missing := missingIDs(ids, func() []uuid.UUID {
			found := make([]uuid.UUID, 0, len(items))
			for idx := range items {
				found = append(found, items[idx].ID)
			}
			return found
		}())

		var blocked []BlockedRow
		var deletable []*inventory.Item
		for idx := range items {
			refs, err := repos.ItemRepo().CountOrderLineReferences(ctx, items[idx].ID)
			if err != nil {
				return err
			}
			if refs > 0 {
				blocked = append(blocked, BlockedRow{
					ID:     items[idx].ID,
					Name:   items[idx].Name,
					Reason: "referenced by order lines",
				})
				continue
			}
			deletable = append(deletable, &items[idx])
		}

		names := make([]string, 0, len(deletable))
		for _, item := range deletable {
			if err := repos.ItemRepo().DeleteForTenant(ctx, item.ID, tenantID); err != nil {
				return err
			}
			names = append(names, item.Name)
		}
		if len(names) > 0 {
			if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
				activity.ActionDeleted, "item", names); err != nil {
				return err
			}
		}

		result = buildResult("item", "items", len(deletable), missing, "linked_items", blocked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logBatch(tenantID, "items", result)
	return result, nil
}

// DeleteSuppliers removes suppliers. Suppliers linked to existing
// orders are blocked.
func (s *BulkService) DeleteSuppliers(ctx context.Context, tenantID uuid.UUID, req DeleteRequest) (*Result, error) {
	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		suppliers, err := repos.SupplierRepo().FindByIDsForTenant(ctx, ids, tenantID)
		if err != nil {
			return err
		}
		found := make([]uuid.UUID, 0, len(suppliers))
		for idx := range suppliers {
			found = append(found, suppliers[idx].ID)
		}
		missing := missingIDs(ids, found)

		var blocked []BlockedRow
		var names []string
		deleted := 0
		for idx := range suppliers {
			refs, err := repos.SupplierRepo().CountOrderReferences(ctx, suppliers[idx].ID)
			if err != nil {
				return err
			}
			if refs > 0 {
				blocked = append(blocked, BlockedRow{ID: suppliers[idx].ID, Name: suppliers[idx].Name})
				continue
			}
			if err := repos.SupplierRepo().DeleteForTenant(ctx, suppliers[idx].ID, tenantID); err != nil {
				return err
			}
			names = append(names, suppliers[idx].Name)
			deleted++
		}
		if len(names) > 0 {
			if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
				activity.ActionDeleted, "supplier", names); err != nil {
				return err
			}
		}

		result = buildResult("supplier", "suppliers", deleted, missing, "linked_suppliers", blocked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logBatch(tenantID, "suppliers", result)
	return result, nil
}

// DeleteClients removes clients. Clients linked to existing orders are
// blocked.
func (s *BulkService) DeleteClients(ctx context.Context, tenantID uuid.UUID, req DeleteRequest) (*Result, error) {
	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		clients, err := repos.ClientRepo().FindByIDsForTenant(ctx, ids, tenantID)
		if err != nil {
			return err
		}
		found := make([]uuid.UUID, 0, len(clients))
		for idx := range clients {
			found = append(found, clients[idx].ID)
		}
		missing := missingIDs(ids, found)

		var blocked []BlockedRow
		var names []string
		deleted := 0
		for idx := range clients {
			refs, err := repos.ClientRepo().CountOrderReferences(ctx, clients[idx].ID)
			if err != nil {
				return err
			}
			if refs > 0 {
				blocked = append(blocked, BlockedRow{ID: clients[idx].ID, Name: clients[idx].Name})
				continue
			}
			if err := repos.ClientRepo().DeleteForTenant(ctx, clients[idx].ID, tenantID); err != nil {
				return err
			}
			names = append(names, clients[idx].Name)
			deleted++
		}
		if len(names) > 0 {
			if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
				activity.ActionDeleted, "client", names); err != nil {
				return err
			}
		}

		result = buildResult("client", "clients", deleted, missing, "linked_clients", blocked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logBatch(tenantID, "clients", result)
	return result, nil
}

// DeleteSupplierOrders removes supplier orders. Deletion never reverses
// inventory already folded in by a delivery.
func (s *BulkService) DeleteSupplierOrders(ctx context.Context, tenantID uuid.UUID, req DeleteRequest) (*Result, error) {
	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		orders, err := repos.SupplierOrderRepo().FindByIDsForTenant(ctx, ids, tenantID)
		if err != nil {
			return err
		}
		found := make([]uuid.UUID, 0, len(orders))
		for idx := range orders {
			found = append(found, orders[idx].ID)
		}
		missing := missingIDs(ids, found)

		refs := make([]string, 0, len(orders))
		for idx := range orders {
			if err := repos.SupplierOrderRepo().DeleteForTenant(ctx, orders[idx].ID, tenantID); err != nil {
				return err
			}
			refs = append(refs, orders[idx].ReferenceID)
		}
		if len(refs) > 0 {
			if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
				activity.ActionDeleted, "supplier order", refs); err != nil {
				return err
			}
		}

		result = buildResult("supplier order", "supplier orders", len(orders), missing, "blocked_orders", nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logBatch(tenantID, "supplier orders", result)
	return result, nil
}

// DeleteClientOrders removes client orders. A sale-linked order detaches
// its sale and keeps the stock delta; any other order restocks its lines.
func (s *BulkService) DeleteClientOrders(ctx context.Context, tenantID uuid.UUID, req DeleteRequest) (*Result, error) {
	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		orders, err := repos.ClientOrderRepo().FindByIDsForTenant(ctx, ids, tenantID)
		if err != nil {
			return err
		}
		found := make([]uuid.UUID, 0, len(orders))
		for idx := range orders {
			found = append(found, orders[idx].ID)
		}
		missing := missingIDs(ids, found)

		// Restocking orders contribute their item IDs to one shared lock
		// pass so lock order stays ascending across the whole batch.
		restocking := make([]*trade.ClientOrder, 0, len(orders))
		itemIDs := make([]uuid.UUID, 0)
		for idx := range orders {
			order := &orders[idx]
			if order.HasSale() {
				sale, err := repos.SaleRepo().FindByOrderID(ctx, order.ID)
				if err != nil {
					return err
				}
				sale.Detach()
				if err := repos.SaleRepo().Update(ctx, sale); err != nil {
					return err
				}
				continue
			}
			restocking = append(restocking, order)
			for lineIdx := range order.Items {
				itemIDs = append(itemIDs, order.Items[lineIdx].ItemID)
			}
		}

		if len(itemIDs) > 0 {
			locked, err := lockItems(ctx, repos, itemIDs, tenantID)
			if err != nil {
				return err
			}
			for _, order := range restocking {
				for lineIdx := range order.Items {
					line := &order.Items[lineIdx]
					if err := locked[line.ItemID].Restock(line.OrderedQuantity); err != nil {
						return err
					}
					if err := repos.ItemRepo().Update(ctx, locked[line.ItemID]); err != nil {
						return err
					}
				}
			}
		}

		refs := make([]string, 0, len(orders))
		for idx := range orders {
			if err := repos.ClientOrderRepo().DeleteForTenant(ctx, orders[idx].ID, tenantID); err != nil {
				return err
			}
			refs = append(refs, orders[idx].ReferenceID)
		}
		if len(refs) > 0 {
			if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
				activity.ActionDeleted, "client order", refs); err != nil {
				return err
			}
		}

		result = buildResult("client order", "client orders", len(orders), missing, "blocked_orders", nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logBatch(tenantID, "client orders", result)
	return result, nil
}

// DeleteSupplierOrderLines removes supplier order lines. Lines of a
// Delivered order are frozen, and every order must keep at least one line.
func (s *BulkService) DeleteSupplierOrderLines(ctx context.Context, tenantID uuid.UUID, req DeleteRequest) (*Result, error) {
	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		lines, err := repos.SupplierOrderRepo().FindLinesByIDs(ctx, ids, tenantID)
		if err != nil {
			return err
		}
		found := make([]uuid.UUID, 0, len(lines))
		for idx := range lines {
			found = append(found, lines[idx].ID)
		}
		missing := missingIDs(ids, found)

		byOrder := make(map[uuid.UUID][]*trade.SupplierOrderedItem)
		for idx := range lines {
			byOrder[lines[idx].OrderID] = append(byOrder[lines[idx].OrderID], &lines[idx])
		}

		var blocked []BlockedRow
		var names []string
		deleted := 0
		for _, orderID := range sortedKeys(byOrder) {
			group := byOrder[orderID]
			order, err := repos.SupplierOrderRepo().FindByIDForTenant(ctx, orderID, tenantID)
			if err != nil {
				return err
			}

			if reason := lineBlockReason(order.IsDelivered(), order.LineCount(), len(group)); reason != "" {
				for _, line := range group {
					blocked = append(blocked, BlockedRow{ID: line.ID, Name: line.ItemName, Reason: reason})
				}
				continue
			}

			for _, line := range group {
				if err := repos.SupplierOrderRepo().DeleteLine(ctx, line.ID); err != nil {
					return err
				}
				names = append(names, line.ItemName)
				deleted++
			}
		}
		if len(names) > 0 {
			if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
				activity.ActionDeleted, "supplier ordered item", names); err != nil {
				return err
			}
		}

		result = buildResult("ordered item", "ordered items", deleted, missing, "blocked_items", blocked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logBatch(tenantID, "supplier order lines", result)
	return result, nil
}

// DeleteClientOrderLines removes client order lines and restocks each
// deleted line's quantity. Lines of a Delivered order are frozen, and
// every order must keep at least one line.
func (s *BulkService) DeleteClientOrderLines(ctx context.Context, tenantID uuid.UUID, req DeleteRequest) (*Result, error) {
	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		lines, err := repos.ClientOrderRepo().FindLinesByIDs(ctx, ids, tenantID)
		if err != nil {
			return err
		}
		found := make([]uuid.UUID, 0, len(lines))
		for idx := range lines {
			found = append(found, lines[idx].ID)
		}
		missing := missingIDs(ids, found)

		byOrder := make(map[uuid.UUID][]*trade.ClientOrderedItem)
		for idx := range lines {
			byOrder[lines[idx].OrderID] = append(byOrder[lines[idx].OrderID], &lines[idx])
		}

		var blocked []BlockedRow
		deletable := make([]*trade.ClientOrderedItem, 0, len(lines))
		for _, orderID := range sortedKeys(byOrder) {
			group := byOrder[orderID]
			order, err := repos.ClientOrderRepo().FindByIDForTenant(ctx, orderID, tenantID)
			if err != nil {
				return err
			}

			if reason := lineBlockReason(order.IsDelivered(), order.LineCount(), len(group)); reason != "" {
				for _, line := range group {
					blocked = append(blocked, BlockedRow{ID: line.ID, Name: line.ItemName, Reason: reason})
				}
				continue
			}
			deletable = append(deletable, group...)
		}

		itemIDs := make([]uuid.UUID, 0, len(deletable))
		for _, line := range deletable {
			itemIDs = append(itemIDs, line.ItemID)
		}
		locked, err := lockItems(ctx, repos, itemIDs, tenantID)
		if err != nil {
			return err
		}

		var names []string
		for _, line := range deletable {
			if err := locked[line.ItemID].Restock(line.OrderedQuantity); err != nil {
				return err
			}
			if err := repos.ItemRepo().Update(ctx, locked[line.ItemID]); err != nil {
				return err
			}
			if err := repos.ClientOrderRepo().DeleteLine(ctx, line.ID); err != nil {
				return err
			}
			names = append(names, line.ItemName)
		}
		if len(names) > 0 {
			if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
				activity.ActionDeleted, "client ordered item", names); err != nil {
				return err
			}
		}

		result = buildResult("ordered item", "ordered items", len(deletable), missing, "blocked_items", blocked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logBatch(tenantID, "client order lines", result)
	return result, nil
}

// DeleteSoldItems removes sold lines. Every sale must keep at least one
// line; lines of standalone sales restock their quantities.
func (s *BulkService) DeleteSoldItems(ctx context.Context, tenantID uuid.UUID, req DeleteRequest) (*Result, error) {
	ids, err := parseIDs(req.IDs)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		lines, err := repos.SaleRepo().FindSoldLinesByIDs(ctx, ids, tenantID)
		if err != nil {
			return err
		}
		found := make([]uuid.UUID, 0, len(lines))
		for idx := range lines {
			found = append(found, lines[idx].ID)
		}
		missing := missingIDs(ids, found)

		bySale := make(map[uuid.UUID][]*trade.SoldItem)
		for idx := range lines {
			bySale[lines[idx].SaleID] = append(bySale[lines[idx].SaleID], &lines[idx])
		}

		var blocked []BlockedRow
		deletable := make([]*trade.SoldItem, 0, len(lines))
		restockIDs := make([]uuid.UUID, 0, len(lines))
		restocks := make(map[uuid.UUID]bool)
		for _, saleID := range sortedKeys(bySale) {
			group := bySale[saleID]
			sale, err := repos.SaleRepo().FindByIDForTenant(ctx, saleID, tenantID)
			if err != nil {
				return err
			}

			if sale.LineCount()-len(group) < 1 {
				for _, line := range group {
					blocked = append(blocked, BlockedRow{
						ID:     line.ID,
						Name:   line.ItemName,
						Reason: "sale must keep at least one item",
					})
				}
				continue
			}

			restocks[saleID] = sale.RestocksOnDelete()
			deletable = append(deletable, group...)
			if sale.RestocksOnDelete() {
				for _, line := range group {
					restockIDs = append(restockIDs, line.ItemID)
				}
			}
		}

		locked, err := lockItems(ctx, repos, restockIDs, tenantID)
		if err != nil {
			return err
		}

		var names []string
		for _, line := range deletable {
			if restocks[line.SaleID] {
				if err := locked[line.ItemID].Restock(line.SoldQuantity); err != nil {
					return err
				}
				if err := repos.ItemRepo().Update(ctx, locked[line.ItemID]); err != nil {
					return err
				}
			}
			if err := repos.SaleRepo().DeleteSoldLine(ctx, line.ID); err != nil {
				return err
			}
			names = append(names, line.ItemName)
		}
		if len(names) > 0 {
			if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
				activity.ActionDeleted, "sold item", names); err != nil {
				return err
			}
		}

		result = buildResult("sold item", "sold items", len(deletable), missing, "blocked_items", blocked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logBatch(tenantID, "sold items", result)
	return result, nil
}

func (s *BulkService) logBatch(tenantID uuid.UUID, kind string, result *Result) {
	s.logger.Info("bulk delete",
		zap.String("tenant_id", tenantID.String()),
		zap.String("kind", kind),
		zap.Int("deleted", result.DeletedCount),
		zap.Int("blocked", len(result.Blocked)),
		zap.Int("missing", len(result.MissingIDs)))
}

// parseIDs rejects empty batches, reports malformed identifiers under
// invalid_uuids and deduplicates the rest preserving request order.
func parseIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "No IDs provided.")
	}

	var invalid []string
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, candidate := range raw {
		id, err := uuid.Parse(candidate)
		if err != nil {
			invalid = append(invalid, candidate)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(invalid) > 0 {
		return nil, shared.NewDomainErrorWithDetails(shared.CodeValidation,
			"Some identifiers are not valid UUIDs",
			map[string]any{"invalid_uuids": invalid})
	}
	return ids, nil
}

func missingIDs(requested, found []uuid.UUID) []string {
	foundSet := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		foundSet[id] = struct{}{}
	}

	var missing []string
	for _, id := range requested {
		if _, ok := foundSet[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	return missing
}

func lineBlockReason(delivered bool, lineCount, removing int) string {
	if delivered {
		return "order is delivered"
	}
	if lineCount-removing < 1 {
		return "order must keep at least one item"
	}
	return ""
}

// lockItems loads the given items under FOR UPDATE, deduplicating IDs.
// The repository locks rows in ascending ID order.
func lockItems(ctx context.Context, repos txn.TransactionalRepositories, ids []uuid.UUID, tenantID uuid.UUID) (map[uuid.UUID]*inventory.Item, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*inventory.Item{}, nil
	}

	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	items, err := repos.ItemRepo().FindByIDsForUpdate(ctx, unique, tenantID)
	if err != nil {
		return nil, err
	}
	if len(items) != len(unique) {
		return nil, shared.NewDomainError(shared.CodeNotFound, "One or more items no longer exist")
	}

	locked := make(map[uuid.UUID]*inventory.Item, len(items))
	for idx := range items {
		locked[items[idx].ID] = &items[idx]
	}
	return locked, nil
}

func sortedKeys[T any](m map[uuid.UUID][]T) []uuid.UUID {
	keys := make([]uuid.UUID, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
