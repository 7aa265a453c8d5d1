package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appactivity "github.com/stocker/backend/internal/application/activity"
	"github.com/stocker/backend/internal/application/txn"
	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/domain/trade"
	"go.uber.org/zap"
)

const modelSupplierOrder = "supplier order"

// SupplierOrderService is the engine for stock entering inventory.
// On transition to Delivered it folds the ordered lines into the items
// using weighted-average pricing, inside the same transaction.
type SupplierOrderService struct {
	orders  trade.SupplierOrderRepository
	scope   txn.TransactionScope
	metrics Recorder
	logger  *zap.Logger
}

// NewSupplierOrderService creates a new SupplierOrderService
func NewSupplierOrderService(orders trade.SupplierOrderRepository, scope txn.TransactionScope, metrics Recorder, logger *zap.Logger) *SupplierOrderService {
	if metrics == nil {
		metrics = NopRecorder
	}
	return &SupplierOrderService{orders: orders, scope: scope, metrics: metrics, logger: logger}
}

// Create creates a supplier order with its lines in one transaction.
// Items named on lines are located or created; an existing item recorded
// against a different supplier fails with SUPPLIER_MISMATCH. If the
// effective delivery status is Delivered the lines are folded into
// inventory immediately.
func (s *SupplierOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSupplierOrderRequest) (*SupplierOrderResponse, error) {
	if err := validateLineInputs(req.OrderedItems); err != nil {
		return nil, err
	}
	deliveryStatus, err := parseDeliveryStatus(req.DeliveryStatus, trade.DeliveryPending)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := parsePaymentStatus(req.PaymentStatus, trade.PaymentPending)
	if err != nil {
		return nil, err
	}

	var resp SupplierOrderResponse
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		supplier, err := repos.SupplierRepo().FindByNameForTenant(ctx, req.Supplier, tenantID)
		if err != nil {
			return shared.NewDomainError(shared.CodeNotFound,
				fmt.Sprintf("Unknown supplier %q", req.Supplier))
		}

		order, err := trade.NewSupplierOrder(tenantID, supplier.ID, supplier.Name)
		if err != nil {
			return err
		}
		order.DeliveryStatus = deliveryStatus
		order.PaymentStatus = paymentStatus
		if err := order.SetTracking(req.TrackingNumber, req.ShippingCost); err != nil {
			return err
		}
		order.Updated = false

		for _, in := range req.OrderedItems {
			item, err := s.resolveLineItem(ctx, repos, tenantID, supplier.ID, in.Item)
			if err != nil {
				return err
			}
			if _, err := order.AddLine(item.ID, item.Name, in.OrderedQuantity, in.OrderedPrice); err != nil {
				return err
			}
		}
		order.Updated = false

		if err := repos.SupplierOrderRepo().Save(ctx, order); err != nil {
			return err
		}

		if order.IsDelivered() {
			if err := s.foldIntoInventory(ctx, repos, order); err != nil {
				return err
			}
		}

		if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionCreated, modelSupplierOrder, []string{order.ReferenceID, supplier.Name}); err != nil {
			return err
		}

		resp = ToSupplierOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.DeliveryStatus == string(trade.DeliveryDelivered) {
		s.metrics.OrderDelivered(KindSupplier)
		s.metrics.StockMovement(MovementIn, orderedUnits(resp.OrderedItems))
	}

	s.logger.Info("supplier order created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("reference_id", resp.ReferenceID),
		zap.String("delivery_status", resp.DeliveryStatus))

	return &resp, nil
}

// Update applies a partial update with line reconciliation.
// A Delivered order refuses changes to supplier, lines and delivery
// status; payment status, tracking number and shipping cost stay open.
func (s *SupplierOrderService) Update(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateSupplierOrderRequest) (*SupplierOrderResponse, error) {
	if req.OrderedItems != nil {
		if err := validateLineInputs(*req.OrderedItems); err != nil {
			return nil, err
		}
	}

	var resp SupplierOrderResponse
	delivered := false
	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		order, err := repos.SupplierOrderRepo().FindByIDForTenant(ctx, orderID, tenantID)
		if err != nil {
			return err
		}

		// Collect every restricted field the request touches so the
		// refusal names all of them at once.
		var restricted []string
		if req.Supplier != nil && !shared.SameName(*req.Supplier, order.SupplierName) {
			restricted = append(restricted, trade.FieldSupplier)
		}
		if req.OrderedItems != nil {
			restricted = append(restricted, trade.FieldOrderedItems)
		}
		if req.DeliveryStatus != nil && trade.DeliveryStatus(*req.DeliveryStatus) != order.DeliveryStatus {
			restricted = append(restricted, trade.FieldDeliveryStatus)
		}
		if err := order.EnsureMutable(restricted...); err != nil {
			return err
		}

		if req.Supplier != nil && !shared.SameName(*req.Supplier, order.SupplierName) {
			if err := s.changeSupplier(ctx, repos, tenantID, order, *req.Supplier); err != nil {
				return err
			}
		}

		becameDelivered := false
		if req.DeliveryStatus != nil {
			status, err := parseDeliveryStatus(req.DeliveryStatus, order.DeliveryStatus)
			if err != nil {
				return err
			}
			becameDelivered, err = order.SetDeliveryStatus(status)
			if err != nil {
				return err
			}
		}
		if req.PaymentStatus != nil {
			status, err := parsePaymentStatus(req.PaymentStatus, order.PaymentStatus)
			if err != nil {
				return err
			}
			if err := order.SetPaymentStatus(status); err != nil {
				return err
			}
		}
		if req.TrackingNumber != nil || req.ShippingCost != nil {
			if err := order.SetTracking(req.TrackingNumber, req.ShippingCost); err != nil {
				return err
			}
		}

		if req.OrderedItems != nil {
			if err := s.reconcileLines(ctx, repos, tenantID, order, *req.OrderedItems); err != nil {
				return err
			}
		}

		if err := repos.SupplierOrderRepo().Update(ctx, order); err != nil {
			return err
		}

		// Fold after reconciliation so the delivery applies to the
		// final line set.
		if becameDelivered {
			if err := s.foldIntoInventory(ctx, repos, order); err != nil {
				return err
			}
			delivered = true
		}

		if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionUpdated, modelSupplierOrder, []string{order.ReferenceID, order.SupplierName}); err != nil {
			return err
		}

		resp = ToSupplierOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if delivered {
		s.metrics.OrderDelivered(KindSupplier)
		s.metrics.StockMovement(MovementIn, orderedUnits(resp.OrderedItems))
	}

	return &resp, nil
}

// Delete removes the order and cascades its lines.
// Inventory is not reversed: delivered batches may have been separately
// reconciled, so deletion is record-keeping only.
func (s *SupplierOrderService) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		order, err := repos.SupplierOrderRepo().FindByIDForTenant(ctx, orderID, tenantID)
		if err != nil {
			return err
		}
		if err := repos.SupplierOrderRepo().DeleteForTenant(ctx, order.ID, tenantID); err != nil {
			return err
		}
		return appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionDeleted, modelSupplierOrder, []string{order.ReferenceID, order.SupplierName})
	})
}

// GetByID retrieves one supplier order with its lines
func (s *SupplierOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*SupplierOrderResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, orderID, tenantID)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierOrderResponse(order)
	return &resp, nil
}

// List retrieves the tenant's supplier orders
func (s *SupplierOrderService) List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) ([]SupplierOrderResponse, int64, error) {
	domainFilter := buildDomainFilter(filter)

	orders, err := s.orders.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSupplierOrderResponses(orders), total, nil
}

// UpdateLine updates one order line in place
func (s *SupplierOrderService) UpdateLine(ctx context.Context, tenantID, orderID, lineID uuid.UUID, req UpdateOrderedItemRequest) (*SupplierOrderResponse, error) {
	var resp SupplierOrderResponse

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		order, err := repos.SupplierOrderRepo().FindByIDForTenant(ctx, orderID, tenantID)
		if err != nil {
			return err
		}
		if err := order.EnsureMutable(trade.FieldOrderedItems); err != nil {
			return err
		}

		var line *trade.SupplierOrderedItem
		for idx := range order.Items {
			if order.Items[idx].ID == lineID {
				line = &order.Items[idx]
				break
			}
		}
		if line == nil {
			return shared.NewDomainError(shared.CodeNotFound, "Order line not found")
		}

		quantity := line.OrderedQuantity
		price := line.OrderedPrice
		if req.OrderedQuantity != nil {
			quantity = *req.OrderedQuantity
		}
		if req.OrderedPrice != nil {
			price = *req.OrderedPrice
		}
		if err := line.UpdateLine(quantity, price); err != nil {
			return err
		}
		if err := repos.SupplierOrderRepo().UpdateLine(ctx, line); err != nil {
			return err
		}

		if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionUpdated, modelSupplierOrder, []string{order.ReferenceID, line.ItemName}); err != nil {
			return err
		}

		resp = ToSupplierOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteLine removes one order line; the order must keep at least one
func (s *SupplierOrderService) DeleteLine(ctx context.Context, tenantID, orderID, lineID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		order, err := repos.SupplierOrderRepo().FindByIDForTenant(ctx, orderID, tenantID)
		if err != nil {
			return err
		}

		var line *trade.SupplierOrderedItem
		for idx := range order.Items {
			if order.Items[idx].ID == lineID {
				line = &order.Items[idx]
				break
			}
		}
		if line == nil {
			return shared.NewDomainError(shared.CodeNotFound, "Order line not found")
		}

		if err := order.RemoveLine(line.ItemID); err != nil {
			return err
		}
		if err := repos.SupplierOrderRepo().DeleteLine(ctx, lineID); err != nil {
			return err
		}

		return appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionDeleted, modelSupplierOrder, []string{order.ReferenceID, line.ItemName})
	})
}

// resolveLineItem locates the named item or creates it bound to the
// order's supplier. An item recorded against another supplier fails
// with SUPPLIER_MISMATCH; one without a supplier is claimed.
func (s *SupplierOrderService) resolveLineItem(ctx context.Context, repos txn.TransactionalRepositories, tenantID, supplierID uuid.UUID, name string) (*inventory.Item, error) {
	item, err := repos.ItemRepo().FindByNameForTenant(ctx, name, tenantID)
	if err != nil {
		if domainErr, ok := err.(*shared.DomainError); !ok || domainErr.Code != shared.CodeNotFound {
			return nil, err
		}
		item, err = inventory.NewItem(tenantID, name, 0, decimal.Zero)
		if err != nil {
			return nil, err
		}
		item.SupplierID = &supplierID
		item.Updated = false
		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}

	if item.HasSupplier() && !item.SuppliedBy(supplierID) {
		return nil, shared.NewDomainErrorWithDetails(shared.CodeSupplierMismatch,
			fmt.Sprintf("Item %q belongs to a different supplier", item.Name),
			map[string]any{"item": item.Name})
	}
	if !item.HasSupplier() {
		item.SetSupplier(&supplierID)
		if err := repos.ItemRepo().Update(ctx, item); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// changeSupplier moves the order to another supplier, re-checking every
// line item against the new one.
func (s *SupplierOrderService) changeSupplier(ctx context.Context, repos txn.TransactionalRepositories, tenantID uuid.UUID, order *trade.SupplierOrder, name string) error {
	supplier, err := repos.SupplierRepo().FindByNameForTenant(ctx, name, tenantID)
	if err != nil {
		return shared.NewDomainError(shared.CodeNotFound,
			fmt.Sprintf("Unknown supplier %q", name))
	}

	for idx := range order.Items {
		item, err := repos.ItemRepo().FindByIDForTenant(ctx, order.Items[idx].ItemID, tenantID)
		if err != nil {
			return err
		}
		if item.HasSupplier() && !item.SuppliedBy(supplier.ID) {
			return shared.NewDomainErrorWithDetails(shared.CodeSupplierMismatch,
				fmt.Sprintf("Item %q belongs to a different supplier", item.Name),
				map[string]any{"item": item.Name})
		}
		order.Items[idx].SupplierID = supplier.ID
		if err := repos.SupplierOrderRepo().UpdateLine(ctx, &order.Items[idx]); err != nil {
			return err
		}
	}

	order.SupplierID = supplier.ID
	order.SupplierName = supplier.Name
	return nil
}

// reconcileLines diffs the submitted list against the stored one:
// lines present in both are updated in place, new lines are appended
// with the usual checks, and absent lines are deleted.
func (s *SupplierOrderService) reconcileLines(ctx context.Context, repos txn.TransactionalRepositories, tenantID uuid.UUID, order *trade.SupplierOrder, desired []OrderedItemInput) error {
	keep := make(map[uuid.UUID]struct{}, len(desired))

	for _, in := range desired {
		item, err := s.resolveLineItem(ctx, repos, tenantID, order.SupplierID, in.Item)
		if err != nil {
			return err
		}
		keep[item.ID] = struct{}{}

		if line := order.GetLineByItem(item.ID); line != nil {
			if err := line.UpdateLine(in.OrderedQuantity, in.OrderedPrice); err != nil {
				return err
			}
			if err := repos.SupplierOrderRepo().UpdateLine(ctx, line); err != nil {
				return err
			}
			continue
		}

		line, err := order.AddLine(item.ID, item.Name, in.OrderedQuantity, in.OrderedPrice)
		if err != nil {
			return err
		}
		if err := repos.SupplierOrderRepo().SaveLine(ctx, line); err != nil {
			return err
		}
	}

	var stale []trade.SupplierOrderedItem
	for _, line := range order.Items {
		if _, keepLine := keep[line.ItemID]; !keepLine {
			stale = append(stale, line)
		}
	}
	for _, line := range stale {
		if err := repos.SupplierOrderRepo().DeleteLine(ctx, line.ID); err != nil {
			return err
		}
		if err := order.RemoveLine(line.ItemID); err != nil {
			return err
		}
	}

	return nil
}

// foldIntoInventory applies each line's quantity to its item using the
// weighted-average rule. Items are locked in ascending ID order.
func (s *SupplierOrderService) foldIntoInventory(ctx context.Context, repos txn.TransactionalRepositories, order *trade.SupplierOrder) error {
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, line := range order.Items {
		ids = append(ids, line.ItemID)
	}

	items, err := lockItems(ctx, repos, ids, order.TenantID)
	if err != nil {
		return err
	}
	for _, line := range order.Items {
		item := items[line.ItemID]
		if err := item.AbsorbStock(line.OrderedQuantity, line.OrderedPrice); err != nil {
			return err
		}
		if err := repos.ItemRepo().Update(ctx, item); err != nil {
			return err
		}
	}
	return nil
}
