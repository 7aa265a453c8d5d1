package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appactivity "github.com/stocker/backend/internal/application/activity"
	"github.com/stocker/backend/internal/application/catalog"
	"github.com/stocker/backend/internal/application/txn"
	"github.com/stocker/backend/internal/domain/activity"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/domain/trade"
	"go.uber.org/zap"
)

const modelClientOrder = "client order"

// ClientOrderService is the engine for stock leaving inventory.
// Line inserts decrement the referenced items; reaching Delivered
// materializes a linked Sale mirroring the final line set.
type ClientOrderService struct {
	orders     trade.ClientOrderRepository
	references *catalog.ReferenceService
	scope      txn.TransactionScope
	metrics    Recorder
	logger     *zap.Logger
}

// NewClientOrderService creates a new ClientOrderService
func NewClientOrderService(orders trade.ClientOrderRepository, references *catalog.ReferenceService, scope txn.TransactionScope, metrics Recorder, logger *zap.Logger) *ClientOrderService {
	if metrics == nil {
		metrics = NopRecorder
	}
	return &ClientOrderService{orders: orders, references: references, scope: scope, metrics: metrics, logger: logger}
}

// Create creates a client order, decrementing each line's item in the
// same transaction. Items must be in inventory with enough stock.
func (s *ClientOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateClientOrderRequest) (*ClientOrderResponse, error) {
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

	// Resolve reference rows before the stock transaction; get-or-create
	// on reference tables is idempotent.
	var shippingAddressID *uuid.UUID
	if req.ShippingAddress != nil && !req.ShippingAddress.IsEmpty() {
		location, err := s.references.GetOrCreateLocation(ctx, tenantID, *req.ShippingAddress)
		if err != nil {
			return nil, err
		}
		shippingAddressID = &location.ID
	}
	var sourceID *uuid.UUID
	if req.Source != nil && *req.Source != "" {
		source, err := s.references.GetOrCreateSource(ctx, tenantID, *req.Source)
		if err != nil {
			return nil, err
		}
		sourceID = &source.ID
	}

	var resp ClientOrderResponse
	err = s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		client, err := repos.ClientRepo().FindByNameForTenant(ctx, req.Client, tenantID)
		if err != nil {
			return shared.NewDomainError(shared.CodeNotFound,
				fmt.Sprintf("Unknown client %q", req.Client))
		}

		order, err := trade.NewClientOrder(tenantID, client.ID, client.Name)
		if err != nil {
			return err
		}
		order.DeliveryStatus = deliveryStatus
		order.PaymentStatus = paymentStatus
		order.ShippingAddressID = shippingAddressID
		order.SourceID = sourceID
		if err := order.SetTracking(req.TrackingNumber, req.ShippingCost); err != nil {
			return err
		}

		// Resolve every line item first, then lock them in ID order
		// before any quantity check or decrement.
		ids := make([]uuid.UUID, 0, len(req.OrderedItems))
		nameByID := make(map[uuid.UUID]OrderedItemInput, len(req.OrderedItems))
		for _, in := range req.OrderedItems {
			item, err := repos.ItemRepo().FindByNameForTenant(ctx, in.Item, tenantID)
			if err != nil {
				return shared.NewDomainError(shared.CodeNotFound,
					fmt.Sprintf("Unknown item %q", in.Item))
			}
			ids = append(ids, item.ID)
			nameByID[item.ID] = in
		}

		locked, err := lockItems(ctx, repos, ids, tenantID)
		if err != nil {
			return err
		}

		for _, id := range ids {
			item := locked[id]
			in := nameByID[id]
			if !item.InInventory {
				return shared.NewDomainError(shared.CodeValidation,
					fmt.Sprintf("Item %q is not in inventory", item.Name))
			}
			if err := item.Decrement(in.OrderedQuantity); err != nil {
				return err
			}
			if _, err := order.AddLine(item.ID, item.Name, in.OrderedQuantity, in.OrderedPrice); err != nil {
				return err
			}
			if err := repos.ItemRepo().Update(ctx, item); err != nil {
				return err
			}
		}
		order.Updated = false

		if err := repos.ClientOrderRepo().Save(ctx, order); err != nil {
			return err
		}

		if order.IsDelivered() {
			if err := s.materializeSale(ctx, repos, order); err != nil {
				return err
			}
		}

		if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionCreated, modelClientOrder, []string{order.ReferenceID, client.Name}); err != nil {
			return err
		}

		resp = ToClientOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.StockMovement(MovementOut, orderedUnits(resp.OrderedItems))
	if resp.DeliveryStatus == string(trade.DeliveryDelivered) {
		s.metrics.OrderDelivered(KindClient)
	}

	s.logger.Info("client order created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("reference_id", resp.ReferenceID),
		zap.String("delivery_status", resp.DeliveryStatus))

	return &resp, nil
}

// Update applies a partial update with line reconciliation; inventory
// deltas follow each line's quantity change. A Delivered order refuses
// changes to client, lines and delivery status; payment status changes
// propagate to the linked sale.
func (s *ClientOrderService) Update(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateClientOrderRequest) (*ClientOrderResponse, error) {
	if req.OrderedItems != nil {
		if err := validateLineInputs(*req.OrderedItems); err != nil {
			return nil, err
		}
	}

	var shippingAddressID *uuid.UUID
	if req.ShippingAddress != nil && !req.ShippingAddress.IsEmpty() {
		location, err := s.references.GetOrCreateLocation(ctx, tenantID, *req.ShippingAddress)
		if err != nil {
			return nil, err
		}
		shippingAddressID = &location.ID
	}
	var sourceID *uuid.UUID
	if req.Source != nil && *req.Source != "" {
		source, err := s.references.GetOrCreateSource(ctx, tenantID, *req.Source)
		if err != nil {
			return nil, err
		}
		sourceID = &source.ID
	}

	var resp ClientOrderResponse
	var unitsBefore int64
	delivered := false
	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		order, err := repos.ClientOrderRepo().FindByIDForTenant(ctx, orderID, tenantID)
		if err != nil {
			return err
		}
		for _, line := range order.Items {
			unitsBefore += line.OrderedQuantity
		}

		var restricted []string
		if req.Client != nil && !shared.SameName(*req.Client, order.ClientName) {
			restricted = append(restricted, trade.FieldClient)
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

		if req.Client != nil && !shared.SameName(*req.Client, order.ClientName) {
			client, err := repos.ClientRepo().FindByNameForTenant(ctx, *req.Client, tenantID)
			if err != nil {
				return shared.NewDomainError(shared.CodeNotFound,
					fmt.Sprintf("Unknown client %q", *req.Client))
			}
			order.ClientID = client.ID
			order.ClientName = client.Name
		}
		if shippingAddressID != nil {
			order.SetShippingAddress(shippingAddressID)
		}
		if sourceID != nil {
			order.SetSource(sourceID)
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
			if order.HasSale() {
				if err := s.propagatePayment(ctx, repos, order, status); err != nil {
					return err
				}
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

		if err := repos.ClientOrderRepo().Update(ctx, order); err != nil {
			return err
		}

		// The sale mirrors the final line set, so it is materialized
		// after reconciliation.
		if becameDelivered {
			if err := s.materializeSale(ctx, repos, order); err != nil {
				return err
			}
			delivered = true
		}

		if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionUpdated, modelClientOrder, []string{order.ReferenceID, order.ClientName}); err != nil {
			return err
		}

		resp = ToClientOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.OrderedItems != nil {
		if net := orderedUnits(resp.OrderedItems) - unitsBefore; net > 0 {
			s.metrics.StockMovement(MovementOut, net)
		} else if net < 0 {
			s.metrics.StockMovement(MovementIn, -net)
		}
	}
	if delivered {
		s.metrics.OrderDelivered(KindClient)
	}

	return &resp, nil
}

// Delete removes the order. Without a linked sale each line restocks its
// item; with one, the stock delta stays with the surviving sale, which
// is detached and becomes standalone.
func (s *ClientOrderService) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	var restocked int64
	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		order, err := repos.ClientOrderRepo().FindByIDForTenant(ctx, orderID, tenantID)
		if err != nil {
			return err
		}

		if order.HasSale() {
			sale, err := repos.SaleRepo().FindByOrderID(ctx, order.ID)
			if err != nil && !isNotFound(err) {
				return err
			}
			if err == nil {
				sale.Detach()
				if err := repos.SaleRepo().Update(ctx, sale); err != nil {
					return err
				}
			}
		} else {
			ids := make([]uuid.UUID, 0, len(order.Items))
			for _, line := range order.Items {
				ids = append(ids, line.ItemID)
			}
			locked, err := lockItems(ctx, repos, ids, tenantID)
			if err != nil {
				return err
			}
			for _, line := range order.Items {
				if err := locked[line.ItemID].Restock(line.OrderedQuantity); err != nil {
					return err
				}
				if err := repos.ItemRepo().Update(ctx, locked[line.ItemID]); err != nil {
					return err
				}
				restocked += line.OrderedQuantity
			}
		}

		if err := repos.ClientOrderRepo().DeleteForTenant(ctx, order.ID, tenantID); err != nil {
			return err
		}
		return appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionDeleted, modelClientOrder, []string{order.ReferenceID, order.ClientName})
	})
	if err != nil {
		return err
	}

	if restocked > 0 {
		s.metrics.StockMovement(MovementIn, restocked)
	}
	return nil
}

// GetByID retrieves one client order with its lines
func (s *ClientOrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*ClientOrderResponse, error) {
	order, err := s.orders.FindByIDForTenant(ctx, orderID, tenantID)
	if err != nil {
		return nil, err
	}
	resp := ToClientOrderResponse(order)
	return &resp, nil
}

// List retrieves the tenant's client orders
func (s *ClientOrderService) List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) ([]ClientOrderResponse, int64, error) {
	domainFilter := buildDomainFilter(filter)

	orders, err := s.orders.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToClientOrderResponses(orders), total, nil
}

// UpdateLine updates one order line in place, adjusting the item's stock
// by the quantity delta.
func (s *ClientOrderService) UpdateLine(ctx context.Context, tenantID, orderID, lineID uuid.UUID, req UpdateOrderedItemRequest) (*ClientOrderResponse, error) {
	var resp ClientOrderResponse
	var moved int64

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		order, err := repos.ClientOrderRepo().FindByIDForTenant(ctx, orderID, tenantID)
		if err != nil {
			return err
		}
		if err := order.EnsureMutable(trade.FieldOrderedItems); err != nil {
			return err
		}

		var line *trade.ClientOrderedItem
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

		if delta := quantity - line.OrderedQuantity; delta != 0 {
			locked, err := lockItems(ctx, repos, []uuid.UUID{line.ItemID}, tenantID)
			if err != nil {
				return err
			}
			item := locked[line.ItemID]
			if delta > 0 {
				if err := item.Decrement(delta); err != nil {
					return err
				}
			} else {
				if err := item.Restock(-delta); err != nil {
					return err
				}
			}
			if err := repos.ItemRepo().Update(ctx, item); err != nil {
				return err
			}
			moved = delta
		}

		if err := line.UpdateLine(quantity, price); err != nil {
			return err
		}
		if err := repos.ClientOrderRepo().UpdateLine(ctx, line); err != nil {
			return err
		}

		if err := appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionUpdated, modelClientOrder, []string{order.ReferenceID, line.ItemName}); err != nil {
			return err
		}

		resp = ToClientOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if moved > 0 {
		s.metrics.StockMovement(MovementOut, moved)
	} else if moved < 0 {
		s.metrics.StockMovement(MovementIn, -moved)
	}
	return &resp, nil
}

// DeleteLine removes one order line, restocking its item; the order must
// keep at least one line.
func (s *ClientOrderService) DeleteLine(ctx context.Context, tenantID, orderID, lineID uuid.UUID) error {
	var restocked int64
	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		order, err := repos.ClientOrderRepo().FindByIDForTenant(ctx, orderID, tenantID)
		if err != nil {
			return err
		}

		var line *trade.ClientOrderedItem
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

		locked, err := lockItems(ctx, repos, []uuid.UUID{line.ItemID}, tenantID)
		if err != nil {
			return err
		}
		if err := locked[line.ItemID].Restock(line.OrderedQuantity); err != nil {
			return err
		}
		if err := repos.ItemRepo().Update(ctx, locked[line.ItemID]); err != nil {
			return err
		}

		if err := repos.ClientOrderRepo().DeleteLine(ctx, lineID); err != nil {
			return err
		}
		restocked = line.OrderedQuantity
		return appactivity.Record(ctx, repos.ActivityRepo(), tenantID,
			activity.ActionDeleted, modelClientOrder, []string{order.ReferenceID, line.ItemName})
	})
	if err != nil {
		return err
	}

	s.metrics.StockMovement(MovementIn, restocked)
	return nil
}

// reconcileLines diffs the submitted list against the stored one. For a
// kept line the item's stock moves by the quantity delta; new lines
// decrement; removed lines restock.
func (s *ClientOrderService) reconcileLines(ctx context.Context, repos txn.TransactionalRepositories, tenantID uuid.UUID, order *trade.ClientOrder, desired []OrderedItemInput) error {
	type resolved struct {
		id uuid.UUID
		in OrderedItemInput
	}

	// Resolve names, then lock the union of old and new items in ID order.
	resolvedLines := make([]resolved, 0, len(desired))
	union := make(map[uuid.UUID]struct{})
	for _, in := range desired {
		item, err := repos.ItemRepo().FindByNameForTenant(ctx, in.Item, tenantID)
		if err != nil {
			return shared.NewDomainError(shared.CodeNotFound,
				fmt.Sprintf("Unknown item %q", in.Item))
		}
		resolvedLines = append(resolvedLines, resolved{id: item.ID, in: in})
		union[item.ID] = struct{}{}
	}
	for _, line := range order.Items {
		union[line.ItemID] = struct{}{}
	}
	ids := make([]uuid.UUID, 0, len(union))
	for id := range union {
		ids = append(ids, id)
	}

	locked, err := lockItems(ctx, repos, ids, tenantID)
	if err != nil {
		return err
	}

	keep := make(map[uuid.UUID]struct{}, len(resolvedLines))
	for _, r := range resolvedLines {
		keep[r.id] = struct{}{}
		item := locked[r.id]

		if line := order.GetLineByItem(r.id); line != nil {
			if delta := r.in.OrderedQuantity - line.OrderedQuantity; delta > 0 {
				if err := item.Decrement(delta); err != nil {
					return err
				}
			} else if delta < 0 {
				if err := item.Restock(-delta); err != nil {
					return err
				}
			}
			if err := line.UpdateLine(r.in.OrderedQuantity, r.in.OrderedPrice); err != nil {
				return err
			}
			if err := repos.ClientOrderRepo().UpdateLine(ctx, line); err != nil {
				return err
			}
		} else {
			if !item.InInventory {
				return shared.NewDomainError(shared.CodeValidation,
					fmt.Sprintf("Item %q is not in inventory", item.Name))
			}
			if err := item.Decrement(r.in.OrderedQuantity); err != nil {
				return err
			}
			line, err := order.AddLine(item.ID, item.Name, r.in.OrderedQuantity, r.in.OrderedPrice)
			if err != nil {
				return err
			}
			if err := repos.ClientOrderRepo().SaveLine(ctx, line); err != nil {
				return err
			}
		}
		if err := repos.ItemRepo().Update(ctx, item); err != nil {
			return err
		}
	}

	var stale []trade.ClientOrderedItem
	for _, line := range order.Items {
		if _, keepLine := keep[line.ItemID]; !keepLine {
			stale = append(stale, line)
		}
	}
	for _, line := range stale {
		item := locked[line.ItemID]
		if err := item.Restock(line.OrderedQuantity); err != nil {
			return err
		}
		if err := repos.ItemRepo().Update(ctx, item); err != nil {
			return err
		}
		if err := repos.ClientOrderRepo().DeleteLine(ctx, line.ID); err != nil {
			return err
		}
		if err := order.RemoveLine(line.ItemID); err != nil {
			return err
		}
	}

	return nil
}

// materializeSale mirrors the delivered order as a linked sale
func (s *ClientOrderService) materializeSale(ctx context.Context, repos txn.TransactionalRepositories, order *trade.ClientOrder) error {
	sale, err := trade.NewSaleFromOrder(order)
	if err != nil {
		return err
	}
	if err := repos.SaleRepo().Save(ctx, sale); err != nil {
		return err
	}
	if err := order.LinkSale(sale.ID); err != nil {
		return err
	}
	return repos.ClientOrderRepo().Update(ctx, order)
}

// propagatePayment mirrors a payment transition onto the linked sale
func (s *ClientOrderService) propagatePayment(ctx context.Context, repos txn.TransactionalRepositories, order *trade.ClientOrder, status trade.PaymentStatus) error {
	sale, err := repos.SaleRepo().FindByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	if err := sale.SetPaymentStatus(status); err != nil {
		return err
	}
	return repos.SaleRepo().Update(ctx, sale)
}
