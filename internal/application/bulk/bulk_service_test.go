package bulk

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocker/backend/internal/application/txn"
	"github.com/stocker/backend/internal/domain/inventory"
	"github.com/stocker/backend/internal/domain/partner"
	"github.com/stocker/backend/internal/domain/shared"
	"github.com/stocker/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseIDs(t *testing.T) {
	t.Run("empty batch is rejected", func(t *testing.T) {
		_, err := parseIDs(nil)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
		assert.Equal(t, "No IDs provided.", domainErr.Message)
	})

	t.Run("malformed identifiers are reported under invalid_uuids", func(t *testing.T) {
		_, err := parseIDs([]string{uuid.NewString(), "not-a-uuid", "also-bad"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
		assert.Equal(t, []string{"not-a-uuid", "also-bad"}, domainErr.Details["invalid_uuids"])
	})

	t.Run("duplicates collapse preserving request order", func(t *testing.T) {
		first := uuid.New()
		second := uuid.New()

		ids, err := parseIDs([]string{first.String(), second.String(), first.String()})

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first, second}, ids)
	})
}

func TestBulkService_DeleteItems(t *testing.T) {
	ctx := context.Background()

	t.Run("referenced items block, the rest delete", func(t *testing.T) {
		tenantID := uuid.New()
		free, err := inventory.NewItem(tenantID, "Blue Widget", 10, decimal.NewFromFloat(2.00))
		require.NoError(t, err)
		linked, err := inventory.NewItem(tenantID, "Red Widget", 5, decimal.NewFromFloat(4.00))
		require.NoError(t, err)
		missing := uuid.New()

		itemRepo := new(MockItemRepository)
		activityRepo := new(MockActivityRepository)
		scope := txn.NewNoOpTransactionScope(
			txn.WithItemRepo(itemRepo),
			txn.WithActivityRepo(activityRepo),
		)
		service := NewBulkService(scope, zap.NewNop())

		itemRepo.On("FindByIDsForTenant", ctx, []uuid.UUID{free.ID, linked.ID, missing}, tenantID).
			Return([]inventory.Item{*free, *linked}, nil)
		itemRepo.On("CountOrderLineReferences", ctx, free.ID).Return(int64(0), nil)
		itemRepo.On("CountOrderLineReferences", ctx, linked.ID).Return(int64(3), nil)
		itemRepo.On("DeleteForTenant", ctx, free.ID, tenantID).Return(nil)
		activityRepo.On("Append", ctx, mock.Anything).Return(nil)

		result, err := service.DeleteItems(ctx, tenantID, DeleteRequest{
			IDs: []string{free.ID.String(), linked.ID.String(), missing.String()},
		})

		require.NoError(t, err)
		assert.True(t, result.Partial())
		assert.Equal(t, "1 item successfully deleted, 1 blocked.", result.Message)
		assert.Equal(t, 1, result.DeletedCount)
		assert.Equal(t, []string{missing.String()}, result.MissingIDs)
		assert.Equal(t, "linked_items", result.BlockedKey)
		require.Len(t, result.Blocked, 1)
		assert.Equal(t, linked.ID, result.Blocked[0].ID)
		assert.Equal(t, "referenced by order lines", result.Blocked[0].Reason)
		itemRepo.AssertNotCalled(t, "DeleteForTenant", ctx, linked.ID, tenantID)
	})

	t.Run("clean batch deletes everything", func(t *testing.T) {
		tenantID := uuid.New()
		first, err := inventory.NewItem(tenantID, "Blue Widget", 10, decimal.NewFromFloat(2.00))
		require.NoError(t, err)
		second, err := inventory.NewItem(tenantID, "Red Widget", 5, decimal.NewFromFloat(4.00))
		require.NoError(t, err)

		itemRepo := new(MockItemRepository)
		activityRepo := new(MockActivityRepository)
		scope := txn.NewNoOpTransactionScope(
			txn.WithItemRepo(itemRepo),
			txn.WithActivityRepo(activityRepo),
		)
		service := NewBulkService(scope, zap.NewNop())

		itemRepo.On("FindByIDsForTenant", ctx, []uuid.UUID{first.ID, second.ID}, tenantID).
			Return([]inventory.Item{*first, *second}, nil)
		itemRepo.On("CountOrderLineReferences", ctx, mock.Anything).Return(int64(0), nil)
		itemRepo.On("DeleteForTenant", ctx, first.ID, tenantID).Return(nil)
		itemRepo.On("DeleteForTenant", ctx, second.ID, tenantID).Return(nil)
		activityRepo.On("Append", ctx, mock.Anything).Return(nil)

		result, err := service.DeleteItems(ctx, tenantID, DeleteRequest{
			IDs: []string{first.ID.String(), second.ID.String()},
		})

		require.NoError(t, err)
		assert.Equal(t, "2 items successfully deleted.", result.Message)
		assert.False(t, result.Partial())
		assert.False(t, result.FullyBlocked())
		assert.Empty(t, result.MissingIDs)
	})
}

func TestBulkService_DeleteClients(t *testing.T) {
	ctx := context.Background()

	t.Run("batch of only linked clients is fully blocked", func(t *testing.T) {
		tenantID := uuid.New()
		client, err := partner.NewClient(tenantID, "Jane's Boutique")
		require.NoError(t, err)

		clientRepo := new(MockClientRepository)
		activityRepo := new(MockActivityRepository)
		scope := txn.NewNoOpTransactionScope(
			txn.WithClientRepo(clientRepo),
			txn.WithActivityRepo(activityRepo),
		)
		service := NewBulkService(scope, zap.NewNop())

		clientRepo.On("FindByIDsForTenant", ctx, []uuid.UUID{client.ID}, tenantID).
			Return([]partner.Client{*client}, nil)
		clientRepo.On("CountOrderReferences", ctx, client.ID).Return(int64(2), nil)

		result, err := service.DeleteClients(ctx, tenantID, DeleteRequest{IDs: []string{client.ID.String()}})

		require.NoError(t, err)
		assert.True(t, result.FullyBlocked())
		assert.Equal(t, "No clients deleted: 1 blocked.", result.Message)
		assert.Equal(t, "linked_clients", result.BlockedKey)
		require.Len(t, result.Blocked, 1)
		assert.Equal(t, "Jane's Boutique", result.Blocked[0].Name)
		clientRepo.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
		activityRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestBulkService_DeleteClientOrders(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	item, err := inventory.NewItem(tenantID, "Blue Widget", 6, decimal.NewFromFloat(3.00))
	require.NoError(t, err)
	item.InInventory = true

	linked, err := trade.NewClientOrder(tenantID, uuid.New(), "Jane's Boutique")
	require.NoError(t, err)
	_, err = linked.AddLine(item.ID, item.Name, 2, decimal.NewFromFloat(6.00))
	require.NoError(t, err)
	linked.DeliveryStatus = trade.DeliveryDelivered
	sale, err := trade.NewSaleFromOrder(linked)
	require.NoError(t, err)
	require.NoError(t, linked.LinkSale(sale.ID))

	plain, err := trade.NewClientOrder(tenantID, uuid.New(), "Corner Store")
	require.NoError(t, err)
	_, err = plain.AddLine(item.ID, item.Name, 4, decimal.NewFromFloat(6.00))
	require.NoError(t, err)

	orderRepo := new(MockClientOrderRepository)
	saleRepo := new(MockSaleRepository)
	itemRepo := new(MockItemRepository)
	activityRepo := new(MockActivityRepository)
	scope := txn.NewNoOpTransactionScope(
		txn.WithClientOrderRepo(orderRepo),
		txn.WithSaleRepo(saleRepo),
		txn.WithItemRepo(itemRepo),
		txn.WithActivityRepo(activityRepo),
	)
	service := NewBulkService(scope, zap.NewNop())

	locked := []inventory.Item{*item}
	orderRepo.On("FindByIDsForTenant", ctx, []uuid.UUID{linked.ID, plain.ID}, tenantID).
		Return([]trade.ClientOrder{*linked, *plain}, nil)
	saleRepo.On("FindByOrderID", ctx, linked.ID).Return(sale, nil)
	saleRepo.On("Update", ctx, sale).Return(nil)
	itemRepo.On("FindByIDsForUpdate", ctx, []uuid.UUID{item.ID}, tenantID).Return(locked, nil)
	itemRepo.On("Update", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil)
	orderRepo.On("DeleteForTenant", ctx, linked.ID, tenantID).Return(nil)
	orderRepo.On("DeleteForTenant", ctx, plain.ID, tenantID).Return(nil)
	activityRepo.On("Append", ctx, mock.Anything).Return(nil)

	result, err := service.DeleteClientOrders(ctx, tenantID, DeleteRequest{
		IDs: []string{linked.ID.String(), plain.ID.String()},
	})

	require.NoError(t, err)
	assert.Equal(t, "2 client orders successfully deleted.", result.Message)
	assert.Equal(t, 2, result.DeletedCount)
	// the sale survives on its own; only the plain order restocks
	assert.False(t, sale.FromOrder)
	assert.Nil(t, sale.OrderID)
	assert.Equal(t, int64(10), locked[0].Quantity)
}

func TestBulkService_DeleteSoldItems(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	item, err := inventory.NewItem(tenantID, "Blue Widget", 2, decimal.NewFromFloat(3.00))
	require.NoError(t, err)
	item.InInventory = true
	other, err := inventory.NewItem(tenantID, "Red Widget", 1, decimal.NewFromFloat(4.00))
	require.NoError(t, err)
	other.InInventory = true

	// standalone sale with two lines: one can go and restocks
	standalone := &trade.Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ReferenceID:         trade.NewReferenceID(),
		ClientID:            uuid.New(),
		ClientName:          "Jane's Boutique",
		FromOrder:           false,
		DeliveryStatus:      trade.DeliveryDelivered,
		PaymentStatus:       trade.PaymentPaid,
	}
	standalone.Items = []trade.SoldItem{
		{
			BaseEntity:   shared.NewBaseEntity(),
			SaleID:       standalone.ID,
			ItemID:       item.ID,
			ItemName:     item.Name,
			SoldQuantity: 3,
			SoldPrice:    decimal.NewFromFloat(6.00),
		},
		{
			BaseEntity:   shared.NewBaseEntity(),
			SaleID:       standalone.ID,
			ItemID:       other.ID,
			ItemName:     other.Name,
			SoldQuantity: 1,
			SoldPrice:    decimal.NewFromFloat(8.00),
		},
	}

	// single-line sale: its only line must not be removable
	lastLine := &trade.Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ReferenceID:         trade.NewReferenceID(),
		ClientID:            uuid.New(),
		ClientName:          "Corner Store",
		FromOrder:           false,
		DeliveryStatus:      trade.DeliveryDelivered,
		PaymentStatus:       trade.PaymentPending,
	}
	lastLine.Items = []trade.SoldItem{{
		BaseEntity:   shared.NewBaseEntity(),
		SaleID:       lastLine.ID,
		ItemID:       other.ID,
		ItemName:     other.Name,
		SoldQuantity: 2,
		SoldPrice:    decimal.NewFromFloat(8.00),
	}}

	saleRepo := new(MockSaleRepository)
	itemRepo := new(MockItemRepository)
	activityRepo := new(MockActivityRepository)
	scope := txn.NewNoOpTransactionScope(
		txn.WithSaleRepo(saleRepo),
		txn.WithItemRepo(itemRepo),
		txn.WithActivityRepo(activityRepo),
	)
	service := NewBulkService(scope, zap.NewNop())

	target := standalone.Items[0]
	frozen := lastLine.Items[0]
	locked := []inventory.Item{*item}
	saleRepo.On("FindSoldLinesByIDs", ctx, []uuid.UUID{target.ID, frozen.ID}, tenantID).
		Return([]trade.SoldItem{target, frozen}, nil)
	saleRepo.On("FindByIDForTenant", ctx, standalone.ID, tenantID).Return(standalone, nil)
	saleRepo.On("FindByIDForTenant", ctx, lastLine.ID, tenantID).Return(lastLine, nil)
	itemRepo.On("FindByIDsForUpdate", ctx, []uuid.UUID{item.ID}, tenantID).Return(locked, nil)
	itemRepo.On("Update", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil)
	saleRepo.On("DeleteSoldLine", ctx, target.ID).Return(nil)
	activityRepo.On("Append", ctx, mock.Anything).Return(nil)

	result, err := service.DeleteSoldItems(ctx, tenantID, DeleteRequest{
		IDs: []string{target.ID.String(), frozen.ID.String()},
	})

	require.NoError(t, err)
	assert.True(t, result.Partial())
	assert.Equal(t, "1 sold item successfully deleted, 1 blocked.", result.Message)
	assert.Equal(t, "blocked_items", result.BlockedKey)
	require.Len(t, result.Blocked, 1)
	assert.Equal(t, frozen.ID, result.Blocked[0].ID)
	assert.Equal(t, "sale must keep at least one item", result.Blocked[0].Reason)
	assert.Equal(t, int64(5), locked[0].Quantity)
	saleRepo.AssertNotCalled(t, "DeleteSoldLine", ctx, frozen.ID)
}

func TestBulkService_DeleteSupplierOrderLines(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	order, err := trade.NewSupplierOrder(tenantID, uuid.New(), "Acme Distribution")
	require.NoError(t, err)
	first, err := order.AddLine(uuid.New(), "Blue Widget", 2, decimal.NewFromFloat(2.00))
	require.NoError(t, err)
	_, err = order.AddLine(uuid.New(), "Red Widget", 3, decimal.NewFromFloat(4.00))
	require.NoError(t, err)
	order.DeliveryStatus = trade.DeliveryDelivered

	orderRepo := new(MockSupplierOrderRepository)
	scope := txn.NewNoOpTransactionScope(txn.WithSupplierOrderRepo(orderRepo))
	service := NewBulkService(scope, zap.NewNop())

	orderRepo.On("FindLinesByIDs", ctx, []uuid.UUID{first.ID}, tenantID).
		Return([]trade.SupplierOrderedItem{*first}, nil)
	orderRepo.On("FindByIDForTenant", ctx, order.ID, tenantID).Return(order, nil)

	result, err := service.DeleteSupplierOrderLines(ctx, tenantID, DeleteRequest{
		IDs: []string{first.ID.String()},
	})

	require.NoError(t, err)
	assert.True(t, result.FullyBlocked())
	assert.Equal(t, "No ordered items deleted: 1 blocked.", result.Message)
	require.Len(t, result.Blocked, 1)
	assert.Equal(t, "order is delivered", result.Blocked[0].Reason)
	orderRepo.AssertNotCalled(t, "DeleteLine", mock.Anything, mock.Anything)
}
