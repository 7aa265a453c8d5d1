package trade

import (
	"context"
	"errors"
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

func standaloneSale(t *testing.T, tenantID uuid.UUID, item *inventory.Item, quantity int64) *trade.Sale {
	t.Helper()
	sale := &trade.Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ReferenceID:         trade.NewReferenceID(),
		ClientID:            uuid.New(),
		ClientName:          "Jane's Boutique",
		FromOrder:           false,
		DeliveryStatus:      trade.DeliveryDelivered,
		PaymentStatus:       trade.PaymentPaid,
	}
	sale.Items = []trade.SoldItem{{
		BaseEntity:   shared.NewBaseEntity(),
		SaleID:       sale.ID,
		ItemID:       item.ID,
		ItemName:     item.Name,
		SoldQuantity: quantity,
		SoldPrice:    decimal.NewFromFloat(6.00),
	}}
	return sale
}

func TestSaleService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("standalone sale restocks each sold line", func(t *testing.T) {
		tenantID := uuid.New()
		item, err := inventory.NewItem(tenantID, "Blue Widget", 2, decimal.NewFromFloat(3.00))
		require.NoError(t, err)
		item.InInventory = true
		sale := standaloneSale(t, tenantID, item, 4)

		saleRepo := new(MockSaleRepository)
		itemRepo := new(MockItemRepository)
		activityRepo := new(MockActivityRepository)
		scope := txn.NewNoOpTransactionScope(
			txn.WithSaleRepo(saleRepo),
			txn.WithItemRepo(itemRepo),
			txn.WithActivityRepo(activityRepo),
		)
		spy := newRecorderSpy()
		service := NewSaleService(saleRepo, scope, spy, zap.NewNop())

		locked := []inventory.Item{*item}
		saleRepo.On("FindByIDForTenant", ctx, sale.ID, tenantID).Return(sale, nil)
		saleRepo.On("DeleteForTenant", ctx, sale.ID, tenantID).Return(nil)
		itemRepo.On("FindByIDsForUpdate", ctx, []uuid.UUID{item.ID}, tenantID).Return(locked, nil)
		itemRepo.On("Update", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil)
		activityRepo.On("Append", ctx, mock.Anything).Return(nil)

		require.NoError(t, service.Delete(ctx, tenantID, sale.ID))

		assert.Equal(t, int64(6), locked[0].Quantity)
		assert.Equal(t, int64(4), spy.movements[MovementIn])
	})

	t.Run("order-linked sale detaches the order and keeps stock", func(t *testing.T) {
		tenantID := uuid.New()
		client, err := partner.NewClient(tenantID, "Jane's Boutique")
		require.NoError(t, err)
		item, err := inventory.NewItem(tenantID, "Blue Widget", 6, decimal.NewFromFloat(3.00))
		require.NoError(t, err)
		item.InInventory = true

		order, err := trade.NewClientOrder(tenantID, client.ID, client.Name)
		require.NoError(t, err)
		_, err = order.AddLine(item.ID, item.Name, 4, decimal.NewFromFloat(6.00))
		require.NoError(t, err)
		order.DeliveryStatus = trade.DeliveryDelivered
		sale, err := trade.NewSaleFromOrder(order)
		require.NoError(t, err)
		require.NoError(t, order.LinkSale(sale.ID))

		saleRepo := new(MockSaleRepository)
		orderRepo := new(MockClientOrderRepository)
		itemRepo := new(MockItemRepository)
		activityRepo := new(MockActivityRepository)
		scope := txn.NewNoOpTransactionScope(
			txn.WithSaleRepo(saleRepo),
			txn.WithClientOrderRepo(orderRepo),
			txn.WithItemRepo(itemRepo),
			txn.WithActivityRepo(activityRepo),
		)
		spy := newRecorderSpy()
		service := NewSaleService(saleRepo, scope, spy, zap.NewNop())

		saleRepo.On("FindByIDForTenant", ctx, sale.ID, tenantID).Return(sale, nil)
		saleRepo.On("DeleteForTenant", ctx, sale.ID, tenantID).Return(nil)
		orderRepo.On("FindByIDForTenant", ctx, order.ID, tenantID).Return(order, nil)
		orderRepo.On("Update", ctx, order).Return(nil)
		activityRepo.On("Append", ctx, mock.Anything).Return(nil)

		require.NoError(t, service.Delete(ctx, tenantID, sale.ID))

		assert.False(t, order.HasSale())
		itemRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		assert.Empty(t, spy.movements)
	})

	t.Run("order lookup failure aborts the deletion", func(t *testing.T) {
		tenantID := uuid.New()
		client, err := partner.NewClient(tenantID, "Jane's Boutique")
		require.NoError(t, err)
		item, err := inventory.NewItem(tenantID, "Blue Widget", 6, decimal.NewFromFloat(3.00))
		require.NoError(t, err)
		item.InInventory = true

		order, err := trade.NewClientOrder(tenantID, client.ID, client.Name)
		require.NoError(t, err)
		_, err = order.AddLine(item.ID, item.Name, 4, decimal.NewFromFloat(6.00))
		require.NoError(t, err)
		order.DeliveryStatus = trade.DeliveryDelivered
		sale, err := trade.NewSaleFromOrder(order)
		require.NoError(t, err)
		require.NoError(t, order.LinkSale(sale.ID))

		saleRepo := new(MockSaleRepository)
		orderRepo := new(MockClientOrderRepository)
		scope := txn.NewNoOpTransactionScope(
			txn.WithSaleRepo(saleRepo),
			txn.WithClientOrderRepo(orderRepo),
		)
		service := NewSaleService(saleRepo, scope, nil, zap.NewNop())

		saleRepo.On("FindByIDForTenant", ctx, sale.ID, tenantID).Return(sale, nil)
		orderRepo.On("FindByIDForTenant", ctx, order.ID, tenantID).Return(nil, errors.New("connection reset"))

		err = service.Delete(ctx, tenantID, sale.ID)

		assert.EqualError(t, err, "connection reset")
		orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		saleRepo.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("vanished parent order does not block the deletion", func(t *testing.T) {
		tenantID := uuid.New()
		client, err := partner.NewClient(tenantID, "Jane's Boutique")
		require.NoError(t, err)
		item, err := inventory.NewItem(tenantID, "Blue Widget", 6, decimal.NewFromFloat(3.00))
		require.NoError(t, err)
		item.InInventory = true

		order, err := trade.NewClientOrder(tenantID, client.ID, client.Name)
		require.NoError(t, err)
		_, err = order.AddLine(item.ID, item.Name, 4, decimal.NewFromFloat(6.00))
		require.NoError(t, err)
		order.DeliveryStatus = trade.DeliveryDelivered
		sale, err := trade.NewSaleFromOrder(order)
		require.NoError(t, err)

		saleRepo := new(MockSaleRepository)
		orderRepo := new(MockClientOrderRepository)
		activityRepo := new(MockActivityRepository)
		scope := txn.NewNoOpTransactionScope(
			txn.WithSaleRepo(saleRepo),
			txn.WithClientOrderRepo(orderRepo),
			txn.WithActivityRepo(activityRepo),
		)
		service := NewSaleService(saleRepo, scope, nil, zap.NewNop())

		saleRepo.On("FindByIDForTenant", ctx, sale.ID, tenantID).Return(sale, nil)
		saleRepo.On("DeleteForTenant", ctx, sale.ID, tenantID).Return(nil)
		orderRepo.On("FindByIDForTenant", ctx, order.ID, tenantID).Return(nil, shared.ErrNotFound)
		activityRepo.On("Append", ctx, mock.Anything).Return(nil)

		require.NoError(t, service.Delete(ctx, tenantID, sale.ID))

		orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestSaleService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	saleRepo := new(MockSaleRepository)
	service := NewSaleService(saleRepo, txn.NewNoOpTransactionScope(), nil, zap.NewNop())

	item, err := inventory.NewItem(tenantID, "Blue Widget", 2, decimal.NewFromFloat(3.00))
	require.NoError(t, err)
	sale := standaloneSale(t, tenantID, item, 4)

	saleRepo.On("FindAllForTenant", ctx, tenantID, mock.Anything).Return([]trade.Sale{*sale}, nil)
	saleRepo.On("CountForTenant", ctx, tenantID, mock.Anything).Return(int64(1), nil)

	sales, total, err := service.List(ctx, tenantID, OrderListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, sales, 1)
	assert.True(t, sales[0].TotalAmount.Equal(decimal.NewFromFloat(24.00)))
}
