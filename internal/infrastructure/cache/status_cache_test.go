package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	delivery []string
	payment  []string
	err      error
	calls    int
}

func (l *countingLoader) LoadDeliveryStatuses(context.Context) ([]string, error) {
	l.calls++
	return l.delivery, l.err
}

func (l *countingLoader) LoadPaymentStatuses(context.Context) ([]string, error) {
	return l.payment, l.err
}

func TestStatusCache(t *testing.T) {
	ctx := context.Background()

	t.Run("loads once and serves from memory", func(t *testing.T) {
		loader := &countingLoader{
			delivery: []string{"Pending", "Shipped", "Delivered"},
			payment:  []string{"Pending", "Paid"},
		}
		cache := NewStatusCache(loader)

		delivery, err := cache.DeliveryStatuses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Pending", "Shipped", "Delivered"}, delivery)

		payment, err := cache.PaymentStatuses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Pending", "Paid"}, payment)

		_, err = cache.DeliveryStatuses(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, loader.calls)
	})

	t.Run("callers cannot mutate the cached slice", func(t *testing.T) {
		loader := &countingLoader{delivery: []string{"Pending"}, payment: []string{"Paid"}}
		cache := NewStatusCache(loader)

		first, err := cache.DeliveryStatuses(ctx)
		require.NoError(t, err)
		first[0] = "mangled"

		second, err := cache.DeliveryStatuses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Pending"}, second)
	})

	t.Run("refresh picks up new rows", func(t *testing.T) {
		loader := &countingLoader{delivery: []string{"Pending"}, payment: []string{"Paid"}}
		cache := NewStatusCache(loader)

		_, err := cache.DeliveryStatuses(ctx)
		require.NoError(t, err)

		loader.delivery = []string{"Pending", "Returned"}
		require.NoError(t, cache.Refresh(ctx))

		delivery, err := cache.DeliveryStatuses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Pending", "Returned"}, delivery)
	})

	t.Run("load errors surface and leave the cache cold", func(t *testing.T) {
		loader := &countingLoader{err: errors.New("db down")}
		cache := NewStatusCache(loader)

		_, err := cache.DeliveryStatuses(ctx)
		require.Error(t, err)

		loader.err = nil
		loader.delivery = []string{"Pending"}
		delivery, err := cache.DeliveryStatuses(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Pending"}, delivery)
	})
}
