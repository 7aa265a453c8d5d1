package cache

import (
	"context"
	"sync"
)

// StatusLoader loads the seeded order-status names from storage
type StatusLoader interface {
	LoadDeliveryStatuses(ctx context.Context) ([]string, error)
	LoadPaymentStatuses(ctx context.Context) ([]string, error)
}

// StatusCache keeps the seeded delivery and payment status names in
// process memory. The tables change only by migration, so the cache
// populates on first access and refreshes only on demand.
type StatusCache struct {
	loader StatusLoader

	mu       sync.RWMutex
	loaded   bool
	delivery []string
	payment  []string
}

// NewStatusCache creates an empty cache over the given loader
func NewStatusCache(loader StatusLoader) *StatusCache {
	return &StatusCache{loader: loader}
}

// DeliveryStatuses returns the delivery status names, loading on first use
func (c *StatusCache) DeliveryStatuses(ctx context.Context) ([]string, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.delivery...), nil
}

// PaymentStatuses returns the payment status names, loading on first use
func (c *StatusCache) PaymentStatuses(ctx context.Context) ([]string, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.payment...), nil
}

// Refresh reloads both status sets from storage
func (c *StatusCache) Refresh(ctx context.Context) error {
	delivery, err := c.loader.LoadDeliveryStatuses(ctx)
	if err != nil {
		return err
	}
	payment, err := c.loader.LoadPaymentStatuses(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.delivery = delivery
	c.payment = payment
	c.loaded = true
	return nil
}

func (c *StatusCache) ensure(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}
	return c.Refresh(ctx)
}
