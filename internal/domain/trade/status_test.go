package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryStatus(t *testing.T) {
	t.Run("validates known statuses", func(t *testing.T) {
		for _, s := range []DeliveryStatus{
			DeliveryPending, DeliveryShipped, DeliveryDelivered,
			DeliveryReturned, DeliveryCancelled, DeliveryFailed,
		} {
			assert.True(t, s.IsValid(), s)
		}
		assert.False(t, DeliveryStatus("InTransit").IsValid())
		assert.False(t, DeliveryStatus("").IsValid())
	})

	t.Run("active means not terminal", func(t *testing.T) {
		assert.True(t, DeliveryPending.IsActive())
		assert.True(t, DeliveryShipped.IsActive())
		assert.False(t, DeliveryDelivered.IsActive())
		assert.False(t, DeliveryReturned.IsActive())
		assert.False(t, DeliveryCancelled.IsActive())
		assert.False(t, DeliveryFailed.IsActive())
	})

	t.Run("failed excludes delivered", func(t *testing.T) {
		assert.False(t, DeliveryDelivered.IsFailed())
		assert.True(t, DeliveryReturned.IsFailed())
		assert.True(t, DeliveryCancelled.IsFailed())
		assert.True(t, DeliveryFailed.IsFailed())
	})
}

func TestPaymentStatus(t *testing.T) {
	t.Run("validates known statuses", func(t *testing.T) {
		for _, s := range []PaymentStatus{
			PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded,
		} {
			assert.True(t, s.IsValid(), s)
		}
		assert.False(t, PaymentStatus("Chargeback").IsValid())
	})

	t.Run("failed and refunded end the payment leg", func(t *testing.T) {
		assert.True(t, PaymentFailed.IsFailed())
		assert.True(t, PaymentRefunded.IsFailed())
		assert.False(t, PaymentPaid.IsFailed())
		assert.False(t, PaymentPending.IsFailed())
	})
}

func TestCombinedStatus(t *testing.T) {
	assert.True(t, IsCompleted(DeliveryDelivered, PaymentPaid))
	assert.False(t, IsCompleted(DeliveryDelivered, PaymentPending))
	assert.False(t, IsCompleted(DeliveryShipped, PaymentPaid))

	assert.True(t, IsOrderActive(DeliveryPending, PaymentPending))
	assert.False(t, IsOrderActive(DeliveryDelivered, PaymentPending))
	assert.False(t, IsOrderActive(DeliveryShipped, PaymentRefunded))
	assert.False(t, IsOrderActive(DeliveryPending, PaymentFailed))

	assert.True(t, IsOrderFailed(DeliveryCancelled, PaymentPending))
	assert.True(t, IsOrderFailed(DeliveryShipped, PaymentRefunded))
	assert.False(t, IsOrderFailed(DeliveryDelivered, PaymentPaid))
}
