package trade

// DeliveryStatus represents the delivery leg of an order's state
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "Pending"
	DeliveryShipped   DeliveryStatus = "Shipped"
	DeliveryDelivered DeliveryStatus = "Delivered"
	DeliveryReturned  DeliveryStatus = "Returned"
	DeliveryCancelled DeliveryStatus = "Cancelled"
	DeliveryFailed    DeliveryStatus = "Failed"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryPending, DeliveryShipped, DeliveryDelivered,
		DeliveryReturned, DeliveryCancelled, DeliveryFailed:
		return true
	}
	return false
}

// String returns the string representation of DeliveryStatus
func (s DeliveryStatus) String() string {
	return string(s)
}

// IsActive reports whether the delivery leg is still in flight
func (s DeliveryStatus) IsActive() bool {
	switch s {
	case DeliveryDelivered, DeliveryReturned, DeliveryCancelled, DeliveryFailed:
		return false
	}
	return true
}

// IsFailed reports whether the delivery leg ended unsuccessfully
func (s DeliveryStatus) IsFailed() bool {
	switch s {
	case DeliveryReturned, DeliveryCancelled, DeliveryFailed:
		return true
	}
	return false
}

// PaymentStatus represents the payment leg of an order's state
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// IsActive reports whether the payment leg is still in flight
func (s PaymentStatus) IsActive() bool {
	return s != PaymentRefunded && s != PaymentFailed
}

// IsFailed reports whether the payment leg ended unsuccessfully
func (s PaymentStatus) IsFailed() bool {
	return s == PaymentFailed || s == PaymentRefunded
}

// IsCompleted reports the fully-settled combination: delivered and paid
func IsCompleted(delivery DeliveryStatus, payment PaymentStatus) bool {
	return delivery == DeliveryDelivered && payment == PaymentPaid
}

// IsOrderActive reports whether neither leg has reached a terminal state
func IsOrderActive(delivery DeliveryStatus, payment PaymentStatus) bool {
	return delivery.IsActive() && payment.IsActive()
}

// IsOrderFailed reports whether either leg ended unsuccessfully
func IsOrderFailed(delivery DeliveryStatus, payment PaymentStatus) bool {
	return delivery.IsFailed() || payment.IsFailed()
}

// Restricted field names refused on a Delivered order
const (
	FieldSupplier       = "supplier"
	FieldClient         = "client"
	FieldOrderedItems   = "ordered_items"
	FieldDeliveryStatus = "delivery_status"
)
