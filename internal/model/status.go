package model

// Status is the two-valued lifecycle flag shared by products, orders,
// customers, and admins.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInActive Status = "InActive"
)

// Toggle returns the opposite status. Any value other than Active is
// treated as InActive, so a corrupt column value flips to Active rather
// than wedging the record.
func (s Status) Toggle() Status {
	if s == StatusActive {
		return StatusInActive
	}
	return StatusActive
}

// Valid reports whether s is one of the two recognized values.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInActive
}

// ShippingStatus tracks order fulfillment progress.
type ShippingStatus string

const (
	ShippingPending             ShippingStatus = "pending"
	ShippingAwaitingPayment     ShippingStatus = "awaiting_payment"
	ShippingAwaitingFulfillment ShippingStatus = "awaiting_fulfillment"
	ShippingAwaitingShipment    ShippingStatus = "awaiting_shipment"
	ShippingAwaitingPickup      ShippingStatus = "awaiting_pickup"
	ShippingPartiallyShipped    ShippingStatus = "partially_shipped"
	ShippingCompleted           ShippingStatus = "completed"
	ShippingShipped             ShippingStatus = "shipped"
	ShippingCancelled           ShippingStatus = "cancelled"
	ShippingDeclined            ShippingStatus = "declined"
	ShippingRefunded            ShippingStatus = "refunded"
	ShippingDisputed            ShippingStatus = "disputed"
)

// ShippingStatuses lists every recognized shipping status value.
var ShippingStatuses = []ShippingStatus{
	ShippingPending,
	ShippingAwaitingPayment,
	ShippingAwaitingFulfillment,
	ShippingAwaitingShipment,
	ShippingAwaitingPickup,
	ShippingPartiallyShipped,
	ShippingCompleted,
	ShippingShipped,
	ShippingCancelled,
	ShippingDeclined,
	ShippingRefunded,
	ShippingDisputed,
}

// Valid reports whether s is a recognized shipping status.
func (s ShippingStatus) Valid() bool {
	for _, v := range ShippingStatuses {
		if s == v {
			return true
		}
	}
	return false
}
