package models

import "time"

// OrderStatus represents the current progress of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Label returns the human-readable form used in notifications and receipts.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusProcessing:
		return "Processing"
	case OrderStatusShipped:
		return "Shipped"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Priority is the urgency tier derived once from the delivery window at
// creation time. It is never recomputed afterwards.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PrioritySoon   Priority = "soon"
	PriorityNormal Priority = "normal"
)

// LatLng is a geographic point.
type LatLng struct {
	Lat float64 `db:"lat" json:"lat"`
	Lng float64 `db:"lng" json:"lng"`
}

// Address holds the free-text delivery address as typed by the requester.
// Reverse geocoding leaves absent components as empty strings, so any field
// may legitimately be empty except Street and Municipality at creation.
type Address struct {
	Street       string `db:"street" json:"street"`
	Number       string `db:"number" json:"number"`
	Colony       string `db:"colony" json:"colony"`
	PostalCode   string `db:"postal_code" json:"postal_code"`
	Municipality string `db:"municipality" json:"municipality"`
	State        string `db:"state" json:"state"`
}

// OrderItem is one catalog line of an order. UnitPrice and Unit are captured
// from the catalog at creation time so later price changes do not rewrite
// order history.
type OrderItem struct {
	MaterialName string  `db:"material_name" json:"material_name"`
	Quantity     int     `db:"quantity" json:"quantity"`
	UnitPrice    float64 `db:"unit_price" json:"unit_price"`
	Unit         string  `db:"unit" json:"unit"`
	Subtotal     float64 `db:"subtotal" json:"subtotal"`
}

// DeliveryConfirmation is the proof-of-receipt record. It is written at most
// once per order and never overwritten.
type DeliveryConfirmation struct {
	Signature   string    `db:"delivery_signature" json:"signature"`
	ConfirmedAt time.Time `db:"delivered_at" json:"confirmed_at"`
}

// Order represents a construction-material order with a one-to-one relation
// to User via UserID.
type Order struct {
	ID            int64   `db:"id" json:"id"`
	UserID        int64   `db:"user_id" json:"user_id"`
	RequesterName string  `db:"requester_name" json:"requester_name"`
	ProjectName   string  `db:"project_name" json:"project_name"`
	Phone         string  `db:"phone" json:"phone"`
	Address       Address `json:"address"`
	// Location is set only through the explicit confirmation step, never
	// straight from a geocoding result. Nullable in DB; the pointer
	// distinguishes unset from (0,0).
	Location     *LatLng     `json:"location,omitempty"`
	Items        []OrderItem `json:"items"`
	Total        float64     `db:"total" json:"total"`
	DeliveryFrom time.Time   `db:"delivery_from" json:"delivery_from"`
	DeliveryTo   time.Time   `db:"delivery_to" json:"delivery_to"`
	Priority     Priority    `db:"priority" json:"priority"`
	Status       OrderStatus `db:"status" json:"status"`
	// Confirmation is present iff the order reached Delivered through the
	// signature capture path.
	Confirmation *DeliveryConfirmation `json:"confirmation,omitempty"`
	CreatedAt    time.Time             `db:"created_at" json:"created_at"`
}
