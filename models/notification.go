package models

import "time"

// Notification is a per-recipient message record created by the system in
// response to an order event. Only the Read flag is ever mutated, and only
// from false to true.
type Notification struct {
	ID          int64     `db:"id" json:"id"`
	RecipientID int64     `db:"recipient_id" json:"recipient_id"`
	OrderID     int64     `db:"order_id" json:"order_id"`
	Message     string    `db:"message" json:"message"`
	Read        bool      `db:"read" json:"read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
