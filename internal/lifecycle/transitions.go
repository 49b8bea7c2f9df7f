package lifecycle

import "materialOrderManagement/models"

// allowed is the single authoritative transition table. Skipping
// intermediate states forward (e.g. pending -> delivered) is deliberately
// permitted so staff can correct an under-reported status. Delivered and
// cancelled are terminal.
var allowed = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending: {
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	},
	models.OrderStatusProcessing: {
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	},
	models.OrderStatusShipped: {
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

// CanTransition reports whether the status change is in the table.
func CanTransition(from, to models.OrderStatus) bool {
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}
