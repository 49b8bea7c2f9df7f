// Package notify creates per-recipient notification records for order
// events. Dispatch is at-least-once with no deduplication key: a retried
// dispatch after a partial failure may create a duplicate, which is accepted
// in favor of never losing a notification.
package notify

import (
	"context"
	"fmt"
	"log"

	"materialOrderManagement/models"
	"materialOrderManagement/repository"
)

// Dispatcher fans order events out as notifications.
type Dispatcher struct {
	notifications repository.NotificationRepositoryI
	users         repository.UserRepositoryI
}

// NewDispatcher creates a Dispatcher over the given stores.
func NewDispatcher(notifications repository.NotificationRepositoryI, users repository.UserRepositoryI) *Dispatcher {
	return &Dispatcher{notifications: notifications, users: users}
}

// NotifyCreation creates one notification per staff recipient announcing a
// new order. Best effort per recipient: one failed write is logged and must
// not undo the already-created order, which is the primary artifact of
// record.
func (d *Dispatcher) NotifyCreation(ctx context.Context, o *models.Order) {
	admins, err := d.users.ListAdmins(ctx)
	if err != nil {
		log.Printf("notify: list staff recipients for order %d: %v", o.ID, err)
		return
	}
	msg := fmt.Sprintf("New order #%d from %s for project %q (priority %s).",
		o.ID, o.RequesterName, o.ProjectName, o.Priority)
	for _, admin := range admins {
		_, err := d.notifications.Create(ctx, &models.Notification{
			RecipientID: admin.ID,
			OrderID:     o.ID,
			Message:     msg,
		})
		if err != nil {
			log.Printf("notify: creation notification to user %d for order %d: %v", admin.ID, o.ID, err)
		}
	}
}

// NotifyStatusChange creates exactly one notification for the order's owner
// describing the new status. The returned error is for observability only;
// the status transition it follows has already been persisted and callers
// must not roll it back.
func (d *Dispatcher) NotifyStatusChange(ctx context.Context, o *models.Order, newStatus models.OrderStatus) error {
	msg := fmt.Sprintf("Your order #%d is now %s.", o.ID, newStatus.Label())
	_, err := d.notifications.Create(ctx, &models.Notification{
		RecipientID: o.UserID,
		OrderID:     o.ID,
		Message:     msg,
	})
	if err != nil {
		return fmt.Errorf("status notification for order %d: %w", o.ID, err)
	}
	return nil
}

// NotifyDeleted tells the owner their order was removed by staff.
func (d *Dispatcher) NotifyDeleted(ctx context.Context, o *models.Order) error {
	msg := fmt.Sprintf("Your order #%d was cancelled and removed by staff.", o.ID)
	_, err := d.notifications.Create(ctx, &models.Notification{
		RecipientID: o.UserID,
		OrderID:     o.ID,
		Message:     msg,
	})
	if err != nil {
		return fmt.Errorf("deletion notification for order %d: %w", o.ID, err)
	}
	return nil
}
