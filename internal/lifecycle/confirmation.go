package lifecycle

import (
	"context"
	"log"
	"strings"
	"time"

	"materialOrderManagement/models"
)

// ConfirmDelivery captures the proof of receipt: it binds the signature
// artifact and timestamp to the order and moves it to delivered in the same
// logical update. The confirmation is written at most once; a second attempt
// fails with ErrAlreadyConfirmed and leaves the stored record untouched.
func (s *Service) ConfirmDelivery(ctx context.Context, orderID int64, signature string, confirmedAt time.Time) (*models.Order, error) {
	if strings.TrimSpace(signature) == "" {
		return nil, ErrEmptySignature
	}
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.Confirmation != nil {
		return nil, ErrAlreadyConfirmed
	}
	if o.Status == models.OrderStatusCancelled {
		return nil, &IllegalTransitionError{From: o.Status, To: models.OrderStatusDelivered}
	}
	if confirmedAt.IsZero() {
		confirmedAt = s.now()
	}

	// The store-level guard (no overwrite of an existing signature) makes
	// this safe even if two confirmations race past the read above.
	applied, err := s.orders.MarkDelivered(ctx, orderID, signature, confirmedAt)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrAlreadyConfirmed
	}

	o.Status = models.OrderStatusDelivered
	o.Confirmation = &models.DeliveryConfirmation{Signature: signature, ConfirmedAt: confirmedAt}
	if err := s.notifier.NotifyStatusChange(ctx, o, models.OrderStatusDelivered); err != nil {
		log.Printf("lifecycle: %v", err)
	}
	return o, nil
}
