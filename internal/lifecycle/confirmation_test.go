package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"materialOrderManagement/models"
)

func TestConfirmDelivery_AttachesProofOnce(t *testing.T) {
	deps := newTestDeps(t, "confirm_once")
	ctx := context.Background()

	o, err := deps.svc.Create(ctx, deps.customer.ID, validDraft(time.Now().Add(48*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := deps.svc.Transition(ctx, o.ID, models.OrderStatusShipped); err != nil {
		t.Fatalf("ship: %v", err)
	}

	firstAt := time.Now().UTC().Truncate(time.Second)
	confirmed, err := deps.svc.ConfirmDelivery(ctx, o.ID, "data:image/png;base64,abc123", firstAt)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != models.OrderStatusDelivered {
		t.Fatalf("confirmation must move order to delivered: %q", confirmed.Status)
	}
	if confirmed.Confirmation == nil || confirmed.Confirmation.Signature != "data:image/png;base64,abc123" {
		t.Fatalf("confirmation not attached: %+v", confirmed.Confirmation)
	}

	// Second confirmation fails and leaves the original record intact.
	_, err = deps.svc.ConfirmDelivery(ctx, o.ID, "data:image/png;base64,other", firstAt.Add(time.Hour))
	if !errors.Is(err, ErrAlreadyConfirmed) {
		t.Fatalf("expected ErrAlreadyConfirmed, got %v", err)
	}
	got, _ := deps.svc.Get(ctx, o.ID)
	if got.Confirmation.Signature != "data:image/png;base64,abc123" {
		t.Fatalf("stored signature overwritten: %q", got.Confirmation.Signature)
	}
	if !got.Confirmation.ConfirmedAt.Equal(firstAt) {
		t.Fatalf("stored timestamp changed: got %v want %v", got.Confirmation.ConfirmedAt, firstAt)
	}

	// Owner was told about shipped and about delivered.
	n, _ := deps.notifications.CountByOrder(ctx, o.ID, deps.customer.ID)
	if n != 2 {
		t.Fatalf("expected 2 owner notifications, got %d", n)
	}
}

func TestConfirmDelivery_RejectsEmptySignature(t *testing.T) {
	deps := newTestDeps(t, "confirm_empty")
	ctx := context.Background()

	o, err := deps.svc.Create(ctx, deps.customer.ID, validDraft(time.Now().Add(48*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, sig := range []string{"", "   ", "\n\t"} {
		if _, err := deps.svc.ConfirmDelivery(ctx, o.ID, sig, time.Now()); !errors.Is(err, ErrEmptySignature) {
			t.Fatalf("signature %q: expected ErrEmptySignature, got %v", sig, err)
		}
	}
	got, _ := deps.svc.Get(ctx, o.ID)
	if got.Status != models.OrderStatusPending || got.Confirmation != nil {
		t.Fatalf("rejected confirmation changed the order: %+v", got)
	}
}

func TestConfirmDelivery_RejectsCancelledOrder(t *testing.T) {
	deps := newTestDeps(t, "confirm_cancelled")
	ctx := context.Background()

	o, err := deps.svc.Create(ctx, deps.customer.ID, validDraft(time.Now().Add(48*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := deps.svc.Transition(ctx, o.ID, models.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	var terr *IllegalTransitionError
	if _, err := deps.svc.ConfirmDelivery(ctx, o.ID, "sig", time.Now()); !errors.As(err, &terr) {
		t.Fatalf("expected illegal transition error, got %v", err)
	}
}

func TestConfirmDelivery_DefaultsTimestamp(t *testing.T) {
	deps := newTestDeps(t, "confirm_defaultts")
	ctx := context.Background()

	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	deps.svc.now = func() time.Time { return fixed }

	o, err := deps.svc.Create(ctx, deps.customer.ID, validDraft(fixed.Add(48*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	confirmed, err := deps.svc.ConfirmDelivery(ctx, o.ID, "sig", time.Time{})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !confirmed.Confirmation.ConfirmedAt.Equal(fixed) {
		t.Fatalf("zero timestamp must default to now: got %v", confirmed.Confirmation.ConfirmedAt)
	}

	if _, err := deps.svc.ConfirmDelivery(ctx, o.ID+1000, "sig", time.Now()); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
