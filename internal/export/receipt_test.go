package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"materialOrderManagement/models"
)

func confirmedOrder() *models.Order {
	return &models.Order{
		ID:            7,
		RequesterName: "Juan Perez",
		ProjectName:   "Casa Lomas",
		Items: []models.OrderItem{
			{MaterialName: "cemento", Quantity: 10, UnitPrice: 250, Unit: "bulto", Subtotal: 2500},
			{MaterialName: "cal", Quantity: 2, UnitPrice: 80, Unit: "bulto", Subtotal: 160},
		},
		Total:  2660,
		Status: models.OrderStatusDelivered,
		Confirmation: &models.DeliveryConfirmation{
			Signature:   "data:image/png;base64,abc123",
			ConfirmedAt: time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC),
		},
	}
}

func TestFromOrder_RequiresConfirmation(t *testing.T) {
	o := confirmedOrder()
	o.Confirmation = nil
	if _, err := FromOrder(o); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if _, err := FromOrder(nil); err == nil {
		t.Fatalf("expected error for nil order")
	}
}

func TestFromOrder_CarriesConfirmationData(t *testing.T) {
	r, err := FromOrder(confirmedOrder())
	if err != nil {
		t.Fatalf("FromOrder: %v", err)
	}
	if r.OrderID != 7 || r.Total != 2660 || len(r.Items) != 2 {
		t.Fatalf("unexpected receipt: %+v", r)
	}
	if r.SignatureRef != "data:image/png;base64,abc123" {
		t.Fatalf("signature not carried: %q", r.SignatureRef)
	}
	if !r.DeliveredAt.Equal(time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)) {
		t.Fatalf("delivered timestamp not carried: %v", r.DeliveredAt)
	}
}

func TestRender_DeterministicAndComplete(t *testing.T) {
	r, err := FromOrder(confirmedOrder())
	if err != nil {
		t.Fatalf("FromOrder: %v", err)
	}
	first, err := r.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := r.Render()
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("rendering is not deterministic")
	}

	doc := string(first)
	for _, want := range []string{"Order #7", "Juan Perez", "Casa Lomas", "10 bulto cemento", "2660.00"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
}
