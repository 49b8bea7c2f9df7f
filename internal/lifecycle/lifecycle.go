// Package lifecycle orchestrates order creation, the status state machine
// and its side effects: notification fan-out and the immutable delivery
// confirmation. All transitions flow through one table (transitions.go) so
// illegal changes cannot leak in from call sites.
package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"materialOrderManagement/internal/geocode"
	"materialOrderManagement/internal/notify"
	"materialOrderManagement/internal/priority"
	"materialOrderManagement/models"
	"materialOrderManagement/repository"
)

// DraftItem is one requested catalog line before validation.
type DraftItem struct {
	MaterialName string `json:"material_name"`
	Quantity     int    `json:"quantity"`
}

// OrderDraft is the client-assembled input to Create. Totals and priority
// are never taken from the draft; both are derived server-side.
type OrderDraft struct {
	RequesterName string         `json:"requester_name"`
	ProjectName   string         `json:"project_name"`
	Phone         string         `json:"phone"`
	Address       models.Address `json:"address"`
	Items         []DraftItem    `json:"items"`
	DeliveryFrom  time.Time      `json:"delivery_from"`
	DeliveryTo    time.Time      `json:"delivery_to"`
}

// Service applies order lifecycle operations against the store, with the
// dispatcher handling notification side effects.
type Service struct {
	orders    repository.OrderRepositoryI
	materials repository.MaterialRepositoryI
	notifier  *notify.Dispatcher
	now       func() time.Time
}

// NewService creates the lifecycle service. Dependencies are injected
// explicitly; there is no ambient store or identity.
func NewService(orders repository.OrderRepositoryI, materials repository.MaterialRepositoryI, notifier *notify.Dispatcher) *Service {
	return &Service{orders: orders, materials: materials, notifier: notifier, now: time.Now}
}

// Create validates the draft, recomputes the total from the catalog,
// classifies priority from the delivery window and persists the order in
// pending state. On success it fans a creation notification out to staff
// (best effort; the order stands regardless).
func (s *Service) Create(ctx context.Context, userID int64, draft OrderDraft) (*models.Order, error) {
	now := s.now()
	if draft.RequesterName == "" {
		return nil, validationf("requester name is required")
	}
	if draft.DeliveryFrom.IsZero() || draft.DeliveryTo.IsZero() {
		return nil, validationf("delivery window is required")
	}
	if draft.DeliveryTo.Before(draft.DeliveryFrom) {
		return nil, validationf("delivery window end precedes its start")
	}
	if draft.DeliveryFrom.Before(startOfDay(now)) {
		return nil, validationf("delivery window starts in the past")
	}
	if len(draft.Items) == 0 {
		return nil, validationf("at least one material is required")
	}

	items := make([]models.OrderItem, 0, len(draft.Items))
	var total float64
	for _, di := range draft.Items {
		if di.Quantity <= 0 {
			return nil, validationf("quantity for %q must be positive", di.MaterialName)
		}
		mat, err := s.materials.GetByName(ctx, di.MaterialName)
		if err != nil {
			return nil, err
		}
		if mat == nil {
			return nil, validationf("unknown material %q", di.MaterialName)
		}
		subtotal := float64(di.Quantity) * mat.UnitPrice
		items = append(items, models.OrderItem{
			MaterialName: mat.Name,
			Quantity:     di.Quantity,
			UnitPrice:    mat.UnitPrice,
			Unit:         mat.Unit,
			Subtotal:     subtotal,
		})
		total += subtotal
	}

	prio, err := priority.Classify(draft.DeliveryFrom, draft.DeliveryTo, now)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        userID,
		RequesterName: draft.RequesterName,
		ProjectName:   draft.ProjectName,
		Phone:         draft.Phone,
		Address:       draft.Address,
		Items:         items,
		Total:         total,
		DeliveryFrom:  draft.DeliveryFrom,
		DeliveryTo:    draft.DeliveryTo,
		Priority:      prio,
		Status:        models.OrderStatusPending,
	}
	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyCreation(ctx, created)
	return created, nil
}

// Transition validates the status change against the table, persists it and
// notifies the owner. Notification failures are logged, never rolled back:
// the authoritative state has already changed.
func (s *Service) Transition(ctx context.Context, orderID int64, to models.OrderStatus) (*models.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if !CanTransition(o.Status, to) {
		return nil, &IllegalTransitionError{From: o.Status, To: to}
	}
	if err := s.orders.UpdateStatus(ctx, orderID, to); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	o.Status = to
	if err := s.notifier.NotifyStatusChange(ctx, o, to); err != nil {
		log.Printf("lifecycle: %v", err)
	}
	return o, nil
}

// SetLocation commits a delivery point to the order. Only a resolution that
// completed the confirm step is accepted; a bare geocoding result cannot
// reach here.
func (s *Service) SetLocation(ctx context.Context, orderID int64, res *geocode.Resolution) error {
	point, ok := res.Confirmed()
	if !ok {
		return geocode.ErrNotConfirmed
	}
	if err := s.orders.UpdateLocation(ctx, orderID, point.Lat, point.Lng); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}

// Delete removes an order on behalf of staff and notifies the owner.
// Deleting a missing order is a logged no-op, not an error: the returned
// flag distinguishes it from a real delete.
func (s *Service) Delete(ctx context.Context, orderID int64) (bool, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}
	if o == nil {
		log.Printf("lifecycle: delete of non-existent order %d", orderID)
		return false, nil
	}
	deleted, err := s.orders.Delete(ctx, orderID)
	if err != nil {
		return false, err
	}
	if deleted {
		if err := s.notifier.NotifyDeleted(ctx, o); err != nil {
			log.Printf("lifecycle: %v", err)
		}
	}
	return deleted, nil
}

// Get returns an order by id, or ErrOrderNotFound.
func (s *Service) Get(ctx context.Context, orderID int64) (*models.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
