package repository

import (
	"context"
	"sync"

	"materialOrderManagement/models"
)

// OrderEvent announces that an order owned by OwnerID changed (created,
// updated or deleted). Consumers re-read their view on each event.
type OrderEvent struct {
	OwnerID int64
	OrderID int64
}

// Hub fans order change events out to live subscribers. It is the in-process
// stand-in for the store's push-based subscriptions: every observer holds an
// independent subscription, there is no shared cache.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[int]hubSub
}

type hubSub struct {
	ownerID int64 // 0 subscribes to all owners
	ch      chan OrderEvent
}

func NewHub() *Hub {
	return &Hub{subs: map[int]hubSub{}}
}

// Publish notifies subscribers interested in ownerID. Sends never block:
// a slow subscriber drops intermediate events and re-reads on the next one,
// which is sound because events carry no payload beyond identity.
func (h *Hub) Publish(ownerID, orderID int64) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs {
		if s.ownerID != 0 && s.ownerID != ownerID {
			continue
		}
		select {
		case s.ch <- OrderEvent{OwnerID: ownerID, OrderID: orderID}:
		default:
		}
	}
}

// Subscribe registers interest in one owner's orders (ownerID == 0 means all
// orders, the staff view). The subscription is removed when ctx is done.
func (h *Hub) Subscribe(ctx context.Context, ownerID int64) <-chan OrderEvent {
	ch := make(chan OrderEvent, 16)
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = hubSub{ownerID: ownerID, ch: ch}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
		close(ch)
	}()
	return ch
}

// OrderWatcher turns hub events into snapshot streams: each emission is the
// full current list for the watched key, newest first.
type OrderWatcher struct {
	orders *OrderRepository
	hub    *Hub
}

func NewOrderWatcher(orders *OrderRepository, hub *Hub) *OrderWatcher {
	return &OrderWatcher{orders: orders, hub: hub}
}

// WatchByUser yields the owner's current orders immediately and again after
// every change to them. The channel closes when ctx is done.
func (w *OrderWatcher) WatchByUser(ctx context.Context, userID int64) (<-chan []models.Order, error) {
	return w.watch(ctx, userID)
}

// WatchAll is the staff view over every order.
func (w *OrderWatcher) WatchAll(ctx context.Context) (<-chan []models.Order, error) {
	return w.watch(ctx, 0)
}

func (w *OrderWatcher) watch(ctx context.Context, ownerID int64) (<-chan []models.Order, error) {
	snapshot := func() ([]models.Order, error) {
		if ownerID == 0 {
			return w.orders.ListAll(ctx)
		}
		return w.orders.ListByUserID(ctx, ownerID)
	}

	initial, err := snapshot()
	if err != nil {
		return nil, err
	}

	events := w.hub.Subscribe(ctx, ownerID)
	out := make(chan []models.Order, 1)
	out <- initial

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				snap, err := snapshot()
				if err != nil {
					// Subscription read failures end the stream; the
					// consumer resubscribes explicitly.
					return
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
