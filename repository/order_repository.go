package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"materialOrderManagement/models"
)

// OrderRepository is the core repository for Order entities. Every
// successful write is announced on the hub so live views stay current.
type OrderRepository struct {
	db  *sql.DB
	hub *Hub
}

// NewOrderRepository creates a new OrderRepository. hub may be nil when no
// live views are needed (tests, one-shot tools).
func NewOrderRepository(db *sql.DB, hub *Hub) *OrderRepository {
	return &OrderRepository{db: db, hub: hub}
}

const orderColumns = `id, user_id, requester_name, project_name, phone,
	street, number, colony, postal_code, municipality, state,
	lat, lng, total, delivery_from, delivery_to, priority, status,
	delivery_signature, delivered_at, created_at`

// Create inserts a new order and its line items in one transaction.
// Status defaults to 'pending' if empty.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	if o == nil {
		return nil, errors.New("order is nil")
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	var lat, lng any
	if o.Location != nil {
		lat, lng = o.Location.Lat, o.Location.Lng
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO orders
		(user_id, requester_name, project_name, phone,
		 street, number, colony, postal_code, municipality, state,
		 lat, lng, total, delivery_from, delivery_to, priority, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.UserID, o.RequesterName, o.ProjectName, o.Phone,
		o.Address.Street, o.Address.Number, o.Address.Colony,
		o.Address.PostalCode, o.Address.Municipality, o.Address.State,
		lat, lng, o.Total, o.DeliveryFrom.UTC(), o.DeliveryTo.UTC(),
		string(o.Priority), string(o.Status))
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx, `INSERT INTO order_items
			(order_id, material_name, quantity, unit_price, unit, subtotal)
			VALUES (?,?,?,?,?,?)`,
			id, it.MaterialName, it.Quantity, it.UnitPrice, it.Unit, it.Subtotal); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// Query back to capture created_at and defaults.
	created, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("created order not found: id=%d", id)
	}
	r.hub.Publish(created.UserID, created.ID)
	return created, nil
}

// GetByID fetches an order with its line items. Returns (nil, nil) when the
// order does not exist.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ListByUserID returns the user's orders, most recent first.
func (r *OrderRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
}

// ListAll returns every order, most recent first (staff view).
func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadItems(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UpdateStatus overwrites the status field. Last writer wins; there is no
// version check (accepted limitation, staff concurrency on one order is low).
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	r.publish(ctx, id)
	return nil
}

// UpdateLocation sets the confirmed delivery point. The lifecycle layer is
// the only caller and only passes points that went through confirmation.
func (r *OrderRepository) UpdateLocation(ctx context.Context, id int64, lat, lng float64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE orders SET lat = ?, lng = ? WHERE id = ?`, lat, lng, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	r.publish(ctx, id)
	return nil
}

// MarkDelivered atomically sets status to delivered and attaches the
// confirmation, but only if no confirmation exists yet. Returns whether the
// write applied; false with a nil error means a confirmation was already
// present and has been left untouched.
func (r *OrderRepository) MarkDelivered(ctx context.Context, id int64, signature string, confirmedAt time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE orders
		SET status = ?, delivery_signature = ?, delivered_at = ?
		WHERE id = ? AND delivery_signature IS NULL`,
		string(models.OrderStatusDelivered), signature, confirmedAt.UTC(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	r.publish(ctx, id)
	return true, nil
}

// Delete removes an order and (via cascade) its line items. Returns whether
// a row was actually deleted so callers can flag anomalous deletes.
func (r *OrderRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ownerID := r.ownerOf(ctx, id)
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	r.hub.Publish(ownerID, id)
	return true, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, o *models.Order) error {
	rows, err := r.db.QueryContext(ctx, `SELECT material_name, quantity, unit_price, unit, subtotal
		FROM order_items WHERE order_id = ? ORDER BY id`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.MaterialName, &it.Quantity, &it.UnitPrice, &it.Unit, &it.Subtotal); err != nil {
			return err
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

// publish looks up the owner and announces the change; best effort.
func (r *OrderRepository) publish(ctx context.Context, id int64) {
	if r.hub == nil {
		return
	}
	r.hub.Publish(r.ownerOf(ctx, id), id)
}

func (r *OrderRepository) ownerOf(ctx context.Context, id int64) int64 {
	var ownerID int64
	_ = r.db.QueryRowContext(ctx, `SELECT user_id FROM orders WHERE id = ?`, id).Scan(&ownerID)
	return ownerID
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		o           models.Order
		status      string
		priority    string
		lat, lng    sql.NullFloat64
		signature   sql.NullString
		deliveredAt sql.NullTime
	)
	err := row.Scan(&o.ID, &o.UserID, &o.RequesterName, &o.ProjectName, &o.Phone,
		&o.Address.Street, &o.Address.Number, &o.Address.Colony,
		&o.Address.PostalCode, &o.Address.Municipality, &o.Address.State,
		&lat, &lng, &o.Total, &o.DeliveryFrom, &o.DeliveryTo, &priority, &status,
		&signature, &deliveredAt, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = models.OrderStatus(status)
	o.Priority = models.Priority(priority)
	if lat.Valid && lng.Valid {
		o.Location = &models.LatLng{Lat: lat.Float64, Lng: lng.Float64}
	}
	if signature.Valid {
		o.Confirmation = &models.DeliveryConfirmation{
			Signature:   signature.String,
			ConfirmedAt: deliveredAt.Time,
		}
	}
	return &o, nil
}
