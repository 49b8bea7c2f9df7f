package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"materialOrderManagement/models"
)

// NotificationRepository stores per-recipient notification records.
// Records are system-created, read-state-only mutable and never deleted in
// normal flow.
type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts one notification for one recipient.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if n == nil {
		return nil, errors.New("notification is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO notifications (recipient_id, order_id, message) VALUES (?,?,?)`,
		n.RecipientID, n.OrderID, n.Message)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a notification by its ID.
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n models.Notification
	var read int
	err := r.db.QueryRowContext(ctx, `SELECT id, recipient_id, order_id, message, read, created_at
		FROM notifications WHERE id = ?`, id).
		Scan(&n.ID, &n.RecipientID, &n.OrderID, &n.Message, &read, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	n.Read = read != 0
	return &n, nil
}

// ListByRecipient returns the recipient's notifications, most recent first.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID int64) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, recipient_id, order_id, message, read, created_at
		FROM notifications WHERE recipient_id = ? ORDER BY created_at DESC, id DESC`, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		var read int
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.OrderID, &n.Message, &read, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Read = read != 0
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByOrder returns how many notifications exist for an order and
// recipient. Used by tests and observability, not by the dispatch path.
func (r *NotificationRepository) CountByOrder(ctx context.Context, orderID, recipientID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE order_id = ? AND recipient_id = ?`,
		orderID, recipientID).Scan(&n)
	return n, err
}

// MarkAllRead flips every unread notification of the recipient to read in a
// single statement, so the batch is all-or-nothing from the recipient's
// perspective. Returns the number of notifications flipped.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE recipient_id = ? AND read = 0`, recipientID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
