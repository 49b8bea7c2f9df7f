package repository

import (
	"context"
	"time"

	"materialOrderManagement/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, role string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	ListAdmins(ctx context.Context) ([]models.User, error)
}

// OrderRepositoryI defines operations on Order entities.
type OrderRepositoryI interface {
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error
	UpdateLocation(ctx context.Context, id int64, lat, lng float64) error
	MarkDelivered(ctx context.Context, id int64, signature string, confirmedAt time.Time) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// NotificationRepositoryI defines operations on Notification entities.
type NotificationRepositoryI interface {
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID int64) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, recipientID int64) (int64, error)
}

// MaterialRepositoryI defines read access to the material catalog.
type MaterialRepositoryI interface {
	GetByName(ctx context.Context, name string) (*models.Material, error)
	List(ctx context.Context) ([]models.Material, error)
}
