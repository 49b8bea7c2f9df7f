// Package api is the thin HTTP presentation over the orchestration core.
// Handlers translate between JSON and the lifecycle/geocode/notify services;
// no business rule lives here.
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"materialOrderManagement/internal/auth"
	"materialOrderManagement/internal/geocode"
	"materialOrderManagement/internal/lifecycle"
	"materialOrderManagement/models"
	"materialOrderManagement/repository"
)

// Server bundles the dependencies behind the HTTP handlers.
type Server struct {
	Users         *repository.UserRepository
	Notifications *repository.NotificationRepository
	Materials     *repository.MaterialRepository
	Orders        *repository.OrderRepository
	Lifecycle     *lifecycle.Service
	Resolver      *geocode.Resolver
	Watcher       *repository.OrderWatcher
}

// Register wires all routes onto the echo instance. The auth middleware is
// expected to already be installed by the caller.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/materials", s.listMaterials)

	e.POST("/orders", s.createOrder)
	e.GET("/orders", s.listOrders)
	e.GET("/orders/stream", s.streamOrders)
	e.GET("/orders/:id", s.getOrder)
	e.GET("/orders/:id/receipt", s.orderReceipt)

	e.POST("/geocode/forward", s.forwardGeocode)
	e.POST("/geocode/reverse", s.reverseGeocode)

	e.GET("/notifications", s.listNotifications)
	e.POST("/notifications/read", s.markNotificationsRead)

	admin := e.Group("/admin")
	admin.GET("/orders", s.adminListOrders)
	admin.GET("/orders/stream", s.adminStreamOrders)
	admin.POST("/orders/:id/status", s.updateOrderStatus)
	admin.POST("/orders/:id/delivery", s.confirmDelivery)
	admin.DELETE("/orders/:id", s.deleteOrder)
}

// resolveCurrentUser retrieves the authenticated user from the database.
func (s *Server) resolveCurrentUser(c echo.Context) (*models.User, error) {
	p, err := auth.RequireCustomerOrAdmin(c.Request().Context())
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByUsername(c.Request().Context(), p.Name)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, lifecycle.ErrOrderNotFound // no account behind the token
	}
	return u, nil
}

// writeError maps core errors onto HTTP responses. Validation and geocoding
// failures are retryable by the caller; illegal transitions and duplicate
// confirmations are terminal.
func writeError(c echo.Context, err error) error {
	var vErr *lifecycle.ValidationError
	var tErr *lifecycle.IllegalTransitionError
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, auth.ErrPermissionDenied):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "order not found"})
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": vErr.Msg})
	case errors.Is(err, lifecycle.ErrEmptySignature):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &tErr), errors.Is(err, lifecycle.ErrAlreadyConfirmed):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, geocode.ErrAddressNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "address not found"})
	case errors.Is(err, geocode.ErrProvider):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "geocoding provider unavailable"})
	case errors.Is(err, geocode.ErrNotConfirmed):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "delivery location has not been confirmed"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
