package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"materialOrderManagement/internal/auth"
	"materialOrderManagement/models"
)

func (s *Server) adminListOrders(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context(), s.Users); err != nil {
		return writeError(c, err)
	}
	orders, err := s.Orders.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func (s *Server) updateOrderStatus(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context(), s.Users); err != nil {
		return writeError(c, err)
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
	}
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request format"})
	}
	order, err := s.Lifecycle.Transition(c.Request().Context(), id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

type confirmDeliveryRequest struct {
	// Signature is the captured artifact (e.g. a PNG data URL from the
	// signature pad).
	Signature   string    `json:"signature"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

func (s *Server) confirmDelivery(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context(), s.Users); err != nil {
		return writeError(c, err)
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
	}
	var req confirmDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request format"})
	}
	order, err := s.Lifecycle.ConfirmDelivery(c.Request().Context(), id, req.Signature, req.ConfirmedAt)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (s *Server) deleteOrder(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context(), s.Users); err != nil {
		return writeError(c, err)
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
	}
	deleted, err := s.Lifecycle.Delete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": deleted})
}
