package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"materialOrderManagement/internal/auth"
	"materialOrderManagement/internal/export"
	"materialOrderManagement/internal/geocode"
	"materialOrderManagement/internal/lifecycle"
	"materialOrderManagement/models"
)

type createOrderRequest struct {
	lifecycle.OrderDraft
	// Location is only honored when LocationConfirmed is true, i.e. the
	// requester explicitly acknowledged the resolved map point.
	Location          *models.LatLng `json:"location,omitempty"`
	LocationConfirmed bool           `json:"location_confirmed"`
}

func (s *Server) createOrder(c echo.Context) error {
	u, err := s.resolveCurrentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request format"})
	}

	ctx := c.Request().Context()
	order, err := s.Lifecycle.Create(ctx, u.ID, req.OrderDraft)
	if err != nil {
		return writeError(c, err)
	}

	if req.Location != nil && req.LocationConfirmed {
		res := geocode.NewResolution()
		_ = res.Propose(*req.Location)
		_ = res.Confirm()
		if err := s.Lifecycle.SetLocation(ctx, order.ID, res); err != nil {
			return writeError(c, err)
		}
		order.Location = req.Location
	}
	return c.JSON(http.StatusCreated, order)
}

func (s *Server) listOrders(c echo.Context) error {
	u, err := s.resolveCurrentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	orders, err := s.Orders.ListByUserID(c.Request().Context(), u.ID)
	if err != nil {
		return writeError(c, err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c echo.Context) error {
	u, err := s.resolveCurrentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	order, err := s.loadOrderFor(c, u)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (s *Server) orderReceipt(c echo.Context) error {
	u, err := s.resolveCurrentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	order, err := s.loadOrderFor(c, u)
	if err != nil {
		return writeError(c, err)
	}
	receipt, err := export.FromOrder(order)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "order has no delivery confirmation"})
	}
	doc, err := receipt.Render()
	if err != nil {
		return writeError(c, err)
	}
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", doc)
}

// loadOrderFor fetches the path order and enforces that non-staff callers
// only see their own orders.
func (s *Server) loadOrderFor(c echo.Context, u *models.User) (*models.Order, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, lifecycle.ErrOrderNotFound
	}
	order, err := s.Lifecycle.Get(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if order.UserID != u.ID && !u.IsAdmin() {
		return nil, auth.ErrPermissionDenied
	}
	return order, nil
}
