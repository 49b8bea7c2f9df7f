package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"materialOrderManagement/internal/auth"
	"materialOrderManagement/models"
)

type forwardGeocodeRequest struct {
	Address string `json:"address"`
}

// forwardGeocode resolves address text to a proposed point. It performs one
// provider attempt and never touches any order; the client shows the point,
// lets the user adjust it and sends the acknowledged location with the order.
func (s *Server) forwardGeocode(c echo.Context) error {
	if _, err := auth.RequireCustomerOrAdmin(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	if s.Resolver == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "geocoding is not configured"})
	}
	var req forwardGeocodeRequest
	if err := c.Bind(&req); err != nil || req.Address == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "address is required"})
	}
	res, err := s.Resolver.Resolve(c.Request().Context(), req.Address)
	if err != nil {
		return writeError(c, err)
	}
	// The resolution is only Proposed here; confirmation happens on the
	// client and is asserted back explicitly at order creation.
	point, _ := res.Proposed()
	return c.JSON(http.StatusOK, map[string]models.LatLng{"proposed": point})
}

// reverseGeocode prefills address fields from a point; absent components are
// empty strings.
func (s *Server) reverseGeocode(c echo.Context) error {
	if _, err := auth.RequireCustomerOrAdmin(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	if s.Resolver == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "geocoding is not configured"})
	}
	var point models.LatLng
	if err := c.Bind(&point); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request format"})
	}
	addr, err := s.Resolver.Reverse(c.Request().Context(), point)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, addr)
}
