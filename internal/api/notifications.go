package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"materialOrderManagement/models"
)

func (s *Server) listNotifications(c echo.Context) error {
	u, err := s.resolveCurrentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := s.Notifications.ListByRecipient(c.Request().Context(), u.ID)
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []models.Notification{}
	}
	return c.JSON(http.StatusOK, list)
}

// markNotificationsRead flips every unread notification of the caller to
// read as one batch.
func (s *Server) markNotificationsRead(c echo.Context) error {
	u, err := s.resolveCurrentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	n, err := s.Notifications.MarkAllRead(c.Request().Context(), u.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"marked": n})
}

func (s *Server) listMaterials(c echo.Context) error {
	list, err := s.Materials.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
