package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"materialOrderManagement/internal/auth"
	"materialOrderManagement/models"
)

// streamOrders pushes the caller's current orders as server-sent events:
// one snapshot immediately, then one after every change. Each subscriber
// holds its own hub subscription.
func (s *Server) streamOrders(c echo.Context) error {
	u, err := s.resolveCurrentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	snapshots, err := s.Watcher.WatchByUser(c.Request().Context(), u.ID)
	if err != nil {
		return writeError(c, err)
	}
	return streamSnapshots(c, snapshots)
}

// adminStreamOrders is the staff live view over all orders.
func (s *Server) adminStreamOrders(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context(), s.Users); err != nil {
		return writeError(c, err)
	}
	snapshots, err := s.Watcher.WatchAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return streamSnapshots(c, snapshots)
}

func streamSnapshots(c echo.Context, snapshots <-chan []models.Order) error {
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-store")
	resp.WriteHeader(http.StatusOK)

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(snap)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(resp, "data: %s\n\n", payload); err != nil {
				return err
			}
			resp.Flush()
		}
	}
}
