package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Middleware returns an echo middleware that extracts and validates a Bearer
// JWT from the Authorization header and injects the Principal into the
// request context. Paths listed in allowUnauthenticated bypass
// authentication (e.g., health checks).
func Middleware(secret string, allowUnauthenticated ...string) echo.MiddlewareFunc {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, p := range allowUnauthenticated {
		allow[p] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := allow[c.Path()]; ok {
				return next(c)
			}
			p, err := ParseBearer(c.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or missing credentials"})
			}
			req := c.Request()
			c.SetRequest(req.WithContext(WithPrincipal(req.Context(), p)))
			return next(c)
		}
	}
}
