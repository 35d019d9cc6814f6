package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simanis/notary-system/internal/core/domain"
)

// RequireCapability gates a route on one capability of the resolved role.
// Users without a role carry an empty capability set and are refused.
func RequireCapability(cap domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !domain.HasCapability(domain.Role(role), cap) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
