package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simanis/notary-system/internal/core/domain"
)

// ctxIdentity extracts the authenticated identity injected upstream. The
// username comes from the JWT; the role was re-resolved from the user
// store on this request, so a revoked role takes effect immediately. An
// empty role is a valid identity with minimal access, but a missing
// username means the auth middleware never ran.
func ctxIdentity(c echo.Context) (username string, role domain.Role, err error) {
	username, _ = c.Get("username").(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	r, _ := c.Get("role").(string)
	return username, domain.Role(r), nil
}
