package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendora/catalog-api/internal/api/middleware"
	"github.com/vendora/catalog-api/internal/core/domain"
)

// ctxIdentity returns the identity injected by the Auth middleware. Its
// absence means the route was mounted without Auth and is rejected with 401.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok || identity.UserID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return *identity, nil
}
