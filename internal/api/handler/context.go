package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skryensya/Finances-API/internal/api/middleware"
)

// ctxUserID extracts the requester id injected by the Auth middleware.
// A zero or missing id means the middleware did not run; fail fast with 401
// rather than letting a zero id leak into an ownership filter.
func ctxUserID(c echo.Context) (int64, error) {
	id, _ := c.Get(middleware.CtxUserID).(int64)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
