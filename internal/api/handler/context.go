package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// callerIdentity extracts the verified identity injected by the Auth
// middleware. A zero user id or empty role means the middleware did not run
// (or the token carried no usable subject); fail fast with 401 before any
// service call.
func callerIdentity(c echo.Context) (id int64, role string, err error) {
	id, _ = c.Get("user_id").(int64)
	role, _ = c.Get("role").(string)
	if id == 0 || role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, role, nil
}
