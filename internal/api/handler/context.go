package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentpool/careers-portal/internal/api/middleware"
	"github.com/talentpool/careers-portal/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware. Its presence
// proves the middleware ran; handlers behind a guard call this before touching
// any data so a missing session fails fast with 401.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get(middleware.SessionKey).(*domain.Session)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return sess, nil
}
