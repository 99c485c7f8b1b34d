package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// contextにprincipalが入っているかだけ確認する。
// AuthJWTの後に置く。
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, authErrorJSON("Authentication required"))
			}
			return next(c)
		}
	}
}
