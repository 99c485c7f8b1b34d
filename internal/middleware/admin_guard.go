package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているprincipalが管理者かどうかを確認します。
//単独では使わない。必ずAuthJWT→RequireAuthの後。

func AdminGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, ok := c.Get(CtxIsAdminKey).(bool)
			if !ok || !isAdmin {
				return c.JSON(http.StatusForbidden, authErrorJSON("Admin access required"))
			}
			return next(c)
		}
	}
}
