package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"laptophub/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey    = "user_id"    // int64
	CtxUserEmailKey = "user_email" // string
	CtxIsAdminKey   = "is_admin"   // bool
)

type authErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func authErrorJSON(msg string) authErrorResponse {
	return authErrorResponse{Success: false, Message: msg}
}

// bearerAuth用のJWT検証ミドルウェア。
// token無し=401、検証失敗=403。成功したらprincipalをcontextへ入れる。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, authErrorJSON("Access token required"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, authErrorJSON("Access token required"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, authErrorJSON("Access token required"))
			}

			//JWTをパースして検証する（署名と期限）
			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusForbidden, authErrorJSON("Invalid or expired token"))
			}

			//claimsを取り出す
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusForbidden, authErrorJSON("Invalid or expired token"))
			}

			//idを取り出す
			userID, err := parseUserID(claims["id"])
			if err != nil || userID <= 0 {
				return c.JSON(http.StatusForbidden, authErrorJSON("Invalid or expired token"))
			}

			//emailを取り出す
			email, ok := claims["email"].(string)
			if !ok || email == "" {
				return c.JSON(http.StatusForbidden, authErrorJSON("Invalid or expired token"))
			}

			//isAdminを取り出す（無ければfalse扱い）
			isAdmin, _ := claims["isAdmin"].(bool)

			//contextへ保存
			c.Set(CtxUserIDKey, userID)
			c.Set(CtxUserEmailKey, email)
			c.Set(CtxIsAdminKey, isAdmin)

			return next(c)
		}
	}
}

// idをint64に変換する
func parseUserID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid id")
	}
}
