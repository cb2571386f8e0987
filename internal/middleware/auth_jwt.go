package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxSubjectKey = "auth_sub"  // string
	CtxRoleKey    = "auth_role" // string（無ければ空）
)

// Bearer JWT（HS256）の検証ミドルウェア。トークンは外部で発行されたものを受け取る
func AuthJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return unauthorized(c)
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return unauthorized(c)
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return unauthorized(c)
			}

			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || token == nil || !token.Valid {
				return unauthorized(c)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c)
			}

			sub, ok := claims["sub"].(string)
			if !ok || strings.TrimSpace(sub) == "" {
				return unauthorized(c)
			}
			role, _ := claims["role"].(string)

			c.Set(CtxSubjectKey, sub)
			c.Set(CtxRoleKey, role)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{Success: false, Message: "unauthorized"})
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// 認証済みの sub を取り出す
func Subject(c echo.Context) (string, bool) {
	sub, ok := c.Get(CtxSubjectKey).(string)
	return sub, ok && sub != ""
}
