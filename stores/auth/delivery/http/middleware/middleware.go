package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/delivery"
	"github.com/x-xyz/spotmarket/domain"
)

type AuthMiddleware struct {
	auth domain.AuthUsecase
}

func New(auth domain.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{auth}
}

// Auth requires a bearer token. It sets "account" and "claims", and scopes
// the request logger to the token.
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(func(key string, c echo.Context) (bool, error) {
		reqCtx := c.Get("ctx").(ctx.Ctx)
		claims, err := m.auth.ParseToken(reqCtx, key)
		if err != nil {
			reqCtx.WithField("err", err).Warn("auth.ParseToken failed")
			return false, err
		}
		c.Set("account", claims.Account())
		c.Set("claims", claims)
		c.Set("ctx", ctx.WithValues(reqCtx, map[string]interface{}{
			"account": claims.Account(),
			"tokenId": claims.Id,
		}))
		return true, nil
	})
}

// IsAdmin lets only the contract account itself through.
func (m *AuthMiddleware) IsAdmin(contract domain.Name) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if account, ok := c.Get("account").(domain.Name); ok && account == contract {
				return next(c)
			}
			return delivery.MakeJsonResp(c, http.StatusForbidden, "require admin privilege")
		}
	}
}
