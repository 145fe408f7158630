package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/spotmarket/base/delivery"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/stores/auth/delivery/http/middleware"
)

type handler struct{}

func New(e *echo.Echo, am *middleware.AuthMiddleware) {
	h := &handler{}
	e.GET("/v1/auth/me", h.me, am.Auth())
}

type tokenInfo struct {
	Account   domain.Name `json:"account"`
	TokenId   string      `json:"tokenId"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

func (h *handler) me(c echo.Context) error {
	claims := c.Get("claims").(*domain.OperatorClaims)
	return delivery.MakeJsonResp(c, http.StatusOK, tokenInfo{
		Account:   claims.Account(),
		TokenId:   claims.Id,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC(),
	})
}
