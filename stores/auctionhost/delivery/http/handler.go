package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/delivery"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/auctionhost"
	"github.com/x-xyz/spotmarket/stores/auth/delivery/http/middleware"
)

type handler struct {
	host auctionhost.Usecase
}

func New(
	e *echo.Echo,
	host auctionhost.Usecase,
	self domain.Name,
	am *middleware.AuthMiddleware,
	cache echo.MiddlewareFunc) {
	h := &handler{host}

	gs := e.Group("/v1/host")

	gs.GET("/globals", h.getGlobals, cache)
	gs.GET("/start-prices", h.quoteStartPrices, cache)
	gs.PUT("/start-prices", h.setStartPrice, am.Auth(), am.IsAdmin(self))
	gs.PUT("/reauction-duration", h.setReAuctDuration, am.Auth(), am.IsAdmin(self))
	gs.POST("/balance/claim", h.claimMarketBalance, am.Auth())
	gs.POST("/auctions/:id/claim", h.claimAuctionIncome, am.Auth())
	gs.POST("/auctions/:id/cancel", h.cancelAuction, am.Auth())
	gs.POST("/spots/free", h.mintFreeSpot, am.Auth(), am.IsAdmin(self))
	gs.POST("/spots/auction", h.mintAuctionSpot, am.Auth(), am.IsAdmin(self))
}

func (h *handler) getGlobals(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.host.GetGlobals(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) quoteStartPrices(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	gold, silver, err := h.host.QuoteStartPrices(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	res := struct {
		Gold   string `json:"gold"`
		Silver string `json:"silver"`
	}{
		Gold:   gold.String(),
		Silver: silver.String(),
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) setStartPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := c.Get("account").(domain.Name)

	p := auctionhost.SetStartPrice{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	res, err := h.host.SetStartPrice(ctx, account, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) setReAuctDuration(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := c.Get("account").(domain.Name)

	p := auctionhost.SetReAuctDuration{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.host.SetReAuctDuration(ctx, account, p.Duration)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) claimMarketBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := c.Get("account").(domain.Name)

	res, err := h.host.ClaimMarketBalance(ctx, account)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) claimAuctionIncome(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := c.Get("account").(domain.Name)

	id, err := domain.ParseAuctionId(c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.host.ClaimAuctionIncome(ctx, account, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) cancelAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := c.Get("account").(domain.Name)

	id, err := domain.ParseAuctionId(c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.host.CancelAuction(ctx, account, id)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) mintFreeSpot(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := c.Get("account").(domain.Name)

	p := auctionhost.MintFreeSpot{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	res, err := h.host.MintFreeSpot(ctx, account, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) mintAuctionSpot(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := c.Get("account").(domain.Name)

	p := auctionhost.AuctionDuration{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	res, err := h.host.MintAuctionSpot(ctx, account, p.Duration)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
