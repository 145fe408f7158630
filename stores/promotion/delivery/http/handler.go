package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/delivery"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/promotion"
	mmiddleware "github.com/x-xyz/spotmarket/middleware"
	"github.com/x-xyz/spotmarket/stores/auth/delivery/http/middleware"
)

type handler struct {
	promotion promotion.Usecase
}

func New(
	e *echo.Echo,
	promotion promotion.Usecase,
	self domain.Name,
	am *middleware.AuthMiddleware,
	cache echo.MiddlewareFunc) {
	h := &handler{promotion}

	gs := e.Group("/v1/gatekeeper")

	gs.GET("/globals", h.getGlobals, cache)
	gs.GET("/promotions", h.getSilverPromotions, cache)
	gs.GET("/promotions/:collection", h.getSilverPromotion, mmiddleware.IsValidName("collection"), cache)
	gs.PUT("/spots", h.setSpots, am.Auth(), am.IsAdmin(self))
	gs.PUT("/durations", h.setPromoDuration, am.Auth(), am.IsAdmin(self))
	gs.PUT("/auction-promos", h.setAuctionPromos, am.Auth(), am.IsAdmin(self))
	gs.POST("/balance/claim", h.claimMarketBalance, am.Auth())
}

func (h *handler) getGlobals(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.promotion.GetGlobals(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getSilverPromotions(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.promotion.FindSilverPromotions(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getSilverPromotion(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.promotion.FindSilverPromotion(ctx, domain.Name(c.Param("collection")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) setSpots(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := c.Get("account").(domain.Name)

	p := promotion.SetSpots{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.promotion.SetSpots(ctx, account, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) setPromoDuration(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := c.Get("account").(domain.Name)

	p := promotion.SetPromoDuration{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.promotion.SetPromoDuration(ctx, account, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) setAuctionPromos(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := c.Get("account").(domain.Name)

	p := promotion.SetAuctionPromos{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.promotion.SetAuctionPromos(ctx, account, p.Enabled)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) claimMarketBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := c.Get("account").(domain.Name)

	res, err := h.promotion.ClaimMarketBalance(ctx, account)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
