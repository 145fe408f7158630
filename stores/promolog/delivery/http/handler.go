package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/delivery"
	"github.com/x-xyz/spotmarket/domain/promotion"
)

type handler struct {
	logs promotion.LogUsecase
}

func New(e *echo.Echo, logs promotion.LogUsecase, cache echo.MiddlewareFunc) {
	h := &handler{logs}

	e.GET("/v1/promotions/logs", h.search, cache)
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := promotion.SearchParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	res, err := h.logs.Search(ctx, p)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
