package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/delivery"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/stores/auth/delivery/http/middleware"
)

type handler struct {
	trx chain.TransactionUsecase
}

func New(e *echo.Echo, trx chain.TransactionUsecase, am *middleware.AuthMiddleware) {
	h := &handler{trx}

	gs := e.Group("/v1/transactions")

	gs.POST("", h.push, am.Auth())
	gs.GET("/:txId", h.getReceipt)
}

func (h *handler) push(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	account := c.Get("account").(domain.Name)

	type action struct {
		Account       domain.Name       `json:"account" validate:"required"`
		Name          domain.ActionName `json:"name" validate:"required"`
		Authorization []domain.Name     `json:"authorization"`
		Data          json.RawMessage   `json:"data"`
	}
	type params struct {
		Actions []action `json:"actions" validate:"required,min=1,dive"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	actions := make([]chain.Action, 0, len(p.Actions))
	for _, a := range p.Actions {
		actions = append(actions, chain.Action{
			Account:       a.Account,
			Name:          a.Name,
			Authorization: a.Authorization,
			Data:          a.Data,
		})
	}

	res, err := h.trx.Push(ctx, account, actions)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getReceipt(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.trx.FindReceipt(ctx, c.Param("txId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
