package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/spotmarket/base/ctx"
	hcdomain "github.com/x-xyz/spotmarket/domain/healthcheck"
)

type handler struct {
	hc hcdomain.HealthCheckUsecase
}

// New serves GET /health. It answers 503 when the state backend or a
// configured audit database does not respond.
func New(e *echo.Echo, hc hcdomain.HealthCheckUsecase) {
	h := &handler{hc}
	e.GET("/health", h.check)
}

func (h *handler) check(c echo.Context) error {
	r := h.hc.Check(c.Get("ctx").(ctx.Ctx))
	if !r.Healthy() {
		return c.JSON(http.StatusServiceUnavailable, r)
	}
	return c.JSON(http.StatusOK, r)
}
