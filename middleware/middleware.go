package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/delivery"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/base/metrics"
	"github.com/x-xyz/spotmarket/base/validator"
	"github.com/x-xyz/spotmarket/domain"
)

type GoMiddleware struct{}

func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{}
}

// AddContext puts a request scoped ctx.Ctx under "ctx". Its logger carries
// the request id and the route.
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.WithValues(ctx.Background(), map[string]interface{}{
				"requestID": c.Response().Header().Get(echo.HeaderXRequestID),
				"route":     c.Request().Method + " " + c.Path(),
			}))
			return next(c)
		}
	}
}

// ResponseLogger logs one line per request, at warn level for server errors.
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	met := metrics.New("http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer met.BumpTime("request.time", "method", c.Request().Method, "path", c.Path()).End()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := log.Fields{
				"ms":         time.Since(start).Seconds() * 1000,
				"httpStatus": res.Status,
				"remoteIP":   c.RealIP(),
				"uri":        req.URL.Path,
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
			}
			if account, ok := c.Get("account").(domain.Name); ok {
				fields["account"] = account
			}
			if hit := res.Header().Get(headerCache); hit != "" {
				fields["cache"] = hit
			}

			logger := c.Get("ctx").(ctx.Ctx).WithFields(fields)
			switch {
			case res.Status >= 500:
				logger.WithField("nextErr", err).Warn("response")
			case res.Status >= 400:
				logger.WithField("nextErr", err).Info("response")
			default:
				logger.Info("response")
			}
			return nil
		}
	}
}

// IsValidName rejects requests whose path param is not an account name.
func IsValidName(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			if !validator.IsValidName(c.Param(param)) {
				return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid name")
			}
			return next(c)
		}
	}
}
