package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// MakeJsonResp writes data in the response envelope. Errors are turned into
// their message; a rejected transaction answers with the reason of the check
// that aborted it.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = statusOf(err, status)
		data = chain.Reason(err)
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

func statusOf(err error, status int) int {
	var ae *chain.ActionError
	switch {
	case errors.Is(err, domain.ErrMissingAuthority):
		return http.StatusForbidden
	case errors.As(err, &ae):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBadParamInput),
		errors.Is(err, chain.ErrUnknownContract),
		errors.Is(err, chain.ErrUnknownAction),
		errors.Is(err, chain.ErrInlineAuthority),
		errors.Is(err, chain.ErrEmptyTransaction),
		errors.Is(err, chain.ErrTooManyActions),
		errors.Is(err, chain.ErrMaxDepth):
		return http.StatusBadRequest
	}
	return status
}
