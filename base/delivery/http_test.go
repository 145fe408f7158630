package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
)

type httpTestSuite struct {
	suite.Suite
}

func TestHttpTestSuite(t *testing.T) {
	suite.Run(t, new(httpTestSuite))
}

func (s *httpTestSuite) resp(status int, data interface{}) (int, JsonResponse) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	s.Require().NoError(MakeJsonResp(c, status, data))

	res := JsonResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	return rec.Code, res
}

func (s *httpTestSuite) TestSuccess() {
	code, res := s.resp(http.StatusOK, "ok")
	s.Equal(http.StatusOK, code)
	s.Equal(JsonResponseStatusSuccess, res.Status)
	s.Equal("ok", res.Data)
}

func (s *httpTestSuite) TestErrors() {
	rejected := &chain.ActionError{
		Account:  "spotgate",
		Action:   "transfer",
		Receiver: "spotgate",
		Err:      errors.New("collection already promoted"),
	}
	tests := []struct {
		desc       string
		err        error
		expCode    int
		expMessage string
	}{
		{
			desc:       "rejected transaction",
			err:        rejected,
			expCode:    http.StatusBadRequest,
			expMessage: "collection already promoted",
		},
		{
			desc: "missing authority",
			err: &chain.ActionError{
				Account:  "spothost",
				Action:   "setstartpric",
				Receiver: "spothost",
				Err:      &domain.MissingAuthorityError{Account: "spothost"},
			},
			expCode:    http.StatusForbidden,
			expMessage: "missing required authority spothost",
		},
		{
			desc:       "not found",
			err:        domain.ErrNotFound,
			expCode:    http.StatusNotFound,
			expMessage: domain.ErrNotFound.Error(),
		},
		{
			desc:       "unexpected",
			err:        errors.New("boom"),
			expCode:    http.StatusInternalServerError,
			expMessage: "boom",
		},
	}
	for _, t := range tests {
		code, res := s.resp(http.StatusInternalServerError, t.err)
		s.Equal(t.expCode, code, t.desc)
		s.Equal(JsonResponseStatusFail, res.Status, t.desc)
		s.Equal(t.expMessage, res.Data, t.desc)
	}
}
