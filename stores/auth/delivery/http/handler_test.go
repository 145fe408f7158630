package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	mmiddleware "github.com/x-xyz/spotmarket/middleware"
	"github.com/x-xyz/spotmarket/stores/auth/delivery/http/middleware"
	"github.com/x-xyz/spotmarket/stores/auth/usecase"
)

type handlerSuite struct {
	suite.Suite

	e    *echo.Echo
	auth domain.AuthUsecase
}

func TestHandler(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.auth = usecase.New("secret")
	s.e = echo.New()
	s.e.Use(mmiddleware.InitMiddleware().AddContext())
	New(s.e, middleware.New(s.auth))
}

func (s *handlerSuite) get(token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlerSuite) TestMe() {
	tkn, err := s.auth.SignToken(ctx.Background(), "spothost", time.Hour)
	s.Require().NoError(err)

	rec := s.get(tkn)
	s.Require().Equal(http.StatusOK, rec.Code)

	res := struct {
		Data tokenInfo `json:"data"`
	}{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	s.Equal(domain.Name("spothost"), res.Data.Account)
	s.NotEmpty(res.Data.TokenId)
	s.True(res.Data.ExpiresAt.After(time.Now()))
}

func (s *handlerSuite) TestRejectsBadToken() {
	s.Equal(http.StatusBadRequest, s.get("").Code)
	s.Equal(http.StatusUnauthorized, s.get("garbage").Code)
}
