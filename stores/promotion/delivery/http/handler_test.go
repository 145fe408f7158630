package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/validator"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/promotion"
	"github.com/x-xyz/spotmarket/domain/promotion/mocks"
	"github.com/x-xyz/spotmarket/middleware"
	authMiddleware "github.com/x-xyz/spotmarket/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/spotmarket/stores/auth/usecase"
)

const self domain.Name = "spotgate"

type handlerSuite struct {
	suite.Suite

	e          *echo.Echo
	gatekeeper *mocks.Usecase
	admin      string
	user       string
}

func TestHandler(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	auth := authUsecase.New("secret")
	var err error
	s.admin, err = auth.SignToken(ctx.Background(), self, time.Hour)
	s.Require().NoError(err)
	s.user, err = auth.SignToken(ctx.Background(), "alice", time.Hour)
	s.Require().NoError(err)

	s.gatekeeper = mocks.NewUsecase(s.T())
	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	s.e.Use(middleware.InitMiddleware().AddContext())
	noCache := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	New(s.e, s.gatekeeper, self, authMiddleware.New(auth), noCache)
}

func (s *handlerSuite) serve(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlerSuite) TestGetGlobals() {
	g := &promotion.Globals{SpotCollection: "spotspotspot", GoldSpotId: 1099511627776}
	s.gatekeeper.On("GetGlobals", mock.Anything).Return(g, nil).Once()

	rec := s.serve(http.MethodGet, "/v1/gatekeeper/globals", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"spotCollection":"spotspotspot"`)
}

func (s *handlerSuite) TestGetSilverPromotion() {
	rec := s.serve(http.MethodGet, "/v1/gatekeeper/promotions/Bad_Col", "", "")
	s.Equal(http.StatusBadRequest, rec.Code)

	s.gatekeeper.On("FindSilverPromotion", mock.Anything, domain.Name("nopromo")).Return(nil, domain.ErrNotFound).Once()
	rec = s.serve(http.MethodGet, "/v1/gatekeeper/promotions/nopromo", "", "")
	s.Equal(http.StatusNotFound, rec.Code)

	p := &promotion.SilverSpotPromotion{Collection: "goodcol", PromoCount: 2, LastPromoEnd: 1700086400}
	s.gatekeeper.On("FindSilverPromotion", mock.Anything, domain.Name("goodcol")).Return(p, nil).Once()
	rec = s.serve(http.MethodGet, "/v1/gatekeeper/promotions/goodcol", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"success","data":{"collection":"goodcol","promoCount":2,"lastPromoEnd":1700086400}}`, rec.Body.String())
}

func (s *handlerSuite) TestSetPromoDuration() {
	rec := s.serve(http.MethodPut, "/v1/gatekeeper/durations", s.user, `{"silver":3600,"gold":7200}`)
	s.Equal(http.StatusForbidden, rec.Code)

	p := promotion.SetPromoDuration{Silver: 3600, Gold: 7200}
	s.gatekeeper.On("SetPromoDuration", mock.Anything, self, p).Return(&chain.Receipt{TxId: "tx"}, nil).Once()
	rec = s.serve(http.MethodPut, "/v1/gatekeeper/durations", s.admin, `{"silver":3600,"gold":7200}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"txId":"tx"`)
}

func (s *handlerSuite) TestClaimMarketBalanceMissingAuthority() {
	err := &domain.MissingAuthorityError{Account: "finance"}
	s.gatekeeper.On("ClaimMarketBalance", mock.Anything, domain.Name("alice")).Return(nil, err).Once()

	rec := s.serve(http.MethodPost, "/v1/gatekeeper/balance/claim", s.user, "")
	s.Equal(http.StatusForbidden, rec.Code)
}
