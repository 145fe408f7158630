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
	"github.com/x-xyz/spotmarket/domain/chain/mocks"
	"github.com/x-xyz/spotmarket/middleware"
	authMiddleware "github.com/x-xyz/spotmarket/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/spotmarket/stores/auth/usecase"
)

type handlerSuite struct {
	suite.Suite

	e     *echo.Echo
	trx   *mocks.TransactionUsecase
	alice string
}

func TestHandler(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	auth := authUsecase.New("secret")
	var err error
	s.alice, err = auth.SignToken(ctx.Background(), "alice", time.Hour)
	s.Require().NoError(err)

	s.trx = mocks.NewTransactionUsecase(s.T())
	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	s.e.Use(middleware.InitMiddleware().AddContext())
	New(s.e, s.trx, authMiddleware.New(auth))
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

func (s *handlerSuite) TestPush() {
	body := `{"actions":[{"account":"eosio.token","name":"transfer","data":{"from":"alice","to":"bob","quantity":"1.0000 XPR","memo":""}}]}`
	isTransfer := mock.MatchedBy(func(actions []chain.Action) bool {
		return len(actions) == 1 && actions[0].Account == "eosio.token" && actions[0].Name == "transfer"
	})
	s.trx.On("Push", mock.Anything, domain.Name("alice"), isTransfer).Return(&chain.Receipt{TxId: "tx"}, nil).Once()

	rec := s.serve(http.MethodPost, "/v1/transactions", s.alice, body)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"txId":"tx"`)
}

func (s *handlerSuite) TestPushInvalid() {
	rec := s.serve(http.MethodPost, "/v1/transactions", "", `{"actions":[]}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.serve(http.MethodPost, "/v1/transactions", s.alice, `{"actions":[]}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.serve(http.MethodPost, "/v1/transactions", s.alice, `{"actions":[{"account":"eosio.token"}]}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestPushRejected() {
	err := &chain.ActionError{Account: "eosio.token", Action: "transfer", Receiver: "eosio.token", Err: &domain.MissingAuthorityError{Account: "bob"}}
	s.trx.On("Push", mock.Anything, domain.Name("alice"), mock.Anything).Return(nil, err).Once()

	rec := s.serve(http.MethodPost, "/v1/transactions", s.alice, `{"actions":[{"account":"eosio.token","name":"transfer","data":{}}]}`)
	s.Equal(http.StatusForbidden, rec.Code)
	s.JSONEq(`{"status":"fail","data":"missing required authority bob"}`, rec.Body.String())
}

func (s *handlerSuite) TestGetReceipt() {
	s.trx.On("FindReceipt", mock.Anything, "nope").Return(nil, domain.ErrNotFound).Once()
	s.Equal(http.StatusNotFound, s.serve(http.MethodGet, "/v1/transactions/nope", "", "").Code)

	s.trx.On("FindReceipt", mock.Anything, "tx").Return(&chain.Receipt{TxId: "tx"}, nil).Once()
	rec := s.serve(http.MethodGet, "/v1/transactions/tx", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"txId":"tx"`)
}
