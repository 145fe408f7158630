package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/service/query"
	"github.com/x-xyz/spotmarket/service/query/mocks"
)

var mockCtx = ctx.Background()

type receiptSuite struct {
	suite.Suite

	q *mocks.Mongo
}

func TestReceiptSuite(t *testing.T) {
	suite.Run(t, new(receiptSuite))
}

func (s *receiptSuite) SetupTest() {
	s.q = new(mocks.Mongo)
}

func (s *receiptSuite) TearDownTest() {
	s.q.AssertExpectations(s.T())
}

func (s *receiptSuite) TestSinkUpserts() {
	r := &chain.Receipt{TxId: "tx1"}
	s.q.On("Upsert", mockCtx, domain.TableReceipts, bson.M{"txId": "tx1"}, r).Return(nil).Once()

	sink := NewReceiptSink(NewReceiptRepo(s.q))
	s.Equal("receipts", sink.Name())
	s.NoError(sink.HandleReceipt(mockCtx, r))
}

func (s *receiptSuite) TestFindOne() {
	s.q.On("FindOne", mockCtx, domain.TableReceipts, bson.M{"txId": "tx1"}, mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			args.Get(3).(*chain.Receipt).TxId = "tx1"
		}).Once()

	r, err := NewReceiptRepo(s.q).FindOne(mockCtx, "tx1")
	s.Require().NoError(err)
	s.Equal("tx1", r.TxId)
}

func (s *receiptSuite) TestFindOneErrors() {
	s.q.On("FindOne", mockCtx, domain.TableReceipts, bson.M{"txId": "nope"}, mock.Anything).Return(query.ErrNotFound).Once()
	_, err := NewReceiptRepo(s.q).FindOne(mockCtx, "nope")
	s.Equal(domain.ErrNotFound, err)

	down := errors.New("down")
	s.q.On("FindOne", mockCtx, domain.TableReceipts, bson.M{"txId": "tx2"}, mock.Anything).Return(down).Once()
	_, err = NewReceiptRepo(s.q).FindOne(mockCtx, "tx2")
	s.Equal(down, err)
}
