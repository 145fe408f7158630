package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/ptr"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/promotion"
	"github.com/x-xyz/spotmarket/domain/promotion/mocks"
)

var mockCtx = ctx.Background()

type promoLogSuite struct {
	suite.Suite

	repo *mocks.LogRepo
}

func TestPromoLogSuite(t *testing.T) {
	suite.Run(t, new(promoLogSuite))
}

func (s *promoLogSuite) SetupTest() {
	s.repo = new(mocks.LogRepo)
}

func (s *promoLogSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func (s *promoLogSuite) TestSearch() {
	expected := []*promotion.PromotionLog{{TxId: "tx"}}

	s.repo.On("Search", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return(expected, nil).
		Run(func(args mock.Arguments) {
			opts := []promotion.SelectOptions{}
			for _, a := range args[1:] {
				opts = append(opts, a.(promotion.SelectOptions))
			}
			res, err := promotion.GetSelectOptions(opts...)
			s.NoError(err)
			s.Equal(promotion.PromoTypeAuction, *res.PromoType)
			s.Equal(domain.Name("alice"), *res.PromotedBy)
			s.Equal(int64(5), *res.Limit)
			s.Nil(res.Target)
		}).Once()

	res, err := NewLogUsecase(s.repo).Search(mockCtx, promotion.SearchParams{
		PromoType:  ptr.String("auction"),
		PromotedBy: ptr.String("alice"),
		Limit:      ptr.Int64(5),
	})
	s.NoError(err)
	s.Equal(expected, res)
}

func (s *promoLogSuite) TestSearchFailed() {
	s.repo.On("Search", mockCtx).Return(nil, errors.New("down")).Once()

	res, err := NewLogUsecase(s.repo).Search(mockCtx, promotion.SearchParams{})
	s.EqualError(err, "down")
	s.Nil(res)
}

func (s *promoLogSuite) TestSinkCollectsLogActions() {
	now := time.Unix(1700000000, 0).UTC()
	end := now.Add(time.Hour)
	r := &chain.Receipt{
		TxId: "tx1",
		Time: now,
		Traces: []chain.ActionTrace{
			{
				Seq:      0,
				Receiver: "assets",
				Action:   chain.Action{Account: "assets", Name: "transfer"},
			},
			{
				Seq:      1,
				Receiver: "gatekeeper",
				Action: chain.Action{
					Account: "gatekeeper",
					Name:    promotion.ActLogCollection,
					Data: &promotion.LogCollectionPromotion{
						Collection:   "col1",
						PromotedBy:   "alice",
						SpotType:     promotion.SpotTypeSilver,
						PromotionEnd: end.Unix(),
					},
				},
			},
			{
				Seq:      2,
				Receiver: "gatekeeper",
				Action: chain.Action{
					Account: "gatekeeper",
					Name:    promotion.ActLogAuction,
					Data: map[string]interface{}{
						"auctionId":  42,
						"promotedBy": "bob",
						"spotType":   "gold",
					},
				},
			},
		},
	}

	s.repo.On("Insert", mockCtx, &promotion.PromotionLog{
		TxId:         "tx1",
		Seq:          1,
		PromoType:    promotion.PromoTypeCollection,
		Target:       "col1",
		PromotedBy:   "alice",
		SpotType:     promotion.SpotTypeSilver,
		PromotionEnd: &end,
		CreatedAt:    now,
	}).Return(nil).Once()
	s.repo.On("Insert", mockCtx, &promotion.PromotionLog{
		TxId:       "tx1",
		Seq:        2,
		PromoType:  promotion.PromoTypeAuction,
		Target:     "42",
		PromotedBy: "bob",
		SpotType:   promotion.SpotTypeGold,
		CreatedAt:  now,
	}).Return(nil).Once()

	sink := NewLogSink("gatekeeper", s.repo)
	s.Equal("promotion_logs", sink.Name())
	s.NoError(sink.HandleReceipt(mockCtx, r))
}

func (s *promoLogSuite) TestSinkInsertFailed() {
	r := &chain.Receipt{
		TxId: "tx1",
		Traces: []chain.ActionTrace{{
			Receiver: "gatekeeper",
			Action: chain.Action{
				Account: "gatekeeper",
				Name:    promotion.ActLogAuction,
				Data:    &promotion.LogAuctionPromotion{AuctionId: 7},
			},
		}},
	}
	s.repo.On("Insert", mockCtx, mock.Anything).Return(errors.New("down")).Once()

	s.EqualError(NewLogSink("gatekeeper", s.repo).HandleReceipt(mockCtx, r), "down")
}
