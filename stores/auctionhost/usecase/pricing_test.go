package usecase

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/auctionhost"
	"github.com/x-xyz/spotmarket/domain/oracle"
)

var (
	mockCtx = ctx.Background()
	xpr     = domain.Symbol{Code: "XPR", Precision: 4}
)

type feedReader struct {
	feeds map[uint64]*oracle.Feed
	data  map[uint64]*oracle.Data
}

func (r *feedReader) FindFeed(c ctx.Ctx, index uint64) (*oracle.Feed, error) {
	if f, ok := r.feeds[index]; ok {
		return f, nil
	}
	return nil, domain.ErrNotFound
}

func (r *feedReader) FindData(c ctx.Ctx, index uint64) (*oracle.Data, error) {
	if d, ok := r.data[index]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func value(v float64) *oracle.Data {
	return &oracle.Data{FeedIndex: 3, Aggregate: oracle.Aggregate{F64Value: &v}}
}

type pricingSuite struct {
	suite.Suite
}

func TestPricing(t *testing.T) {
	suite.Run(t, new(pricingSuite))
}

func (s *pricingSuite) TestStartingPrice() {
	rate := decimal.RequireFromString("0.0007857865")

	q, err := StartingPrice(5, rate, xpr)
	s.NoError(err)
	s.Equal(domain.NewQuantity(63630515, xpr), q)

	q, err = StartingPrice(30, rate, xpr)
	s.NoError(err)
	s.Equal(int64(381783092), q.Amount)

	// 1 USD at 0.5 USD per token is exactly two tokens
	q, err = StartingPrice(1, decimal.RequireFromString("0.5"), xpr)
	s.NoError(err)
	s.Equal(int64(20000), q.Amount)
}

func (s *pricingSuite) TestStartingPriceRejects() {
	_, err := StartingPrice(5, decimal.Zero, xpr)
	s.Equal(auctionhost.ErrNonPositivePrice, err)

	_, err = StartingPrice(0, decimal.RequireFromString("0.5"), xpr)
	s.Equal(auctionhost.ErrStartPrice, err)

	// too cheap a token overflows the amount, too dear a one rounds it to nothing
	_, err = StartingPrice(30, decimal.RequireFromString("0.00000000000001"), xpr)
	s.Equal(auctionhost.ErrPriceOutOfRange, err)
	_, err = StartingPrice(1, decimal.RequireFromString("20001"), xpr)
	s.Equal(auctionhost.ErrPriceOutOfRange, err)
}

func (s *pricingSuite) TestStartingPriceRoundsHalfAwayFromZero() {
	whole := domain.Symbol{Code: "XPR", Precision: 0}
	tests := []struct {
		usd    uint32
		rate   string
		symbol domain.Symbol
		amount int64
	}{
		{5, "2", whole, 3},     // 2.5
		{5, "0.4", whole, 13},  // 12.5
		{7, "2", whole, 4},     // 3.5
		{9, "4", whole, 2},     // 2.25
		{11, "4", whole, 3},    // 2.75
		{1, "20000", xpr, 1},   // 0.5
		{1, "4000", xpr, 3},    // 2.5
		{3, "0.5", xpr, 60000}, // exact
		{1, "0.3", xpr, 33333}, // 33333.33
		{2, "0.3", xpr, 66667}, // 66666.67
	}
	for _, tt := range tests {
		q, err := StartingPrice(tt.usd, decimal.RequireFromString(tt.rate), tt.symbol)
		s.NoError(err, tt.rate)
		s.Equal(tt.amount, q.Amount, "%d USD at %s", tt.usd, tt.rate)
	}
}

// Pricing the amount back at the oracle rate lands within half a unit of the
// USD target, so the rate is recovered within one unit of the amount.
func (s *pricingSuite) TestStartingPriceRecoversRate() {
	rnd := rand.New(rand.NewSource(7))
	half := decimal.RequireFromString("0.5")
	one := decimal.NewFromInt(1)

	for i := 0; i < 5000; i++ {
		usd := uint32(rnd.Intn(1000) + 1)
		rate := decimal.NewFromFloat(rnd.Float64() * 10).Add(decimal.New(1, -4))

		q, err := StartingPrice(usd, rate, xpr)
		s.Require().NoError(err)

		units := decimal.NewFromInt(int64(usd)).Shift(int32(xpr.Precision))
		amount := decimal.NewFromInt(q.Amount)
		msg := []interface{}{"%d USD at %s gave %d", usd, rate, q.Amount}

		s.True(amount.Mul(rate).Sub(units).Abs().LessThanOrEqual(half.Mul(rate)), msg...)
		s.True(amount.Add(one).Mul(rate).GreaterThan(units), msg...)
		s.True(amount.Sub(one).Mul(rate).LessThan(units), msg...)
	}
}

func (s *pricingSuite) TestLatestPrice() {
	r := &feedReader{
		feeds: map[uint64]*oracle.Feed{3: {Index: 3, Name: "XPR/USD"}},
		data:  map[uint64]*oracle.Data{3: value(0.0007857865)},
	}
	p, err := latestPrice(mockCtx, r, 3, "XPR/USD")
	s.NoError(err)
	s.True(decimal.RequireFromString("0.0007857865").Equal(p))
}

func (s *pricingSuite) TestLatestPriceFailures() {
	tests := []struct {
		name   string
		reader *feedReader
		err    error
		reason string
	}{
		{
			name:   "feed missing",
			reader: &feedReader{},
			err:    auctionhost.ErrFeedNotFound,
			reason: "XPR/USD feed not found",
		},
		{
			name:   "wrong pair",
			reader: &feedReader{feeds: map[uint64]*oracle.Feed{3: {Index: 3, Name: "BTC/USD"}}},
			err:    auctionhost.ErrWrongFeedName,
			reason: "wrong feed name - expected XPR/USD",
		},
		{
			name:   "no data",
			reader: &feedReader{feeds: map[uint64]*oracle.Feed{3: {Index: 3, Name: "XPR/USD"}}},
			err:    auctionhost.ErrFeedDataNotFound,
			reason: "feed data not found",
		},
		{
			name: "zero price",
			reader: &feedReader{
				feeds: map[uint64]*oracle.Feed{3: {Index: 3, Name: "XPR/USD"}},
				data:  map[uint64]*oracle.Data{3: value(0)},
			},
			err:    auctionhost.ErrNonPositivePrice,
			reason: "aggregated price must be greater than 0",
		},
		{
			name: "no aggregate",
			reader: &feedReader{
				feeds: map[uint64]*oracle.Feed{3: {Index: 3, Name: "XPR/USD"}},
				data:  map[uint64]*oracle.Data{3: {FeedIndex: 3}},
			},
			err:    auctionhost.ErrNonPositivePrice,
			reason: "aggregated price must be greater than 0",
		},
	}

	for _, tt := range tests {
		_, err := latestPrice(mockCtx, tt.reader, 3, "XPR/USD")
		s.ErrorIs(err, tt.err, tt.name)
		s.EqualError(err, tt.reason, tt.name)
	}
}
