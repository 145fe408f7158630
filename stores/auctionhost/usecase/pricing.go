package usecase

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/auctionhost"
	"github.com/x-xyz/spotmarket/domain/oracle"
)

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// StartingPrice converts a USD target into the native token at usdPerNative,
// rounding half away from zero. The amount must fit a positive int64.
func StartingPrice(usd uint32, usdPerNative decimal.Decimal, symbol domain.Symbol) (domain.Quantity, error) {
	if !usdPerNative.IsPositive() {
		return domain.Quantity{}, auctionhost.ErrNonPositivePrice
	}
	if usd == 0 {
		return domain.Quantity{}, auctionhost.ErrStartPrice
	}
	amount := decimal.NewFromInt(int64(usd)).
		Shift(int32(symbol.Precision)).
		Div(usdPerNative).
		Round(0)
	if !amount.IsPositive() || amount.GreaterThan(maxAmount) {
		return domain.Quantity{}, auctionhost.ErrPriceOutOfRange
	}
	return domain.NewQuantity(amount.IntPart(), symbol), nil
}

// latestPrice reads the aggregated USD price of the native token. A missing or
// non positive value aborts, there is no fallback price.
func latestPrice(c ctx.Ctx, r oracle.Reader, index uint64, pair string) (decimal.Decimal, error) {
	feed, err := r.FindFeed(c, index)
	if err == domain.ErrNotFound {
		return decimal.Zero, fmt.Errorf("%s %w", pair, auctionhost.ErrFeedNotFound)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"index": index,
		}).Error("oracle.FindFeed failed")
		return decimal.Zero, err
	}
	if feed.Name != pair {
		return decimal.Zero, fmt.Errorf("%w %s", auctionhost.ErrWrongFeedName, pair)
	}

	data, err := r.FindData(c, index)
	if err == domain.ErrNotFound {
		return decimal.Zero, auctionhost.ErrFeedDataNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"index": index,
		}).Error("oracle.FindData failed")
		return decimal.Zero, err
	}
	if data.Aggregate.F64Value == nil || *data.Aggregate.F64Value <= 0 {
		return decimal.Zero, auctionhost.ErrNonPositivePrice
	}
	return decimal.NewFromFloat(*data.Aggregate.F64Value), nil
}
