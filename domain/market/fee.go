package market

import (
	"github.com/shopspring/decimal"
)

// MaxFeeTotal bounds the fees taken out of a sale, the seller keeps the rest.
var MaxFeeTotal = decimal.NewFromFloat(0.5)

// Payout splits a sale. Shares always add up to the sale amount.
type Payout struct {
	Maker      int64 `json:"maker"`
	Taker      int64 `json:"taker"`
	Collection int64 `json:"collection"`
	Seller     int64 `json:"seller"`
}

func (p Payout) Total() int64 {
	return p.Maker + p.Taker + p.Collection + p.Seller
}

// SplitPayout takes the fee rates off amount, rounding every fee down so that
// the remainder lands with the seller.
func SplitPayout(amount int64, makerFee, takerFee, collectionFee float64) (Payout, error) {
	maker := decimal.NewFromFloat(makerFee)
	taker := decimal.NewFromFloat(takerFee)
	coll := decimal.NewFromFloat(collectionFee)

	if maker.IsNegative() || taker.IsNegative() || coll.IsNegative() || amount < 0 {
		return Payout{}, ErrInvalidFeeStructure
	}
	if maker.Add(taker).Add(coll).GreaterThan(MaxFeeTotal) {
		return Payout{}, ErrInvalidFeeStructure
	}

	total := decimal.NewFromInt(amount)
	p := Payout{
		Maker:      total.Mul(maker).Floor().IntPart(),
		Taker:      total.Mul(taker).Floor().IntPart(),
		Collection: total.Mul(coll).Floor().IntPart(),
	}
	p.Seller = amount - p.Maker - p.Taker - p.Collection
	return p, nil
}
