package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"
)

// Name identifies an account or a contract.
type Name string

func (n Name) String() string {
	return string(n)
}

// ActionName identifies an entry of a contract dispatch table.
type ActionName string

type AssetId uint64

func (id AssetId) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

type AuctionId uint64

func (id AuctionId) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseAuctionId parses the decimal auction id used in memos and urls.
func ParseAuctionId(s string) (AuctionId, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, xerrors.Errorf("invalid auction id %q: %w", s, ErrBadParamInput)
	}
	return AuctionId(id), nil
}

type TemplateId int32

// Seconds is a chain duration in seconds.
type Seconds uint32

const (
	OneHour  Seconds = 60 * 60
	OneDay   Seconds = 24 * OneHour
	OneWeek  Seconds = 7 * OneDay
	TwoWeeks Seconds = 2 * OneWeek
)

// Symbol is a token code with its precision, e.g. 4,XPR.
type Symbol struct {
	Code      string `json:"code" bson:"code"`
	Precision uint8  `json:"precision" bson:"precision"`
}

func (s Symbol) String() string {
	return fmt.Sprintf("%d,%s", s.Precision, s.Code)
}

// Quantity is an amount in the smallest unit of its symbol.
type Quantity struct {
	Amount int64  `json:"amount" bson:"amount"`
	Symbol Symbol `json:"symbol" bson:"symbol"`
}

func NewQuantity(amount int64, symbol Symbol) Quantity {
	return Quantity{Amount: amount, Symbol: symbol}
}

func (q Quantity) IsZero() bool {
	return q.Amount == 0
}

// Decimal returns the human readable amount.
func (q Quantity) Decimal() decimal.Decimal {
	return decimal.New(q.Amount, -int32(q.Symbol.Precision))
}

func (q Quantity) String() string {
	return q.Decimal().StringFixed(int32(q.Symbol.Precision)) + " " + q.Symbol.Code
}

// ParseQuantity parses "1.0000 XPR" keeping the written precision.
func ParseQuantity(s string) (Quantity, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Quantity{}, xerrors.Errorf("invalid quantity %q: %w", s, ErrBadParamInput)
	}
	precision := 0
	if i := strings.IndexByte(parts[0], '.'); i >= 0 {
		precision = len(parts[0]) - i - 1
	}
	d, err := decimal.NewFromString(parts[0])
	if err != nil {
		return Quantity{}, xerrors.Errorf("invalid quantity %q: %w", s, ErrBadParamInput)
	}
	return Quantity{
		Amount: d.Shift(int32(precision)).IntPart(),
		Symbol: Symbol{Code: parts[1], Precision: uint8(precision)},
	}, nil
}

// ExtendedQuantity pins a quantity to the token contract that issued it.
type ExtendedQuantity struct {
	Quantity Quantity `json:"quantity" bson:"quantity"`
	Contract Name     `json:"contract" bson:"contract"`
}
