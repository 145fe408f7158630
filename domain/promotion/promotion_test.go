package promotion

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) TestParseMemo() {
	cases := []struct {
		Desc string
		Memo string
		Req  *PromotionRequest
		Err  error
	}{
		{
			Desc: "collection",
			Memo: "collection col1",
			Req:  &PromotionRequest{PromoType: PromoTypeCollection, Target: "col1"},
		},
		{
			Desc: "auction",
			Memo: "auction 42",
			Req:  &PromotionRequest{PromoType: PromoTypeAuction, Target: "42"},
		},
		{Desc: "one word", Memo: "collection", Err: ErrInvalidMemoWords},
		{Desc: "three words", Memo: "collection col1 now", Err: ErrInvalidMemoWords},
		{Desc: "double space", Memo: "collection  col1", Err: ErrInvalidMemoWords},
		{Desc: "empty", Memo: "", Err: ErrInvalidMemoWords},
		{Desc: "unknown type", Memo: "banner col1", Err: ErrInvalidPromotionType},
	}

	for _, c := range cases {
		req, err := ParseMemo(c.Memo)
		t.Equal(c.Err, err, c.Desc)
		t.Equal(c.Req, req, c.Desc)
	}
}

func (t *testsuite) TestActive() {
	p := &SilverSpotPromotion{LastPromoEnd: 100}
	t.True(p.Active(99))
	t.False(p.Active(100))
}

func (t *testsuite) TestPromoDuration() {
	g := &Globals{SilverPromoDuration: 1, GoldPromoDuration: 2}
	t.EqualValues(1, g.PromoDuration(SpotTypeSilver))
	t.EqualValues(2, g.PromoDuration(SpotTypeGold))
}
