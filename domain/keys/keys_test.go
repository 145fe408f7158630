package keys

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/suite"
)

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestRow() {
	ts.Equal("assets:assets:alice:00000000000000000042", Row("assets", "assets", "alice", Uint(42)))
	ts.Equal("gate:globals:_:singleton", Singleton("gate", "globals"))
}

func (ts *testsuite) TestUintOrder() {
	ks := []string{Uint(1099511627790), Uint(9), Uint(1099511627776)}
	sort.Strings(ks)
	ts.Equal([]string{Uint(9), Uint(1099511627776), Uint(1099511627790)}, ks)
}

func (ts *testsuite) TestTablePrefixIsolated() {
	p := TablePrefix("market", "auctions", "")
	ts.Equal("market:auctions:_:", p)
	ts.Equal(p+"1", Row("market", "auctions", "", "1"))
	ts.NotContains(Row("market", "auctionsx", "", "1"), p)
}

func (ts *testsuite) TestLast() {
	ts.Equal(Uint(7), Last(Row("a", "b", "c", Uint(7))))
}
