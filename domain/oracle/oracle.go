package oracle

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
)

const (
	ActSetFeed domain.ActionName = "setfeed"
	ActFeed    domain.ActionName = "feed"
)

type Feed struct {
	Index uint64 `json:"index"`
	Name  string `json:"name"`
}

type Aggregate struct {
	F64Value *float64 `json:"d_double,omitempty"`
}

type Data struct {
	FeedIndex uint64    `json:"feed_index"`
	Aggregate Aggregate `json:"aggregate"`
}

type SetFeed struct {
	Index uint64 `json:"index"`
	Name  string `json:"name"`
}

type Publish struct {
	Account   domain.Name `json:"account"`
	FeedIndex uint64      `json:"feed_index"`
	Value     float64     `json:"value"`
}

// Reader is the read view of the price feed tables. Missing rows are domain.ErrNotFound.
type Reader interface {
	FindFeed(c ctx.Ctx, index uint64) (*Feed, error)
	FindData(c ctx.Ctx, index uint64) (*Data, error)
}

type ReaderFactory func(s domain.Store) Reader
