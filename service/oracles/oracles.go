// Package oracles is a minimal price feed contract with one publisher per feed.
package oracles

import (
	"errors"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/keys"
	"github.com/x-xyz/spotmarket/domain/oracle"
)

const (
	tableFeeds = "feeds"
	tableData  = "data"
)

var ErrFeedNotFound = errors.New("feed not found")

type Tables struct {
	contract string
	store    domain.Store
}

func NewTables(contract domain.Name, s domain.Store) *Tables {
	return &Tables{contract: string(contract), store: s}
}

// NewReaderFactory returns the read view used by other contracts.
func NewReaderFactory(contract domain.Name) oracle.ReaderFactory {
	return func(s domain.Store) oracle.Reader {
		return NewTables(contract, s)
	}
}

func (t *Tables) FindFeed(c ctx.Ctx, index uint64) (*oracle.Feed, error) {
	res := &oracle.Feed{}
	if err := t.store.Get(c, keys.Row(t.contract, tableFeeds, "", keys.Uint(index)), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (t *Tables) FindData(c ctx.Ctx, index uint64) (*oracle.Data, error) {
	res := &oracle.Data{}
	if err := t.store.Get(c, keys.Row(t.contract, tableData, "", keys.Uint(index)), res); err != nil {
		return nil, err
	}
	return res, nil
}

type contract struct {
	self domain.Name
}

func New(self domain.Name) chain.Contract {
	return &contract{self: self}
}

func (im *contract) Account() domain.Name {
	return im.self
}

func (im *contract) Dispatch() chain.Dispatch {
	return chain.Dispatch{
		Actions: map[domain.ActionName]chain.Handler{
			oracle.ActSetFeed: {
				Payload: func() interface{} { return &oracle.SetFeed{} },
				Handle:  im.setFeed,
			},
			oracle.ActFeed: {
				Payload: func() interface{} { return &oracle.Publish{} },
				Handle:  im.publish,
			},
		},
	}
}

func (im *contract) setFeed(ac chain.ApplyContext, data interface{}) error {
	p := data.(*oracle.SetFeed)
	if err := ac.RequireAuth(im.self); err != nil {
		return err
	}
	return ac.Store().Set(ac.Ctx(), keys.Row(string(im.self), tableFeeds, "", keys.Uint(p.Index)), &oracle.Feed{
		Index: p.Index,
		Name:  p.Name,
	})
}

func (im *contract) publish(ac chain.ApplyContext, data interface{}) error {
	p := data.(*oracle.Publish)
	if err := ac.RequireAuth(p.Account); err != nil {
		return err
	}
	if p.Account != im.self {
		return &domain.MissingAuthorityError{Account: im.self}
	}

	c := ac.Ctx()
	if _, err := NewTables(im.self, ac.Store()).FindFeed(c, p.FeedIndex); err == domain.ErrNotFound {
		return ErrFeedNotFound
	} else if err != nil {
		return err
	}

	value := p.Value
	return ac.Store().Set(c, keys.Row(string(im.self), tableData, "", keys.Uint(p.FeedIndex)), &oracle.Data{
		FeedIndex: p.FeedIndex,
		Aggregate: oracle.Aggregate{F64Value: &value},
	})
}
