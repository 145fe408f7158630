// Package registry keeps the blacklist, shielding and verified collection tables.
package registry

import (
	"time"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/keys"
	"github.com/x-xyz/spotmarket/domain/registry"
)

const (
	tableBlacklist  = "blacklist"
	tableShieldings = "shieldings"
	tableVerified   = "verified"
)

type Tables struct {
	contract string
	store    domain.Store
}

func NewTables(contract domain.Name, s domain.Store) *Tables {
	return &Tables{contract: string(contract), store: s}
}

// NewReaderFactory returns the read view used by other contracts.
func NewReaderFactory(contract domain.Name) registry.ReaderFactory {
	return func(s domain.Store) registry.Reader {
		return NewTables(contract, s)
	}
}

func (t *Tables) exists(c ctx.Ctx, table string, collection domain.Name) (bool, error) {
	e := &registry.Entry{}
	if err := t.store.Get(c, keys.Row(t.contract, table, "", string(collection)), e); err == domain.ErrNotFound {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func (t *Tables) IsBlacklisted(c ctx.Ctx, collection domain.Name) (bool, error) {
	return t.exists(c, tableBlacklist, collection)
}

func (t *Tables) IsShielded(c ctx.Ctx, collection domain.Name) (bool, error) {
	return t.exists(c, tableShieldings, collection)
}

func (t *Tables) IsVerified(c ctx.Ctx, collection domain.Name) (bool, error) {
	return t.exists(c, tableVerified, collection)
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
	payload := func() interface{} { return &registry.Mark{} }
	return chain.Dispatch{
		Actions: map[domain.ActionName]chain.Handler{
			registry.ActAddBlacklist: {Payload: payload, Handle: im.put(tableBlacklist)},
			registry.ActAddShielding: {Payload: payload, Handle: im.put(tableShieldings)},
			registry.ActAddVerified:  {Payload: payload, Handle: im.put(tableVerified)},
			registry.ActDelBlacklist: {Payload: payload, Handle: im.del(tableBlacklist)},
		},
	}
}

func (im *contract) put(table string) chain.HandlerFunc {
	return func(ac chain.ApplyContext, data interface{}) error {
		p := data.(*registry.Mark)
		if err := ac.RequireAuth(im.self); err != nil {
			return err
		}
		return ac.Store().Set(ac.Ctx(), keys.Row(string(im.self), table, "", string(p.Collection)), &registry.Entry{
			Collection: p.Collection,
			Reporter:   im.self,
			Comment:    p.Comment,
			CreatedAt:  ac.Now().Truncate(time.Second).Unix(),
		})
	}
}

func (im *contract) del(table string) chain.HandlerFunc {
	return func(ac chain.ApplyContext, data interface{}) error {
		p := data.(*registry.Mark)
		if err := ac.RequireAuth(im.self); err != nil {
			return err
		}
		return ac.Store().Del(ac.Ctx(), keys.Row(string(im.self), table, "", string(p.Collection)))
	}
}
