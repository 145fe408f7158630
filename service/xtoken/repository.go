package xtoken

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/keys"
	"github.com/x-xyz/spotmarket/domain/token"
)

const (
	tableStat     = "stat"
	tableAccounts = "accounts"
)

type Tables struct {
	contract string
	store    domain.Store
}

func NewTables(contract domain.Name, s domain.Store) *Tables {
	return &Tables{contract: string(contract), store: s}
}

func (t *Tables) statKey(code string) string {
	return keys.Row(t.contract, tableStat, "", code)
}

func (t *Tables) accountKey(owner domain.Name, code string) string {
	return keys.Row(t.contract, tableAccounts, string(owner), code)
}

func (t *Tables) FindStat(c ctx.Ctx, code string) (*token.Stat, error) {
	res := &token.Stat{}
	if err := t.store.Get(c, t.statKey(code), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (t *Tables) PutStat(c ctx.Ctx, s *token.Stat) error {
	return t.store.Set(c, t.statKey(s.Supply.Symbol.Code), s)
}

func (t *Tables) Balance(c ctx.Ctx, owner domain.Name, symbol domain.Symbol) (domain.Quantity, error) {
	acc := &token.Account{}
	if err := t.store.Get(c, t.accountKey(owner, symbol.Code), acc); err == domain.ErrNotFound {
		return domain.NewQuantity(0, symbol), nil
	} else if err != nil {
		return domain.Quantity{}, err
	}
	return acc.Balance, nil
}

func (t *Tables) PutBalance(c ctx.Ctx, owner domain.Name, q domain.Quantity) error {
	return t.store.Set(c, t.accountKey(owner, q.Symbol.Code), &token.Account{Balance: q})
}

// NewReader returns the balance view of the token contract.
func NewReader(contract domain.Name, s domain.Store) token.Reader {
	return NewTables(contract, s)
}
