// Package xtoken is a minimal fungible token contract.
package xtoken

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/token"
)

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
			token.ActCreate: {
				Payload: func() interface{} { return &token.Create{} },
				Handle:  im.create,
			},
			token.ActIssue: {
				Payload: func() interface{} { return &token.Issue{} },
				Handle:  im.issue,
			},
			token.ActTransfer: {
				Payload: func() interface{} { return &token.Transfer{} },
				Handle:  im.transfer,
			},
		},
	}
}

func (im *contract) create(ac chain.ApplyContext, data interface{}) error {
	p := data.(*token.Create)
	c := ac.Ctx()

	if err := ac.RequireAuth(im.self); err != nil {
		return err
	}
	if p.MaximumSupply.Amount <= 0 {
		return token.ErrNonPositive
	}

	tables := NewTables(im.self, ac.Store())
	if _, err := tables.FindStat(c, p.MaximumSupply.Symbol.Code); err == nil {
		return token.ErrTokenExists
	} else if err != domain.ErrNotFound {
		return err
	}

	return tables.PutStat(c, &token.Stat{
		Supply:    domain.NewQuantity(0, p.MaximumSupply.Symbol),
		MaxSupply: p.MaximumSupply,
		Issuer:    p.Issuer,
	})
}

func (im *contract) issue(ac chain.ApplyContext, data interface{}) error {
	p := data.(*token.Issue)
	c := ac.Ctx()

	tables := NewTables(im.self, ac.Store())
	stat, err := tables.FindStat(c, p.Quantity.Symbol.Code)
	if err == domain.ErrNotFound {
		return token.ErrTokenNotFound
	} else if err != nil {
		return err
	}
	if err := ac.RequireAuth(stat.Issuer); err != nil {
		return err
	}
	if p.To != stat.Issuer {
		return token.ErrIssueToOther
	}
	if p.Quantity.Amount <= 0 {
		return token.ErrNonPositive
	}
	if p.Quantity.Symbol != stat.Supply.Symbol {
		return domain.ErrSymbolMismatch
	}
	if p.Quantity.Amount > stat.MaxSupply.Amount-stat.Supply.Amount {
		return token.ErrExceedsSupply
	}

	stat.Supply.Amount += p.Quantity.Amount
	if err := tables.PutStat(c, stat); err != nil {
		return err
	}
	return im.add(ac, tables, p.To, p.Quantity)
}

func (im *contract) transfer(ac chain.ApplyContext, data interface{}) error {
	p := data.(*token.Transfer)
	c := ac.Ctx()

	if err := ac.RequireAuth(p.From); err != nil {
		return err
	}
	if p.From == p.To {
		return token.ErrSelfTransfer
	}
	if p.Quantity.Amount <= 0 {
		return token.ErrNonPositive
	}

	tables := NewTables(im.self, ac.Store())
	stat, err := tables.FindStat(c, p.Quantity.Symbol.Code)
	if err == domain.ErrNotFound {
		return token.ErrTokenNotFound
	} else if err != nil {
		return err
	}
	if p.Quantity.Symbol != stat.Supply.Symbol {
		return domain.ErrSymbolMismatch
	}

	ac.RequireRecipient(p.From)
	ac.RequireRecipient(p.To)

	if err := im.sub(ac, tables, p.From, p.Quantity); err != nil {
		return err
	}
	return im.add(ac, tables, p.To, p.Quantity)
}

func (im *contract) sub(ac chain.ApplyContext, tables *Tables, owner domain.Name, q domain.Quantity) error {
	bal, err := tables.Balance(ac.Ctx(), owner, q.Symbol)
	if err != nil {
		return err
	}
	if bal.Amount < q.Amount {
		return xerrors.Errorf("%s holds %s: %w", owner, bal, token.ErrInsufficientAmount)
	}
	bal.Amount -= q.Amount
	return tables.PutBalance(ac.Ctx(), owner, bal)
}

func (im *contract) add(ac chain.ApplyContext, tables *Tables, owner domain.Name, q domain.Quantity) error {
	bal, err := tables.Balance(ac.Ctx(), owner, q.Symbol)
	if err != nil {
		return err
	}
	bal.Amount += q.Amount
	return tables.PutBalance(ac.Ctx(), owner, bal)
}
