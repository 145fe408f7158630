package token

import (
	"errors"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
)

const (
	ActCreate   domain.ActionName = "create"
	ActIssue    domain.ActionName = "issue"
	ActTransfer domain.ActionName = "transfer"
)

var (
	ErrTokenExists        = errors.New("token with symbol already exists")
	ErrTokenNotFound      = errors.New("token with symbol does not exist")
	ErrExceedsSupply      = errors.New("quantity exceeds available supply")
	ErrNonPositive        = errors.New("must transfer positive quantity")
	ErrSelfTransfer       = errors.New("cannot transfer to self")
	ErrIssueToOther       = errors.New("tokens can only be issued to issuer account")
	ErrInsufficientAmount = errors.New("overdrawn balance")
)

type Stat struct {
	Supply    domain.Quantity `json:"supply"`
	MaxSupply domain.Quantity `json:"max_supply"`
	Issuer    domain.Name     `json:"issuer"`
}

type Account struct {
	Balance domain.Quantity `json:"balance"`
}

type Create struct {
	Issuer        domain.Name     `json:"issuer"`
	MaximumSupply domain.Quantity `json:"maximum_supply"`
}

type Issue struct {
	To       domain.Name     `json:"to"`
	Quantity domain.Quantity `json:"quantity"`
	Memo     string          `json:"memo"`
}

type Transfer struct {
	From     domain.Name     `json:"from"`
	To       domain.Name     `json:"to"`
	Quantity domain.Quantity `json:"quantity"`
	Memo     string          `json:"memo"`
}

// Reader is the read view of a token contract.
type Reader interface {
	// Balance is zero for accounts that never held the symbol.
	Balance(c ctx.Ctx, owner domain.Name, symbol domain.Symbol) (domain.Quantity, error)
}

func TransferAction(contract, from, to domain.Name, q domain.Quantity, memo string) chain.Action {
	return chain.NewAction(contract, ActTransfer, from, Transfer{
		From:     from,
		To:       to,
		Quantity: q,
		Memo:     memo,
	})
}
