package chain

import (
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
)

type applyContext struct {
	c        ctx.Ctx
	trx      *transaction
	frame    *frame
	receiver domain.Name
}

func (ac *applyContext) Ctx() ctx.Ctx {
	return ac.c
}

func (ac *applyContext) Receiver() domain.Name {
	return ac.receiver
}

func (ac *applyContext) FirstReceiver() domain.Name {
	return ac.frame.action.Account
}

func (ac *applyContext) Action() chain.Action {
	return ac.frame.action
}

func (ac *applyContext) Now() time.Time {
	return ac.trx.now
}

func (ac *applyContext) NowSec() int64 {
	return ac.trx.now.Unix()
}

func (ac *applyContext) Store() domain.Store {
	return ac.trx.store
}

func (ac *applyContext) HasAuth(account domain.Name) bool {
	for _, a := range ac.frame.action.Authorization {
		if a == account {
			return true
		}
	}
	return false
}

func (ac *applyContext) RequireAuth(account domain.Name) error {
	if !ac.HasAuth(account) {
		return &domain.MissingAuthorityError{Account: account}
	}
	return nil
}

func (ac *applyContext) RequireRecipient(account domain.Name) {
	if account == ac.frame.action.Account {
		return
	}
	for _, n := range ac.frame.notified {
		if n == account {
			return
		}
	}
	ac.frame.notified = append(ac.frame.notified, account)
}

func (ac *applyContext) SendInline(act chain.Action) error {
	for _, a := range act.Authorization {
		if a != ac.receiver {
			return xerrors.Errorf("%s sending as %s: %w", ac.receiver, a, chain.ErrInlineAuthority)
		}
	}
	ac.frame.inline = append(ac.frame.inline, act)
	return nil
}
