package registry

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
)

const (
	ActAddBlacklist domain.ActionName = "addblacklist"
	ActDelBlacklist domain.ActionName = "delblacklist"
	ActAddShielding domain.ActionName = "addshield"
	ActAddVerified  domain.ActionName = "addverified"
)

// Entry is a row of the blacklist, shieldings and verified tables.
type Entry struct {
	Collection domain.Name `json:"collection"`
	Reporter   domain.Name `json:"reporter"`
	Comment    string      `json:"comment"`
	CreatedAt  int64       `json:"created"`
}

type Mark struct {
	Collection domain.Name `json:"collection"`
	Comment    string      `json:"comment"`
}

// Reader is the read view of the eligibility tables.
type Reader interface {
	IsBlacklisted(c ctx.Ctx, collection domain.Name) (bool, error)
	IsShielded(c ctx.Ctx, collection domain.Name) (bool, error)
	IsVerified(c ctx.Ctx, collection domain.Name) (bool, error)
}

type ReaderFactory func(s domain.Store) Reader
