package repository

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/auctionhost"
	"github.com/x-xyz/spotmarket/domain/keys"
)

const tableGlobals = "globals"

type globalsImpl struct {
	contract string
	store    domain.Store
}

// NewGlobals returns the host singleton. Get is domain.ErrNotFound before genesis.
func NewGlobals(contract domain.Name, s domain.Store) auctionhost.GlobalsRepo {
	return &globalsImpl{contract: string(contract), store: s}
}

func (im *globalsImpl) Get(c ctx.Ctx) (*auctionhost.Globals, error) {
	res := &auctionhost.Globals{}
	if err := im.store.Get(c, keys.Singleton(im.contract, tableGlobals), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *globalsImpl) Put(c ctx.Ctx, g *auctionhost.Globals) error {
	if err := im.store.Set(c, keys.Singleton(im.contract, tableGlobals), g); err != nil {
		c.WithField("err", err).Error("store.Set failed")
		return err
	}
	return nil
}
