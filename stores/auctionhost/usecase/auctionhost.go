package usecase

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/auctionhost"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/stores/auctionhost/repository"
)

type auctionHostImpl struct {
	engine chain.Engine
	cfg    HostCfg
}

// NewAuctionHost reads host tables from committed state and pushes its actions.
func NewAuctionHost(engine chain.Engine, cfg *HostCfg) auctionhost.Usecase {
	return &auctionHostImpl{engine: engine, cfg: *cfg}
}

func (im *auctionHostImpl) globals(c ctx.Ctx, s domain.Store) (*auctionhost.Globals, error) {
	g, err := repository.NewGlobals(im.cfg.Self, s).Get(c)
	if err == domain.ErrNotFound {
		genesis := im.cfg.Genesis
		return &genesis, nil
	}
	return g, err
}

func (im *auctionHostImpl) GetGlobals(c ctx.Ctx) (*auctionhost.Globals, error) {
	var res *auctionhost.Globals
	err := im.engine.Read(c, func(s domain.Store) error {
		g, err := im.globals(c, s)
		res = g
		return err
	})
	if err != nil {
		c.WithField("err", err).Error("globals.Get failed")
		return nil, err
	}
	return res, nil
}

func (im *auctionHostImpl) QuoteStartPrices(c ctx.Ctx) (gold, silver domain.Quantity, err error) {
	err = im.engine.Read(c, func(s domain.Store) error {
		g, err := im.globals(c, s)
		if err != nil {
			return err
		}
		usdPerNative, err := latestPrice(c, im.cfg.Oracle(s), g.OracleFeedIndex, im.cfg.FeedName)
		if err != nil {
			return err
		}
		if gold, err = StartingPrice(g.GoldStartPriceUsd, usdPerNative, im.cfg.Symbol); err != nil {
			return err
		}
		silver, err = StartingPrice(g.SilverStartPriceUsd, usdPerNative, im.cfg.Symbol)
		return err
	})
	if err != nil {
		c.WithField("err", err).Warn("QuoteStartPrices failed")
	}
	return gold, silver, err
}

func (im *auctionHostImpl) push(c ctx.Ctx, actor domain.Name, name domain.ActionName, data interface{}) (*chain.Receipt, error) {
	r, err := im.engine.PushTransaction(c, chain.NewAction(im.cfg.Self, name, actor, data))
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"actor":  actor,
			"action": name,
		}).Warn("engine.PushTransaction failed")
		return nil, err
	}
	return r, nil
}

func (im *auctionHostImpl) SetStartPrice(c ctx.Ctx, actor domain.Name, p auctionhost.SetStartPrice) (*chain.Receipt, error) {
	return im.push(c, actor, auctionhost.ActSetStartPrice, p)
}

func (im *auctionHostImpl) SetReAuctDuration(c ctx.Ctx, actor domain.Name, d domain.Seconds) (*chain.Receipt, error) {
	return im.push(c, actor, auctionhost.ActSetReAuctDuration, auctionhost.SetReAuctDuration{Duration: d})
}

func (im *auctionHostImpl) ClaimMarketBalance(c ctx.Ctx, actor domain.Name) (*chain.Receipt, error) {
	return im.push(c, actor, auctionhost.ActClaimMarketBalance, nil)
}

func (im *auctionHostImpl) ClaimAuctionIncome(c ctx.Ctx, actor domain.Name, id domain.AuctionId) (*chain.Receipt, error) {
	return im.push(c, actor, auctionhost.ActClaimAuctionIncome, auctionhost.AuctionRef{AuctionId: id})
}

func (im *auctionHostImpl) CancelAuction(c ctx.Ctx, actor domain.Name, id domain.AuctionId) (*chain.Receipt, error) {
	return im.push(c, actor, auctionhost.ActCancelAuction, auctionhost.AuctionRef{AuctionId: id})
}

func (im *auctionHostImpl) MintFreeSpot(c ctx.Ctx, actor domain.Name, p auctionhost.MintFreeSpot) (*chain.Receipt, error) {
	return im.push(c, actor, auctionhost.ActMintFreeSpot, p)
}

func (im *auctionHostImpl) MintAuctionSpot(c ctx.Ctx, actor domain.Name, d domain.Seconds) (*chain.Receipt, error) {
	return im.push(c, actor, auctionhost.ActMintAuctionSpot, auctionhost.AuctionDuration{Duration: d})
}
