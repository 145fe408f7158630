package usecase

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/promotion"
	"github.com/x-xyz/spotmarket/stores/promotion/repository"
)

type promotionImpl struct {
	engine  chain.Engine
	self    domain.Name
	genesis promotion.Globals
}

// NewPromotion reads gatekeeper tables from committed state and pushes its actions.
func NewPromotion(engine chain.Engine, cfg *GatekeeperCfg) promotion.Usecase {
	return &promotionImpl{
		engine:  engine,
		self:    cfg.Self,
		genesis: cfg.Genesis,
	}
}

func (im *promotionImpl) GetGlobals(c ctx.Ctx) (*promotion.Globals, error) {
	var res *promotion.Globals
	err := im.engine.Read(c, func(s domain.Store) error {
		g, err := repository.NewGlobals(im.self, s).Get(c)
		if err == domain.ErrNotFound {
			genesis := im.genesis
			g, err = &genesis, nil
		}
		res = g
		return err
	})
	if err != nil {
		c.WithField("err", err).Error("globals.Get failed")
		return nil, err
	}
	return res, nil
}

func (im *promotionImpl) FindSilverPromotion(c ctx.Ctx, collection domain.Name) (*promotion.SilverSpotPromotion, error) {
	var res *promotion.SilverSpotPromotion
	err := im.engine.Read(c, func(s domain.Store) error {
		p, err := repository.NewSilverPromotion(im.self, s).FindOne(c, collection)
		res = p
		return err
	})
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"err":        err,
				"collection": collection,
			}).Error("silverPromotion.FindOne failed")
		}
		return nil, err
	}
	return res, nil
}

func (im *promotionImpl) FindSilverPromotions(c ctx.Ctx) ([]*promotion.SilverSpotPromotion, error) {
	var res []*promotion.SilverSpotPromotion
	err := im.engine.Read(c, func(s domain.Store) error {
		ps, err := repository.NewSilverPromotion(im.self, s).FindAll(c)
		res = ps
		return err
	})
	if err != nil {
		c.WithField("err", err).Error("silverPromotion.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *promotionImpl) push(c ctx.Ctx, actor domain.Name, name domain.ActionName, data interface{}) (*chain.Receipt, error) {
	r, err := im.engine.PushTransaction(c, chain.NewAction(im.self, name, actor, data))
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

func (im *promotionImpl) SetSpots(c ctx.Ctx, actor domain.Name, p promotion.SetSpots) (*chain.Receipt, error) {
	return im.push(c, actor, promotion.ActSetSpots, p)
}

func (im *promotionImpl) SetPromoDuration(c ctx.Ctx, actor domain.Name, p promotion.SetPromoDuration) (*chain.Receipt, error) {
	return im.push(c, actor, promotion.ActSetPromoDuration, p)
}

func (im *promotionImpl) SetAuctionPromos(c ctx.Ctx, actor domain.Name, enabled bool) (*chain.Receipt, error) {
	return im.push(c, actor, promotion.ActSetAuctionPromos, promotion.SetAuctionPromos{Enabled: enabled})
}

func (im *promotionImpl) ClaimMarketBalance(c ctx.Ctx, actor domain.Name) (*chain.Receipt, error) {
	return im.push(c, actor, promotion.ActClaimBalance, nil)
}
