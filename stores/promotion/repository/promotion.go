package repository

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/keys"
	"github.com/x-xyz/spotmarket/domain/promotion"
)

const (
	tableGlobals      = "globals"
	tableSilverPromos = "silverpromos"
)

type globalsImpl struct {
	contract string
	store    domain.Store
}

// NewGlobals returns the gatekeeper singleton. Get is domain.ErrNotFound before genesis.
func NewGlobals(contract domain.Name, s domain.Store) promotion.GlobalsRepo {
	return &globalsImpl{contract: string(contract), store: s}
}

// NewGlobalsFactory lets other contracts read the gatekeeper globals inside a transaction.
func NewGlobalsFactory(contract domain.Name) promotion.GlobalsRepoFactory {
	return func(s domain.Store) promotion.GlobalsRepo {
		return NewGlobals(contract, s)
	}
}

func (im *globalsImpl) Get(c ctx.Ctx) (*promotion.Globals, error) {
	res := &promotion.Globals{}
	if err := im.store.Get(c, keys.Singleton(im.contract, tableGlobals), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *globalsImpl) Put(c ctx.Ctx, g *promotion.Globals) error {
	if err := im.store.Set(c, keys.Singleton(im.contract, tableGlobals), g); err != nil {
		c.WithField("err", err).Error("store.Set failed")
		return err
	}
	return nil
}

type silverPromotionImpl struct {
	contract string
	store    domain.Store
}

func NewSilverPromotion(contract domain.Name, s domain.Store) promotion.SilverPromotionRepo {
	return &silverPromotionImpl{contract: string(contract), store: s}
}

func (im *silverPromotionImpl) key(collection domain.Name) string {
	return keys.Row(im.contract, tableSilverPromos, "", string(collection))
}

func (im *silverPromotionImpl) FindOne(c ctx.Ctx, collection domain.Name) (*promotion.SilverSpotPromotion, error) {
	res := &promotion.SilverSpotPromotion{}
	if err := im.store.Get(c, im.key(collection), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *silverPromotionImpl) FindAll(c ctx.Ctx) ([]*promotion.SilverSpotPromotion, error) {
	ks, err := im.store.Keys(c, keys.TablePrefix(im.contract, tableSilverPromos, ""))
	if err != nil {
		c.WithField("err", err).Error("store.Keys failed")
		return nil, err
	}

	res := make([]*promotion.SilverSpotPromotion, 0, len(ks))
	for _, k := range ks {
		p := &promotion.SilverSpotPromotion{}
		if err := im.store.Get(c, k, p); err != nil {
			c.WithField("err", err).WithField("key", k).Error("store.Get failed")
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}

func (im *silverPromotionImpl) Upsert(c ctx.Ctx, p *promotion.SilverSpotPromotion) error {
	if err := im.store.Set(c, im.key(p.Collection), p); err != nil {
		c.WithField("err", err).Error("store.Set failed")
		return err
	}
	return nil
}
