package usecase

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/asset"
	"github.com/x-xyz/spotmarket/domain/auctionhost"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/market"
	"github.com/x-xyz/spotmarket/domain/promotion"
	"github.com/x-xyz/spotmarket/domain/registry"
	"github.com/x-xyz/spotmarket/domain/token"
	"github.com/x-xyz/spotmarket/stores/promotion/repository"
)

// auctionSafetyMargin is the minimum time a promoted auction must still run.
const auctionSafetyMargin = int64(domain.OneHour)

type GatekeeperCfg struct {
	Self           domain.Name
	AssetsContract domain.Name
	MarketContract domain.Name
	Host           domain.Name
	Finance        domain.Name
	// Genesis is used until the first setter writes the globals row.
	Genesis promotion.Globals

	Assets   asset.ReaderFactory
	Market   market.ReaderFactory
	Registry registry.ReaderFactory
}

type gatekeeper struct {
	cfg GatekeeperCfg
}

// NewGatekeeper returns the contract that turns spot transfers into promotions.
func NewGatekeeper(cfg *GatekeeperCfg) chain.Contract {
	return &gatekeeper{cfg: *cfg}
}

func (im *gatekeeper) Account() domain.Name {
	return im.cfg.Self
}

func (im *gatekeeper) Dispatch() chain.Dispatch {
	return chain.Dispatch{
		Actions: map[domain.ActionName]chain.Handler{
			promotion.ActSetSpots: {
				Payload: func() interface{} { return &promotion.SetSpots{} },
				Handle:  im.setSpots,
			},
			promotion.ActSetPromoDuration: {
				Payload: func() interface{} { return &promotion.SetPromoDuration{} },
				Handle:  im.setPromoDuration,
			},
			promotion.ActSetAuctionPromos: {
				Payload: func() interface{} { return &promotion.SetAuctionPromos{} },
				Handle:  im.setAuctionPromos,
			},
			promotion.ActClaimBalance: {
				Handle: im.claimMarketBalance,
			},
			promotion.ActLogCollection: {
				Payload: func() interface{} { return &promotion.LogCollectionPromotion{} },
				Handle:  im.logPromotion,
			},
			promotion.ActLogAuction: {
				Payload: func() interface{} { return &promotion.LogAuctionPromotion{} },
				Handle:  im.logPromotion,
			},
		},
		Notifications: map[chain.Notify]chain.Handler{
			{Code: im.cfg.AssetsContract, Action: asset.ActTransfer}: {
				Payload: func() interface{} { return &asset.Transfer{} },
				Handle:  im.onSpotTransfer,
			},
			{Code: chain.AnyCode, Action: token.ActTransfer}: {
				Payload: func() interface{} { return &token.Transfer{} },
				Handle:  im.onTokenTransfer,
			},
		},
	}
}

func (im *gatekeeper) globals(c ctx.Ctx, s domain.Store) (promotion.GlobalsRepo, *promotion.Globals, error) {
	repo := repository.NewGlobals(im.cfg.Self, s)
	g, err := repo.Get(c)
	if err == domain.ErrNotFound {
		genesis := im.cfg.Genesis
		return repo, &genesis, nil
	} else if err != nil {
		return nil, nil, err
	}
	return repo, g, nil
}

func (im *gatekeeper) setSpots(ac chain.ApplyContext, data interface{}) error {
	p := data.(*promotion.SetSpots)
	if err := ac.RequireAuth(im.cfg.Self); err != nil {
		return err
	}
	repo, g, err := im.globals(ac.Ctx(), ac.Store())
	if err != nil {
		return err
	}
	g.GoldSpotId = p.GoldSpotId
	g.SilverSpotTemplateId = p.SilverSpotTemplateId
	return repo.Put(ac.Ctx(), g)
}

func (im *gatekeeper) setPromoDuration(ac chain.ApplyContext, data interface{}) error {
	p := data.(*promotion.SetPromoDuration)
	if err := ac.RequireAuth(im.cfg.Self); err != nil {
		return err
	}
	if p.Silver == 0 || p.Gold == 0 {
		return promotion.ErrInvalidDuration
	}
	repo, g, err := im.globals(ac.Ctx(), ac.Store())
	if err != nil {
		return err
	}
	g.SilverPromoDuration = p.Silver
	g.GoldPromoDuration = p.Gold
	return repo.Put(ac.Ctx(), g)
}

func (im *gatekeeper) setAuctionPromos(ac chain.ApplyContext, data interface{}) error {
	p := data.(*promotion.SetAuctionPromos)
	if err := ac.RequireAuth(im.cfg.Self); err != nil {
		return err
	}
	repo, g, err := im.globals(ac.Ctx(), ac.Store())
	if err != nil {
		return err
	}
	g.SilverAuctionPromos = p.Enabled
	return repo.Put(ac.Ctx(), g)
}

// claimMarketBalance withdraws everything the market holds for the gatekeeper.
// The withdrawn tokens come back as transfers and are forwarded to finance.
func (im *gatekeeper) claimMarketBalance(ac chain.ApplyContext, _ interface{}) error {
	b, err := im.cfg.Market(ac.Store()).FindBalance(ac.Ctx(), im.cfg.Self)
	if err == domain.ErrNotFound {
		return promotion.ErrMarketBalanceNotFound
	} else if err != nil {
		return err
	}
	for _, q := range b.Quantities {
		if err := ac.SendInline(market.WithdrawAction(im.cfg.MarketContract, im.cfg.Self, q)); err != nil {
			return err
		}
	}
	return nil
}

// logPromotion leaves the promotion in the action trace and changes nothing.
func (im *gatekeeper) logPromotion(ac chain.ApplyContext, _ interface{}) error {
	if err := ac.RequireAuth(im.cfg.Self); err != nil {
		return err
	}
	ac.RequireRecipient(im.cfg.Self)
	return nil
}

func (im *gatekeeper) onTokenTransfer(ac chain.ApplyContext, data interface{}) error {
	p := data.(*token.Transfer)
	if p.To != im.cfg.Self || p.From != im.cfg.MarketContract {
		return nil
	}
	return ac.SendInline(token.TransferAction(ac.FirstReceiver(), im.cfg.Self, im.cfg.Finance, p.Quantity, auctionhost.MemoProceeds))
}

func (im *gatekeeper) onSpotTransfer(ac chain.ApplyContext, data interface{}) error {
	p := data.(*asset.Transfer)
	if p.To != im.cfg.Self || p.From == im.cfg.Self {
		return nil
	}
	c := ac.Ctx()

	if len(p.AssetIds) != 1 {
		return promotion.ErrOnlyOneSpot
	}
	req, err := promotion.ParseMemo(p.Memo)
	if err != nil {
		return err
	}

	globalsRepo, g, err := im.globals(c, ac.Store())
	if err != nil {
		return err
	}
	spotId := p.AssetIds[0]
	if req.SpotType, err = im.classify(ac, g, spotId); err != nil {
		return err
	}
	if req.SpotType == promotion.SpotTypeSilver && req.PromoType == promotion.PromoTypeAuction && !g.SilverAuctionPromos {
		return promotion.ErrAuctionOnlyGold
	}

	now := ac.NowSec()
	promoEnd := now + int64(g.PromoDuration(req.SpotType))

	var (
		logAct chain.Action
		memo   string
	)
	switch req.PromoType {
	case promotion.PromoTypeCollection:
		collection := domain.Name(req.Target)
		if err := im.checkCollection(ac, collection); err != nil {
			return err
		}
		if req.SpotType == promotion.SpotTypeSilver {
			if err := im.reserveSilver(ac, collection, promoEnd); err != nil {
				return err
			}
			memo = auctionhost.MemoBurnMintAuction
		} else {
			memo = auctionhost.AuctionMemo(domain.Seconds(promoEnd-now) + domain.OneDay)
		}
		logAct = chain.NewAction(im.cfg.Self, promotion.ActLogCollection, im.cfg.Self, promotion.LogCollectionPromotion{
			Collection:   collection,
			PromotedBy:   p.From,
			SpotType:     req.SpotType,
			PromotionEnd: promoEnd,
		})

	case promotion.PromoTypeAuction:
		a, err := im.checkAuction(ac, req.Target)
		if err != nil {
			return err
		}
		memo = auctionhost.AuctionMemo(domain.Seconds(a.EndTime-now) + domain.OneDay)
		logAct = chain.NewAction(im.cfg.Self, promotion.ActLogAuction, im.cfg.Self, promotion.LogAuctionPromotion{
			AuctionId:  a.AuctionId,
			PromotedBy: p.From,
			SpotType:   req.SpotType,
		})
	}

	if req.SpotType == promotion.SpotTypeGold {
		g.GoldPromoCount++
	} else {
		g.SilverPromoCount++
	}
	if err := globalsRepo.Put(c, g); err != nil {
		return err
	}

	c.WithFields(log.Fields{
		"promoType":  req.PromoType,
		"target":     req.Target,
		"spotType":   req.SpotType,
		"promotedBy": p.From,
	}).Info("promotion accepted")

	if err := ac.SendInline(logAct); err != nil {
		return err
	}
	return ac.SendInline(asset.TransferAction(im.cfg.AssetsContract, im.cfg.Self, im.cfg.Host, p.AssetIds, memo))
}

// classify tells gold from silver. Gold is a single asset, silver is any asset
// of the spot template.
func (im *gatekeeper) classify(ac chain.ApplyContext, g *promotion.Globals, id domain.AssetId) (promotion.SpotType, error) {
	if id == g.GoldSpotId {
		return promotion.SpotTypeGold, nil
	}
	a, err := im.cfg.Assets(ac.Store()).FindAsset(ac.Ctx(), im.cfg.Self, id)
	if err == domain.ErrNotFound {
		return "", promotion.ErrSilverSpotExpected
	} else if err != nil {
		return "", err
	}
	if a.Collection != g.SpotCollection || a.TemplateId != g.SilverSpotTemplateId {
		return "", promotion.ErrSilverSpotExpected
	}
	return promotion.SpotTypeSilver, nil
}

func (im *gatekeeper) checkCollection(ac chain.ApplyContext, collection domain.Name) error {
	c := ac.Ctx()
	if _, err := im.cfg.Assets(ac.Store()).FindCollection(c, collection); err == domain.ErrNotFound {
		return promotion.ErrCollectionNotExists
	} else if err != nil {
		return err
	}
	return im.checkEligible(ac, collection)
}

func (im *gatekeeper) checkEligible(ac chain.ApplyContext, collection domain.Name) error {
	c := ac.Ctx()
	reg := im.cfg.Registry(ac.Store())

	if black, err := reg.IsBlacklisted(c, collection); err != nil {
		return err
	} else if black {
		return promotion.ErrCollectionBlacklisted
	}

	verified, err := reg.IsVerified(c, collection)
	if err != nil {
		return err
	}
	shielded, err := reg.IsShielded(c, collection)
	if err != nil {
		return err
	}
	if !verified && !shielded {
		return promotion.ErrCollectionNotEligible
	}
	return nil
}

func (im *gatekeeper) checkAuction(ac chain.ApplyContext, target string) (*market.Auction, error) {
	id, err := domain.ParseAuctionId(target)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", target, promotion.ErrAuctionNotExists)
	}
	a, err := im.cfg.Market(ac.Store()).FindAuction(ac.Ctx(), id)
	if err == domain.ErrNotFound {
		return nil, promotion.ErrAuctionNotExists
	} else if err != nil {
		return nil, err
	}
	if err := im.checkEligible(ac, a.CollectionName); err != nil {
		return nil, err
	}
	if !a.AssetsTransferred {
		return nil, promotion.ErrAuctionNotStarted
	}
	if a.EndTime < ac.NowSec()+auctionSafetyMargin {
		return nil, promotion.ErrAuctionExpiring
	}
	return a, nil
}

// reserveSilver enforces one running silver promotion per collection.
func (im *gatekeeper) reserveSilver(ac chain.ApplyContext, collection domain.Name, promoEnd int64) error {
	c := ac.Ctx()
	repo := repository.NewSilverPromotion(im.cfg.Self, ac.Store())

	row, err := repo.FindOne(c, collection)
	if err == domain.ErrNotFound {
		row = &promotion.SilverSpotPromotion{Collection: collection}
	} else if err != nil {
		return err
	} else if row.Active(ac.NowSec()) {
		return promotion.ErrAlreadyPromoted
	}

	row.PromoCount++
	row.LastPromoEnd = promoEnd
	return repo.Upsert(c, row)
}
