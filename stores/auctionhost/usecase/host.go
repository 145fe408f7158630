package usecase

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/asset"
	"github.com/x-xyz/spotmarket/domain/auctionhost"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/market"
	"github.com/x-xyz/spotmarket/domain/oracle"
	"github.com/x-xyz/spotmarket/domain/promotion"
	"github.com/x-xyz/spotmarket/domain/token"
	"github.com/x-xyz/spotmarket/stores/auctionhost/repository"
)

type HostCfg struct {
	Self             domain.Name
	AssetsContract   domain.Name
	MarketContract   domain.Name
	Gatekeeper       domain.Name
	Finance          domain.Name
	MakerMarketplace domain.Name
	// Symbol is the native token auctions are priced in.
	Symbol domain.Symbol
	// FeedName is the oracle pair, e.g. XPR/USD.
	FeedName string
	// Genesis is used until the first setter writes the globals row.
	Genesis auctionhost.Globals

	Assets asset.ReaderFactory
	Market market.ReaderFactory
	Oracle oracle.ReaderFactory
	Spots  promotion.GlobalsRepoFactory
}

type host struct {
	cfg HostCfg
}

// NewHost returns the contract that auctions forwarded spots.
func NewHost(cfg *HostCfg) chain.Contract {
	return &host{cfg: *cfg}
}

func (im *host) Account() domain.Name {
	return im.cfg.Self
}

func (im *host) Dispatch() chain.Dispatch {
	return chain.Dispatch{
		Actions: map[domain.ActionName]chain.Handler{
			auctionhost.ActSetStartPrice: {
				Payload: func() interface{} { return &auctionhost.SetStartPrice{} },
				Handle:  im.setStartPrice,
			},
			auctionhost.ActSetReAuctDuration: {
				Payload: func() interface{} { return &auctionhost.SetReAuctDuration{} },
				Handle:  im.setReAuctDuration,
			},
			auctionhost.ActClaimMarketBalance: {
				Handle: im.claimMarketBalance,
			},
			auctionhost.ActClaimAuctionIncome: {
				Payload: func() interface{} { return &auctionhost.AuctionRef{} },
				Handle:  im.claimAuctionIncome,
			},
			auctionhost.ActCancelAuction: {
				Payload: func() interface{} { return &auctionhost.AuctionRef{} },
				Handle:  im.cancelAuction,
			},
			auctionhost.ActMintFreeSpot: {
				Payload: func() interface{} { return &auctionhost.MintFreeSpot{} },
				Handle:  im.mintFreeSpot,
			},
			auctionhost.ActMintAuctionSpot: {
				Payload: func() interface{} { return &auctionhost.AuctionDuration{} },
				Handle:  im.mintAuctionSpot,
			},
			auctionhost.ActAuctionLatest: {
				Payload: func() interface{} { return &auctionhost.AuctionDuration{} },
				Handle:  im.auctionLatest,
			},
		},
		Notifications: map[chain.Notify]chain.Handler{
			{Code: im.cfg.AssetsContract, Action: asset.ActTransfer}: {
				Payload: func() interface{} { return &asset.Transfer{} },
				Handle:  im.onAssetTransfer,
			},
			{Code: chain.AnyCode, Action: token.ActTransfer}: {
				Payload: func() interface{} { return &token.Transfer{} },
				Handle:  im.onTokenTransfer,
			},
		},
	}
}

func (im *host) globals(c ctx.Ctx, s domain.Store) (auctionhost.GlobalsRepo, *auctionhost.Globals, error) {
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

func (im *host) spots(c ctx.Ctx, s domain.Store) (*promotion.Globals, error) {
	g, err := im.cfg.Spots(s).Get(c)
	if err != nil {
		c.WithField("err", err).Error("spots.Get failed")
		return nil, err
	}
	return g, nil
}

func (im *host) isSilver(spots *promotion.Globals, a *asset.Asset) bool {
	return a.Collection == spots.SpotCollection && a.TemplateId == spots.SilverSpotTemplateId
}

func (im *host) setStartPrice(ac chain.ApplyContext, data interface{}) error {
	p := data.(*auctionhost.SetStartPrice)
	if err := ac.RequireAuth(im.cfg.Self); err != nil {
		return err
	}
	if p.GoldUsd == 0 || p.SilverUsd == 0 {
		return auctionhost.ErrStartPrice
	}
	repo, g, err := im.globals(ac.Ctx(), ac.Store())
	if err != nil {
		return err
	}
	g.GoldStartPriceUsd = p.GoldUsd
	g.SilverStartPriceUsd = p.SilverUsd
	return repo.Put(ac.Ctx(), g)
}

func (im *host) setReAuctDuration(ac chain.ApplyContext, data interface{}) error {
	p := data.(*auctionhost.SetReAuctDuration)
	if err := ac.RequireAuth(im.cfg.Self); err != nil {
		return err
	}
	if p.Duration <= domain.OneDay {
		return auctionhost.ErrReAuctionDuration
	}
	repo, g, err := im.globals(ac.Ctx(), ac.Store())
	if err != nil {
		return err
	}
	g.SilverReAuctionDuration = p.Duration
	return repo.Put(ac.Ctx(), g)
}

func (im *host) claimMarketBalance(ac chain.ApplyContext, _ interface{}) error {
	b, err := im.cfg.Market(ac.Store()).FindBalance(ac.Ctx(), im.cfg.Self)
	if err == domain.ErrNotFound {
		return auctionhost.ErrMarketBalanceNotFound
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

// claimAuctionIncome collects the seller payout first, then whatever the sale
// left on the host's market balance.
func (im *host) claimAuctionIncome(ac chain.ApplyContext, data interface{}) error {
	p := data.(*auctionhost.AuctionRef)
	if _, err := im.cfg.Market(ac.Store()).FindAuction(ac.Ctx(), p.AuctionId); err == domain.ErrNotFound {
		return auctionhost.ErrAuctionNotExists
	} else if err != nil {
		return err
	}
	if err := ac.SendInline(market.ClaimSellerAction(im.cfg.MarketContract, im.cfg.Self, p.AuctionId)); err != nil {
		return err
	}
	return ac.SendInline(chain.NewAction(im.cfg.Self, auctionhost.ActClaimMarketBalance, im.cfg.Self, nil))
}

func (im *host) cancelAuction(ac chain.ApplyContext, data interface{}) error {
	p := data.(*auctionhost.AuctionRef)
	a, err := im.cfg.Market(ac.Store()).FindAuction(ac.Ctx(), p.AuctionId)
	if err == domain.ErrNotFound {
		return auctionhost.ErrAuctionNotExists
	} else if err != nil {
		return err
	}
	if !a.Ended(ac.NowSec()) {
		return auctionhost.ErrAuctionRunning
	}
	if a.Seller != im.cfg.Self {
		return auctionhost.ErrForeignSeller
	}
	if a.HasBids() {
		return auctionhost.ErrAuctionHasBids
	}
	return ac.SendInline(market.CancelAuctionAction(im.cfg.MarketContract, im.cfg.Self, p.AuctionId))
}

func (im *host) mintFreeSpot(ac chain.ApplyContext, data interface{}) error {
	p := data.(*auctionhost.MintFreeSpot)
	c := ac.Ctx()
	if err := ac.RequireAuth(im.cfg.Self); err != nil {
		return err
	}
	spots, err := im.spots(c, ac.Store())
	if err != nil {
		return err
	}
	c.WithFields(log.Fields{
		"recipient": p.Recipient,
		"memo":      p.Memo,
	}).Info("minting free spot")
	return ac.SendInline(asset.MintAction(im.cfg.AssetsContract, im.cfg.Self, spots.SpotCollection, spots.SilverSpotTemplateId, p.Recipient))
}

func (im *host) mintAuctionSpot(ac chain.ApplyContext, data interface{}) error {
	p := data.(*auctionhost.AuctionDuration)
	if err := ac.RequireAuth(im.cfg.Self); err != nil {
		return err
	}
	spots, err := im.spots(ac.Ctx(), ac.Store())
	if err != nil {
		return err
	}
	return im.mintAndAuction(ac, spots, p.Duration)
}

// mintAndAuction mints a silver spot to the host and queues its auction. The
// auction is a separate action so that it sees the minted asset.
func (im *host) mintAndAuction(ac chain.ApplyContext, spots *promotion.Globals, d domain.Seconds) error {
	if err := ac.SendInline(asset.MintAction(im.cfg.AssetsContract, im.cfg.Self, spots.SpotCollection, spots.SilverSpotTemplateId, im.cfg.Self)); err != nil {
		return err
	}
	return ac.SendInline(chain.NewAction(im.cfg.Self, auctionhost.ActAuctionLatest, im.cfg.Self, auctionhost.AuctionDuration{Duration: d}))
}

func (im *host) auctionLatest(ac chain.ApplyContext, data interface{}) error {
	p := data.(*auctionhost.AuctionDuration)
	c := ac.Ctx()
	if err := ac.RequireAuth(im.cfg.Self); err != nil {
		return err
	}
	a, err := im.cfg.Assets(ac.Store()).LastAsset(c, im.cfg.Self)
	if err == domain.ErrNotFound {
		return auctionhost.ErrNoOwnedAsset
	} else if err != nil {
		return err
	}
	spots, err := im.spots(c, ac.Store())
	if err != nil {
		return err
	}
	if !im.isSilver(spots, a) {
		return auctionhost.ErrSilverOnly
	}
	return im.startAuction(ac, spots, a.AssetId, p.Duration)
}

// startAuction announces the asset and moves it into escrow, in that order.
func (im *host) startAuction(ac chain.ApplyContext, spots *promotion.Globals, id domain.AssetId, d domain.Seconds) error {
	c := ac.Ctx()
	_, g, err := im.globals(c, ac.Store())
	if err != nil {
		return err
	}

	usdPerNative, err := latestPrice(c, im.cfg.Oracle(ac.Store()), g.OracleFeedIndex, im.cfg.FeedName)
	if err != nil {
		return err
	}
	usd := g.SilverStartPriceUsd
	if id == spots.GoldSpotId {
		usd = g.GoldStartPriceUsd
	}
	price, err := StartingPrice(usd, usdPerNative, im.cfg.Symbol)
	if err != nil {
		return err
	}

	c.WithFields(log.Fields{
		"assetId":  id,
		"price":    price.String(),
		"duration": d,
	}).Info("starting auction")

	ids := []domain.AssetId{id}
	if err := ac.SendInline(market.AnnounceAuctionAction(im.cfg.MarketContract, im.cfg.Self, ids, price, d, im.cfg.MakerMarketplace)); err != nil {
		return err
	}
	return ac.SendInline(asset.TransferAction(im.cfg.AssetsContract, im.cfg.Self, im.cfg.MarketContract, ids, market.MemoAuction))
}

func (im *host) onAssetTransfer(ac chain.ApplyContext, data interface{}) error {
	p := data.(*asset.Transfer)
	if p.To != im.cfg.Self || p.From == im.cfg.Self {
		return nil
	}

	switch p.From {
	case im.cfg.Gatekeeper:
		return im.onForwardedSpot(ac, p)
	case im.cfg.MarketContract:
		return im.onReturnedSpot(ac, p)
	}
	return nil
}

func (im *host) onForwardedSpot(ac chain.ApplyContext, p *asset.Transfer) error {
	c := ac.Ctx()
	if len(p.AssetIds) != 1 {
		return auctionhost.ErrOnlyOneSpot
	}
	ins, err := auctionhost.ParseInstruction(p.Memo)
	if err != nil {
		return err
	}
	spots, err := im.spots(c, ac.Store())
	if err != nil {
		return err
	}

	id := p.AssetIds[0]
	if ins.Kind == auctionhost.InstructionAuction {
		return im.startAuction(ac, spots, id, ins.Duration)
	}

	a, err := im.cfg.Assets(ac.Store()).FindAsset(c, im.cfg.Self, id)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"assetId": id,
		}).Error("assets.FindAsset failed")
		return err
	}
	if !im.isSilver(spots, a) {
		return auctionhost.ErrSilverOnly
	}
	if err := ac.SendInline(asset.BurnAction(im.cfg.AssetsContract, im.cfg.Self, id)); err != nil {
		return err
	}
	return im.mintAndAuction(ac, spots, spots.SilverPromoDuration)
}

// onReturnedSpot re-auctions silver spots the market sends back.
func (im *host) onReturnedSpot(ac chain.ApplyContext, p *asset.Transfer) error {
	c := ac.Ctx()
	spots, err := im.spots(c, ac.Store())
	if err != nil {
		return err
	}
	_, g, err := im.globals(c, ac.Store())
	if err != nil {
		return err
	}

	assets := im.cfg.Assets(ac.Store())
	for _, id := range p.AssetIds {
		a, err := assets.FindAsset(c, im.cfg.Self, id)
		if err != nil {
			return err
		}
		if !im.isSilver(spots, a) {
			continue
		}
		if err := im.startAuction(ac, spots, id, g.SilverReAuctionDuration); err != nil {
			return err
		}
	}
	return nil
}

func (im *host) onTokenTransfer(ac chain.ApplyContext, data interface{}) error {
	p := data.(*token.Transfer)
	if p.To != im.cfg.Self || p.From != im.cfg.MarketContract {
		return nil
	}
	return ac.SendInline(token.TransferAction(ac.FirstReceiver(), im.cfg.Self, im.cfg.Finance, p.Quantity, auctionhost.MemoProceeds))
}
