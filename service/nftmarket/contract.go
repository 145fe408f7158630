// Package nftmarket is a minimal auction market: announce, escrow, bid, claim,
// cancel and withdraw. Sale proceeds and fees are credited to market balances
// and leave the market through withdraw.
package nftmarket

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/asset"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/market"
	"github.com/x-xyz/spotmarket/domain/token"
)

const (
	memoWithdrawal = "market withdrawal"
	memoAuctionWon = "auction won"
	memoCancelled  = "cancelled auction"
)

// SupportedToken is a symbol the market accepts together with its issuing contract.
type SupportedToken struct {
	Contract domain.Name   `mapstructure:"contract"`
	Symbol   domain.Symbol `mapstructure:"symbol"`
}

type Cfg struct {
	Self           domain.Name
	AssetsContract domain.Name
	Tokens         []SupportedToken
	MakerFee       float64
	TakerFee       float64
	MaxDuration    domain.Seconds
}

type contract struct {
	cfg    Cfg
	assets asset.ReaderFactory
}

func New(cfg *Cfg, assets asset.ReaderFactory) chain.Contract {
	return &contract{cfg: *cfg, assets: assets}
}

func (im *contract) Account() domain.Name {
	return im.cfg.Self
}

func (im *contract) Dispatch() chain.Dispatch {
	return chain.Dispatch{
		Actions: map[domain.ActionName]chain.Handler{
			market.ActAnnounceAuction: {
				Payload: func() interface{} { return &market.AnnounceAuction{} },
				Handle:  im.announce,
			},
			market.ActAuctionBid: {
				Payload: func() interface{} { return &market.AuctionBid{} },
				Handle:  im.bid,
			},
			market.ActAuctionClaimSeller: {
				Payload: func() interface{} { return &market.AuctionRef{} },
				Handle:  im.claimSeller,
			},
			market.ActAuctionClaimBuyer: {
				Payload: func() interface{} { return &market.AuctionRef{} },
				Handle:  im.claimBuyer,
			},
			market.ActCancelAuction: {
				Payload: func() interface{} { return &market.AuctionRef{} },
				Handle:  im.cancel,
			},
			market.ActWithdraw: {
				Payload: func() interface{} { return &market.Withdraw{} },
				Handle:  im.withdraw,
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

func (im *contract) tokenContract(symbol domain.Symbol) (domain.Name, bool) {
	for _, t := range im.cfg.Tokens {
		if t.Symbol == symbol {
			return t.Contract, true
		}
	}
	return "", false
}

func (im *contract) marketplace(name domain.Name) domain.Name {
	if name == "" {
		return im.cfg.Self
	}
	return name
}

func (im *contract) announce(ac chain.ApplyContext, data interface{}) error {
	p := data.(*market.AnnounceAuction)
	c := ac.Ctx()

	if err := ac.RequireAuth(p.Seller); err != nil {
		return err
	}
	if len(p.AssetIds) == 0 {
		return asset.ErrNoAssets
	}
	if p.StartingBid.Amount <= 0 {
		return market.ErrInvalidStartingBid
	}
	if _, ok := im.tokenContract(p.StartingBid.Symbol); !ok {
		return market.ErrUnsupportedToken
	}
	if p.Duration == 0 || (im.cfg.MaxDuration > 0 && p.Duration > im.cfg.MaxDuration) {
		return market.ErrInvalidDuration
	}

	assets := im.assets(ac.Store())
	var collection *asset.Collection
	for _, id := range p.AssetIds {
		a, err := assets.FindAsset(c, p.Seller, id)
		if err == domain.ErrNotFound {
			return xerrors.Errorf("asset %s: %w", id, asset.ErrAssetNotOwned)
		} else if err != nil {
			return err
		}
		if collection == nil {
			if collection, err = assets.FindCollection(c, a.Collection); err != nil {
				return err
			}
		}
	}

	tables := NewTables(im.cfg.Self, ac.Store())
	auctions, err := tables.FindAuctions(c)
	if err != nil {
		return err
	}
	for _, a := range auctions {
		if a.Seller == p.Seller && !a.AssetsTransferred && sameAssets(a.AssetIds, p.AssetIds) {
			return market.ErrAssetsAlreadyListed
		}
	}

	id, err := tables.NextAuctionId(c)
	if err != nil {
		return err
	}
	return tables.PutAuction(c, &market.Auction{
		AuctionId:        id,
		Seller:           p.Seller,
		AssetIds:         p.AssetIds,
		EndTime:          ac.NowSec() + int64(p.Duration),
		CurrentBid:       p.StartingBid,
		MakerMarketplace: im.marketplace(p.MakerMarketplace),
		CollectionName:   collection.Name,
		CollectionFee:    collection.MarketFee,
	})
}

func (im *contract) onAssetTransfer(ac chain.ApplyContext, data interface{}) error {
	p := data.(*asset.Transfer)
	if p.To != im.cfg.Self {
		return nil
	}
	if p.Memo != market.MemoAuction {
		return domain.ErrInvalidMemo
	}

	c := ac.Ctx()
	tables := NewTables(im.cfg.Self, ac.Store())
	auctions, err := tables.FindAuctions(c)
	if err != nil {
		return err
	}
	for _, a := range auctions {
		if a.Seller == p.From && !a.AssetsTransferred && sameAssets(a.AssetIds, p.AssetIds) {
			a.AssetsTransferred = true
			return tables.PutAuction(c, a)
		}
	}
	return market.ErrNoMatchingAuction
}

func (im *contract) onTokenTransfer(ac chain.ApplyContext, data interface{}) error {
	p := data.(*token.Transfer)
	if p.To != im.cfg.Self {
		return nil
	}
	if p.Memo != market.MemoDeposit {
		return domain.ErrInvalidMemo
	}
	if con, ok := im.tokenContract(p.Quantity.Symbol); !ok || con != ac.FirstReceiver() {
		return market.ErrUnsupportedToken
	}
	return NewTables(im.cfg.Self, ac.Store()).AddBalance(ac.Ctx(), p.From, p.Quantity)
}

func (im *contract) bid(ac chain.ApplyContext, data interface{}) error {
	p := data.(*market.AuctionBid)
	c := ac.Ctx()

	if err := ac.RequireAuth(p.Bidder); err != nil {
		return err
	}

	tables := NewTables(im.cfg.Self, ac.Store())
	a, err := tables.FindAuction(c, p.AuctionId)
	if err == domain.ErrNotFound {
		return market.ErrAuctionNotFound
	} else if err != nil {
		return err
	}
	if !a.AssetsTransferred {
		return market.ErrAuctionNotStarted
	}
	if a.EndTime <= ac.NowSec() {
		return market.ErrAuctionFinished
	}
	if a.Seller == p.Bidder {
		return market.ErrSellerCannotBid
	}
	if p.Bid.Symbol != a.CurrentBid.Symbol {
		return domain.ErrSymbolMismatch
	}
	// the first bid may match the starting price, later ones must top it
	enough := p.Bid.Amount >= a.CurrentBid.Amount
	if a.HasBids() {
		enough = p.Bid.Amount > a.CurrentBid.Amount
	}
	if !enough {
		return market.ErrBidTooLow
	}

	if err := tables.SubBalance(c, p.Bidder, p.Bid); err != nil {
		return err
	}
	if a.HasBids() {
		if err := tables.AddBalance(c, a.CurrentBidder, a.CurrentBid); err != nil {
			return err
		}
	}

	a.CurrentBid = p.Bid
	a.CurrentBidder = p.Bidder
	a.TakerMarketplace = im.marketplace(p.TakerMarketplace)
	return tables.PutAuction(c, a)
}

func (im *contract) finished(ac chain.ApplyContext, id domain.AuctionId) (*Tables, *market.Auction, error) {
	tables := NewTables(im.cfg.Self, ac.Store())
	a, err := tables.FindAuction(ac.Ctx(), id)
	if err == domain.ErrNotFound {
		return nil, nil, market.ErrAuctionNotFound
	} else if err != nil {
		return nil, nil, err
	}
	if a.EndTime > ac.NowSec() {
		return nil, nil, market.ErrAuctionNotFinished
	}
	if !a.HasBids() {
		return nil, nil, market.ErrAuctionNoBids
	}
	return tables, a, nil
}

func (im *contract) claimSeller(ac chain.ApplyContext, data interface{}) error {
	p := data.(*market.AuctionRef)
	c := ac.Ctx()

	tables, a, err := im.finished(ac, p.AuctionId)
	if err != nil {
		return err
	}
	if err := ac.RequireAuth(a.Seller); err != nil {
		return err
	}
	if a.ClaimedBySeller {
		return market.ErrAlreadyClaimed
	}

	payout, err := market.SplitPayout(a.CurrentBid.Amount, im.cfg.MakerFee, im.cfg.TakerFee, a.CollectionFee)
	if err != nil {
		return err
	}
	col, err := im.assets(ac.Store()).FindCollection(c, a.CollectionName)
	if err != nil {
		return err
	}

	sym := a.CurrentBid.Symbol
	if err := tables.AddBalance(c, a.MakerMarketplace, domain.NewQuantity(payout.Maker, sym)); err != nil {
		return err
	}
	if err := tables.AddBalance(c, a.TakerMarketplace, domain.NewQuantity(payout.Taker, sym)); err != nil {
		return err
	}
	if err := tables.AddBalance(c, col.Author, domain.NewQuantity(payout.Collection, sym)); err != nil {
		return err
	}
	if err := tables.AddBalance(c, a.Seller, domain.NewQuantity(payout.Seller, sym)); err != nil {
		return err
	}

	a.ClaimedBySeller = true
	return im.settle(ac, tables, a)
}

func (im *contract) claimBuyer(ac chain.ApplyContext, data interface{}) error {
	p := data.(*market.AuctionRef)

	tables, a, err := im.finished(ac, p.AuctionId)
	if err != nil {
		return err
	}
	if err := ac.RequireAuth(a.CurrentBidder); err != nil {
		return err
	}
	if a.ClaimedByBuyer {
		return market.ErrAlreadyClaimed
	}
	if err := ac.SendInline(asset.TransferAction(im.cfg.AssetsContract, im.cfg.Self, a.CurrentBidder, a.AssetIds, memoAuctionWon)); err != nil {
		return err
	}

	a.ClaimedByBuyer = true
	return im.settle(ac, tables, a)
}

// settle erases an auction once both sides claimed.
func (im *contract) settle(ac chain.ApplyContext, tables *Tables, a *market.Auction) error {
	if a.ClaimedBySeller && a.ClaimedByBuyer {
		return tables.DelAuction(ac.Ctx(), a.AuctionId)
	}
	return tables.PutAuction(ac.Ctx(), a)
}

func (im *contract) cancel(ac chain.ApplyContext, data interface{}) error {
	p := data.(*market.AuctionRef)
	c := ac.Ctx()

	tables := NewTables(im.cfg.Self, ac.Store())
	a, err := tables.FindAuction(c, p.AuctionId)
	if err == domain.ErrNotFound {
		return market.ErrAuctionNotFound
	} else if err != nil {
		return err
	}
	if err := ac.RequireAuth(a.Seller); err != nil {
		return err
	}
	if a.HasBids() {
		return market.ErrAuctionHasBids
	}

	if err := tables.DelAuction(c, a.AuctionId); err != nil {
		return err
	}
	if a.AssetsTransferred {
		return ac.SendInline(asset.TransferAction(im.cfg.AssetsContract, im.cfg.Self, a.Seller, a.AssetIds, memoCancelled))
	}
	return nil
}

func (im *contract) withdraw(ac chain.ApplyContext, data interface{}) error {
	p := data.(*market.Withdraw)

	if err := ac.RequireAuth(p.Owner); err != nil {
		return err
	}
	if p.TokenToWithdraw.Amount <= 0 {
		return token.ErrNonPositive
	}
	con, ok := im.tokenContract(p.TokenToWithdraw.Symbol)
	if !ok {
		return market.ErrUnsupportedToken
	}

	if err := NewTables(im.cfg.Self, ac.Store()).SubBalance(ac.Ctx(), p.Owner, p.TokenToWithdraw); err != nil {
		return err
	}
	return ac.SendInline(token.TransferAction(con, im.cfg.Self, p.Owner, p.TokenToWithdraw, memoWithdrawal))
}

func sameAssets(a, b []domain.AssetId) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
