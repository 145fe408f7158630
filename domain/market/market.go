package market

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
)

const (
	ActAnnounceAuction    domain.ActionName = "announceauct"
	ActAuctionBid         domain.ActionName = "auctionbid"
	ActAuctionClaimSeller domain.ActionName = "auctclaimsel"
	ActAuctionClaimBuyer  domain.ActionName = "auctclaimbuy"
	ActCancelAuction      domain.ActionName = "cancelauct"
	ActWithdraw           domain.ActionName = "withdraw"

	// MemoAuction moves announced assets into escrow.
	MemoAuction = "auction"
	// MemoDeposit credits transferred tokens to the sender's balance.
	MemoDeposit = "deposit"
)

// Auction is the market's auction record; the core reads it as a projection.
type Auction struct {
	AuctionId         domain.AuctionId `json:"auction_id"`
	Seller            domain.Name      `json:"seller"`
	AssetIds          []domain.AssetId `json:"asset_ids"`
	EndTime           int64            `json:"end_time"`
	AssetsTransferred bool             `json:"assets_transferred"`
	CurrentBid        domain.Quantity  `json:"current_bid"`
	CurrentBidder     domain.Name      `json:"current_bidder"`
	ClaimedBySeller   bool             `json:"claimed_by_seller"`
	ClaimedByBuyer    bool             `json:"claimed_by_buyer"`
	MakerMarketplace  domain.Name      `json:"maker_marketplace"`
	TakerMarketplace  domain.Name      `json:"taker_marketplace"`
	CollectionName    domain.Name      `json:"collection_name"`
	CollectionFee     float64          `json:"collection_fee"`
}

// HasBids reports whether anybody bid on the auction.
func (a *Auction) HasBids() bool {
	return a.CurrentBidder != ""
}

func (a *Auction) Ended(now int64) bool {
	return a.EndTime < now
}

// Balance is what the market holds on behalf of owner.
type Balance struct {
	Owner      domain.Name       `json:"owner"`
	Quantities []domain.Quantity `json:"quantities"`
}

type AnnounceAuction struct {
	Seller           domain.Name      `json:"seller"`
	AssetIds         []domain.AssetId `json:"asset_ids"`
	StartingBid      domain.Quantity  `json:"starting_bid"`
	Duration         domain.Seconds   `json:"duration"`
	MakerMarketplace domain.Name      `json:"maker_marketplace"`
}

type AuctionBid struct {
	Bidder           domain.Name      `json:"bidder"`
	AuctionId        domain.AuctionId `json:"auction_id"`
	Bid              domain.Quantity  `json:"bid"`
	TakerMarketplace domain.Name      `json:"taker_marketplace"`
}

type AuctionRef struct {
	AuctionId domain.AuctionId `json:"auction_id"`
}

type Withdraw struct {
	Owner           domain.Name     `json:"owner"`
	TokenToWithdraw domain.Quantity `json:"token_to_withdraw"`
}

// Reader is the read view of the market tables.
type Reader interface {
	FindAuction(c ctx.Ctx, id domain.AuctionId) (*Auction, error)
	FindBalance(c ctx.Ctx, owner domain.Name) (*Balance, error)
}

type ReaderFactory func(s domain.Store) Reader

func AnnounceAuctionAction(contract, seller domain.Name, ids []domain.AssetId, startingBid domain.Quantity, duration domain.Seconds, maker domain.Name) chain.Action {
	return chain.NewAction(contract, ActAnnounceAuction, seller, AnnounceAuction{
		Seller:           seller,
		AssetIds:         ids,
		StartingBid:      startingBid,
		Duration:         duration,
		MakerMarketplace: maker,
	})
}

func ClaimSellerAction(contract, seller domain.Name, id domain.AuctionId) chain.Action {
	return chain.NewAction(contract, ActAuctionClaimSeller, seller, AuctionRef{AuctionId: id})
}

func CancelAuctionAction(contract, seller domain.Name, id domain.AuctionId) chain.Action {
	return chain.NewAction(contract, ActCancelAuction, seller, AuctionRef{AuctionId: id})
}

func WithdrawAction(contract, owner domain.Name, q domain.Quantity) chain.Action {
	return chain.NewAction(contract, ActWithdraw, owner, Withdraw{
		Owner:           owner,
		TokenToWithdraw: q,
	})
}
