package auctionhost

import (
	"strconv"
	"strings"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
)

const (
	ActSetStartPrice      domain.ActionName = "setstartpric"
	ActSetReAuctDuration  domain.ActionName = "setreauctdur"
	ActClaimMarketBalance domain.ActionName = "clmktbalance"
	ActClaimAuctionIncome domain.ActionName = "claimauctinc"
	ActCancelAuction      domain.ActionName = "cancelauct"
	ActMintFreeSpot       domain.ActionName = "mintfreespot"
	ActMintAuctionSpot    domain.ActionName = "mintauctspot"
	ActAuctionLatest      domain.ActionName = "auctlatest"

	MemoBurnMintAuction = "burn_mint_auction"
	MemoAuction         = "auction"
	// MemoProceeds goes with every forward to the finance sink.
	MemoProceeds = "nft sale proceeds & royalties"
)

// Globals is the host singleton.
type Globals struct {
	SilverReAuctionDuration domain.Seconds `json:"silverReAuctDuration"`
	OracleFeedIndex         uint64         `json:"oraclesFeedIndexXprUsd"`
	GoldStartPriceUsd       uint32         `json:"goldAuctStartPriceUsd"`
	SilverStartPriceUsd     uint32         `json:"silverAuctStartPriceUsd"`
}

type InstructionKind string

const (
	InstructionBurnMintAuction InstructionKind = "burn_mint_auction"
	InstructionAuction         InstructionKind = "auction"
)

// Instruction is what the gatekeeper asks the host to do with a forwarded spot.
type Instruction struct {
	Kind     InstructionKind
	Duration domain.Seconds
}

// ParseInstruction reads "burn_mint_auction" or "auction <seconds>".
func ParseInstruction(memo string) (*Instruction, error) {
	if memo == MemoBurnMintAuction {
		return &Instruction{Kind: InstructionBurnMintAuction}, nil
	}
	if !strings.HasPrefix(memo, MemoAuction) {
		return nil, ErrInvalidAction
	}
	words := strings.Split(memo, " ")
	if len(words) != 2 || words[0] != MemoAuction {
		return nil, ErrInvalidMemo
	}
	d, err := strconv.ParseUint(words[1], 10, 32)
	if err != nil || d == 0 {
		return nil, ErrInvalidMemo
	}
	return &Instruction{Kind: InstructionAuction, Duration: domain.Seconds(d)}, nil
}

// AuctionMemo encodes a direct auction instruction.
func AuctionMemo(d domain.Seconds) string {
	return MemoAuction + " " + strconv.FormatUint(uint64(d), 10)
}

type SetStartPrice struct {
	GoldUsd   uint32 `json:"goldUsd" validate:"required,gt=0"`
	SilverUsd uint32 `json:"silverUsd" validate:"required,gt=0"`
}

type SetReAuctDuration struct {
	Duration domain.Seconds `json:"duration" validate:"required"`
}

type AuctionRef struct {
	AuctionId domain.AuctionId `json:"auctionId"`
}

type MintFreeSpot struct {
	Recipient domain.Name `json:"recipient" validate:"required,name"`
	Memo      string      `json:"memo"`
}

type AuctionDuration struct {
	Duration domain.Seconds `json:"duration" validate:"required"`
}

type GlobalsRepo interface {
	Get(c ctx.Ctx) (*Globals, error)
	Put(c ctx.Ctx, g *Globals) error
}

// Usecase pushes host actions and reads its tables.
type Usecase interface {
	GetGlobals(c ctx.Ctx) (*Globals, error)
	// QuoteStartPrices converts the configured USD prices at the current feed value.
	QuoteStartPrices(c ctx.Ctx) (gold, silver domain.Quantity, err error)

	SetStartPrice(c ctx.Ctx, actor domain.Name, p SetStartPrice) (*chain.Receipt, error)
	SetReAuctDuration(c ctx.Ctx, actor domain.Name, d domain.Seconds) (*chain.Receipt, error)
	ClaimMarketBalance(c ctx.Ctx, actor domain.Name) (*chain.Receipt, error)
	ClaimAuctionIncome(c ctx.Ctx, actor domain.Name, id domain.AuctionId) (*chain.Receipt, error)
	CancelAuction(c ctx.Ctx, actor domain.Name, id domain.AuctionId) (*chain.Receipt, error)
	MintFreeSpot(c ctx.Ctx, actor domain.Name, p MintFreeSpot) (*chain.Receipt, error)
	MintAuctionSpot(c ctx.Ctx, actor domain.Name, d domain.Seconds) (*chain.Receipt, error)
}
