package promotion

import (
	"strings"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
)

const (
	ActSetSpots         domain.ActionName = "setspots"
	ActSetPromoDuration domain.ActionName = "setpromodur"
	ActSetAuctionPromos domain.ActionName = "setauctpromo"
	ActClaimBalance     domain.ActionName = "clmktbalance"
	ActLogCollection    domain.ActionName = "logcolpromo"
	ActLogAuction       domain.ActionName = "logauctpromo"
)

type PromoType string

const (
	PromoTypeAuction    PromoType = "auction"
	PromoTypeCollection PromoType = "collection"
)

type SpotType string

const (
	SpotTypeGold   SpotType = "gold"
	SpotTypeSilver SpotType = "silver"
)

// Globals is the gatekeeper singleton.
type Globals struct {
	SpotCollection       domain.Name       `json:"spotCollection"`
	GoldSpotId           domain.AssetId    `json:"goldSpotId"`
	SilverSpotTemplateId domain.TemplateId `json:"silverSpotTemplateId"`
	SilverPromoDuration  domain.Seconds    `json:"silverPromoDuration"`
	GoldPromoDuration    domain.Seconds    `json:"goldPromoDuration"`
	SilverPromoCount     uint64            `json:"silverPromoCount"`
	GoldPromoCount       uint64            `json:"goldPromoCount"`
	// SilverAuctionPromos allows silver spots to promote auctions.
	SilverAuctionPromos bool `json:"silverAuctionPromos"`
}

// PromoDuration is the promotion length of a tier.
func (g *Globals) PromoDuration(spot SpotType) domain.Seconds {
	if spot == SpotTypeGold {
		return g.GoldPromoDuration
	}
	return g.SilverPromoDuration
}

// SilverSpotPromotion is keyed by collection and never deleted.
type SilverSpotPromotion struct {
	Collection   domain.Name `json:"collection"`
	PromoCount   uint64      `json:"promoCount"`
	LastPromoEnd int64       `json:"lastPromoEnd"`
}

// Active reports whether the last promotion still runs at now.
func (p *SilverSpotPromotion) Active(now int64) bool {
	return p.LastPromoEnd > now
}

// PromotionRequest is parsed from a transfer memo and never stored.
type PromotionRequest struct {
	PromoType PromoType
	Target    string
	SpotType  SpotType
}

// ParseMemo reads "<promoType> <target>".
func ParseMemo(memo string) (*PromotionRequest, error) {
	words := strings.Split(memo, " ")
	if len(words) != 2 {
		return nil, ErrInvalidMemoWords
	}
	switch t := PromoType(words[0]); t {
	case PromoTypeAuction, PromoTypeCollection:
		return &PromotionRequest{PromoType: t, Target: words[1]}, nil
	default:
		return nil, ErrInvalidPromotionType
	}
}

type SetSpots struct {
	GoldSpotId           domain.AssetId    `json:"goldSpotId"`
	SilverSpotTemplateId domain.TemplateId `json:"silverSpotTemplateId"`
}

type SetPromoDuration struct {
	Silver domain.Seconds `json:"silver"`
	Gold   domain.Seconds `json:"gold"`
}

type SetAuctionPromos struct {
	Enabled bool `json:"enabled"`
}

type LogCollectionPromotion struct {
	Collection   domain.Name `json:"collection"`
	PromotedBy   domain.Name `json:"promotedBy"`
	SpotType     SpotType    `json:"spotType"`
	PromotionEnd int64       `json:"promotionEnd"`
}

type LogAuctionPromotion struct {
	AuctionId  domain.AuctionId `json:"auctionId"`
	PromotedBy domain.Name      `json:"promotedBy"`
	SpotType   SpotType         `json:"spotType"`
}

type GlobalsRepo interface {
	Get(c ctx.Ctx) (*Globals, error)
	Put(c ctx.Ctx, g *Globals) error
}

type GlobalsRepoFactory func(s domain.Store) GlobalsRepo

type SilverPromotionRepo interface {
	FindOne(c ctx.Ctx, collection domain.Name) (*SilverSpotPromotion, error)
	FindAll(c ctx.Ctx) ([]*SilverSpotPromotion, error)
	Upsert(c ctx.Ctx, p *SilverSpotPromotion) error
}

// Usecase pushes gatekeeper actions and reads its tables.
type Usecase interface {
	GetGlobals(c ctx.Ctx) (*Globals, error)
	FindSilverPromotion(c ctx.Ctx, collection domain.Name) (*SilverSpotPromotion, error)
	FindSilverPromotions(c ctx.Ctx) ([]*SilverSpotPromotion, error)

	SetSpots(c ctx.Ctx, actor domain.Name, p SetSpots) (*chain.Receipt, error)
	SetPromoDuration(c ctx.Ctx, actor domain.Name, p SetPromoDuration) (*chain.Receipt, error)
	SetAuctionPromos(c ctx.Ctx, actor domain.Name, enabled bool) (*chain.Receipt, error)
	ClaimMarketBalance(c ctx.Ctx, actor domain.Name) (*chain.Receipt, error)
}
