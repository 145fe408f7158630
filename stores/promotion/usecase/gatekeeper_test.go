package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/asset"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/market"
	"github.com/x-xyz/spotmarket/domain/promotion"
	"github.com/x-xyz/spotmarket/domain/registry"
	"github.com/x-xyz/spotmarket/domain/token"
	"github.com/x-xyz/spotmarket/service/nftassets"
	"github.com/x-xyz/spotmarket/service/sandbox"
	"github.com/x-xyz/spotmarket/service/xtoken"
	"github.com/x-xyz/spotmarket/stores/promotion/usecase"
)

var mockCtx = ctx.Background()

// bob authors every test collection, template ids follow the spot templates.
const (
	goodTemplate  domain.TemplateId = 3
	plainTemplate domain.TemplateId = 4
	blackTemplate domain.TemplateId = 5
)

type testsuite struct {
	suite.Suite

	now    time.Time
	cfg    sandbox.Cfg
	engine chain.Engine
	sb     *sandbox.Sandbox
	gold   domain.AssetId
	uc     promotion.Usecase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.now = time.Unix(1672531200, 0)
	t.cfg = sandbox.DefaultCfg()
	t.cfg.GoldSpotOwner = "alice"

	engine, sb, err := sandbox.NewLocal(mockCtx, &t.cfg, func() time.Time { return t.now })
	t.Require().NoError(err)
	t.engine = engine
	t.sb = sb
	t.uc = usecase.NewPromotion(engine, sb.Gatekeeper)

	g, err := t.uc.GetGlobals(mockCtx)
	t.Require().NoError(err)
	t.gold = g.GoldSpotId

	acc := t.cfg.Accounts
	createCol := func(name domain.Name) chain.Action {
		return chain.NewAction(acc.Assets, asset.ActCreateCol, "bob", asset.CreateCollection{Author: "bob", Collection: name})
	}
	mark := func(act domain.ActionName, name domain.Name) chain.Action {
		return chain.NewAction(acc.Registry, act, acc.Registry, registry.Mark{Collection: name})
	}
	t.Require().NoError(t.push(
		createCol("goodcol"),
		createCol("plaincol"),
		createCol("shieldcol"),
		createCol("blackcol"),
		chain.NewAction(acc.Assets, asset.ActCreateTemplate, "bob", asset.CreateTemplate{AuthorizedCreator: "bob", Collection: "goodcol"}),
		chain.NewAction(acc.Assets, asset.ActCreateTemplate, "bob", asset.CreateTemplate{AuthorizedCreator: "bob", Collection: "plaincol"}),
		chain.NewAction(acc.Assets, asset.ActCreateTemplate, "bob", asset.CreateTemplate{AuthorizedCreator: "bob", Collection: "blackcol"}),
		mark(registry.ActAddVerified, "goodcol"),
		mark(registry.ActAddShielding, "shieldcol"),
		mark(registry.ActAddVerified, "blackcol"),
		mark(registry.ActAddBlacklist, "blackcol"),
	))
}

func (t *testsuite) push(actions ...chain.Action) error {
	_, err := t.engine.PushTransaction(mockCtx, actions...)
	return err
}

func (t *testsuite) send(from domain.Name, ids []domain.AssetId, memo string) error {
	return t.push(asset.TransferAction(t.cfg.Accounts.Assets, from, t.cfg.Accounts.Gatekeeper, ids, memo))
}

func (t *testsuite) mint(collection domain.Name, template domain.TemplateId) domain.AssetId {
	acc := t.cfg.Accounts
	t.Require().NoError(t.push(asset.MintAction(acc.Assets, "bob", collection, template, "bob")))

	var id domain.AssetId
	t.Require().NoError(t.engine.Read(mockCtx, func(s domain.Store) error {
		a, err := nftassets.NewTables(acc.Assets, s).LastAsset(mockCtx, "bob")
		if err != nil {
			return err
		}
		id = a.AssetId
		return nil
	}))
	return id
}

// announce lists a fresh asset of collection. The escrow transfer is optional.
func (t *testsuite) announce(collection domain.Name, template domain.TemplateId, d domain.Seconds, escrow bool) domain.AuctionId {
	acc := t.cfg.Accounts
	ids := []domain.AssetId{t.mint(collection, template)}
	actions := []chain.Action{
		market.AnnounceAuctionAction(acc.Market, "bob", ids, domain.NewQuantity(10000, t.cfg.Symbol), d, ""),
	}
	if escrow {
		actions = append(actions, asset.TransferAction(acc.Assets, "bob", acc.Market, ids, market.MemoAuction))
	}
	t.Require().NoError(t.push(actions...))

	var id domain.AuctionId
	t.Require().NoError(t.engine.Read(mockCtx, func(s domain.Store) error {
		for i := domain.AuctionId(1); ; i++ {
			a, err := t.sb.Gatekeeper.Market(s).FindAuction(mockCtx, i)
			if err == domain.ErrNotFound {
				return nil
			} else if err != nil {
				return err
			}
			if a.AssetIds[0] == ids[0] {
				id = a.AuctionId
			}
		}
	}))
	t.Require().NotZero(id)
	return id
}

func (t *testsuite) balance(owner domain.Name) int64 {
	var q domain.Quantity
	t.Require().NoError(t.engine.Read(mockCtx, func(s domain.Store) error {
		var err error
		q, err = xtoken.NewTables(t.cfg.Accounts.Token, s).Balance(mockCtx, owner, t.cfg.Symbol)
		return err
	}))
	return q.Amount
}

func (t *testsuite) TestRejectsMultipleSpots() {
	silver, err := t.sb.MintSilverSpot(mockCtx, "alice")
	t.Require().NoError(err)

	err = t.send("alice", []domain.AssetId{t.gold, silver}, "collection goodcol")
	t.ErrorIs(err, promotion.ErrOnlyOneSpot)
}

func (t *testsuite) TestRejectsBadMemo() {
	tests := []struct {
		memo string
		err  error
	}{
		{"collection", promotion.ErrInvalidMemoWords},
		{"collection goodcol now", promotion.ErrInvalidMemoWords},
		{"", promotion.ErrInvalidMemoWords},
		{"promote goodcol", promotion.ErrInvalidPromotionType},
		{"Collection goodcol", promotion.ErrInvalidPromotionType},
	}
	for _, tt := range tests {
		t.ErrorIs(t.send("alice", []domain.AssetId{t.gold}, tt.memo), tt.err, tt.memo)
	}
}

func (t *testsuite) TestRejectsForeignNft() {
	id := t.mint("goodcol", goodTemplate)
	err := t.send("bob", []domain.AssetId{id}, "collection goodcol")
	t.ErrorIs(err, promotion.ErrSilverSpotExpected)
	t.Equal("invalid nft - silver spot expected", chain.Reason(err))
}

func (t *testsuite) TestCollectionEligibility() {
	tests := []struct {
		collection string
		err        error
	}{
		{"nosuchcol", promotion.ErrCollectionNotExists},
		{"blackcol", promotion.ErrCollectionBlacklisted},
		{"plaincol", promotion.ErrCollectionNotEligible},
	}
	for _, tt := range tests {
		t.ErrorIs(t.send("alice", []domain.AssetId{t.gold}, "collection "+tt.collection), tt.err, tt.collection)
	}

	// shielded is as good as verified
	t.NoError(t.send("alice", []domain.AssetId{t.gold}, "collection shieldcol"))
	g, err := t.uc.GetGlobals(mockCtx)
	t.NoError(err)
	t.EqualValues(1, g.GoldPromoCount)
	t.EqualValues(0, g.SilverPromoCount)
}

func (t *testsuite) TestAuctionChecks() {
	pending := t.announce("goodcol", goodTemplate, 2*domain.OneHour, false)
	plain := t.announce("plaincol", plainTemplate, 2*domain.OneHour, true)
	black := t.announce("blackcol", blackTemplate, 2*domain.OneHour, true)

	tests := []struct {
		target string
		err    error
	}{
		{"abc", promotion.ErrAuctionNotExists},
		{"-1", promotion.ErrAuctionNotExists},
		{"999", promotion.ErrAuctionNotExists},
		{pending.String(), promotion.ErrAuctionNotStarted},
		{plain.String(), promotion.ErrCollectionNotEligible},
		{black.String(), promotion.ErrCollectionBlacklisted},
	}
	for _, tt := range tests {
		t.ErrorIs(t.send("alice", []domain.AssetId{t.gold}, "auction "+tt.target), tt.err, tt.target)
	}
}

func (t *testsuite) TestAuctionSafetyMargin() {
	exact := t.announce("goodcol", goodTemplate, domain.OneHour, true)
	t.NoError(t.send("alice", []domain.AssetId{t.gold}, "auction "+exact.String()))

	short := t.announce("goodcol", goodTemplate, domain.OneHour-1, true)
	spot, err := t.sb.MintSilverSpot(mockCtx, "alice")
	t.Require().NoError(err)
	t.Require().NoError(t.push(chain.NewAction(t.cfg.Accounts.Gatekeeper, promotion.ActSetAuctionPromos, t.cfg.Accounts.Gatekeeper, promotion.SetAuctionPromos{Enabled: true})))
	t.ErrorIs(t.send("alice", []domain.AssetId{spot}, "auction "+short.String()), promotion.ErrAuctionExpiring)
}

func (t *testsuite) TestSilverPromotionRow() {
	_, err := t.uc.FindSilverPromotion(mockCtx, "goodcol")
	t.Equal(domain.ErrNotFound, err)

	spot, err := t.sb.MintSilverSpot(mockCtx, "alice")
	t.Require().NoError(err)
	t.Require().NoError(t.send("alice", []domain.AssetId{spot}, "collection goodcol"))

	row, err := t.uc.FindSilverPromotion(mockCtx, "goodcol")
	t.NoError(err)
	t.Equal(&promotion.SilverSpotPromotion{
		Collection:   "goodcol",
		PromoCount:   1,
		LastPromoEnd: t.now.Unix() + int64(domain.OneDay),
	}, row)

	// the boundary second still counts as running
	t.now = t.now.Add(time.Duration(domain.OneDay-1) * time.Second)
	spot, err = t.sb.MintSilverSpot(mockCtx, "alice")
	t.Require().NoError(err)
	t.ErrorIs(t.send("alice", []domain.AssetId{spot}, "collection goodcol"), promotion.ErrAlreadyPromoted)

	// other collections are independent
	t.NoError(t.send("alice", []domain.AssetId{spot}, "collection shieldcol"))

	rows, err := t.uc.FindSilverPromotions(mockCtx)
	t.NoError(err)
	t.Len(rows, 2)

	// once the promotion ended the row is reused
	t.now = t.now.Add(time.Second)
	spot, err = t.sb.MintSilverSpot(mockCtx, "alice")
	t.Require().NoError(err)
	t.Require().NoError(t.send("alice", []domain.AssetId{spot}, "collection goodcol"))

	row, err = t.uc.FindSilverPromotion(mockCtx, "goodcol")
	t.NoError(err)
	t.Equal(&promotion.SilverSpotPromotion{
		Collection:   "goodcol",
		PromoCount:   2,
		LastPromoEnd: t.now.Unix() + int64(domain.OneDay),
	}, row)

	rows, err = t.uc.FindSilverPromotions(mockCtx)
	t.NoError(err)
	t.Len(rows, 2)
}

func (t *testsuite) TestSetters() {
	self := t.cfg.Accounts.Gatekeeper

	_, err := t.uc.SetPromoDuration(mockCtx, self, promotion.SetPromoDuration{Silver: 0, Gold: domain.OneDay})
	t.ErrorIs(err, promotion.ErrInvalidDuration)
	_, err = t.uc.SetPromoDuration(mockCtx, "mallory", promotion.SetPromoDuration{Silver: domain.OneDay, Gold: domain.OneDay})
	t.ErrorIs(err, domain.ErrMissingAuthority)
	_, err = t.uc.SetSpots(mockCtx, "mallory", promotion.SetSpots{GoldSpotId: 1, SilverSpotTemplateId: 1})
	t.ErrorIs(err, domain.ErrMissingAuthority)

	_, err = t.uc.SetPromoDuration(mockCtx, self, promotion.SetPromoDuration{Silver: 2 * domain.OneDay, Gold: domain.TwoWeeks})
	t.NoError(err)
	_, err = t.uc.SetAuctionPromos(mockCtx, self, true)
	t.NoError(err)

	g, err := t.uc.GetGlobals(mockCtx)
	t.NoError(err)
	t.Equal(2*domain.OneDay, g.SilverPromoDuration)
	t.Equal(domain.TwoWeeks, g.GoldPromoDuration)
	t.True(g.SilverAuctionPromos)
	t.Equal(t.gold, g.GoldSpotId)
}

func (t *testsuite) TestLogActionsNeedSelf() {
	acc := t.cfg.Accounts
	err := t.push(chain.NewAction(acc.Gatekeeper, promotion.ActLogCollection, "mallory", promotion.LogCollectionPromotion{Collection: "goodcol"}))
	t.ErrorIs(err, domain.ErrMissingAuthority)
}

func (t *testsuite) TestClaimMarketBalance() {
	acc := t.cfg.Accounts

	_, err := t.uc.ClaimMarketBalance(mockCtx, "anyone")
	t.ErrorIs(err, promotion.ErrMarketBalanceNotFound)

	t.Require().NoError(t.sb.Fund(mockCtx, acc.Gatekeeper, 50000))
	t.Require().NoError(t.push(token.TransferAction(acc.Token, acc.Gatekeeper, acc.Market, domain.NewQuantity(50000, t.cfg.Symbol), market.MemoDeposit)))
	t.Equal(int64(0), t.balance(acc.Gatekeeper))

	_, err = t.uc.ClaimMarketBalance(mockCtx, "anyone")
	t.NoError(err)
	t.Equal(int64(0), t.balance(acc.Gatekeeper))
	t.Equal(int64(50000), t.balance(acc.Finance))
}
