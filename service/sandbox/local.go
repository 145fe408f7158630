package sandbox

import (
	"time"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/auctionhost"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/token"
	svcchain "github.com/x-xyz/spotmarket/service/chain"
	"github.com/x-xyz/spotmarket/service/kvstore"
	"github.com/x-xyz/spotmarket/service/nftassets"
)

// DefaultCfg is a complete configuration for a local chain priced in 4,XPR.
func DefaultCfg() Cfg {
	return Cfg{
		Accounts: Accounts{
			Assets:     "atomicassets",
			Token:      "eosio.token",
			Market:     "atomicmarket",
			Oracle:     "oracles",
			Registry:   "registry",
			Gatekeeper: "spotgate",
			Host:       "spothost",
			Finance:    "finance",
		},
		Symbol:    domain.Symbol{Code: "XPR", Precision: 4},
		MaxSupply: 1000000000000000,
		FeedIndex: 3,
		FeedName:  "XPR/USD",
		FeedValue: 0.0007857865,

		SpotCollection:    "spotspotspot",
		SpotCollectionFee: 0.15,
		GoldSpotOwner:     "spothost",

		Market: MarketCfg{
			MakerFee:    0.01,
			TakerFee:    0.01,
			MaxDuration: 30 * domain.OneDay,
		},
		Gatekeeper: GatekeeperGenesis{
			SilverPromoDuration: domain.OneDay,
			GoldPromoDuration:   domain.OneWeek,
		},
		Host: HostGenesis{
			GoldStartPriceUsd:       30,
			SilverStartPriceUsd:     5,
			SilverReAuctionDuration: 2 * domain.OneDay,
		},
	}
}

// NewLocal deploys onto a fresh memory backed engine and runs genesis.
// clock defaults to time.Now.
func NewLocal(c ctx.Ctx, cfg *Cfg, clock func() time.Time) (chain.Engine, *Sandbox, error) {
	engine := svcchain.NewEngine(&svcchain.EngineCfg{
		Backend: kvstore.NewMemory(),
		Clock:   clock,
	})
	sb, err := New(engine, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := sb.Genesis(c); err != nil {
		return nil, nil, err
	}
	return engine, sb, nil
}

// Fund sends tokens from the token account to owner.
func (im *Sandbox) Fund(c ctx.Ctx, owner domain.Name, amount int64) error {
	acc := im.cfg.Accounts
	_, err := im.engine.PushTransaction(c,
		token.TransferAction(acc.Token, acc.Token, owner, domain.NewQuantity(amount, im.cfg.Symbol), "fund"),
	)
	return err
}

// MintSilverSpot has the host mint a free silver spot to owner and returns its id.
func (im *Sandbox) MintSilverSpot(c ctx.Ctx, owner domain.Name) (domain.AssetId, error) {
	acc := im.cfg.Accounts
	if _, err := im.engine.PushTransaction(c,
		chain.NewAction(acc.Host, auctionhost.ActMintFreeSpot, acc.Host, auctionhost.MintFreeSpot{Recipient: owner, Memo: "sandbox"}),
	); err != nil {
		return 0, err
	}

	var id domain.AssetId
	err := im.engine.Read(c, func(s domain.Store) error {
		a, err := nftassets.NewTables(acc.Assets, s).LastAsset(c, owner)
		if err != nil {
			return err
		}
		id = a.AssetId
		return nil
	})
	return id, err
}
