// Package sandbox deploys the gatekeeper, the auction host and the in-process
// collaborators they talk to onto one engine, and seeds the genesis state.
package sandbox

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/asset"
	"github.com/x-xyz/spotmarket/domain/auctionhost"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/oracle"
	"github.com/x-xyz/spotmarket/domain/promotion"
	"github.com/x-xyz/spotmarket/domain/token"
	"github.com/x-xyz/spotmarket/service/nftassets"
	"github.com/x-xyz/spotmarket/service/nftmarket"
	"github.com/x-xyz/spotmarket/service/oracles"
	"github.com/x-xyz/spotmarket/service/registry"
	"github.com/x-xyz/spotmarket/service/xtoken"
	hostUsecase "github.com/x-xyz/spotmarket/stores/auctionhost/usecase"
	promotionRepository "github.com/x-xyz/spotmarket/stores/promotion/repository"
	promotionUsecase "github.com/x-xyz/spotmarket/stores/promotion/usecase"
)

type Accounts struct {
	Assets     domain.Name `mapstructure:"assets"`
	Token      domain.Name `mapstructure:"token"`
	Market     domain.Name `mapstructure:"market"`
	Oracle     domain.Name `mapstructure:"oracle"`
	Registry   domain.Name `mapstructure:"registry"`
	Gatekeeper domain.Name `mapstructure:"gatekeeper"`
	Host       domain.Name `mapstructure:"host"`
	Finance    domain.Name `mapstructure:"finance"`
}

type MarketCfg struct {
	MakerFee    float64        `mapstructure:"makerFee"`
	TakerFee    float64        `mapstructure:"takerFee"`
	MaxDuration domain.Seconds `mapstructure:"maxDuration"`
}

type GatekeeperGenesis struct {
	SilverPromoDuration domain.Seconds `mapstructure:"silverPromoDuration"`
	GoldPromoDuration   domain.Seconds `mapstructure:"goldPromoDuration"`
	SilverAuctionPromos bool           `mapstructure:"silverAuctionPromos"`
}

type HostGenesis struct {
	GoldStartPriceUsd       uint32         `mapstructure:"goldStartPriceUsd"`
	SilverStartPriceUsd     uint32         `mapstructure:"silverStartPriceUsd"`
	SilverReAuctionDuration domain.Seconds `mapstructure:"silverReAuctionDuration"`
	MakerMarketplace        domain.Name    `mapstructure:"makerMarketplace"`
}

type Cfg struct {
	Accounts Accounts      `mapstructure:"accounts"`
	Symbol   domain.Symbol `mapstructure:"symbol"`
	// MaxSupply is the token supply, all of it issued to the token account.
	MaxSupply int64   `mapstructure:"maxSupply"`
	FeedIndex uint64  `mapstructure:"feedIndex"`
	FeedName  string  `mapstructure:"feedName"`
	FeedValue float64 `mapstructure:"feedValue"`

	SpotCollection    domain.Name `mapstructure:"spotCollection"`
	SpotCollectionFee float64     `mapstructure:"spotCollectionFee"`
	GoldSpotOwner     domain.Name `mapstructure:"goldSpotOwner"`

	Market     MarketCfg         `mapstructure:"market"`
	Gatekeeper GatekeeperGenesis `mapstructure:"gatekeeper"`
	Host       HostGenesis       `mapstructure:"host"`
}

// Sandbox holds the deployed engine and the configurations the usecases need.
type Sandbox struct {
	cfg    Cfg
	engine chain.Engine

	Gatekeeper *promotionUsecase.GatekeeperCfg
	Host       *hostUsecase.HostCfg
}

// New deploys every contract onto engine. Host auctions name the gatekeeper as
// maker marketplace unless configured otherwise.
func New(engine chain.Engine, cfg *Cfg) (*Sandbox, error) {
	acc := cfg.Accounts
	maker := cfg.Host.MakerMarketplace
	if maker == "" {
		maker = acc.Gatekeeper
	}
	assets := nftassets.NewReaderFactory(acc.Assets)
	markets := nftmarket.NewReaderFactory(acc.Market)

	gk := &promotionUsecase.GatekeeperCfg{
		Self:           acc.Gatekeeper,
		AssetsContract: acc.Assets,
		MarketContract: acc.Market,
		Host:           acc.Host,
		Finance:        acc.Finance,
		Genesis: promotion.Globals{
			SpotCollection:      cfg.SpotCollection,
			SilverPromoDuration: cfg.Gatekeeper.SilverPromoDuration,
			GoldPromoDuration:   cfg.Gatekeeper.GoldPromoDuration,
			SilverAuctionPromos: cfg.Gatekeeper.SilverAuctionPromos,
		},
		Assets:   assets,
		Market:   markets,
		Registry: registry.NewReaderFactory(acc.Registry),
	}
	host := &hostUsecase.HostCfg{
		Self:             acc.Host,
		AssetsContract:   acc.Assets,
		MarketContract:   acc.Market,
		Gatekeeper:       acc.Gatekeeper,
		Finance:          acc.Finance,
		MakerMarketplace: maker,
		Symbol:           cfg.Symbol,
		FeedName:         cfg.FeedName,
		Genesis: auctionhost.Globals{
			SilverReAuctionDuration: cfg.Host.SilverReAuctionDuration,
			OracleFeedIndex:         cfg.FeedIndex,
			GoldStartPriceUsd:       cfg.Host.GoldStartPriceUsd,
			SilverStartPriceUsd:     cfg.Host.SilverStartPriceUsd,
		},
		Assets: assets,
		Market: markets,
		Oracle: oracles.NewReaderFactory(acc.Oracle),
		Spots:  promotionRepository.NewGlobalsFactory(acc.Gatekeeper),
	}

	err := engine.Deploy(
		nftassets.New(acc.Assets),
		xtoken.New(acc.Token),
		nftmarket.New(&nftmarket.Cfg{
			Self:           acc.Market,
			AssetsContract: acc.Assets,
			Tokens:         []nftmarket.SupportedToken{{Contract: acc.Token, Symbol: cfg.Symbol}},
			MakerFee:       cfg.Market.MakerFee,
			TakerFee:       cfg.Market.TakerFee,
			MaxDuration:    cfg.Market.MaxDuration,
		}, assets),
		oracles.New(acc.Oracle),
		registry.New(acc.Registry),
		promotionUsecase.NewGatekeeper(gk),
		hostUsecase.NewHost(host),
	)
	if err != nil {
		return nil, err
	}

	return &Sandbox{
		cfg:        *cfg,
		engine:     engine,
		Gatekeeper: gk,
		Host:       host,
	}, nil
}

// Seeded reports whether the gatekeeper globals were written.
func (im *Sandbox) Seeded(c ctx.Ctx) (bool, error) {
	seeded := false
	err := im.engine.Read(c, func(s domain.Store) error {
		_, err := promotionRepository.NewGlobals(im.cfg.Accounts.Gatekeeper, s).Get(c)
		if err == domain.ErrNotFound {
			return nil
		} else if err != nil {
			return err
		}
		seeded = true
		return nil
	})
	return seeded, err
}

// Genesis creates the token, the spot collection with its silver and gold
// templates, the gold spot and the price feed, then configures gatekeeper and
// host. It does nothing on a seeded store.
func (im *Sandbox) Genesis(c ctx.Ctx) error {
	seeded, err := im.Seeded(c)
	if err != nil {
		c.WithField("err", err).Error("Seeded failed")
		return err
	} else if seeded {
		c.Info("store already seeded")
		return nil
	}

	cfg := im.cfg
	acc := cfg.Accounts
	supply := domain.NewQuantity(cfg.MaxSupply, cfg.Symbol)

	if _, err := im.engine.PushTransaction(c,
		chain.NewAction(acc.Token, token.ActCreate, acc.Token, token.Create{Issuer: acc.Token, MaximumSupply: supply}),
		chain.NewAction(acc.Token, token.ActIssue, acc.Token, token.Issue{To: acc.Token, Quantity: supply, Memo: "genesis"}),
		chain.NewAction(acc.Assets, asset.ActCreateCol, acc.Host, asset.CreateCollection{
			Author:     acc.Host,
			Collection: cfg.SpotCollection,
			MarketFee:  cfg.SpotCollectionFee,
		}),
		chain.NewAction(acc.Assets, asset.ActCreateTemplate, acc.Host, asset.CreateTemplate{
			AuthorizedCreator: acc.Host,
			Collection:        cfg.SpotCollection,
		}),
		chain.NewAction(acc.Assets, asset.ActCreateTemplate, acc.Host, asset.CreateTemplate{
			AuthorizedCreator: acc.Host,
			Collection:        cfg.SpotCollection,
			MaxSupply:         1,
		}),
		chain.NewAction(acc.Oracle, oracle.ActSetFeed, acc.Oracle, oracle.SetFeed{Index: cfg.FeedIndex, Name: cfg.FeedName}),
		chain.NewAction(acc.Oracle, oracle.ActFeed, acc.Oracle, oracle.Publish{Account: acc.Oracle, FeedIndex: cfg.FeedIndex, Value: cfg.FeedValue}),
	); err != nil {
		c.WithField("err", err).Error("genesis collaborators failed")
		return err
	}

	// templates were created back to back, silver first
	var gold *asset.Asset
	goldTemplate, err := im.lastTemplate(c)
	if err != nil {
		c.WithField("err", err).Error("lastTemplate failed")
		return err
	}
	silver := goldTemplate - 1
	if _, err := im.engine.PushTransaction(c,
		asset.MintAction(acc.Assets, acc.Host, cfg.SpotCollection, goldTemplate, cfg.GoldSpotOwner),
	); err != nil {
		c.WithField("err", err).Error("gold spot mint failed")
		return err
	}
	if err := im.engine.Read(c, func(s domain.Store) error {
		var err error
		gold, err = nftassets.NewTables(acc.Assets, s).LastAsset(c, cfg.GoldSpotOwner)
		return err
	}); err != nil {
		c.WithField("err", err).Error("gold spot lookup failed")
		return err
	}

	if _, err := im.engine.PushTransaction(c,
		chain.NewAction(acc.Gatekeeper, promotion.ActSetSpots, acc.Gatekeeper, promotion.SetSpots{
			GoldSpotId:           gold.AssetId,
			SilverSpotTemplateId: silver,
		}),
		chain.NewAction(acc.Gatekeeper, promotion.ActSetPromoDuration, acc.Gatekeeper, promotion.SetPromoDuration{
			Silver: cfg.Gatekeeper.SilverPromoDuration,
			Gold:   cfg.Gatekeeper.GoldPromoDuration,
		}),
		chain.NewAction(acc.Gatekeeper, promotion.ActSetAuctionPromos, acc.Gatekeeper, promotion.SetAuctionPromos{
			Enabled: cfg.Gatekeeper.SilverAuctionPromos,
		}),
		chain.NewAction(acc.Host, auctionhost.ActSetStartPrice, acc.Host, auctionhost.SetStartPrice{
			GoldUsd:   cfg.Host.GoldStartPriceUsd,
			SilverUsd: cfg.Host.SilverStartPriceUsd,
		}),
		chain.NewAction(acc.Host, auctionhost.ActSetReAuctDuration, acc.Host, auctionhost.SetReAuctDuration{
			Duration: cfg.Host.SilverReAuctionDuration,
		}),
	); err != nil {
		c.WithField("err", err).Error("genesis configuration failed")
		return err
	}

	c.WithFields(log.Fields{
		"goldSpotId":     gold.AssetId,
		"silverTemplate": silver,
	}).Info("genesis done")
	return nil
}

func (im *Sandbox) lastTemplate(c ctx.Ctx) (domain.TemplateId, error) {
	var id domain.TemplateId
	err := im.engine.Read(c, func(s domain.Store) error {
		var err error
		id, err = nftassets.NewTables(im.cfg.Accounts.Assets, s).LastTemplateId(c)
		return err
	})
	return id, err
}
