package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/database/mongoclient"
	"github.com/x-xyz/spotmarket/base/database/redisclient"
	"github.com/x-xyz/spotmarket/base/log"
	bValidator "github.com/x-xyz/spotmarket/base/validator"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/promotion"
	mmiddleware "github.com/x-xyz/spotmarket/middleware"
	"github.com/x-xyz/spotmarket/service/cache"
	svcchain "github.com/x-xyz/spotmarket/service/chain"
	"github.com/x-xyz/spotmarket/service/kvstore"
	"github.com/x-xyz/spotmarket/service/notifier"
	"github.com/x-xyz/spotmarket/service/query"
	"github.com/x-xyz/spotmarket/service/receipts"
	"github.com/x-xyz/spotmarket/service/sandbox"
	host_delivery "github.com/x-xyz/spotmarket/stores/auctionhost/delivery/http"
	host_usecase "github.com/x-xyz/spotmarket/stores/auctionhost/usecase"
	auth_delivery "github.com/x-xyz/spotmarket/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/spotmarket/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/spotmarket/stores/auth/usecase"
	chain_delivery "github.com/x-xyz/spotmarket/stores/chain/delivery/http"
	chain_repository "github.com/x-xyz/spotmarket/stores/chain/repository"
	chain_usecase "github.com/x-xyz/spotmarket/stores/chain/usecase"
	hc_delivery "github.com/x-xyz/spotmarket/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/spotmarket/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/spotmarket/stores/healthcheck/usecase"
	promolog_delivery "github.com/x-xyz/spotmarket/stores/promolog/delivery/http"
	promolog_repository "github.com/x-xyz/spotmarket/stores/promolog/repository"
	promolog_usecase "github.com/x-xyz/spotmarket/stores/promolog/usecase"
	promotion_delivery "github.com/x-xyz/spotmarket/stores/promotion/delivery/http"
	promotion_usecase "github.com/x-xyz/spotmarket/stores/promotion/usecase"
)

var (
	configFile = pflag.String("config", "infra/configs/config.yaml", "yaml config file")
	signToken  = pflag.String("sign-token", "", "print an operator token for the account and exit")
	tokenTtl   = pflag.Duration("token-ttl", 24*time.Hour, "lifetime of the token printed by --sign-token")
)

func init() {
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvPrefix("SPOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	logCfg := log.Config{}
	if err := viper.UnmarshalKey("log", &logCfg); err != nil {
		panic(err)
	}
	if err := log.Init(logCfg); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	defer log.Sync()
	context := ctx.Background()

	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))
	if *signToken != "" {
		token, err := auth.SignToken(context, domain.Name(*signToken), *tokenTtl)
		if err != nil {
			context.WithField("err", err).Panic("auth.SignToken failed")
		}
		fmt.Println(token)
		return
	}

	// state backend and engine
	context.Info("init engine")
	var backend kvstore.Backend
	switch b := viper.GetString("store.backend"); b {
	case "redis":
		redisCfg := redisclient.Config{}
		if err := viper.UnmarshalKey("redis", &redisCfg); err != nil {
			context.WithField("err", err).Panic("invalid redis config")
		}
		backend = kvstore.NewRedis(redisclient.MustConnectRedis(redisCfg), viper.GetString("store.prefix"))
	case "", "memory":
		backend = kvstore.NewMemory()
	default:
		context.WithField("backend", b).Panic("unknown store backend")
	}
	engine := svcchain.NewEngine(&svcchain.EngineCfg{
		Backend:    backend,
		MaxDepth:   viper.GetInt("engine.maxDepth"),
		MaxActions: viper.GetInt("engine.maxActions"),
	})

	chainCfg := sandbox.DefaultCfg()
	if err := viper.UnmarshalKey("chain", &chainCfg); err != nil {
		context.WithField("err", err).Panic("invalid chain config")
	}
	sb, err := sandbox.New(engine, &chainCfg)
	if err != nil {
		context.WithField("err", err).Panic("sandbox.New failed")
	}
	if err := sb.Genesis(context); err != nil {
		context.WithField("err", err).Panic("sandbox.Genesis failed")
	}
	acc := chainCfg.Accounts

	// receipt sinks
	httpCache := cache.NewLocal(cache.ServiceConfig{
		Ttl:    viper.GetDuration("cache.ttl"),
		Pfx:    "http",
		SizeMB: viper.GetInt("cache.sizeMB"),
	})
	sinks := []chain.ReceiptSink{cache.NewPurgeSink(httpCache)}

	var (
		mongoClient *mongoclient.Client
		receiptRepo chain.ReceiptRepo
		logs        promotion.LogUsecase
	)
	if viper.GetString("mongo.uri") != "" {
		context.Info("init mongo")
		mongoCfg := mongoclient.Config{}
		if err := viper.UnmarshalKey("mongo", &mongoCfg); err != nil {
			context.WithField("err", err).Panic("invalid mongo config")
		}
		mongoClient = mongoclient.MustConnectMongoClient(mongoCfg)
		q := query.New(mongoClient)
		if viper.GetBool("mongo.checkIndex") {
			ensureIndexes(context, q)
		}

		receiptRepo = chain_repository.NewReceiptRepo(q)
		logRepo := promolog_repository.NewPromotionLog(q)
		logs = promolog_usecase.NewLogUsecase(logRepo)
		sinks = append(sinks,
			chain_repository.NewReceiptSink(receiptRepo),
			promolog_usecase.NewLogSink(acc.Gatekeeper, logRepo),
		)
	}

	if botKey := viper.GetString("discord.botKey"); botKey != "" {
		context.Info("init discord notifier")
		n, err := notifier.New(&notifier.Cfg{
			BotKey:     botKey,
			ChannelId:  viper.GetString("discord.channelId"),
			Gatekeeper: acc.Gatekeeper,
			Host:       acc.Host,
			Market:     acc.Market,
		})
		if err != nil {
			context.WithField("err", err).Panic("notifier.New failed")
		}
		sinks = append(sinks, n)
	}

	dispatcher := receipts.New(&receipts.Cfg{
		Engine:   engine,
		Sinks:    sinks,
		Buffer:   viper.GetInt("receipts.buffer"),
		MaxRetry: viper.GetInt("receipts.maxRetry"),
	})
	dispatcher.Start(context)

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	authMiddleware := auth_middleware.New(auth)
	cacheMiddleware := mmiddleware.CacheHttp(httpCache)

	hc := hc_usecase.New(hc_repo.New(mongoClient, engine, acc.Gatekeeper))
	trx := chain_usecase.NewTransactionUseCase(engine, receiptRepo)
	gatekeeper := promotion_usecase.NewPromotion(engine, sb.Gatekeeper)
	host := host_usecase.NewAuctionHost(engine, sb.Host)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, authMiddleware)
	chain_delivery.New(e, trx, authMiddleware)
	promotion_delivery.New(e, gatekeeper, acc.Gatekeeper, authMiddleware, cacheMiddleware)
	host_delivery.New(e, host, acc.Host, authMiddleware, cacheMiddleware)
	if logs != nil {
		promolog_delivery.New(e, logs, cacheMiddleware)
	}

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
	dispatcher.Stop()
	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Log().WithField("err", err).Error("mongoClient.Disconnect failed")
		}
	}
}

func ensureIndexes(c ctx.Ctx, q query.Mongo) {
	indexes := []struct {
		table  domain.Table
		unique bool
		keys   []string
	}{
		{domain.TableReceipts, true, []string{"txId"}},
		{domain.TablePromotionLogs, true, []string{"txId", "seq"}},
		{domain.TablePromotionLogs, false, []string{"target", "createdAt"}},
		{domain.TablePromotionLogs, false, []string{"promotedBy", "createdAt"}},
	}
	for _, idx := range indexes {
		if err := q.EnsureIndex(c, idx.table, idx.unique, idx.keys...); err != nil {
			c.WithFields(log.Fields{
				"err":   err,
				"table": idx.table,
			}).Panic("ensure index failed")
		}
	}
}
