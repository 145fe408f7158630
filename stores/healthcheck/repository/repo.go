package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/database/mongoclient"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	hcdomain "github.com/x-xyz/spotmarket/domain/healthcheck"
	"github.com/x-xyz/spotmarket/domain/keys"
)

const pingTimeout = 2 * time.Second

type impl struct {
	mgoClient *mongoclient.Client
	engine    chain.Engine
	probe     string
}

// New creates the health check repository. mgoClient may be nil, probe is the
// contract whose globals row is read.
func New(
	mgoClient *mongoclient.Client,
	engine chain.Engine,
	probe domain.Name,
) hcdomain.HealthCheckRepo {
	return &impl{
		mgoClient: mgoClient,
		engine:    engine,
		probe:     keys.Singleton(string(probe), "globals"),
	}
}

func (im *impl) AuditEnabled() bool {
	return im.mgoClient != nil
}

func (im *impl) PingDB(context ctx.Ctx) error {
	if im.mgoClient == nil {
		return nil
	}
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := im.mgoClient.Ping(ctx, readpref.Primary()); err != nil {
		context.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}

func (im *impl) PingState(context ctx.Ctx) error {
	err := im.engine.Read(context, func(s domain.Store) error {
		var raw map[string]interface{}
		return s.Get(context, im.probe, &raw)
	})
	if err != nil && err != domain.ErrNotFound {
		context.WithField("err", err).Error("state read error")
		return err
	}
	return nil
}
