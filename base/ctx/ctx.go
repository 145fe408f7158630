package ctx

import (
	"context"
	"time"

	log "github.com/x-xyz/spotmarket/base/log"
)

// Ctx carries cancellation together with a field-scoped logger.
type Ctx struct {
	context.Context
	log.Logger
}

func Background() Ctx {
	return From(context.Background())
}

// From wraps a plain context with the process logger.
func From(c context.Context) Ctx {
	return Ctx{
		Context: c,
		Logger:  log.Log(),
	}
}

func WithValue(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent, key, val),
		Logger:  parent.Logger.WithField(key, val),
	}
}

func WithValues(parent Ctx, kvs map[string]interface{}) Ctx {
	c := parent
	for k, v := range kvs {
		c = WithValue(c, k, v)
	}
	return c
}

// WithLogger keeps the context chain and swaps the logger.
func WithLogger(parent Ctx, logger log.Logger) Ctx {
	return Ctx{
		Context: parent.Context,
		Logger:  logger,
	}
}

func WithCancel(parent Ctx) (Ctx, context.CancelFunc) {
	c, cancel := context.WithCancel(parent)
	return Ctx{
		Context: c,
		Logger:  parent.Logger,
	}, cancel
}

func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	c, cancel := context.WithTimeout(parent, timeout)
	return Ctx{
		Context: c,
		Logger:  parent.Logger,
	}, cancel
}
