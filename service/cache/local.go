package cache

import (
	"encoding/json"
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain/keys"
)

type local struct {
	ttl   time.Duration
	pfx   string
	cache *freecache.Cache
}

// NewLocal returns an in process cache backed by freecache.
func NewLocal(config ServiceConfig) Service {
	return &local{
		ttl:   config.Ttl,
		pfx:   config.Pfx,
		cache: freecache.NewCache(config.SizeMB * 1024 * 1024),
	}
}

func (im *local) Get(c ctx.Ctx, key string, container interface{}) error {
	key = keys.RedisKey(im.pfx, key)

	val, err := im.cache.Get([]byte(key))
	if err == freecache.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Get failed")
		return err
	}
	if err := json.Unmarshal(val, container); err != nil {
		c.WithField("err", err).WithField("key", key).Error("json.Unmarshal failed")
		return err
	}
	return nil
}

func (im *local) Set(c ctx.Ctx, key string, value interface{}) error {
	key = keys.RedisKey(im.pfx, key)

	val, err := json.Marshal(value)
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("json.Marshal failed")
		return err
	}
	if err := im.cache.Set([]byte(key), val, int(im.ttl.Seconds())); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *local) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(keys.RedisKey(im.pfx, key)))
	return nil
}

func (im *local) Purge(c ctx.Ctx) {
	im.cache.Clear()
}
