package redisclient

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/spotmarket/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond

	dialRetries = 3
)

// Config of the redis state backend
type Config struct {
	Uri       string `mapstructure:"uri"`
	Password  string `mapstructure:"password"`
	Db        int    `mapstructure:"db"`
	MaxIdle   int    `mapstructure:"max_idle"`
	MaxActive int    `mapstructure:"max_active"`
}

// MustConnectRedis connects to one redis uri
// NOTE This function panics if the connection fails.
func MustConnectRedis(cfg Config) *redis.Pool {
	p, err := ConnectRedis(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": cfg.Uri, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

// ConnectRedis builds a pool and pings it, retrying the first dial a few times.
func ConnectRedis(cfg Config) (*redis.Pool, error) {
	if cfg.MaxIdle == 0 {
		cfg.MaxIdle = 16
	}
	if cfg.MaxActive == 0 {
		cfg.MaxActive = 64
	}

	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
		redis.DialDatabase(cfg.Db),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}
	p := &redis.Pool{
		MaxIdle:     cfg.MaxIdle,
		MaxActive:   cfg.MaxActive,
		Wait:        true,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", cfg.Uri, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			// No need to test if it's been recycled less than 1 sec.
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}

	var err error
	for i := 0; i < dialRetries; i++ {
		if i > 0 {
			time.Sleep(time.Duration(i) * time.Second)
		}
		if err = ping(p); err == nil {
			log.Log().WithField("redisURI", cfg.Uri).Info("redis connected")
			return p, nil
		}
		log.Log().WithFields(log.Fields{
			"redisURI": cfg.Uri,
			"err":      err,
			"retry":    i,
		}).Error("fail to dial Redis")
	}
	return nil, err
}

func ping(p *redis.Pool) error {
	c := p.Get()
	defer c.Close()
	_, err := c.Do("PING")
	return err
}
