package kvstore

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/keys"
)

const scanCount = 500

type redisStore struct {
	pool *redis.Pool
	pfx  string
}

// NewRedis keeps state in redis under pfx. Commits run in MULTI/EXEC.
func NewRedis(pool *redis.Pool, pfx string) Backend {
	return &redisStore{pool: pool, pfx: pfx}
}

func (r *redisStore) key(k string) string {
	return keys.RedisKey(r.pfx, k)
}

func (r *redisStore) Get(c ctx.Ctx, key string, result interface{}) error {
	conn, err := r.pool.GetContext(c)
	if err != nil {
		c.WithField("err", err).Error("pool.GetContext failed")
		return err
	}
	defer conn.Close()

	val, err := redis.Bytes(conn.Do("GET", r.key(key)))
	if err == redis.ErrNil {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("redis GET failed")
		return err
	}
	return json.Unmarshal(val, result)
}

func (r *redisStore) Set(c ctx.Ctx, key string, value interface{}) error {
	val, err := json.Marshal(value)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("json.Marshal failed")
		return err
	}
	return r.Commit(c, []Write{{Key: key, Value: val}})
}

func (r *redisStore) Del(c ctx.Ctx, key string) error {
	return r.Commit(c, []Write{{Key: key}})
}

func (r *redisStore) Keys(c ctx.Ctx, prefix string) ([]string, error) {
	conn, err := r.pool.GetContext(c)
	if err != nil {
		c.WithField("err", err).Error("pool.GetContext failed")
		return nil, err
	}
	defer conn.Close()

	full := r.key(prefix)
	pattern := escapeGlob(full) + "*"

	res := []string{}
	cursor := 0
	for {
		values, err := redis.Values(conn.Do("SCAN", cursor, "MATCH", pattern, "COUNT", scanCount))
		if err != nil {
			c.WithFields(log.Fields{"err": err, "prefix": prefix}).Error("redis SCAN failed")
			return nil, err
		}
		if cursor, err = redis.Int(values[0], nil); err != nil {
			return nil, err
		}
		found, err := redis.Strings(values[1], nil)
		if err != nil {
			return nil, err
		}
		for _, k := range found {
			res = append(res, strings.TrimPrefix(k, r.key("")))
		}
		if cursor == 0 {
			break
		}
	}

	sort.Strings(res)
	return res, nil
}

func (r *redisStore) Commit(c ctx.Ctx, writes []Write) error {
	conn, err := r.pool.GetContext(c)
	if err != nil {
		c.WithField("err", err).Error("pool.GetContext failed")
		return err
	}
	defer conn.Close()

	if err := conn.Send("MULTI"); err != nil {
		return err
	}
	for _, w := range writes {
		if w.Value == nil {
			err = conn.Send("DEL", r.key(w.Key))
		} else {
			err = conn.Send("SET", r.key(w.Key), w.Value)
		}
		if err != nil {
			c.WithFields(log.Fields{"err": err, "key": w.Key}).Error("conn.Send failed")
			conn.Do("DISCARD")
			return err
		}
	}
	if _, err := conn.Do("EXEC"); err != nil {
		c.WithFields(log.Fields{"err": err, "writes": len(writes)}).Error("redis EXEC failed")
		return err
	}
	return nil
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
