package cache

import (
	"errors"
	"time"

	"github.com/x-xyz/spotmarket/base/ctx"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// Service caches JSON encoded values under a prefix.
type Service interface {
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
	// Purge drops every entry, e.g. after state changed.
	Purge(c ctx.Ctx)
}

type ServiceConfig struct {
	Ttl time.Duration
	Pfx string
	// SizeMB is the memory reserved for the cache, at least 512KB is used.
	SizeMB int
}
