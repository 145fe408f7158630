package domain

import "github.com/x-xyz/spotmarket/base/ctx"

// Store is the key-value state every contract table is kept in. Values are
// JSON records; Keys returns the keys under prefix in ascending order.
type Store interface {
	Get(c ctx.Ctx, key string, result interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
	Keys(c ctx.Ctx, prefix string) ([]string, error)
}
