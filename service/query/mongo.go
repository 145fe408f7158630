// Package query is a thin layer over the mongo driver used by the audit repositories.
package query

import (
	"errors"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
)

var ErrNotFound = errors.New("document not found")

// Mongo is the subset of collection operations the receipt and promotion
// log tables need. Writes are idempotent upserts keyed by the selector.
type Mongo interface {
	FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error

	// Upsert replaces the document matching selector, or inserts it.
	Upsert(c ctx.Ctx, table domain.Table, selector, doc interface{}) error

	// Search sorts by field ("createdAt" ascending, "-createdAt" descending);
	// an empty sort keeps natural order. limit 0 means no limit.
	Search(c ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	EnsureIndex(c ctx.Ctx, table domain.Table, unique bool, keys ...string) error
}
