// Package kvstore keeps contract tables as JSON records under string keys.
//
// A Backend holds committed state. Begin opens an overlay that buffers every
// write of one transaction and hands them to the backend in a single Commit,
// or drops them all.
package kvstore

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
)

// Write is a buffered mutation. A nil Value deletes the key.
type Write struct {
	Key   string
	Value []byte
}

// Backend is committed state. Commit must apply all writes or none.
type Backend interface {
	domain.Store
	Commit(c ctx.Ctx, writes []Write) error
}
