package kvstore

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
)

// Tx buffers writes on top of a backend. Reads see the buffered writes first.
type Tx struct {
	base   Backend
	writes map[string][]byte
	order  []string
	done   bool
}

func Begin(base Backend) *Tx {
	return &Tx{
		base:   base,
		writes: map[string][]byte{},
	}
}

func (t *Tx) Get(c ctx.Ctx, key string, result interface{}) error {
	if val, ok := t.writes[key]; ok {
		if val == nil {
			return domain.ErrNotFound
		}
		return json.Unmarshal(val, result)
	}
	return t.base.Get(c, key, result)
}

func (t *Tx) Set(c ctx.Ctx, key string, value interface{}) error {
	val, err := json.Marshal(value)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("json.Marshal failed")
		return err
	}
	t.put(key, val)
	return nil
}

func (t *Tx) Del(c ctx.Ctx, key string) error {
	t.put(key, nil)
	return nil
}

func (t *Tx) put(key string, val []byte) {
	if _, ok := t.writes[key]; !ok {
		t.order = append(t.order, key)
	}
	t.writes[key] = val
}

func (t *Tx) Keys(c ctx.Ctx, prefix string) ([]string, error) {
	committed, err := t.base.Keys(c, prefix)
	if err != nil {
		return nil, err
	}

	set := map[string]bool{}
	for _, k := range committed {
		set[k] = true
	}
	for k, v := range t.writes {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		set[k] = v != nil
	}

	res := make([]string, 0, len(set))
	for k, alive := range set {
		if alive {
			res = append(res, k)
		}
	}
	sort.Strings(res)
	return res, nil
}

// Writes returns the buffered writes in first-write order.
func (t *Tx) Writes() []Write {
	res := make([]Write, 0, len(t.order))
	for _, k := range t.order {
		res = append(res, Write{Key: k, Value: t.writes[k]})
	}
	return res
}

// Commit hands every buffered write to the backend at once.
func (t *Tx) Commit(c ctx.Ctx) error {
	if t.done {
		return nil
	}
	t.done = true
	if len(t.order) == 0 {
		return nil
	}
	return t.base.Commit(c, t.Writes())
}

// Rollback drops the buffered writes.
func (t *Tx) Rollback() {
	t.done = true
	t.writes = map[string][]byte{}
	t.order = nil
}
