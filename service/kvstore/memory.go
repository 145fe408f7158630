package kvstore

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
)

type memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns a process local backend.
func NewMemory() Backend {
	return &memory{data: map[string][]byte{}}
}

func (m *memory) Get(c ctx.Ctx, key string, result interface{}) error {
	m.mu.RLock()
	val, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return domain.ErrNotFound
	}
	return json.Unmarshal(val, result)
}

func (m *memory) Set(c ctx.Ctx, key string, value interface{}) error {
	val, err := json.Marshal(value)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("json.Marshal failed")
		return err
	}
	return m.Commit(c, []Write{{Key: key, Value: val}})
}

func (m *memory) Del(c ctx.Ctx, key string) error {
	return m.Commit(c, []Write{{Key: key}})
}

func (m *memory) Keys(c ctx.Ctx, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := []string{}
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			res = append(res, k)
		}
	}
	sort.Strings(res)
	return res, nil
}

func (m *memory) Commit(c ctx.Ctx, writes []Write) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, w := range writes {
		if w.Value == nil {
			delete(m.data, w.Key)
		} else {
			m.data[w.Key] = w.Value
		}
	}
	return nil
}
