package chain

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/base/metrics"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/service/kvstore"
)

const (
	defaultMaxDepth   = 16
	defaultMaxActions = 512
)

type EngineCfg struct {
	Backend kvstore.Backend
	// Clock defaults to time.Now. Transaction time is truncated to seconds.
	Clock      func() time.Time
	MaxDepth   int
	MaxActions int
}

type engine struct {
	mu sync.Mutex

	backend    kvstore.Backend
	clock      func() time.Time
	maxDepth   int
	maxActions int
	contracts  map[domain.Name]chain.Dispatch
	feed       event.Feed
	metrics    metrics.Service
}

// NewEngine returns an engine that applies one transaction at a time.
func NewEngine(cfg *EngineCfg) chain.Engine {
	e := &engine{
		backend:    cfg.Backend,
		clock:      cfg.Clock,
		maxDepth:   cfg.MaxDepth,
		maxActions: cfg.MaxActions,
		contracts:  map[domain.Name]chain.Dispatch{},
		metrics:    metrics.New("engine"),
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.maxDepth == 0 {
		e.maxDepth = defaultMaxDepth
	}
	if e.maxActions == 0 {
		e.maxActions = defaultMaxActions
	}
	return e
}

func (e *engine) Deploy(contracts ...chain.Contract) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, con := range contracts {
		if _, ok := e.contracts[con.Account()]; ok {
			return xerrors.Errorf("%s: %w", con.Account(), chain.ErrContractDeployed)
		}
		e.contracts[con.Account()] = con.Dispatch()
	}
	return nil
}

func (e *engine) Now() time.Time {
	return e.clock().UTC().Truncate(time.Second)
}

func (e *engine) SubscribeReceipts(ch chan<- *chain.Receipt) event.Subscription {
	return e.feed.Subscribe(ch)
}

func (e *engine) Read(c ctx.Ctx, fn func(s domain.Store) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.backend)
}

// transaction is the state shared by every action of one PushTransaction call.
type transaction struct {
	id      string
	now     time.Time
	store   *kvstore.Tx
	receipt *chain.Receipt
	actions int
}

// frame collects what the handlers of one action queue: the accounts to notify
// and the inline actions to run afterwards.
type frame struct {
	action   chain.Action
	notified []domain.Name
	inline   []chain.Action
}

func (e *engine) PushTransaction(c ctx.Ctx, actions ...chain.Action) (*chain.Receipt, error) {
	if len(actions) == 0 {
		return nil, chain.ErrEmptyTransaction
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.metrics.BumpTime("tx.time").End()

	id, err := uuid.NewRandom()
	if err != nil {
		c.WithField("err", err).Error("uuid.NewRandom failed")
		return nil, err
	}

	trx := &transaction{
		id:    id.String(),
		now:   e.Now(),
		store: kvstore.Begin(e.backend),
	}
	trx.receipt = &chain.Receipt{TxId: trx.id, Time: trx.now}
	c = ctx.WithValue(c, "txId", trx.id)

	for _, act := range actions {
		if err := e.execute(c, trx, act, 0); err != nil {
			trx.store.Rollback()
			e.metrics.BumpSum("tx.err", 1)
			c.WithFields(log.Fields{
				"err":    err,
				"reason": chain.Reason(err),
			}).Info("transaction rolled back")
			return nil, err
		}
	}

	if err := trx.store.Commit(c); err != nil {
		c.WithField("err", err).Error("store.Commit failed")
		return nil, err
	}
	e.metrics.BumpSum("tx.count", 1)
	e.metrics.BumpHistogram("tx.actions", float64(trx.actions))

	// subscribers are served while the lock is held so receipts arrive in commit
	// order, a subscriber that stops receiving stalls the engine
	e.feed.Send(trx.receipt)
	return trx.receipt, nil
}

func (e *engine) execute(c ctx.Ctx, trx *transaction, act chain.Action, depth int) error {
	if depth > e.maxDepth {
		return chain.ErrMaxDepth
	}
	if trx.actions++; trx.actions > e.maxActions {
		return chain.ErrTooManyActions
	}

	dispatch, ok := e.contracts[act.Account]
	if !ok {
		return xerrors.Errorf("%s: %w", act.Account, chain.ErrUnknownContract)
	}
	h, ok := dispatch.Actions[act.Name]
	if !ok {
		return xerrors.Errorf("%s::%s: %w", act.Account, act.Name, chain.ErrUnknownAction)
	}

	f := &frame{action: act}
	if err := e.apply(c, trx, f, act.Account, h, depth); err != nil {
		return err
	}

	// handlers may notify further accounts while being notified
	for i := 0; i < len(f.notified); i++ {
		recv := f.notified[i]
		d, ok := e.contracts[recv]
		if !ok {
			continue
		}
		h, ok := d.Notifications[chain.Notify{Code: act.Account, Action: act.Name}]
		if !ok {
			h, ok = d.Notifications[chain.Notify{Code: chain.AnyCode, Action: act.Name}]
		}
		if !ok {
			continue
		}
		if err := e.apply(c, trx, f, recv, h, depth); err != nil {
			return err
		}
	}

	for _, inline := range f.inline {
		if err := e.execute(c, trx, inline, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *engine) apply(c ctx.Ctx, trx *transaction, f *frame, receiver domain.Name, h chain.Handler, depth int) error {
	var payload interface{}
	if h.Payload != nil {
		payload = h.Payload()
		if err := decode(f.action.Data, payload); err != nil {
			return xerrors.Errorf("%s::%s decode: %w", f.action.Account, f.action.Name, err)
		}
	}

	traced := f.action
	traced.Data = payload
	trx.receipt.Traces = append(trx.receipt.Traces, chain.ActionTrace{
		Seq:      len(trx.receipt.Traces),
		Depth:    depth,
		Receiver: receiver,
		Action:   traced,
	})

	ac := &applyContext{
		c: ctx.WithValues(c, map[string]interface{}{
			"receiver": receiver,
			"action":   f.action.Name,
		}),
		trx:      trx,
		frame:    f,
		receiver: receiver,
	}
	if err := h.Handle(ac, payload); err != nil {
		return &chain.ActionError{
			Account:  f.action.Account,
			Action:   f.action.Name,
			Receiver: receiver,
			Err:      err,
		}
	}
	return nil
}

func decode(data interface{}, payload interface{}) error {
	raw, ok := data.(json.RawMessage)
	if !ok {
		var err error
		if raw, err = json.Marshal(data); err != nil {
			return err
		}
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, payload)
}
