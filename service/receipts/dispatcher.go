// Package receipts fans committed engine receipts out to the audit sinks.
package receipts

import (
	"sync"
	"time"

	"github.com/x-xyz/spotmarket/base/backoff"
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/goroutine"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/base/metrics"
	"github.com/x-xyz/spotmarket/domain/chain"
)

const (
	defaultBuffer   = 1024
	defaultMaxRetry = 3
	retryStart      = 100 * time.Millisecond
	retryLimit      = 2 * time.Second
)

type Cfg struct {
	Engine   chain.Engine
	Sinks    []chain.ReceiptSink
	Buffer   int
	MaxRetry int
}

// Dispatcher hands every receipt to each sink in commit order. A sink that
// keeps failing is skipped for that receipt, the others still get it.
type Dispatcher struct {
	engine   chain.Engine
	sinks    []chain.ReceiptSink
	buffer   int
	maxRetry int
	metrics  metrics.Service

	done chan struct{}
	wg   sync.WaitGroup
}

func New(cfg *Cfg) *Dispatcher {
	d := &Dispatcher{
		engine:   cfg.Engine,
		sinks:    cfg.Sinks,
		buffer:   cfg.Buffer,
		maxRetry: cfg.MaxRetry,
		metrics:  metrics.New("receipts"),
		done:     make(chan struct{}),
	}
	if d.buffer == 0 {
		d.buffer = defaultBuffer
	}
	if d.maxRetry == 0 {
		d.maxRetry = defaultMaxRetry
	}
	return d
}

// Start subscribes to the engine. The subscription only moves receipts into a
// queue of Buffer receipts, a full queue drops the receipt so a slow sink never
// holds up the engine. A panicking sink restarts the loop without losing the
// subscription.
func (d *Dispatcher) Start(c ctx.Ctx) {
	in := make(chan *chain.Receipt)
	queue := make(chan *chain.Receipt, d.buffer)
	sub := d.engine.SubscribeReceipts(in)

	d.wg.Add(2)
	go func() {
		defer d.wg.Done()
		defer sub.Unsubscribe()
		d.relay(c, in, queue, sub.Err())
	}()
	go func() {
		defer d.wg.Done()

		for {
			ev := <-goroutine.RecoverableGo(func() {
				d.loop(c, queue)
			})
			if ev == nil {
				return
			}
			d.metrics.BumpSum("panic", 1)
		}
	}()
}

// Stop returns after both goroutines have exited.
func (d *Dispatcher) Stop() {
	close(d.done)
	d.wg.Wait()
}

func (d *Dispatcher) relay(c ctx.Ctx, in <-chan *chain.Receipt, queue chan<- *chain.Receipt, errc <-chan error) {
	for {
		select {
		case r := <-in:
			select {
			case queue <- r:
			default:
				d.metrics.BumpSum("dropped", 1)
				c.WithField("txId", r.TxId).Warn("receipt queue full, receipt dropped")
			}
		case err := <-errc:
			if err != nil {
				c.WithField("err", err).Error("receipt subscription failed")
			}
			return
		case <-d.done:
			return
		}
	}
}

func (d *Dispatcher) loop(c ctx.Ctx, queue <-chan *chain.Receipt) {
	for {
		select {
		case r := <-queue:
			d.Dispatch(c, r)
		case <-d.done:
			return
		}
	}
}

// Dispatch hands r to every sink.
func (d *Dispatcher) Dispatch(c ctx.Ctx, r *chain.Receipt) {
	c = ctx.WithValue(c, "txId", r.TxId)
	for _, s := range d.sinks {
		if err := d.deliver(c, s, r); err != nil {
			d.metrics.BumpSum("sink.err", 1, "sink", s.Name())
			c.WithFields(log.Fields{
				"err":  err,
				"sink": s.Name(),
			}).Error("sink.HandleReceipt failed")
		}
	}
}

func (d *Dispatcher) deliver(c ctx.Ctx, s chain.ReceiptSink, r *chain.Receipt) error {
	b := backoff.NewExponential(retryStart, retryLimit)
	var err error
	for i := 0; i < d.maxRetry; i++ {
		if err = s.HandleReceipt(c, r); err == nil {
			return nil
		}
		if i+1 < d.maxRetry {
			if berr := b.Backoff(c); berr != nil {
				return err
			}
		}
	}
	return err
}
