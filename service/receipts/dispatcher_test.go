package receipts

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	svcchain "github.com/x-xyz/spotmarket/service/chain"
	"github.com/x-xyz/spotmarket/service/kvstore"
)

var mockCtx = ctx.Background()

type pinger struct{}

func (pinger) Account() domain.Name {
	return "pinger"
}

func (pinger) Dispatch() chain.Dispatch {
	return chain.Dispatch{
		Actions: map[domain.ActionName]chain.Handler{
			"ping": {Handle: func(ac chain.ApplyContext, data interface{}) error { return nil }},
		},
	}
}

// recorder fails the first failures calls and panics on the first call when panics is set.
type recorder struct {
	mu       sync.Mutex
	failures int
	panics   bool
	got      chan string
}

func newRecorder() *recorder {
	return &recorder{got: make(chan string, 16)}
}

func (r *recorder) Name() string {
	return "recorder"
}

func (r *recorder) HandleReceipt(c ctx.Ctx, rc *chain.Receipt) error {
	r.mu.Lock()
	if r.panics {
		r.panics = false
		r.mu.Unlock()
		panic("sink exploded")
	}
	if r.failures > 0 {
		r.failures--
		r.mu.Unlock()
		return errors.New("not yet")
	}
	r.mu.Unlock()

	r.got <- rc.TxId
	return nil
}

// gate holds every receipt until released.
type gate struct {
	release chan struct{}
	got     chan string
}

func (g *gate) Name() string {
	return "gate"
}

func (g *gate) HandleReceipt(c ctx.Ctx, rc *chain.Receipt) error {
	<-g.release
	g.got <- rc.TxId
	return nil
}

type testsuite struct {
	suite.Suite

	engine chain.Engine
}

func TestDispatcher(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.engine = svcchain.NewEngine(&svcchain.EngineCfg{Backend: kvstore.NewMemory()})
	ts.Require().NoError(ts.engine.Deploy(pinger{}))
}

func (ts *testsuite) push() string {
	r, err := ts.engine.PushTransaction(mockCtx, chain.NewAction("pinger", "ping", "alice", nil))
	ts.Require().NoError(err)
	return r.TxId
}

func (ts *testsuite) receive(r *recorder) string {
	select {
	case id := <-r.got:
		return id
	case <-time.After(3 * time.Second):
		ts.FailNow("receipt not delivered")
		return ""
	}
}

func (ts *testsuite) TestDeliversInCommitOrder() {
	a, b := newRecorder(), newRecorder()
	d := New(&Cfg{Engine: ts.engine, Sinks: []chain.ReceiptSink{a, b}})
	d.Start(mockCtx)
	defer d.Stop()

	first, second := ts.push(), ts.push()

	ts.Equal(first, ts.receive(a))
	ts.Equal(second, ts.receive(a))
	ts.Equal(first, ts.receive(b))
	ts.Equal(second, ts.receive(b))
}

func (ts *testsuite) TestRetriesFailingSink() {
	r := newRecorder()
	r.failures = 2
	d := New(&Cfg{Engine: ts.engine, Sinks: []chain.ReceiptSink{r}})
	d.Start(mockCtx)
	defer d.Stop()

	id := ts.push()
	ts.Equal(id, ts.receive(r))
}

func (ts *testsuite) TestGivesUpAfterMaxRetry() {
	r := newRecorder()
	r.failures = 1
	d := New(&Cfg{Engine: ts.engine, MaxRetry: 1})

	d.Dispatch(mockCtx, &chain.Receipt{TxId: "lost"})
	d.sinks = []chain.ReceiptSink{r}
	d.Dispatch(mockCtx, &chain.Receipt{TxId: "dropped"})
	d.Dispatch(mockCtx, &chain.Receipt{TxId: "kept"})

	ts.Equal("kept", ts.receive(r))
}

func (ts *testsuite) TestSurvivesPanickingSink() {
	r := newRecorder()
	r.panics = true
	d := New(&Cfg{Engine: ts.engine, Sinks: []chain.ReceiptSink{r}})
	d.Start(mockCtx)
	defer d.Stop()

	ts.push()
	id := ts.push()
	ts.Equal(id, ts.receive(r))
}

func (ts *testsuite) TestSlowSinkDoesNotBlockEngine() {
	g := &gate{release: make(chan struct{}), got: make(chan string, 16)}
	d := New(&Cfg{Engine: ts.engine, Sinks: []chain.ReceiptSink{g}, Buffer: 1})
	d.Start(mockCtx)
	defer d.Stop()

	ids := make(chan string, 8)
	go func() {
		for i := 0; i < 8; i++ {
			r, err := ts.engine.PushTransaction(mockCtx, chain.NewAction("pinger", "ping", "alice", nil))
			if err != nil {
				break
			}
			ids <- r.TxId
		}
		close(ids)
	}()

	var pushed []string
	timeout := time.After(3 * time.Second)
	for len(pushed) < 8 {
		select {
		case id, ok := <-ids:
			if !ok {
				ts.FailNow("pushes stopped early")
			}
			pushed = append(pushed, id)
		case <-timeout:
			ts.FailNow("engine blocked behind a slow sink")
		}
	}

	// the sink holds the first receipt, the queue one more, the rest were dropped
	close(g.release)
	select {
	case id := <-g.got:
		ts.Equal(pushed[0], id)
	case <-time.After(3 * time.Second):
		ts.FailNow("receipt not delivered")
	}
	time.Sleep(100 * time.Millisecond)
	ts.LessOrEqual(len(g.got), 1)
}
