package chain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/service/kvstore"
)

var (
	mockCtx = ctx.Background()
	errBoom = errors.New("boom")
)

type note struct {
	Text string `json:"text"`
	Fail bool   `json:"fail"`
}

// journal appends what every handler saw to the journal table so tests can
// assert on the execution order.
type journal struct {
	account domain.Name
	// inline is sent by the "note" action handler.
	inline func(ac chain.ApplyContext, p *note) error
	notify []domain.Name
}

func (j *journal) Account() domain.Name {
	return j.account
}

func (j *journal) Dispatch() chain.Dispatch {
	payload := func() interface{} { return &note{} }
	return chain.Dispatch{
		Actions: map[domain.ActionName]chain.Handler{
			"note": {Payload: payload, Handle: j.onNote},
		},
		Notifications: map[chain.Notify]chain.Handler{
			{Code: chain.AnyCode, Action: "note"}: {Payload: payload, Handle: j.onNotify},
		},
	}
}

func appendJournal(ac chain.ApplyContext, entry string) error {
	entries := []string{}
	if err := ac.Store().Get(ac.Ctx(), "journal", &entries); err != nil && err != domain.ErrNotFound {
		return err
	}
	return ac.Store().Set(ac.Ctx(), "journal", append(entries, entry))
}

func (j *journal) onNote(ac chain.ApplyContext, data interface{}) error {
	p := data.(*note)
	if err := appendJournal(ac, string(j.account)+":"+p.Text); err != nil {
		return err
	}
	if p.Fail {
		return errBoom
	}
	for _, n := range j.notify {
		ac.RequireRecipient(n)
	}
	if j.inline != nil {
		return j.inline(ac, p)
	}
	return nil
}

func (j *journal) onNotify(ac chain.ApplyContext, data interface{}) error {
	return appendJournal(ac, string(ac.Receiver())+"<-"+string(ac.FirstReceiver())+":"+data.(*note).Text)
}

type testsuite struct {
	suite.Suite
	backend kvstore.Backend
	now     time.Time
	subject chain.Engine
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.backend = kvstore.NewMemory()
	t.now = time.Date(2022, 10, 1, 12, 0, 0, 0, time.UTC)
	t.subject = NewEngine(&EngineCfg{
		Backend: t.backend,
		Clock:   func() time.Time { return t.now },
	})
}

func (t *testsuite) journal() []string {
	entries := []string{}
	err := t.subject.Read(mockCtx, func(s domain.Store) error {
		return s.Get(mockCtx, "journal", &entries)
	})
	if err == domain.ErrNotFound {
		return nil
	}
	t.Require().NoError(err)
	return entries
}

func (t *testsuite) TestDepthFirstFifo() {
	t.Require().NoError(t.subject.Deploy(
		&journal{
			account: "a",
			notify:  []domain.Name{"b"},
			inline: func(ac chain.ApplyContext, p *note) error {
				if p.Text != "start" {
					return nil
				}
				if err := ac.SendInline(chain.NewAction("c", "note", "a", note{Text: "first"})); err != nil {
					return err
				}
				return ac.SendInline(chain.NewAction("c", "note", "a", note{Text: "second"}))
			},
		},
		&journal{account: "b"},
		&journal{
			account: "c",
			inline: func(ac chain.ApplyContext, p *note) error {
				if p.Text != "first" {
					return nil
				}
				return ac.SendInline(chain.NewAction("b", "note", "c", note{Text: "nested"}))
			},
		},
	))

	receipt, err := t.subject.PushTransaction(mockCtx, chain.NewAction("a", "note", "alice", note{Text: "start"}))
	t.Require().NoError(err)

	t.Equal([]string{
		"a:start",
		"b<-a:start",
		"c:first",
		"b:nested",
		"c:second",
	}, t.journal())
	t.Len(receipt.Traces, 5)
	t.Equal(domain.Name("b"), receipt.Traces[1].Receiver)
	t.Equal(2, receipt.Traces[3].Depth)
	t.Equal(t.now, receipt.Time)
}

func (t *testsuite) TestRollbackAcrossContracts() {
	t.Require().NoError(t.subject.Deploy(
		&journal{
			account: "a",
			inline: func(ac chain.ApplyContext, p *note) error {
				return ac.SendInline(chain.NewAction("c", "note", "a", note{Text: "late", Fail: true}))
			},
		},
		&journal{account: "c"},
	))

	_, err := t.subject.PushTransaction(mockCtx, chain.NewAction("a", "note", "alice", note{Text: "start"}))
	t.True(errors.Is(err, errBoom))
	t.Equal("boom", chain.Reason(err))
	t.Nil(t.journal())
}

func (t *testsuite) TestInlineAuthority() {
	t.Require().NoError(t.subject.Deploy(
		&journal{
			account: "a",
			inline: func(ac chain.ApplyContext, p *note) error {
				return ac.SendInline(chain.NewAction("c", "note", "alice", note{}))
			},
		},
		&journal{account: "c"},
	))

	_, err := t.subject.PushTransaction(mockCtx, chain.NewAction("a", "note", "alice", note{}))
	t.True(errors.Is(err, chain.ErrInlineAuthority))
}

func (t *testsuite) TestUnknownAction() {
	t.Require().NoError(t.subject.Deploy(&journal{account: "a"}))

	_, err := t.subject.PushTransaction(mockCtx, chain.NewAction("a", "missing", "alice", nil))
	t.True(errors.Is(err, chain.ErrUnknownAction))
	_, err = t.subject.PushTransaction(mockCtx, chain.NewAction("x", "note", "alice", nil))
	t.True(errors.Is(err, chain.ErrUnknownContract))
	_, err = t.subject.PushTransaction(mockCtx)
	t.Equal(chain.ErrEmptyTransaction, err)
}

func (t *testsuite) TestDeployTwice() {
	t.Require().NoError(t.subject.Deploy(&journal{account: "a"}))
	t.True(errors.Is(t.subject.Deploy(&journal{account: "a"}), chain.ErrContractDeployed))
}

func (t *testsuite) TestMaxDepth() {
	t.Require().NoError(t.subject.Deploy(&journal{
		account: "a",
		inline: func(ac chain.ApplyContext, p *note) error {
			return ac.SendInline(chain.NewAction("a", "note", "a", note{}))
		},
	}))

	_, err := t.subject.PushTransaction(mockCtx, chain.NewAction("a", "note", "alice", note{}))
	t.True(errors.Is(err, chain.ErrMaxDepth))
	t.Nil(t.journal())
}

func (t *testsuite) TestRawJsonPayload() {
	t.Require().NoError(t.subject.Deploy(&journal{account: "a"}))

	_, err := t.subject.PushTransaction(mockCtx, chain.Action{
		Account:       "a",
		Name:          "note",
		Authorization: []domain.Name{"alice"},
		Data:          map[string]interface{}{"text": "from http"},
	})
	t.NoError(err)
	t.Equal([]string{"a:from http"}, t.journal())
}

func (t *testsuite) TestReceiptsPublished() {
	t.Require().NoError(t.subject.Deploy(&journal{account: "a"}))

	ch := make(chan *chain.Receipt, 1)
	sub := t.subject.SubscribeReceipts(ch)
	defer sub.Unsubscribe()

	receipt, err := t.subject.PushTransaction(mockCtx, chain.NewAction("a", "note", "alice", note{Text: "x"}))
	t.Require().NoError(err)
	t.Equal(receipt, <-ch)

	_, err = t.subject.PushTransaction(mockCtx, chain.NewAction("a", "note", "alice", note{Fail: true}))
	t.Error(err)
	t.Len(ch, 0)
}
