package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/token"
	"github.com/x-xyz/spotmarket/service/sandbox"
	"github.com/x-xyz/spotmarket/service/xtoken"
	"github.com/x-xyz/spotmarket/stores/chain/usecase"
)

var mockCtx = ctx.Background()

type testsuite struct {
	suite.Suite

	cfg    sandbox.Cfg
	engine chain.Engine
	uc     chain.TransactionUsecase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.cfg = sandbox.DefaultCfg()
	engine, sb, err := sandbox.NewLocal(mockCtx, &t.cfg, nil)
	t.Require().NoError(err)
	t.Require().NoError(sb.Fund(mockCtx, "alice", 100000))
	t.engine = engine
	t.uc = usecase.NewTransactionUseCase(engine, nil)
}

func (t *testsuite) transfer(from, to domain.Name, amount int64) chain.Action {
	a := token.TransferAction(t.cfg.Accounts.Token, from, to, domain.NewQuantity(amount, t.cfg.Symbol), "")
	a.Authorization = nil
	return a
}

func (t *testsuite) balance(owner domain.Name) int64 {
	var q domain.Quantity
	t.Require().NoError(t.engine.Read(mockCtx, func(s domain.Store) error {
		var err error
		q, err = xtoken.NewTables(t.cfg.Accounts.Token, s).Balance(mockCtx, owner, t.cfg.Symbol)
		return err
	}))
	return q.Amount
}

func (t *testsuite) TestPushFillsAuthorization() {
	r, err := t.uc.Push(mockCtx, "alice", []chain.Action{t.transfer("alice", "bob", 400)})
	t.Require().NoError(err)
	t.NotEmpty(r.TxId)
	t.Equal([]domain.Name{"alice"}, r.Traces[0].Action.Authorization)
	t.Equal(int64(400), t.balance("bob"))
}

func (t *testsuite) TestPushRejectsForeignAuthority() {
	a := t.transfer("alice", "bob", 400)
	a.Authorization = []domain.Name{"alice", "mallory"}

	_, err := t.uc.Push(mockCtx, "mallory", []chain.Action{a})
	t.ErrorIs(err, domain.ErrBadParamInput)
	t.Zero(t.balance("bob"))
}

func (t *testsuite) TestPushRollsBack() {
	_, err := t.uc.Push(mockCtx, "alice", []chain.Action{
		t.transfer("alice", "bob", 400),
		t.transfer("alice", "bob", 1000000),
	})
	t.ErrorIs(err, token.ErrInsufficientAmount)
	t.Zero(t.balance("bob"))
	t.Equal(int64(100000), t.balance("alice"))
}

func (t *testsuite) TestPushNeedsSignerAuthority() {
	_, err := t.uc.Push(mockCtx, "mallory", []chain.Action{t.transfer("alice", "mallory", 400)})
	t.ErrorIs(err, domain.ErrMissingAuthority)
	t.Equal("missing required authority alice", chain.Reason(err))
}

func (t *testsuite) TestFindReceiptWithoutAudit() {
	_, err := t.uc.FindReceipt(mockCtx, "tx")
	t.ErrorIs(err, domain.ErrNotFound)
}
