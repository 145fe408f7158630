package usecase

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
)

type transactionUseCase struct {
	engine   chain.Engine
	receipts chain.ReceiptRepo
}

// NewTransactionUseCase returns the usecase behind the transaction api. receipts
// may be nil when no audit database is configured.
func NewTransactionUseCase(engine chain.Engine, receipts chain.ReceiptRepo) chain.TransactionUsecase {
	return &transactionUseCase{engine: engine, receipts: receipts}
}

func (u *transactionUseCase) Push(c ctx.Ctx, actor domain.Name, actions []chain.Action) (*chain.Receipt, error) {
	for i := range actions {
		if len(actions[i].Authorization) == 0 {
			actions[i].Authorization = []domain.Name{actor}
			continue
		}
		for _, a := range actions[i].Authorization {
			if a != actor {
				return nil, xerrors.Errorf("action %d signed by %s: %w", i, a, domain.ErrBadParamInput)
			}
		}
	}

	r, err := u.engine.PushTransaction(c, actions...)
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"actor":  actor,
			"reason": chain.Reason(err),
		}).Info("engine.PushTransaction rejected")
		return nil, err
	}
	return r, nil
}

func (u *transactionUseCase) FindReceipt(c ctx.Ctx, txId string) (*chain.Receipt, error) {
	if u.receipts == nil {
		return nil, domain.ErrNotFound
	}
	return u.receipts.FindOne(c, txId)
}
