package chain

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
)

// ReceiptSink consumes committed receipts in commit order.
type ReceiptSink interface {
	Name() string
	HandleReceipt(c ctx.Ctx, r *Receipt) error
}

type ReceiptRepo interface {
	Insert(c ctx.Ctx, r *Receipt) error
	FindOne(c ctx.Ctx, txId string) (*Receipt, error)
}

// TransactionUsecase pushes transactions on behalf of an authenticated account.
type TransactionUsecase interface {
	// Push fills empty authorizations with actor and rejects any other authority.
	Push(c ctx.Ctx, actor domain.Name, actions []Action) (*Receipt, error)
	FindReceipt(c ctx.Ctx, txId string) (*Receipt, error)
}
