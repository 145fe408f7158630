package cache

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain/chain"
)

type purgeSink struct {
	svc Service
}

// NewPurgeSink drops cached reads whenever a transaction commits.
func NewPurgeSink(svc Service) chain.ReceiptSink {
	return &purgeSink{svc}
}

func (im *purgeSink) Name() string {
	return "cache"
}

func (im *purgeSink) HandleReceipt(c ctx.Ctx, r *chain.Receipt) error {
	im.svc.Purge(c)
	return nil
}
