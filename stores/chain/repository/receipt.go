package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/service/query"
)

type receiptRepo struct {
	q query.Mongo
}

func NewReceiptRepo(q query.Mongo) chain.ReceiptRepo {
	return &receiptRepo{
		q: q,
	}
}

func (r *receiptRepo) Insert(ctx ctx.Ctx, rc *chain.Receipt) error {
	if err := r.q.Upsert(ctx, domain.TableReceipts, bson.M{"txId": rc.TxId}, rc); err != nil {
		ctx.WithField("err", err).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (r *receiptRepo) FindOne(ctx ctx.Ctx, txId string) (*chain.Receipt, error) {
	rc := &chain.Receipt{}
	if err := r.q.FindOne(ctx, domain.TableReceipts, bson.M{"txId": txId}, rc); err != nil {
		if errors.Is(err, query.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		ctx.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return rc, nil
}

type receiptSink struct {
	repo chain.ReceiptRepo
}

// NewReceiptSink stores every committed receipt.
func NewReceiptSink(repo chain.ReceiptRepo) chain.ReceiptSink {
	return &receiptSink{repo: repo}
}

func (s *receiptSink) Name() string {
	return "receipts"
}

func (s *receiptSink) HandleReceipt(c ctx.Ctx, r *chain.Receipt) error {
	return s.repo.Insert(c, r)
}
