package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/promotion"
	"github.com/x-xyz/spotmarket/service/query"
)

const defaultLimit = 50

type promotionLogImpl struct {
	q query.Mongo
}

func NewPromotionLog(q query.Mongo) promotion.LogRepo {
	return &promotionLogImpl{q}
}

// Insert is idempotent on (txId, seq) so a retried receipt does not duplicate entries.
func (im *promotionLogImpl) Insert(c ctx.Ctx, l *promotion.PromotionLog) error {
	selector := bson.M{"txId": l.TxId, "seq": l.Seq}
	if err := im.q.Upsert(c, domain.TablePromotionLogs, selector, l); err != nil {
		c.WithField("err", err).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *promotionLogImpl) Search(c ctx.Ctx, optFns ...promotion.SelectOptions) ([]*promotion.PromotionLog, error) {
	opts, err := promotion.GetSelectOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("promotion.GetSelectOptions failed")
		return nil, err
	}

	qry := bson.M{}
	if opts.PromoType != nil {
		qry["promoType"] = *opts.PromoType
	}
	if opts.Target != nil {
		qry["target"] = *opts.Target
	}
	if opts.PromotedBy != nil {
		qry["promotedBy"] = *opts.PromotedBy
	}

	limit := defaultLimit
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	res := []*promotion.PromotionLog{}
	if err := im.q.Search(c, domain.TablePromotionLogs, 0, limit, "-createdAt", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
