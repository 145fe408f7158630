package usecase

import (
	"encoding/json"
	"time"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/base/log"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/chain"
	"github.com/x-xyz/spotmarket/domain/promotion"
)

type logSink struct {
	gatekeeper domain.Name
	repo       promotion.LogRepo
}

// NewLogSink records the log actions the gatekeeper emits for accepted promotions.
func NewLogSink(gatekeeper domain.Name, repo promotion.LogRepo) chain.ReceiptSink {
	return &logSink{gatekeeper: gatekeeper, repo: repo}
}

func (im *logSink) Name() string {
	return "promotion_logs"
}

func (im *logSink) HandleReceipt(c ctx.Ctx, r *chain.Receipt) error {
	for _, tr := range r.Traces {
		l, err := im.toLog(tr)
		if err != nil {
			c.WithFields(log.Fields{
				"err":  err,
				"txId": r.TxId,
				"seq":  tr.Seq,
			}).Error("toLog failed")
			return err
		}
		if l == nil {
			continue
		}
		l.TxId = r.TxId
		l.CreatedAt = r.Time

		if err := im.repo.Insert(c, l); err != nil {
			c.WithField("err", err).Error("repo.Insert failed")
			return err
		}
	}
	return nil
}

// toLog returns nil for traces that are not gatekeeper log actions.
func (im *logSink) toLog(tr chain.ActionTrace) (*promotion.PromotionLog, error) {
	act := tr.Action
	if tr.Receiver != im.gatekeeper || act.Account != im.gatekeeper {
		return nil, nil
	}

	switch act.Name {
	case promotion.ActLogCollection:
		p := &promotion.LogCollectionPromotion{}
		if err := payloadOf(act.Data, p); err != nil {
			return nil, err
		}
		end := time.Unix(p.PromotionEnd, 0).UTC()
		return &promotion.PromotionLog{
			Seq:          tr.Seq,
			PromoType:    promotion.PromoTypeCollection,
			Target:       string(p.Collection),
			PromotedBy:   p.PromotedBy,
			SpotType:     p.SpotType,
			PromotionEnd: &end,
		}, nil
	case promotion.ActLogAuction:
		p := &promotion.LogAuctionPromotion{}
		if err := payloadOf(act.Data, p); err != nil {
			return nil, err
		}
		return &promotion.PromotionLog{
			Seq:        tr.Seq,
			PromoType:  promotion.PromoTypeAuction,
			Target:     p.AuctionId.String(),
			PromotedBy: p.PromotedBy,
			SpotType:   p.SpotType,
		}, nil
	}
	return nil, nil
}

// payloadOf copies data into p. Live receipts carry the decoded payload
// pointer, stored ones carry generic JSON.
func payloadOf(data interface{}, p interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, p)
}
