package promotion

import (
	"time"

	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
)

// PromotionLog is the audit record kept for every accepted promotion.
type PromotionLog struct {
	TxId         string      `json:"txId" bson:"txId"`
	Seq          int         `json:"seq" bson:"seq"`
	PromoType    PromoType   `json:"promoType" bson:"promoType"`
	Target       string      `json:"target" bson:"target"`
	PromotedBy   domain.Name `json:"promotedBy" bson:"promotedBy"`
	SpotType     SpotType    `json:"spotType" bson:"spotType"`
	PromotionEnd *time.Time  `json:"promotionEnd,omitempty" bson:"promotionEnd,omitempty"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"`
}

type SearchParams struct {
	PromoType  *string `query:"promoType" validate:"omitempty,oneof=auction collection"`
	Target     *string `query:"target"`
	PromotedBy *string `query:"promotedBy"`
	Limit      *int64  `query:"limit" validate:"omitempty,min=1,max=200"`
}

type selectOptions struct {
	PromoType  *PromoType   `bson:"promoType"`
	Target     *string      `bson:"target"`
	PromotedBy *domain.Name `bson:"promotedBy"`
	Limit      *int64       `bson:"-"`
}

type SelectOptions func(*selectOptions) error

func GetSelectOptions(opts ...SelectOptions) (selectOptions, error) {
	res := selectOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithPromoType(t PromoType) SelectOptions {
	return func(options *selectOptions) error {
		options.PromoType = &t
		return nil
	}
}

func WithTarget(target string) SelectOptions {
	return func(options *selectOptions) error {
		options.Target = &target
		return nil
	}
}

func WithPromotedBy(account domain.Name) SelectOptions {
	return func(options *selectOptions) error {
		options.PromotedBy = &account
		return nil
	}
}

func WithLimit(limit int64) SelectOptions {
	return func(options *selectOptions) error {
		options.Limit = &limit
		return nil
	}
}

type LogRepo interface {
	Insert(c ctx.Ctx, l *PromotionLog) error
	Search(c ctx.Ctx, opts ...SelectOptions) ([]*PromotionLog, error)
}

type LogUsecase interface {
	Search(c ctx.Ctx, params SearchParams) ([]*PromotionLog, error)
}
