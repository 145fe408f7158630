package usecase

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	"github.com/x-xyz/spotmarket/domain"
	"github.com/x-xyz/spotmarket/domain/promotion"
)

type logUsecase struct {
	repo promotion.LogRepo
}

func NewLogUsecase(repo promotion.LogRepo) promotion.LogUsecase {
	return &logUsecase{repo}
}

func (im *logUsecase) Search(c ctx.Ctx, params promotion.SearchParams) ([]*promotion.PromotionLog, error) {
	opts := []promotion.SelectOptions{}
	if params.PromoType != nil {
		opts = append(opts, promotion.WithPromoType(promotion.PromoType(*params.PromoType)))
	}
	if params.Target != nil {
		opts = append(opts, promotion.WithTarget(*params.Target))
	}
	if params.PromotedBy != nil {
		opts = append(opts, promotion.WithPromotedBy(domain.Name(*params.PromotedBy)))
	}
	if params.Limit != nil {
		opts = append(opts, promotion.WithLimit(*params.Limit))
	}

	res, err := im.repo.Search(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.Search failed")
		return nil, err
	}
	return res, nil
}
