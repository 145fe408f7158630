package usecase

import (
	"github.com/x-xyz/spotmarket/base/ctx"
	hcdomain "github.com/x-xyz/spotmarket/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{repo}
}

func (im *impl) Check(c ctx.Ctx) hcdomain.Report {
	r := hcdomain.Report{State: hcdomain.StatusOK, Audit: hcdomain.StatusDisabled}
	if err := im.repo.PingState(c); err != nil {
		r.State = hcdomain.StatusDown
	}
	if im.repo.AuditEnabled() {
		r.Audit = hcdomain.StatusOK
		if err := im.repo.PingDB(c); err != nil {
			r.Audit = hcdomain.StatusDown
		}
	}
	return r
}
