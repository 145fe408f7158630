package healthcheck

import (
	"github.com/x-xyz/spotmarket/base/ctx"
)

const (
	StatusOK       = "ok"
	StatusDown     = "down"
	StatusDisabled = "disabled"
)

// Report is the per dependency status served on /health.
type Report struct {
	State string `json:"state"`
	Audit string `json:"audit"`
}

func (r Report) Healthy() bool {
	return r.State == StatusOK && r.Audit != StatusDown
}

type HealthCheckUsecase interface {
	Check(c ctx.Ctx) Report
}

type HealthCheckRepo interface {
	// AuditEnabled is false when the service runs without mongo.
	AuditEnabled() bool
	PingDB(c ctx.Ctx) error
	PingState(c ctx.Ctx) error
}
