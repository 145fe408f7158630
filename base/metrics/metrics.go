/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- Error: *.err
- Business counters: *.count
*/
package metrics

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/x-xyz/spotmarket/base/log"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	return &Metrics{
		pkgName: pkgName,
		datadog: ddMetrics{
			ddTags: []string{
				"host:", // remove unused host tag
				"env:" + viper.GetString("env_name"),
				"app:" + viper.GetString("app_name"),
			},
		},
	}
}

// Metrics prefixes every key with the package name and never lets a bump panic escape.
type Metrics struct {
	pkgName string
	datadog ddMetrics
}

func (mt *Metrics) recoverBump(key string, tags []string) {
	if err := recover(); err != nil {
		log.Log().WithFields(log.Fields{
			"err": err,
			"key": mt.pkgName + "." + key + "#" + strings.Join(tags, "#"),
		}).Error("metric bump panic")
	}
}

func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverBump(key, tags)
	mt.datadog.gauge(mt.pkgName+"."+key, val, tags)
}

func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverBump(key, tags)
	mt.datadog.count(mt.pkgName+"."+key, val, tags)
}

func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverBump(key, tags)
	mt.datadog.histogram(mt.pkgName+"."+key, val, tags)
}

// BumpTime starts a timer; call End on the result when done:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		start: time.Now(),
		end: func(d time.Duration) {
			defer mt.recoverBump(key, tags)
			mt.datadog.timing(mt.pkgName+"."+key, d, tags)
		},
	}
}

type timeTracker struct {
	start time.Time
	end   func(time.Duration)
}

func (t *timeTracker) End() {
	t.end(time.Since(t.start))
}
