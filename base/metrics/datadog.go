package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/spotmarket/base/log"
)

const (
	ddClientsSize    = 8 // needs to be 2^n
	ddClientsIdxMask = ddClientsSize - 1

	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
)

var (
	initOnce = sync.Once{}

	ddClientsIdx = int32(0)
	ddClients    []statsCli
)

// initDDClient connects to the agent at metrics.datadog_host. Without a host the
// bumps are only written to the debug log.
func initDDClient() {
	host := viper.GetString("metrics.datadog_host")
	port := viper.GetInt("metrics.datadog_port")
	if port == 0 {
		port = 8125
	}

	ddClients = make([]statsCli, ddClientsSize)
	for i := 0; i < ddClientsSize; i++ {
		if host == "" {
			ddClients[i] = newLogClient()
			continue
		}

		addr := fmt.Sprintf("%s:%d", host, port)
		cli, err := statsd.NewBuffered(addr, bufferMetrics)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
		}
		ddClients[i] = cli
	}
}

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

func nextClient() statsCli {
	initOnce.Do(initDDClient)
	return ddClients[atomic.AddInt32(&ddClientsIdx, 1)&ddClientsIdxMask]
}

type ddMetrics struct {
	ddTags []string
}

func (dm *ddMetrics) tags(tags []string) []string {
	res := make([]string, 0, len(dm.ddTags)+len(tags)/2)
	res = append(res, dm.ddTags...)
	return append(res, parseTag(tags)...)
}

func (dm *ddMetrics) gauge(key string, val float64, tags []string) {
	if err := nextClient().Gauge(key, val, dm.tags(tags), 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "func": "BumpAvg"}).Error("Bump fail")
	}
}

func (dm *ddMetrics) count(key string, val float64, tags []string) {
	if err := nextClient().Count(key, int64(val), dm.tags(tags), 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "func": "BumpSum"}).Error("Bump fail")
	}
}

func (dm *ddMetrics) histogram(key string, val float64, tags []string) {
	if err := nextClient().Histogram(key, val, dm.tags(tags), 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "func": "BumpHistogram"}).Error("Bump fail")
	}
}

func (dm *ddMetrics) timing(key string, d time.Duration, tags []string) {
	ms := float64(d) / float64(time.Millisecond)
	if err := nextClient().TimeInMilliseconds(key, ms, dm.tags(tags), 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "func": "BumpTime"}).Error("Bump fail")
	}
}

func parseTag(tags []string) []string {
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}
