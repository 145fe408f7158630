package metrics

import (
	"github.com/x-xyz/spotmarket/base/log"
)

// logClient stands in for statsd when metrics.datadog_host is empty.
type logClient struct {
	logger log.Logger
}

func newLogClient() *logClient {
	return &logClient{log.Log().Named("metrics")}
}

func (lc *logClient) write(kind, name string, value interface{}, tags []string) error {
	lc.logger.WithFields(log.Fields{"kind": kind, "key": name, "val": value, "tags": tags}).Debug("bump")
	return nil
}

func (lc *logClient) Gauge(name string, value float64, tags []string, rate float64) error {
	return lc.write("gauge", name, value, tags)
}

func (lc *logClient) Count(name string, value int64, tags []string, rate float64) error {
	return lc.write("count", name, value, tags)
}

func (lc *logClient) Histogram(name string, value float64, tags []string, rate float64) error {
	return lc.write("histogram", name, value, tags)
}

func (lc *logClient) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	return lc.write("time_ms", name, value, tags)
}
