package perf

import (
	"expvar"
	"strings"

	"github.com/encodeous/metric"
)

var (
	SpfLatency        = metric.NewHistogram("1m1s")
	ConvergenceRounds = metric.NewHistogram("1m1s")
	RouteUpdates      = metric.NewCounter("1m1s")
	LoopsRejected     = metric.NewCounter("1m1s")
)

func init() {
	expvar.Publish("routesim:SpfLatency (µs)", SpfLatency)
	expvar.Publish("routesim:ConvergenceRounds", ConvergenceRounds)
	expvar.Publish("routesim:RouteUpdates", RouteUpdates)
	expvar.Publish("routesim:LoopsRejected", LoopsRejected)
}

// Snapshot returns the current value of every published metric as key/value pairs, suitable for slog
func Snapshot() []any {
	out := make([]any, 0)
	expvar.Do(func(kv expvar.KeyValue) {
		if name, ok := strings.CutPrefix(kv.Key, "routesim:"); ok {
			out = append(out, name, kv.Value.String())
		}
	})
	return out
}
