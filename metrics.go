package route

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeMatched          = "matched"
	outcomeNotFound         = "not_found"
	outcomeMethodNotAllowed = "method_not_allowed"
	outcomeBadRequest       = "bad_request"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "route",
			Name:      "requests_total",
			Help:      "Requests dispatched by the router, by route pattern and outcome.",
		}, []string{"pattern", "method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "route",
			Name:      "request_duration_seconds",
			Help:      "Time spent serving a request, including route lookup.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"pattern", "method"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return nil, err
			}
			switch existing := already.ExistingCollector.(type) {
			case *prometheus.CounterVec:
				m.requests = existing
			case *prometheus.HistogramVec:
				m.duration = existing
			}
		}
	}
	return m, nil
}

// observe is a no-op on a nil receiver so the dispatcher can call it unconditionally.
func (m *metrics) observe(pattern, method, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(pattern, method, outcome).Inc()
	m.duration.WithLabelValues(pattern, method).Observe(time.Since(start).Seconds())
}
