package observe

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromObserver exports classification decisions as Prometheus metrics.
type PromObserver struct {
	decisions *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewPromObserver creates an observer registered with reg. A nil reg uses the
// default registerer.
func NewPromObserver(reg prometheus.Registerer) *PromObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &PromObserver{
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verdict_decisions_total",
				Help: "Classification decisions, by outcome and winning rule.",
			},
			[]string{"outcome", "rule"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "verdict_decision_duration_seconds",
				Help:    "Time spent classifying a single error.",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
		),
	}
	reg.MustRegister(o.decisions, o.duration)
	return o
}

func (o *PromObserver) OnDecision(d Decision) {
	outcome := "no_match"
	rule := ""
	if d.Matched {
		outcome = d.Action.String()
		rule = d.Rule
	}
	o.decisions.WithLabelValues(outcome, rule).Inc()
	o.duration.Observe(d.Elapsed.Seconds())
}
