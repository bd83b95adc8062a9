// Package metrics records counts and latencies for rule application,
// exposed as Prometheus metrics. A Recorder is an interface so callers
// that don't want a metrics server can use NoOp instead.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder records engine activity. All methods must be safe for
// concurrent use.
type Recorder interface {
	ForwardApplied(ruleSource string, sites int, d time.Duration)
	BackwardApplied(ruleSource string, candidates int, d time.Duration)
	MatchAttempt(matched bool)
}

// NoOp is a Recorder that discards everything, for callers that don't
// want metrics collection.
type NoOp struct{}

func (NoOp) ForwardApplied(ruleSource string, sites int, d time.Duration)    {}
func (NoOp) BackwardApplied(ruleSource string, candidates int, d time.Duration) {}
func (NoOp) MatchAttempt(matched bool)                                      {}

// Prometheus is a Recorder backed by a dedicated prometheus.Registry,
// rather than the global default registry, so a program can build more
// than one (in tests, or multiple engine instances) without a
// duplicate-registration panic.
type Prometheus struct {
	registry *prometheus.Registry

	forwardSites      *prometheus.HistogramVec
	forwardDuration   *prometheus.HistogramVec
	backwardCandidates *prometheus.HistogramVec
	backwardDuration  *prometheus.HistogramVec
	matches           *prometheus.CounterVec
}

// NewPrometheus builds a Prometheus recorder with its own registry,
// which callers can hand to an HTTP handler via promhttp.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		forwardSites: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "soundshift",
			Subsystem: "forward",
			Name:      "sites_matched",
			Help:      "Number of sites a forward rule application matched.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"rule"}),
		forwardDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "soundshift",
			Subsystem: "forward",
			Name:      "duration_seconds",
			Help:      "Forward application latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"rule"}),
		backwardCandidates: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "soundshift",
			Subsystem: "backward",
			Name:      "candidates",
			Help:      "Number of proto-forms a backward enumeration produced, excluding the input itself.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}, []string{"rule"}),
		backwardDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "soundshift",
			Subsystem: "backward",
			Name:      "duration_seconds",
			Help:      "Backward enumeration latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"rule"}),
		matches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soundshift",
			Subsystem: "matcher",
			Name:      "attempts_total",
			Help:      "Pattern match attempts by outcome.",
		}, []string{"outcome"}),
	}
}

// Registry exposes the underlying registry for an HTTP metrics handler.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) ForwardApplied(ruleSource string, sites int, d time.Duration) {
	p.forwardSites.WithLabelValues(ruleSource).Observe(float64(sites))
	p.forwardDuration.WithLabelValues(ruleSource).Observe(d.Seconds())
}

func (p *Prometheus) BackwardApplied(ruleSource string, candidates int, d time.Duration) {
	p.backwardCandidates.WithLabelValues(ruleSource).Observe(float64(candidates))
	p.backwardDuration.WithLabelValues(ruleSource).Observe(d.Seconds())
}

func (p *Prometheus) MatchAttempt(matched bool) {
	outcome := "miss"
	if matched {
		outcome = "hit"
	}
	p.matches.WithLabelValues(outcome).Inc()
}
