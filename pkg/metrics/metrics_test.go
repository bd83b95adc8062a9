package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpDiscardsEverything(t *testing.T) {
	var rec Recorder = NoOp{}
	assert.NotPanics(t, func() {
		rec.ForwardApplied("p > b", 3, time.Millisecond)
		rec.BackwardApplied("p > b", 2, time.Millisecond)
		rec.MatchAttempt(true)
		rec.MatchAttempt(false)
	})
}

func TestNewPrometheusUsesDedicatedRegistry(t *testing.T) {
	p1 := NewPrometheus()
	p2 := NewPrometheus()
	assert.NotSame(t, p1.Registry(), p2.Registry())

	// Recording on one instance must not panic, even with an identical
	// metric family registered in the other instance's registry.
	assert.NotPanics(t, func() {
		p1.ForwardApplied("a > b", 1, time.Microsecond)
		p2.ForwardApplied("a > b", 1, time.Microsecond)
	})
}

func TestForwardAppliedObservesBothHistograms(t *testing.T) {
	p := NewPrometheus()
	p.ForwardApplied("p > b / V _ V", 4, 10*time.Millisecond)

	families, err := p.Registry().Gather()
	require.NoError(t, err)

	names := gatherNames(families)
	assert.Contains(t, names, "soundshift_forward_sites_matched")
	assert.Contains(t, names, "soundshift_forward_duration_seconds")
}

func TestBackwardAppliedObservesBothHistograms(t *testing.T) {
	p := NewPrometheus()
	p.BackwardApplied("p > b", 2, 5*time.Millisecond)

	families, err := p.Registry().Gather()
	require.NoError(t, err)

	names := gatherNames(families)
	assert.Contains(t, names, "soundshift_backward_candidates")
	assert.Contains(t, names, "soundshift_backward_duration_seconds")
}

func TestMatchAttemptLabelsByOutcome(t *testing.T) {
	p := NewPrometheus()
	p.MatchAttempt(true)
	p.MatchAttempt(true)
	p.MatchAttempt(false)

	families, err := p.Registry().Gather()
	require.NoError(t, err)

	var hit, miss float64
	for _, f := range families {
		if f.GetName() != "soundshift_matcher_attempts_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "outcome" {
					switch lp.GetValue() {
					case "hit":
						hit = m.GetCounter().GetValue()
					case "miss":
						miss = m.GetCounter().GetValue()
					}
				}
			}
		}
	}
	assert.Equal(t, 2.0, hit)
	assert.Equal(t, 1.0, miss)
}

func gatherNames(families []*dto.MetricFamily) map[string]bool {
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}
