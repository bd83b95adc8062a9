// Package apply implements bidirectional rule application: Forward
// simulates a sound change over a sequence; Backward enumerates the
// proto-forms a sequence could have come from under one application
// of a rule. Both sit on top of pkg/matcher and never fail on a
// parse-valid rule — a rule that doesn't apply anywhere returns its
// input unchanged (Forward) or the singleton set containing just the
// input (Backward).
package apply

import (
	"encoding/binary"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GriffinCanCode/soundshift/pkg/features"
	"github.com/GriffinCanCode/soundshift/pkg/logger"
	"github.com/GriffinCanCode/soundshift/pkg/matcher"
	"github.com/GriffinCanCode/soundshift/pkg/metrics"
	"github.com/GriffinCanCode/soundshift/pkg/phon"
	"github.com/GriffinCanCode/soundshift/pkg/syllable"
)

// Forward applies rule once, left to right, non-overlapping, over
// seq, using syllable.DefaultConfig() for any syllable-position
// condition in rule's context.
func Forward(seq phon.Sequence, rule phon.Rule, sys features.System) phon.Sequence {
	return ForwardWithConfig(seq, rule, sys, syllable.DefaultConfig())
}

// ForwardWithConfig is Forward with an explicit syllabifier
// configuration, for callers whose sonority scale or cluster
// constraints differ from the default.
func ForwardWithConfig(seq phon.Sequence, rule phon.Rule, sys features.System, sylCfg syllable.Config) phon.Sequence {
	return ForwardWithRecorder(seq, rule, sys, sylCfg, metrics.NoOp{})
}

// ForwardWithRecorder is ForwardWithConfig that also reports sites
// matched and wall-clock duration to rec.
func ForwardWithRecorder(seq phon.Sequence, rule phon.Rule, sys features.System, sylCfg syllable.Config, rec metrics.Recorder) phon.Sequence {
	start := time.Now()
	sm := maybeSyllabify(seq, rule, sylCfg)

	out := make(phon.Sequence, 0, len(seq))
	sites := 0
	p := 0
	for p < len(seq) {
		res := matcher.MatchPattern(seq, rule.Ante, sys, sm, p)
		rec.MatchAttempt(res.Matched)
		if res.Matched && contextHolds(seq, rule.Context, sys, sm, p, res.Span, res.Bindings) {
			out = append(out, renderPost(rule, sys, res.Bindings, res.SetIndices)...)
			sites++
			span := res.Span
			if span == 0 {
				span = 1
			}
			p += span
			continue
		}
		out = append(out, seq[p])
		p++
	}
	logger.LogForwardApplied(rule.Source, sites)
	rec.ForwardApplied(rule.Source, sites, time.Since(start))
	return out
}

// Backward enumerates every sequence that could have produced seq
// under one application of rule, always including seq itself. Using
// syllable.DefaultConfig() for any syllable-position condition.
func Backward(seq phon.Sequence, rule phon.Rule, sys features.System) []phon.Sequence {
	return BackwardWithConfig(seq, rule, sys, syllable.DefaultConfig())
}

// BackwardWithConfig is Backward with an explicit syllabifier
// configuration.
func BackwardWithConfig(seq phon.Sequence, rule phon.Rule, sys features.System, sylCfg syllable.Config) []phon.Sequence {
	return BackwardWithRecorder(seq, rule, sys, sylCfg, metrics.NoOp{})
}

// BackwardWithRecorder is BackwardWithConfig that also reports
// candidate counts and wall-clock duration to rec.
func BackwardWithRecorder(seq phon.Sequence, rule phon.Rule, sys features.System, sylCfg syllable.Config, rec metrics.Recorder) []phon.Sequence {
	start := time.Now()
	results := []phon.Sequence{cloneSeq(seq)}
	seen := map[string]struct{}{seqKey(seq): {}}

	sm := maybeSyllabify(seq, rule, sylCfg)

	for p := 0; p < len(seq); p++ {
		res := matcher.MatchPostForInversion(seq, rule.Post, sys, sm, p)
		rec.MatchAttempt(res.Matched)
		if !res.Matched {
			continue
		}

		recon, bindings, ok := invertAnte(rule, sys, res.Bindings, res.SetIndices)
		if !ok {
			continue
		}

		candidate, anteSpan := spliceRecon(seq, p, res.Span, recon)
		candSM := sm
		if needsSyllable(rule) {
			candSM, _ = syllable.Syllabify(candidate, sylCfg)
		}

		if !contextHolds(candidate, rule.Context, sys, candSM, p, anteSpan, bindings) {
			continue
		}

		key := seqKey(candidate)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		results = append(results, candidate)
	}

	logger.LogBackwardApplied(rule.Source, len(results)-1)
	rec.BackwardApplied(rule.Source, len(results)-1, time.Since(start))
	return results
}

// ApplyGradient enumerates rule's match sites with forward semantics
// and, at each site independently, applies the rewrite with
// probability clamp01(strength) using a seeded deterministic RNG.
// strength >= 1 degenerates to Forward; strength <= 0 is the
// identity. A nil seed derives one from a fresh UUID.
func ApplyGradient(seq phon.Sequence, rule phon.Rule, strength float64, sys features.System, seed *int64) phon.Sequence {
	return ApplyGradientWithConfig(seq, rule, strength, sys, seed, syllable.DefaultConfig())
}

// ApplyGradientWithConfig is ApplyGradient with an explicit
// syllabifier configuration.
func ApplyGradientWithConfig(seq phon.Sequence, rule phon.Rule, strength float64, sys features.System, seed *int64, sylCfg syllable.Config) phon.Sequence {
	s := clamp01(strength)
	if s >= 1 {
		return ForwardWithConfig(seq, rule, sys, sylCfg)
	}
	if s <= 0 {
		return cloneSeq(seq)
	}

	rng := rand.New(rand.NewPCG(deriveSeed(seed), 0x9E3779B97F4A7C15))
	sm := maybeSyllabify(seq, rule, sylCfg)

	out := make(phon.Sequence, 0, len(seq))
	p := 0
	for p < len(seq) {
		res := matcher.MatchPattern(seq, rule.Ante, sys, sm, p)
		if res.Matched && contextHolds(seq, rule.Context, sys, sm, p, res.Span, res.Bindings) {
			span := res.Span
			if span == 0 {
				span = 1
			}
			if rng.Float64() < s {
				out = append(out, renderPost(rule, sys, res.Bindings, res.SetIndices)...)
			} else {
				out = append(out, seq[p:p+span]...)
			}
			p += span
			continue
		}
		out = append(out, seq[p])
		p++
	}
	return out
}

func deriveSeed(seed *int64) uint64 {
	if seed != nil {
		return uint64(*seed)
	}
	id := uuid.New()
	return binary.BigEndian.Uint64(id[:8])
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

func needsSyllable(rule phon.Rule) bool {
	for _, t := range rule.Context {
		if _, ok := t.(phon.SyllableCondTok); ok {
			return true
		}
	}
	return false
}

func maybeSyllabify(seq phon.Sequence, rule phon.Rule, cfg syllable.Config) syllable.Map {
	if !needsSyllable(rule) {
		return nil
	}
	sm, _ := syllable.Syllabify(seq, cfg)
	return sm
}

func cloneSeq(seq phon.Sequence) phon.Sequence {
	out := make(phon.Sequence, len(seq))
	copy(out, seq)
	return out
}

// seqKey renders seq into a string that's equal iff the sequences are
// value-equal (grapheme, full feature set, and partial flag for
// Sounds) — used to dedup Backward's candidates.
func seqKey(seq phon.Sequence) string {
	var sb strings.Builder
	for _, e := range seq {
		switch v := e.(type) {
		case phon.Sound:
			sb.WriteString("S:")
			sb.WriteString(v.Grapheme)
			sb.WriteByte('|')
			sb.WriteString(strings.Join(sortedKeys(v.Features), ","))
			if v.Partial {
				sb.WriteString("|partial")
			}
		case phon.Boundary:
			sb.WriteString("B:")
			sb.WriteString(v.Marker)
		}
		sb.WriteByte(';')
	}
	return sb.String()
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
