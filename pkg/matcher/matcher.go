// Package matcher evaluates a rule's token pattern against a window of
// a segment sequence: choices, correspondence sets, quantifiers,
// negation, back-references, and syllable-position conditions, with
// depth-first backtracking over quantifier arities. The matcher
// borrows its inputs — it never mutates seq or pattern and allocates
// nothing beyond the MatchResult it returns.
package matcher

import (
	"github.com/GriffinCanCode/soundshift/pkg/features"
	"github.com/GriffinCanCode/soundshift/pkg/phon"
	"github.com/GriffinCanCode/soundshift/pkg/syllable"
)

// matcher holds one match attempt's mutable scratch state: the
// bindings array being filled in as tokens succeed, and the external
// reference bindings back-references resolve against when set (used
// when matching a rule's context, where @n refers to the ante's own
// bindings rather than this pattern's).
type matcher struct {
	seq         phon.Sequence
	pattern     []phon.Token
	sys         features.System
	sm          syllable.Map
	bindings    []any
	setIndices  map[int]int
	refBindings []any
	endPos      int

	// backrefWildcard is set when matching a rule's post pattern during
	// backward inversion, where a BackRefTok's target ante binding is
	// exactly what inversion is trying to reconstruct and so cannot be
	// resolved yet. In this mode a BackRefTok instead matches any single
	// element (a Sound, if it carries a modifier — only a Sound's
	// features can be inverted) and records it as its own binding.
	backrefWildcard bool
}

// MatchPattern attempts to match pattern against seq starting at
// offset, with no external back-reference bindings: back-references
// inside pattern resolve against bindings accumulated earlier in this
// same match, which is the right behavior when pattern is a rule's
// ante.
func MatchPattern(seq phon.Sequence, pattern []phon.Token, sys features.System, sm syllable.Map, offset int) phon.MatchResult {
	return MatchPatternWithRefs(seq, pattern, sys, sm, offset, nil)
}

// MatchPatternWithRefs is MatchPattern with an external bindings slice
// for back-reference resolution — used when matching a rule's
// context, where @n must resolve against the ante's bindings rather
// than the pattern currently being matched.
func MatchPatternWithRefs(seq phon.Sequence, pattern []phon.Token, sys features.System, sm syllable.Map, offset int, refBindings []any) phon.MatchResult {
	m := &matcher{
		seq:         seq,
		pattern:     pattern,
		sys:         sys,
		sm:          sm,
		bindings:    make([]any, len(pattern)),
		refBindings: refBindings,
	}
	return m.run(offset)
}

// MatchPostForInversion matches rule.Post against seq for Backward's
// purposes: a BackRefTok in post cannot be resolved against ante
// bindings the way it can in MatchPattern/MatchPatternWithRefs, because
// inversion is precisely trying to reconstruct those ante bindings from
// this match. Instead, a BackRefTok here matches any single element
// (restricted to a Sound when it carries a modifier, since only a
// Sound's features invert_modifiers can act on), and the matched
// element itself becomes the binding invertAnte reads back out.
func MatchPostForInversion(seq phon.Sequence, pattern []phon.Token, sys features.System, sm syllable.Map, offset int) phon.MatchResult {
	m := &matcher{
		seq:             seq,
		pattern:         pattern,
		sys:             sys,
		sm:              sm,
		bindings:        make([]any, len(pattern)),
		backrefWildcard: true,
	}
	return m.run(offset)
}

func (m *matcher) run(offset int) phon.MatchResult {
	if m.matchFrom(0, offset) {
		return phon.MatchResult{
			Matched:    true,
			Bindings:   m.bindings,
			Span:       m.endPos - offset,
			SetIndices: m.setIndices,
		}
	}
	return phon.MatchResult{Matched: false}
}

// matchFrom tries to match pattern[patIdx:] against seq starting at
// pos, recording bindings as it goes. It returns true and records
// m.endPos on success; on failure it leaves earlier bindings from this
// call's own recursion cleared.
func (m *matcher) matchFrom(patIdx, pos int) bool {
	if patIdx == len(m.pattern) {
		m.endPos = pos
		return true
	}

	switch t := m.pattern[patIdx].(type) {
	case phon.FocusTok:
		m.bindings[patIdx] = nil
		return m.matchFrom(patIdx+1, pos)

	case phon.EmptyTok:
		m.bindings[patIdx] = nil
		return m.matchFrom(patIdx+1, pos)

	case phon.SyllableCondTok:
		return m.matchSyllableCond(patIdx, pos, t)

	case phon.QuantifiedTok:
		return m.matchQuantified(patIdx, pos, t)

	case phon.SetTok:
		return m.matchAlternatives(patIdx, pos, t.Choices, true)

	case phon.ChoiceTok:
		return m.matchAlternatives(patIdx, pos, t.Choices, false)

	default:
		ok, span, bind := m.matchSingleToken(t, pos)
		if !ok {
			m.bindings[patIdx] = nil
			return false
		}
		m.bindings[patIdx] = bind
		if m.matchFrom(patIdx+1, pos+span) {
			return true
		}
		m.bindings[patIdx] = nil
		return false
	}
}

// matchSingleToken matches one primitive token — SegmentTok,
// BoundaryTok, BackRefTok, NegationTok, or a ChoiceTok over
// primitives — against exactly one input position, without touching
// the rest of the pattern. This is the shared core used both at the
// top level and for the alternatives inside ChoiceTok/SetTok/
// QuantifiedTok, all of which are restricted to primitives by the
// parser.
func (m *matcher) matchSingleToken(tok phon.Token, pos int) (ok bool, span int, binding any) {
	switch t := tok.(type) {
	case phon.SegmentTok:
		if pos >= len(m.seq) {
			return false, 0, nil
		}
		sound, isSound := m.seq[pos].(phon.Sound)
		if !isSound {
			return false, 0, nil
		}
		if t.Sound.Partial {
			if !features.PartialMatchFeatureSets(t.Sound.Features, sound.Features) {
				return false, 0, nil
			}
		} else if !featureSetsEqual(t.Sound.Features, sound.Features) {
			return false, 0, nil
		}
		return true, 1, m.seq[pos]

	case phon.BoundaryTok:
		if pos >= len(m.seq) {
			return false, 0, nil
		}
		b, isBoundary := m.seq[pos].(phon.Boundary)
		if !isBoundary {
			return false, 0, nil
		}
		want := t.Marker
		if want == "" {
			want = "#"
		}
		got := b.Marker
		if got == "" {
			got = "#"
		}
		if want != got {
			return false, 0, nil
		}
		return true, 1, m.seq[pos]

	case phon.BackRefTok:
		if pos >= len(m.seq) {
			return false, 0, nil
		}
		if m.backrefWildcard {
			el := m.seq[pos]
			if t.Modifier != "" {
				if _, isSound := el.(phon.Sound); !isSound {
					return false, 0, nil
				}
			}
			return true, 1, el
		}
		refEl, has := m.resolveBackRef(t.Index)
		if !has || refEl == nil {
			return false, 0, nil
		}
		want := refEl
		if sound, isSound := refEl.(phon.Sound); isSound && t.Modifier != "" {
			want = phon.Sound{Grapheme: sound.Grapheme, Features: features.ApplyModifier(m.sys, sound.Features, t.Modifier)}
		}
		if !elementsEqual(want, m.seq[pos]) {
			return false, 0, nil
		}
		return true, 1, m.seq[pos]

	case phon.NegationTok:
		if pos >= len(m.seq) {
			return false, 0, nil
		}
		innerOK, _, _ := m.matchSingleToken(t.Inner, pos)
		if innerOK {
			return false, 0, nil
		}
		return true, 1, nil

	case phon.ChoiceTok:
		for _, alt := range t.Choices {
			if ok, span, bind := m.matchSingleToken(alt, pos); ok {
				return true, span, bind
			}
		}
		return false, 0, nil

	default:
		return false, 0, nil
	}
}

// resolveBackRef resolves a 0-based ante index to its bound element.
// When refBindings is set (matching a rule's context), that
// slice is authoritative; otherwise a back-reference resolves against
// this same match's own bindings, built left-to-right so an earlier
// position is always already filled.
func (m *matcher) resolveBackRef(index int) (phon.Element, bool) {
	src := m.refBindings
	if src == nil {
		src = m.bindings
	}
	if index < 0 || index >= len(src) {
		return nil, false
	}
	el, ok := src[index].(phon.Element)
	return el, ok
}

// matchAlternatives matches a ChoiceTok's or SetTok's Choices at pos;
// isSet additionally records the matched alternative's index in
// setIndices so a paired SetTok elsewhere in the rule can replay it.
func (m *matcher) matchAlternatives(patIdx, pos int, choices []phon.Token, isSet bool) bool {
	for i, alt := range choices {
		ok, span, bind := m.matchSingleToken(alt, pos)
		if !ok {
			continue
		}
		m.bindings[patIdx] = bind
		if isSet {
			if m.setIndices == nil {
				m.setIndices = map[int]int{}
			}
			m.setIndices[patIdx] = i
		}
		if m.matchFrom(patIdx+1, pos+span) {
			return true
		}
	}
	m.bindings[patIdx] = nil
	if isSet && m.setIndices != nil {
		delete(m.setIndices, patIdx)
	}
	return false
}

// matchQuantified handles "+" (one-or-more, greedy with backtracking)
// and "?" (zero-then-one) quantifiers over a primitive inner token.
func (m *matcher) matchQuantified(patIdx, pos int, t phon.QuantifiedTok) bool {
	switch t.Quantifier {
	case "?":
		m.bindings[patIdx] = nil
		if m.matchFrom(patIdx+1, pos) {
			return true
		}
		ok, span, bind := m.matchSingleToken(t.Inner, pos)
		if ok {
			m.bindings[patIdx] = bind
			if m.matchFrom(patIdx+1, pos+span) {
				return true
			}
		}
		m.bindings[patIdx] = nil
		return false

	case "+":
		maxN := 0
		p := pos
		for {
			ok, span, _ := m.matchSingleToken(t.Inner, p)
			if !ok {
				break
			}
			maxN++
			p += span
		}
		for n := maxN; n >= 1; n-- {
			endPos := pos
			var firstBind any
			ok := true
			for k := 0; k < n; k++ {
				o, span, bind := m.matchSingleToken(t.Inner, endPos)
				if !o {
					ok = false
					break
				}
				if k == 0 {
					firstBind = bind
				}
				endPos += span
			}
			if !ok {
				continue
			}
			m.bindings[patIdx] = firstBind
			if m.matchFrom(patIdx+1, endPos) {
				return true
			}
		}
		m.bindings[patIdx] = nil
		return false

	default:
		return false
	}
}

// matchSyllableCond consumes nothing; it succeeds iff a syllable map
// was supplied and the current position (the focus the condition is
// anchored to) carries the stated role.
func (m *matcher) matchSyllableCond(patIdx, pos int, t phon.SyllableCondTok) bool {
	m.bindings[patIdx] = nil
	if m.sm == nil {
		return false
	}
	if string(m.sm(pos)) != t.Position {
		return false
	}
	return m.matchFrom(patIdx+1, pos)
}

func featureSetsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func elementsEqual(a, b phon.Element) bool {
	switch av := a.(type) {
	case phon.Sound:
		bv, ok := b.(phon.Sound)
		return ok && featureSetsEqual(av.Features, bv.Features)
	case phon.Boundary:
		bv, ok := b.(phon.Boundary)
		if !ok {
			return false
		}
		am, bm := av.Marker, bv.Marker
		if am == "" {
			am = "#"
		}
		if bm == "" {
			bm = "#"
		}
		return am == bm
	default:
		return false
	}
}
