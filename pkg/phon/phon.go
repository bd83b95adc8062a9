// Package phon defines the engine's immutable value types: sounds,
// boundaries, the elements a sequence is built from, the sealed Token
// union a rule pattern is built from, and the rule/match-result types
// that tie parsing to application. Every value here is constructed
// once and never mutated afterward.
package phon

import "strings"

// Sound is a concrete phonological sound: a grapheme plus the feature
// set describing it. Partial marks a sound built from a class or
// partial-feature match rather than a literal grapheme lookup.
type Sound struct {
	Grapheme string
	Features map[string]struct{}
	Partial  bool
}

func (s Sound) String() string { return s.Grapheme }

// Boundary is the word/morpheme boundary marker "#".
type Boundary struct {
	Marker string
}

// NewBoundary returns the canonical "#" boundary.
func NewBoundary() Boundary { return Boundary{Marker: "#"} }

func (b Boundary) String() string {
	if b.Marker == "" {
		return "#"
	}
	return b.Marker
}

// Element is the sealed union of sequence members: a Sound or a
// Boundary.
type Element interface {
	element()
}

func (Sound) element()    {}
func (Boundary) element() {}

// Sequence is an ordered run of Elements — the thing a rule matches
// against and rewrites.
type Sequence []Element

func (seq Sequence) String() string {
	parts := make([]string, len(seq))
	for i, e := range seq {
		parts[i] = elementString(e)
	}
	return strings.Join(parts, " ")
}

func elementString(e Element) string {
	switch v := e.(type) {
	case Sound:
		return v.String()
	case Boundary:
		return v.String()
	default:
		return ""
	}
}

// Token is the sealed union of rule-pattern elements. Every concrete
// token type implements the unexported marker method, closing the set
// to this package.
type Token interface {
	token()
}

// SegmentTok is a concrete sound appearing literally in a pattern.
type SegmentTok struct {
	Sound Sound
}

func (SegmentTok) token() {}

// BoundaryTok is a "#" appearing literally in a pattern.
type BoundaryTok struct {
	Marker string
}

func (BoundaryTok) token() {}

// BackRefTok refers back to the nth token matched earlier in the same
// rule (@1, @2, ...), optionally with a feature modifier (@1[+voice]).
type BackRefTok struct {
	Index    int
	Modifier string // empty when there is no modifier
}

func (BackRefTok) token() {}

// EmptyTok represents deletion (:null:) on the post side of a rule.
type EmptyTok struct{}

func (EmptyTok) token() {}

// ChoiceTok is an unordered alternative among its Choices (p|b):
// matches if any one choice matches, independent of any enclosing set.
type ChoiceTok struct {
	Choices []Token
}

func (ChoiceTok) token() {}

// SetTok is a correspondence set ({p|b}): like ChoiceTok, but the
// chosen alternative's index is recorded so the post side's paired
// SetTok (the one at the same ordinal position) emits its alternative
// at that same index.
type SetTok struct {
	Choices []Token
}

func (SetTok) token() {}

// FocusTok marks the focus position "_" inside a rule's context.
type FocusTok struct{}

func (FocusTok) token() {}

// QuantifiedTok wraps Inner with a repetition quantifier: "+"
// (one-or-more) or "?" (optional).
type QuantifiedTok struct {
	Inner      Token
	Quantifier string
}

func (QuantifiedTok) token() {}

// SyllableCondTok is a syllable-position condition anchored at the
// focus: _.onset, _.nucleus, _.coda.
type SyllableCondTok struct {
	Position string
}

func (SyllableCondTok) token() {}

// NegationTok negates Inner's match (!V, !p|b).
type NegationTok struct {
	Inner Token
}

func (NegationTok) token() {}

// Rule is a parsed sound-change rule: ante (left of >) and post (right
// of >) token sequences, plus the optional context tokens surrounding
// the focus position (nil when the rule has no "/" context clause).
type Rule struct {
	Source  string
	Ante    []Token
	Post    []Token
	Context []Token
}

func (r Rule) String() string { return r.Source }

// Invert returns the rule with Ante and Post swapped, for the
// diagnostic "what forward rule would undo this" use case. Context is
// carried over unchanged; callers should not assume an inverted rule
// round-trips losslessly when Ante or Post used :null: or a
// many-to-one choice.
func (r Rule) Invert() Rule {
	return Rule{
		Source:  invertedSource(r.Source),
		Ante:    r.Post,
		Post:    r.Ante,
		Context: r.Context,
	}
}

func invertedSource(source string) string {
	body, context, hasContext := strings.Cut(source, "/")
	ante, post, ok := strings.Cut(body, ">")
	if !ok {
		return source
	}
	inverted := strings.TrimSpace(post) + " > " + strings.TrimSpace(ante)
	if hasContext {
		inverted += " / " + strings.TrimSpace(context)
	}
	return inverted
}

// MatchResult is the outcome of matching a Sequence against a token
// pattern starting at some position. Bindings holds one entry per
// pattern token: the matched Element (the first matched Element for a
// quantified token), or nil where nothing binds.
type MatchResult struct {
	Matched  bool
	Bindings []any
	Span     int

	// SetIndices records, for each SetTok position in the pattern
	// (keyed by pattern token index), which alternative matched —
	// the paired SetTok on the post side replays the same index.
	SetIndices map[int]int
}
