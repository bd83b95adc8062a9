package apply

import (
	"github.com/GriffinCanCode/soundshift/pkg/features"
	"github.com/GriffinCanCode/soundshift/pkg/matcher"
	"github.com/GriffinCanCode/soundshift/pkg/phon"
	"github.com/GriffinCanCode/soundshift/pkg/syllable"
)

// contextHolds verifies rule's context (if any) against a candidate
// ante match at [p, p+s) in seq, with refBindings resolving any
// back-reference the context carries to the ante's own bindings. A
// nil context always holds.
func contextHolds(seq phon.Sequence, context []phon.Token, sys features.System, sm syllable.Map, p, s int, refBindings []any) bool {
	if context == nil {
		return true
	}
	left, right := splitContext(context)

	if !matchLeftContext(seq, left, sys, sm, p, refBindings) {
		return false
	}

	rightOffset := p + s
	if len(right) > 0 {
		if sc, ok := right[0].(phon.SyllableCondTok); ok {
			res := matcher.MatchPatternWithRefs(seq, []phon.Token{sc}, sys, sm, p, refBindings)
			if !res.Matched {
				return false
			}
			right = right[1:]
		}
	}
	return matcher.MatchPatternWithRefs(seq, right, sys, sm, rightOffset, refBindings).Matched
}

// splitContext divides a rule's context tokens at its FocusTok into
// the left pattern (matched ending at the focus, scanning backward)
// and the right pattern (matched starting at the focus, scanning
// forward). A context with no FocusTok — legal but unusual, since the
// grammar's only entry point for context tokens is words that either
// are "_"/"_.pos" or plain segments/classes with no anchor — is
// treated as having an empty left and the whole thing as right,
// matched starting where the ante match ends.
func splitContext(context []phon.Token) (left, right []phon.Token) {
	idx := -1
	for i, t := range context {
		if _, ok := t.(phon.FocusTok); ok {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, context
	}
	return context[:idx], context[idx+1:]
}

// matchLeftContext matches left against the subsequence ending at p,
// scanning right to left: both the pattern and the candidate window
// are reversed so the ordinary left-to-right matcher can be reused,
// then discarded once the boolean result is known (only element
// values matter for context verification, not positions).
func matchLeftContext(seq phon.Sequence, left []phon.Token, sys features.System, sm syllable.Map, p int, refBindings []any) bool {
	if len(left) == 0 {
		return true
	}
	revPattern := reverseTokens(left)
	revSeq := reverseSeq(seq[:p])
	return matcher.MatchPatternWithRefs(revSeq, revPattern, sys, sm, 0, refBindings).Matched
}

func reverseTokens(toks []phon.Token) []phon.Token {
	out := make([]phon.Token, len(toks))
	for i, t := range toks {
		out[len(toks)-1-i] = t
	}
	return out
}

func reverseSeq(seq phon.Sequence) phon.Sequence {
	out := make(phon.Sequence, len(seq))
	for i, e := range seq {
		out[len(seq)-1-i] = e
	}
	return out
}
