package apply

import (
	"github.com/GriffinCanCode/soundshift/pkg/features"
	"github.com/GriffinCanCode/soundshift/pkg/phon"
)

// renderPost builds the replacement Elements for a successful ante
// match, from rule.Post and the ante match's bindings/setIndices.
func renderPost(rule phon.Rule, sys features.System, bindings []any, setIdx map[int]int) phon.Sequence {
	anteSets := setPositions(rule.Ante)
	setCursor := 0

	var out phon.Sequence
	for _, tok := range rule.Post {
		switch t := tok.(type) {
		case phon.SegmentTok:
			out = append(out, t.Sound)

		case phon.BoundaryTok:
			out = append(out, phon.NewBoundary())

		case phon.EmptyTok:
			// deletion: nothing emitted.

		case phon.BackRefTok:
			el, ok := elementAt(bindings, t.Index)
			if !ok {
				continue
			}
			out = append(out, renderBackRef(el, t.Modifier, sys))

		case phon.SetTok:
			idx := 0
			if setCursor < len(anteSets) {
				if ai, ok := setIdx[anteSets[setCursor]]; ok {
					idx = ai
				}
			}
			setCursor++
			if idx >= 0 && idx < len(t.Choices) {
				out = append(out, renderPrimitive(t.Choices[idx]))
			}

		case phon.ChoiceTok:
			// The parser rejects a bare ChoiceTok in post; fall back
			// to its first alternative if one ever survives.
			if len(t.Choices) > 0 {
				out = append(out, renderPrimitive(t.Choices[0]))
			}
		}
	}
	return out
}

// renderBackRef applies a back-reference's feature modifier (if any)
// to the bound element and re-derives its grapheme.
func renderBackRef(el phon.Element, modifier string, sys features.System) phon.Element {
	sound, isSound := el.(phon.Sound)
	if !isSound {
		return el
	}
	feats := sound.Features
	if modifier != "" {
		feats = features.ApplyModifier(sys, feats, modifier)
	}
	grapheme, ok := sys.FeaturesToGrapheme(feats)
	if !ok {
		grapheme = sound.Grapheme
	}
	return phon.Sound{Grapheme: grapheme, Features: feats}
}

// renderPrimitive renders a token that's restricted to being a
// primitive (a Set/Choice alternative, or a quantifier's inner token)
// as the Element it contributes to output.
func renderPrimitive(tok phon.Token) phon.Element {
	switch t := tok.(type) {
	case phon.SegmentTok:
		return t.Sound
	case phon.BoundaryTok:
		return phon.NewBoundary()
	default:
		// NegationTok and BackRefTok carry no fixed value of their own;
		// when one reaches here (as a set or choice alternative, or as
		// a quantifier's inner token) it renders as an empty Sound with
		// no grapheme.
		return phon.Sound{}
	}
}

// setPositions returns, in left-to-right order, the pattern-index
// positions of every SetTok in tokens — used to pair an ante's SetTok
// with the post's SetTok at the same ordinal position.
func setPositions(tokens []phon.Token) []int {
	var out []int
	for i, t := range tokens {
		if _, ok := t.(phon.SetTok); ok {
			out = append(out, i)
		}
	}
	return out
}

func elementAt(bindings []any, index int) (phon.Element, bool) {
	if index < 0 || index >= len(bindings) {
		return nil, false
	}
	el, ok := bindings[index].(phon.Element)
	return el, ok
}
