package apply

import (
	"github.com/GriffinCanCode/soundshift/pkg/features"
	"github.com/GriffinCanCode/soundshift/pkg/phon"
)

// invertAnte reconstructs rule.Ante's Elements from a successful
// match of rule.Post against the forward sequence, following §4.7's
// inversion rules. It returns one reconstructed Element per ante
// token (nil where the token is zero-width, i.e. EmptyTok), a
// bindings slice in the same ante-position indexing a context
// back-reference can resolve against, and ok=false when the ante
// contains a token this rule genuinely cannot invert without more
// information than the match provides (a NegationTok with no paired
// post back-reference).
func invertAnte(rule phon.Rule, sys features.System, postBindings []any, postSetIdx map[int]int) (recon []phon.Element, bindings []any, ok bool) {
	ante := rule.Ante
	n := len(ante)
	recon = make([]phon.Element, n)
	bindings = make([]any, n)

	backrefTarget := map[int]phon.BackRefTok{} // ante index -> the post BackRefTok pointing at it
	for j, t := range rule.Post {
		if br, isBr := t.(phon.BackRefTok); isBr {
			backrefTarget[br.Index] = phon.BackRefTok{Index: j, Modifier: br.Modifier}
		}
	}

	anteSets := setPositions(rule.Ante)
	postSets := setPositions(rule.Post)
	anteSetOrdinal := map[int]int{}
	for k, pos := range anteSets {
		anteSetOrdinal[pos] = k
	}

	for i, tok := range ante {
		if br, targeted := backrefTarget[i]; targeted {
			postEl, has := elementAt(postBindings, br.Index)
			if !has {
				return nil, nil, false
			}
			el := invertBackRefElement(postEl, br.Modifier, sys)
			recon[i] = el
			bindings[i] = el
			continue
		}

		switch t := tok.(type) {
		case phon.SegmentTok:
			recon[i] = t.Sound
			bindings[i] = t.Sound

		case phon.BoundaryTok:
			b := phon.NewBoundary()
			recon[i] = b
			bindings[i] = b

		case phon.EmptyTok:
			recon[i] = nil
			bindings[i] = nil

		case phon.BackRefTok:
			if t.Index < 0 || t.Index >= i || recon[t.Index] == nil {
				return nil, nil, false
			}
			recon[i] = recon[t.Index]
			bindings[i] = recon[i]

		case phon.SetTok:
			k, known := anteSetOrdinal[i]
			if !known || k >= len(postSets) {
				return nil, nil, false
			}
			matchedIdx, has := postSetIdx[postSets[k]]
			if !has || matchedIdx < 0 || matchedIdx >= len(t.Choices) {
				return nil, nil, false
			}
			el := renderPrimitive(t.Choices[matchedIdx])
			recon[i] = el
			bindings[i] = el

		case phon.ChoiceTok:
			if len(t.Choices) == 0 {
				return nil, nil, false
			}
			el := renderPrimitive(t.Choices[0])
			recon[i] = el
			bindings[i] = el

		case phon.QuantifiedTok:
			el := renderPrimitive(t.Inner)
			recon[i] = el
			bindings[i] = el

		case phon.NegationTok:
			return nil, nil, false

		default:
			bindings[i] = nil
		}
	}
	return recon, bindings, true
}

// invertBackRefElement is the backward counterpart of renderBackRef:
// it flips the modifier's +/- polarity before reapplying it, per
// §4.7's invert_modifiers step.
func invertBackRefElement(el phon.Element, modifier string, sys features.System) phon.Element {
	sound, isSound := el.(phon.Sound)
	if !isSound || modifier == "" {
		return el
	}
	inverted := features.InvertModifier(modifier)
	feats := features.ApplyModifier(sys, sound.Features, inverted)
	grapheme, ok := sys.FeaturesToGrapheme(feats)
	if !ok {
		grapheme = sound.Grapheme
	}
	return phon.Sound{Grapheme: grapheme, Features: feats}
}

// spliceRecon replaces seq[p:p+postSpan] with the non-nil elements of
// recon (EmptyTok positions contribute nothing) and returns the
// resulting sequence plus the span the reconstruction actually
// occupies in it, for context re-verification.
func spliceRecon(seq phon.Sequence, p, postSpan int, recon []phon.Element) (phon.Sequence, int) {
	var mid phon.Sequence
	for _, el := range recon {
		if el != nil {
			mid = append(mid, el)
		}
	}
	out := make(phon.Sequence, 0, len(seq)-postSpan+len(mid))
	out = append(out, seq[:p]...)
	out = append(out, mid...)
	out = append(out, seq[p+postSpan:]...)
	return out, len(mid)
}
