package syllable

import "github.com/GriffinCanCode/soundshift/pkg/phon"

// Word wraps a syllabified sequence with a derived, read-only weight per
// syllable. It assigns no stress itself — stress assignment is a
// language-specific algorithm this package doesn't model — it only
// exposes the moraic weight a stress-assignment rule would consume.
type Word struct {
	Seq       phon.Sequence
	Syllables []Info
}

// NewWord syllabifies seq and wraps the result.
func NewWord(seq phon.Sequence, cfg Config) Word {
	_, infos := Syllabify(seq, cfg)
	return Word{Seq: seq, Syllables: infos}
}

// Weight returns the moraic weight of each syllable: 2 for a heavy
// syllable (coda present, or a long vowel in the nucleus), 1 otherwise.
// This is the quantity a stress rule conditions on, not a stress
// assignment.
func (w Word) Weight() []int {
	weights := make([]int, len(w.Syllables))
	for i, s := range w.Syllables {
		if IsHeavy(s, w.Seq) {
			weights[i] = 2
		} else {
			weights[i] = 1
		}
	}
	return weights
}

// HeaviestIndex returns the index of the first syllable with the
// greatest weight, or -1 if the word has no syllables. Ties favor the
// leftmost heaviest syllable, a common default for weight-sensitive
// stress systems, without this package committing to any one
// language's actual stress rule.
func (w Word) HeaviestIndex() int {
	weights := w.Weight()
	best := -1
	bestWeight := 0
	for i, wt := range weights {
		if wt > bestWeight {
			best = i
			bestWeight = wt
		}
	}
	return best
}
