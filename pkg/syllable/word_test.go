package syllable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/soundshift/pkg/features"
	"github.com/GriffinCanCode/soundshift/pkg/frontend"
)

func TestWordWeightAllLightSyllables(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("p a t a", sys)

	w := NewWord(seq, DefaultConfig())
	require.Len(t, w.Syllables, 2)
	assert.Equal(t, []int{1, 1}, w.Weight())
}

func TestWordWeightCodaSyllableIsHeavy(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a m p a", sys)

	w := NewWord(seq, DefaultConfig())
	require.Len(t, w.Syllables, 2)
	// first syllable ("am") has a coda, second ("pa") doesn't.
	assert.Equal(t, []int{2, 1}, w.Weight())
}

func TestWordHeaviestIndexFavorsLeftmostTie(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("p a t a", sys)

	w := NewWord(seq, DefaultConfig())
	assert.Equal(t, 0, w.HeaviestIndex())
}

func TestWordHeaviestIndexPicksHeavySyllable(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a m p a", sys)

	w := NewWord(seq, DefaultConfig())
	assert.Equal(t, 0, w.HeaviestIndex())
}

func TestWordHeaviestIndexEmptyWord(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("# #", sys)

	w := NewWord(seq, DefaultConfig())
	assert.Equal(t, -1, w.HeaviestIndex())
}
