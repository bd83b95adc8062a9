package syllable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/soundshift/pkg/features"
	"github.com/GriffinCanCode/soundshift/pkg/frontend"
)

func TestSyllabifySimpleCVCV(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("p a t a", sys)

	m, infos := Syllabify(seq, DefaultConfig())
	require.Len(t, infos, 2)

	assert.Equal(t, Onset, m(0))
	assert.Equal(t, Nucleus, m(1))
	assert.Equal(t, Onset, m(2))
	assert.Equal(t, Nucleus, m(3))
}

func TestSyllabifyCodaBeforeNextOnset(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a m p a", sys)

	m, infos := Syllabify(seq, DefaultConfig())
	require.Len(t, infos, 2)

	assert.Equal(t, Nucleus, m(0))
	// nasal "m" (sonority 2) is more sonorous than stop "p" (0), so an
	// "mp" onset would fall toward the vowel; "m" is not /s/, so SSP
	// keeps only "p" in the next onset, pushing "m" to the first
	// syllable's coda.
	assert.Equal(t, Coda, m(1))
	assert.Equal(t, Onset, m(2))
	assert.Equal(t, Nucleus, m(3))
}

func TestSyllabifyAllowsSClusterException(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("s t a", sys)

	m, infos := Syllabify(seq, DefaultConfig())
	require.Len(t, infos, 1)
	assert.Equal(t, Onset, m(0))
	assert.Equal(t, Onset, m(1))
	assert.Equal(t, Nucleus, m(2))
}

func TestSyllabifyBoundariesGetBoundaryRole(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("# p a #", sys)

	m, _ := Syllabify(seq, DefaultConfig())
	assert.Equal(t, Boundary, m(0))
	assert.Equal(t, Boundary, m(3))
}

func TestIsHeavyWithCoda(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a m p a", sys)
	_, infos := Syllabify(seq, DefaultConfig())
	require.Len(t, infos, 2)
	assert.True(t, IsHeavy(infos[0], seq))
	assert.False(t, IsHeavy(infos[1], seq))
}

func TestSyllabifyMaxOnsetSpillsToPreviousCoda(t *testing.T) {
	sys := features.Default()
	cfg := DefaultConfig()
	cfg.Constraints.MaxOnset = 1
	seq := frontend.ParseSequence("a p l a", sys)

	m, _ := Syllabify(seq, cfg)
	assert.Equal(t, Nucleus, m(0))
	assert.Equal(t, Coda, m(1))
	assert.Equal(t, Onset, m(2))
	assert.Equal(t, Nucleus, m(3))
}
