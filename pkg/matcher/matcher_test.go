package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/soundshift/pkg/features"
	"github.com/GriffinCanCode/soundshift/pkg/frontend"
	"github.com/GriffinCanCode/soundshift/pkg/phon"
)

func TestMatchPatternSegmentToken(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a p a", sys)
	ante, err := frontend.ParseRule("p > b", sys)
	require.NoError(t, err)

	res := MatchPattern(seq, ante.Ante, sys, nil, 1)
	assert.True(t, res.Matched)
	assert.Equal(t, 1, res.Span)
}

func TestMatchPatternSegmentTokenFailsOnMismatch(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a p a", sys)
	rule, err := frontend.ParseRule("t > d", sys)
	require.NoError(t, err)

	res := MatchPattern(seq, rule.Ante, sys, nil, 1)
	assert.False(t, res.Matched)
}

func TestMatchPatternClassPartialMatch(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a p a", sys)
	rule, err := frontend.ParseRule("C > @1[+voiced]", sys)
	require.NoError(t, err)

	res := MatchPattern(seq, rule.Ante, sys, nil, 1)
	assert.True(t, res.Matched)
}

func TestMatchPatternBoundaryToken(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("# a #", sys)
	rule, err := frontend.ParseRule("# > #", sys)
	require.NoError(t, err)

	res := MatchPattern(seq, rule.Ante, sys, nil, 0)
	assert.True(t, res.Matched)
	assert.Equal(t, 1, res.Span)
}

func TestMatchPatternBackRefSelfReference(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("p p", sys)
	rule, err := frontend.ParseRule("C @1 > @1", sys)
	require.NoError(t, err)

	res := MatchPattern(seq, rule.Ante, sys, nil, 0)
	require.True(t, res.Matched)
	assert.Equal(t, 2, res.Span)
}

func TestMatchPatternBackRefSelfReferenceFailsOnDifferentSound(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("p b", sys)
	rule, err := frontend.ParseRule("C @1 > @1", sys)
	require.NoError(t, err)

	res := MatchPattern(seq, rule.Ante, sys, nil, 0)
	assert.False(t, res.Matched)
}

func TestMatchPatternNegationExcludesInner(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a p a", sys)
	rule, err := frontend.ParseRule("!p > b", sys)
	require.NoError(t, err)

	assert.False(t, MatchPattern(seq, rule.Ante, sys, nil, 1).Matched)
	assert.True(t, MatchPattern(seq, rule.Ante, sys, nil, 0).Matched)
}

func TestMatchPatternChoiceTriesAlternatives(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a p a", sys)
	rule, err := frontend.ParseRule("p|t > b", sys)
	require.NoError(t, err)

	res := MatchPattern(seq, rule.Ante, sys, nil, 1)
	assert.True(t, res.Matched)
}

func TestMatchPatternSetRecordsIndex(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a t a", sys)
	rule, err := frontend.ParseRule("{p|t|k} > {b|d|g}", sys)
	require.NoError(t, err)

	res := MatchPattern(seq, rule.Ante, sys, nil, 1)
	require.True(t, res.Matched)
	require.NotNil(t, res.SetIndices)
	assert.Equal(t, 1, res.SetIndices[0])
}

func TestMatchPatternQuantifiedPlusIsGreedy(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a s s s a", sys)
	rule, err := frontend.ParseRule("s+ > :null:", sys)
	require.NoError(t, err)

	res := MatchPattern(seq, rule.Ante, sys, nil, 1)
	require.True(t, res.Matched)
	assert.Equal(t, 3, res.Span)
}

func TestMatchPatternQuantifiedQuestionFallsBackToOne(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a s a", sys)
	rule, err := frontend.ParseRule("s? a > a", sys)
	require.NoError(t, err)

	res := MatchPattern(seq, rule.Ante, sys, nil, 1)
	require.True(t, res.Matched)
	assert.Equal(t, 2, res.Span)
}

func TestMatchPatternWithRefsResolvesAgainstExternalBindings(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("p", sys)
	post := []phon.Token{phon.BackRefTok{Index: 0}}

	sound, _ := sys.GraphemeToFeatures("p")
	refBindings := []any{phon.Sound{Grapheme: "p", Features: sound}}

	res := MatchPatternWithRefs(seq, post, sys, nil, 0, refBindings)
	assert.True(t, res.Matched)
}

func TestMatchPatternEmptyPatternMatchesZeroWidth(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("a", sys)
	res := MatchPattern(seq, nil, sys, nil, 0)
	assert.True(t, res.Matched)
	assert.Equal(t, 0, res.Span)
}

func TestMatchPostForInversionTreatsBackRefAsSingleElementWildcard(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("d", sys)
	post := []phon.Token{phon.BackRefTok{Index: 0, Modifier: "+voiced"}}

	res := MatchPostForInversion(seq, post, sys, nil, 0)
	require.True(t, res.Matched)
	assert.Equal(t, 1, res.Span)
	assert.Equal(t, phon.Sound(seq[0].(phon.Sound)), res.Bindings[0])
}

func TestMatchPostForInversionRejectsModifiedBackRefAgainstBoundary(t *testing.T) {
	sys := features.Default()
	seq := frontend.ParseSequence("#", sys)
	post := []phon.Token{phon.BackRefTok{Index: 0, Modifier: "+voiced"}}

	res := MatchPostForInversion(seq, post, sys, nil, 0)
	assert.False(t, res.Matched)
}
