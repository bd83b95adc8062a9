package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/soundshift/pkg/features"
	"github.com/GriffinCanCode/soundshift/pkg/phon"
)

func sys(t *testing.T) features.System {
	t.Helper()
	return features.Default()
}

func TestParseSequenceMapsGraphemesAndBoundaries(t *testing.T) {
	seq := ParseSequence("# p a t #", sys(t))
	require.Len(t, seq, 5)
	_, isBoundary := seq[0].(phon.Boundary)
	assert.True(t, isBoundary)

	sound, ok := seq[1].(phon.Sound)
	require.True(t, ok)
	assert.Equal(t, "p", sound.Grapheme)
	assert.Contains(t, sound.Features, "voiceless")
}

func TestParseSequenceUnknownGraphemeHasEmptyFeatures(t *testing.T) {
	seq := ParseSequence("x", sys(t))
	require.Len(t, seq, 1)
	sound, ok := seq[0].(phon.Sound)
	require.True(t, ok)
	assert.Empty(t, sound.Features)
}

func TestParseRuleSimpleSubstitution(t *testing.T) {
	r, err := ParseRule("p > b", sys(t))
	require.NoError(t, err)
	require.Len(t, r.Ante, 1)
	require.Len(t, r.Post, 1)
	assert.Nil(t, r.Context)

	seg, ok := r.Ante[0].(phon.SegmentTok)
	require.True(t, ok)
	assert.Equal(t, "p", seg.Sound.Grapheme)
}

func TestParseRuleAcceptsArrowVariants(t *testing.T) {
	for _, arrow := range []string{">", "→", "->"} {
		r, err := ParseRule("p "+arrow+" b", sys(t))
		require.NoError(t, err)
		assert.Len(t, r.Ante, 1)
	}
}

func TestParseRuleWithContext(t *testing.T) {
	r, err := ParseRule("p > b / _ a", sys(t))
	require.NoError(t, err)
	require.Len(t, r.Context, 2)
	_, isFocus := r.Context[0].(phon.FocusTok)
	assert.True(t, isFocus)
}

func TestParseRuleSyllableCondition(t *testing.T) {
	r, err := ParseRule("p > b / _.onset", sys(t))
	require.NoError(t, err)
	require.Len(t, r.Context, 2)
	_, isFocus := r.Context[0].(phon.FocusTok)
	cond, isCond := r.Context[1].(phon.SyllableCondTok)
	assert.True(t, isFocus)
	require.True(t, isCond)
	assert.Equal(t, "onset", cond.Position)
}

func TestParseRuleFocusOutsideContextIsError(t *testing.T) {
	_, err := ParseRule("_ > b", sys(t))
	assert.Error(t, err)
}

func TestParseRuleEmptyToken(t *testing.T) {
	r, err := ParseRule("p > :null: / _ #", sys(t))
	require.NoError(t, err)
	_, isEmpty := r.Post[0].(phon.EmptyTok)
	assert.True(t, isEmpty)
}

func TestParseRuleBackReference(t *testing.T) {
	r, err := ParseRule("p a > @1 @2", sys(t))
	require.NoError(t, err)
	ref, ok := r.Post[1].(phon.BackRefTok)
	require.True(t, ok)
	assert.Equal(t, 1, ref.Index)
}

func TestParseRuleBackReferenceWithModifier(t *testing.T) {
	r, err := ParseRule("p > @1[+voiced]", sys(t))
	require.NoError(t, err)
	ref, ok := r.Post[0].(phon.BackRefTok)
	require.True(t, ok)
	assert.Equal(t, "+voiced", ref.Modifier)
}

func TestParseRuleBackReferenceOutOfRangeIsError(t *testing.T) {
	_, err := ParseRule("p > @2", sys(t))
	assert.Error(t, err)
}

func TestParseRuleChoiceToken(t *testing.T) {
	r, err := ParseRule("p|b > t", sys(t))
	require.NoError(t, err)
	choice, ok := r.Ante[0].(phon.ChoiceTok)
	require.True(t, ok)
	assert.Len(t, choice.Choices, 2)
}

func TestParseRuleNegatedChoice(t *testing.T) {
	r, err := ParseRule("!p|b > t", sys(t))
	require.NoError(t, err)
	neg, ok := r.Ante[0].(phon.NegationTok)
	require.True(t, ok)
	choice, ok := neg.Inner.(phon.ChoiceTok)
	require.True(t, ok)
	assert.Len(t, choice.Choices, 2)
}

func TestParseRuleQuantifiedClass(t *testing.T) {
	r, err := ParseRule("C+ > :null:", sys(t))
	require.NoError(t, err)
	q, ok := r.Ante[0].(phon.QuantifiedTok)
	require.True(t, ok)
	assert.Equal(t, "+", q.Quantifier)
	seg, ok := q.Inner.(phon.SegmentTok)
	require.True(t, ok)
	assert.True(t, seg.Sound.Partial)
}

func TestParseRuleSetTokenArityMismatchIsError(t *testing.T) {
	_, err := ParseRule("{p|b} > {t|d|k}", sys(t))
	assert.Error(t, err)
}

func TestParseRuleSetTokenMatchingArity(t *testing.T) {
	r, err := ParseRule("{p|b} > {t|d}", sys(t))
	require.NoError(t, err)
	setAnte, ok := r.Ante[0].(phon.SetTok)
	require.True(t, ok)
	setPost, ok := r.Post[0].(phon.SetTok)
	require.True(t, ok)
	assert.Equal(t, len(setAnte.Choices), len(setPost.Choices))
}

func TestParseRuleQuantifierInsideSetIsError(t *testing.T) {
	_, err := ParseRule("{p+|b} > {t|d}", sys(t))
	assert.Error(t, err)
}

func TestParseRuleClassLetterResolvesPartialFeatures(t *testing.T) {
	r, err := ParseRule("V > :null: / C _ C", sys(t))
	require.NoError(t, err)
	seg, ok := r.Ante[0].(phon.SegmentTok)
	require.True(t, ok)
	assert.True(t, seg.Sound.Partial)
	assert.Contains(t, seg.Sound.Features, "vowel")
}
