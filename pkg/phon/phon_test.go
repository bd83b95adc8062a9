package phon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceString(t *testing.T) {
	seq := Sequence{
		NewBoundary(),
		Sound{Grapheme: "p"},
		Sound{Grapheme: "a"},
		NewBoundary(),
	}
	assert.Equal(t, "# p a #", seq.String())
}

func TestTokenSealedUnionAssignability(t *testing.T) {
	var tokens = []Token{
		SegmentTok{Sound: Sound{Grapheme: "p"}},
		BoundaryTok{Marker: "#"},
		BackRefTok{Index: 0},
		EmptyTok{},
		ChoiceTok{Choices: []Token{SegmentTok{Sound: Sound{Grapheme: "p"}}, SegmentTok{Sound: Sound{Grapheme: "b"}}}},
		SetTok{Choices: []Token{SegmentTok{Sound: Sound{Grapheme: "p"}}}},
		FocusTok{},
		QuantifiedTok{Inner: SegmentTok{Sound: Sound{Grapheme: "C"}}, Quantifier: "+"},
		SyllableCondTok{Position: "onset"},
		NegationTok{Inner: SegmentTok{Sound: Sound{Grapheme: "p"}}},
	}
	assert.Len(t, tokens, 10)
}

func TestRuleInvertSwapsAnteAndPost(t *testing.T) {
	r := Rule{
		Source: "p > b",
		Ante:   []Token{SegmentTok{Sound: Sound{Grapheme: "p"}}},
		Post:   []Token{SegmentTok{Sound: Sound{Grapheme: "b"}}},
	}
	inv := r.Invert()
	assert.Equal(t, "b > p", inv.Source)
	assert.Equal(t, r.Post, inv.Ante)
	assert.Equal(t, r.Ante, inv.Post)
}

func TestRuleInvertPreservesContext(t *testing.T) {
	ctx := []Token{FocusTok{}, BoundaryTok{Marker: "#"}}
	r := Rule{Source: "p > b / _ #", Context: ctx}
	inv := r.Invert()
	assert.Equal(t, ctx, inv.Context)
}

func TestRuleInvertSourceKeepsContextOutOfTheSwap(t *testing.T) {
	r := Rule{Source: "p > b / V _ V"}
	inv := r.Invert()
	assert.Equal(t, "b > p / V _ V", inv.Source)
}

func TestElementSealedUnion(t *testing.T) {
	var elems = []Element{Sound{Grapheme: "a"}, NewBoundary()}
	assert.Len(t, elems, 2)
}
