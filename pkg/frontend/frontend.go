// Package frontend parses rule-text and sequence-text notation into
// the immutable pkg/phon values the matcher and applier operate on.
//
// Design: hand-written scanner over whitespace-delimited words,
// recursive descent over each word's internal structure
// (negation/choice/set/quantifier/back-reference), predictive parsing
// with no backtracking at the word level.
package frontend
