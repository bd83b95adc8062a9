package frontend

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/GriffinCanCode/soundshift/pkg/features"
	"github.com/GriffinCanCode/soundshift/pkg/phon"
	"github.com/GriffinCanCode/soundshift/pkg/soundserr"
)

// Parser turns a token word into phon.Token values, tracking the
// feature system used to resolve graphemes and class letters and the
// original source text for error reporting.
type Parser struct {
	sys  features.System
	text string
}

// ParseSequence normalizes text (Unicode NFC, whitespace collapse)
// and maps each whitespace-separated word to a Boundary or a Sound
// via sys. Unknown graphemes become a Sound with an empty feature
// set; ParseSequence never fails on unknown segments.
func ParseSequence(text string, sys features.System) phon.Sequence {
	normalized := norm.NFC.String(text)
	lx := NewLexer(normalized)

	var seq phon.Sequence
	for {
		tok := lx.Next()
		if tok.Type == EOF {
			break
		}
		if tok.Lexeme == "#" {
			seq = append(seq, phon.NewBoundary())
			continue
		}
		feats, ok := sys.GraphemeToFeatures(tok.Lexeme)
		if !ok {
			feats = map[string]struct{}{}
		}
		seq = append(seq, phon.Sound{Grapheme: tok.Lexeme, Features: feats})
	}
	return seq
}

// ParseRule parses "ANTE > POST" or "ANTE > POST / CONTEXT" into a
// Rule, resolving class letters and graphemes against sys.
func ParseRule(text string, sys features.System) (phon.Rule, error) {
	normalized := norm.NFC.String(text)
	lx := NewLexer(normalized)

	var tokens []Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}

	arrowIdx := -1
	for i, t := range tokens {
		if t.Type == ARROW {
			arrowIdx = i
			break
		}
	}
	if arrowIdx == -1 {
		return phon.Rule{}, soundserr.NewParseError(text, 0, "missing '>' (or '→'/'->') between ante and post")
	}

	anteWords := trimEOF(tokens[:arrowIdx])
	rest := tokens[arrowIdx+1:]

	slashIdx := -1
	for i, t := range rest {
		if t.Type == SLASH {
			slashIdx = i
			break
		}
	}

	var postWords, contextWords []Token
	haveContext := slashIdx != -1
	if haveContext {
		postWords = trimEOF(rest[:slashIdx])
		contextWords = trimEOF(rest[slashIdx+1:])
	} else {
		postWords = trimEOF(rest)
	}

	p := &Parser{sys: sys, text: text}

	ante, err := p.parseWords(anteWords, false)
	if err != nil {
		return phon.Rule{}, err
	}
	post, err := p.parseWords(postWords, false)
	if err != nil {
		return phon.Rule{}, err
	}
	var context []phon.Token
	if haveContext {
		context, err = p.parseWords(contextWords, true)
		if err != nil {
			return phon.Rule{}, err
		}
	}

	if err := p.validate(ante, post, context); err != nil {
		return phon.Rule{}, err
	}

	return phon.Rule{Source: text, Ante: ante, Post: post, Context: context}, nil
}

func trimEOF(tokens []Token) []Token {
	if len(tokens) > 0 && tokens[len(tokens)-1].Type == EOF {
		return tokens[:len(tokens)-1]
	}
	return tokens
}

func (p *Parser) parseWords(words []Token, inContext bool) ([]phon.Token, error) {
	var out []phon.Token
	for _, w := range words {
		toks, err := p.parseWord(w.Lexeme, w.Index, inContext)
		if err != nil {
			return nil, err
		}
		out = append(out, toks...)
	}
	return out, nil
}

// parseWord decodes one whitespace-delimited word into one or two
// phon.Tokens (syllable-condition words expand to a FocusTok followed
// by a SyllableCondTok).
func (p *Parser) parseWord(word string, index int, inContext bool) ([]phon.Token, error) {
	switch {
	case word == "#":
		return []phon.Token{phon.BoundaryTok{Marker: "#"}}, nil

	case word == "_":
		if !inContext {
			return nil, soundserr.NewParseError(p.text, index, "'_' is only legal inside a rule's context clause")
		}
		return []phon.Token{phon.FocusTok{}}, nil

	case strings.HasPrefix(word, "_."):
		if !inContext {
			return nil, soundserr.NewParseError(p.text, index, "syllable-position condition is only legal inside a rule's context clause")
		}
		pos := word[2:]
		switch pos {
		case "onset", "nucleus", "coda":
		default:
			return nil, soundserr.NewParseError(p.text, index, "unknown syllable position "+strconv.Quote(pos))
		}
		return []phon.Token{phon.FocusTok{}, phon.SyllableCondTok{Position: pos}}, nil
	}

	tok, err := p.parseQuantified(word, index)
	if err != nil {
		return nil, err
	}
	return []phon.Token{tok}, nil
}

func (p *Parser) parseQuantified(word string, index int) (phon.Token, error) {
	if len(word) > 1 {
		switch word[len(word)-1] {
		case '+', '?':
			quant := string(word[len(word)-1])
			inner, err := p.parsePrimitive(word[:len(word)-1], index)
			if err != nil {
				return nil, err
			}
			return phon.QuantifiedTok{Inner: inner, Quantifier: quant}, nil
		}
	}
	return p.parsePrimitive(word, index)
}

// parsePrimitive decodes a word with any trailing quantifier already
// stripped: back-references, sets, negation, choice, class letters,
// and plain graphemes.
func (p *Parser) parsePrimitive(word string, index int) (phon.Token, error) {
	switch {
	case word == ":null:":
		return phon.EmptyTok{}, nil

	case strings.HasPrefix(word, "@"):
		return p.parseBackRef(word, index)

	case strings.HasPrefix(word, "{") && strings.HasSuffix(word, "}") && len(word) >= 2:
		return p.parseSet(word[1:len(word)-1], index)

	case strings.HasPrefix(word, "!"):
		inner, err := p.parseChoiceOrPrimitive(word[1:], index)
		if err != nil {
			return nil, err
		}
		return phon.NegationTok{Inner: inner}, nil

	case strings.Contains(word, "|"):
		return p.parseChoice(word, index)

	default:
		return p.parseSegment(word, index)
	}
}

func (p *Parser) parseChoiceOrPrimitive(word string, index int) (phon.Token, error) {
	if strings.Contains(word, "|") {
		return p.parseChoice(word, index)
	}
	return p.parsePrimitive(word, index)
}

func (p *Parser) parseChoice(word string, index int) (phon.Token, error) {
	parts := strings.Split(word, "|")
	choices := make([]phon.Token, 0, len(parts))
	for _, part := range parts {
		tok, err := p.parsePrimitive(part, index)
		if err != nil {
			return nil, err
		}
		choices = append(choices, tok)
	}
	return phon.ChoiceTok{Choices: choices}, nil
}

func (p *Parser) parseSet(inner string, index int) (phon.Token, error) {
	parts := strings.Split(inner, "|")
	choices := make([]phon.Token, 0, len(parts))
	for _, part := range parts {
		tok, err := p.parseQuantified(part, index)
		if err != nil {
			return nil, err
		}
		switch tok.(type) {
		case phon.QuantifiedTok, phon.ChoiceTok, phon.SetTok:
			return nil, soundserr.NewParseError(p.text, index, "quantifiers and choices are not allowed inside a correspondence set")
		}
		choices = append(choices, tok)
	}
	return phon.SetTok{Choices: choices}, nil
}

func (p *Parser) parseBackRef(word string, index int) (phon.Token, error) {
	rest := word[1:]
	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return nil, soundserr.NewParseError(p.text, index, "'@' must be followed by a 1-based index")
	}
	n, err := strconv.Atoi(rest[:digits])
	if err != nil {
		return nil, soundserr.NewParseError(p.text, index, "invalid back-reference index")
	}

	remainder := rest[digits:]
	modifier := ""
	if strings.HasPrefix(remainder, "[") {
		end := strings.Index(remainder, "]")
		if end == -1 {
			return nil, soundserr.NewParseError(p.text, index, "unterminated back-reference modifier, missing ']'")
		}
		modifier = remainder[1:end]
	}

	return phon.BackRefTok{Index: n - 1, Modifier: modifier}, nil
}

func (p *Parser) parseSegment(word string, index int) (phon.Token, error) {
	base, modifier, hasModifier := splitBracketModifier(word)

	if isClassLetterShape(base) && p.sys.HasClass(base) {
		feats := p.sys.ClassFeatures(base)
		if hasModifier {
			feats = features.ApplyModifier(p.sys, feats, modifier)
		}
		return phon.SegmentTok{Sound: phon.Sound{Grapheme: base, Features: feats, Partial: true}}, nil
	}

	feats, ok := p.sys.GraphemeToFeatures(base)
	if !ok {
		feats = map[string]struct{}{}
	}
	if hasModifier {
		feats = features.ApplyModifier(p.sys, feats, modifier)
	}
	return phon.SegmentTok{Sound: phon.Sound{Grapheme: base, Features: feats}}, nil
}

func splitBracketModifier(word string) (base, modifier string, ok bool) {
	i := strings.IndexByte(word, '[')
	if i == -1 || !strings.HasSuffix(word, "]") {
		return word, "", false
	}
	return word[:i], word[i+1 : len(word)-1], true
}

func isClassLetterShape(s string) bool {
	if s == "" {
		return false
	}
	r := rune(s[0])
	return r >= 'A' && r <= 'Z' && !unicode.IsLower(r)
}

// validate enforces the rule-level invariants that span ante, post,
// and context: a non-empty ante, no bare choice in post, at most one
// focus in context, matching SetTok arity between ante and post, and
// back-references that only point into ante.
func (p *Parser) validate(ante, post, context []phon.Token) error {
	if len(ante) == 0 || (len(ante) == 1 && isEmptyTok(ante[0])) {
		return soundserr.NewParseError(p.text, 0, "ante must not be empty; a bare ':null:' ante is not legal")
	}

	for _, t := range post {
		if _, ok := t.(phon.ChoiceTok); ok {
			return soundserr.NewParseError(p.text, 0, "a choice is not allowed in post; use a correspondence set")
		}
	}

	focusCount := 0
	walk(context, func(t phon.Token) {
		if _, ok := t.(phon.FocusTok); ok {
			focusCount++
		}
	})
	if focusCount > 1 {
		return soundserr.NewParseError(p.text, 0, "context clause may contain at most one '_'")
	}

	var anteSets, postSets []phon.SetTok
	walk(ante, func(t phon.Token) {
		if s, ok := t.(phon.SetTok); ok {
			anteSets = append(anteSets, s)
		}
	})
	walk(post, func(t phon.Token) {
		if s, ok := t.(phon.SetTok); ok {
			postSets = append(postSets, s)
		}
	})
	if len(anteSets) != len(postSets) {
		return soundserr.NewParseError(p.text, 0, "ante and post must have the same number of correspondence sets")
	}
	for i := range anteSets {
		if len(anteSets[i].Choices) != len(postSets[i].Choices) {
			return soundserr.NewParseError(p.text, 0, "paired correspondence sets must have the same arity")
		}
	}

	anteCount := len(ante)
	var badIndex = -1
	check := func(t phon.Token) {
		if b, ok := t.(phon.BackRefTok); ok && (b.Index < 0 || b.Index >= anteCount) {
			badIndex = b.Index
		}
	}
	walk(post, check)
	walk(context, check)
	if badIndex != -1 {
		return soundserr.NewParseError(p.text, badIndex, "back-reference index out of range of ante")
	}

	return nil
}

func isEmptyTok(t phon.Token) bool {
	_, ok := t.(phon.EmptyTok)
	return ok
}

// walk visits every token reachable from tokens, including nested
// tokens inside Choice/Set/Quantified/Negation wrappers.
func walk(tokens []phon.Token, fn func(phon.Token)) {
	for _, t := range tokens {
		fn(t)
		switch v := t.(type) {
		case phon.ChoiceTok:
			walk(v.Choices, fn)
		case phon.SetTok:
			walk(v.Choices, fn)
		case phon.QuantifiedTok:
			walk([]phon.Token{v.Inner}, fn)
		case phon.NegationTok:
			walk([]phon.Token{v.Inner}, fn)
		}
	}
}
