package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner performs lexical analysis on loo source code.
type Scanner struct {
	source // embedded character reader

	// Positions of the brackets that are still open, innermost last.
	// The length of each stack is the current depth for that bracket kind.
	parens []Pos
	braces []Pos

	litBuf strings.Builder
}

// NewScanner creates a Scanner over the whole of src.
func NewScanner(filename string, src io.Reader) (*Scanner, error) {
	s, err := newSource(filename, src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return &Scanner{source: *s}, nil
}

// Tokenize scans src to the end and returns every token including the
// final EOF. It stops at the first lexical error.
func Tokenize(filename string, src io.Reader) ([]Token, error) {
	s, err := NewScanner(filename, src)
	if err != nil {
		return nil, err
	}
	return s.All()
}

// All scans the remaining input and returns the tokens up to and including EOF.
func (s *Scanner) All() ([]Token, error) {
	var toks []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.IsEOF() {
			return toks, nil
		}
	}
}

// Next scans and returns the next token.
//
// At the end of input Next returns an EOF token, and keeps returning it on
// further calls, unless a bracket is still open. The scanner always consumes
// at least the offending character before returning an error, so a caller may
// keep calling Next after a failure.
func (s *Scanner) Next() (Token, error) {
	for isWhitespace(s.ch) {
		s.nextch()
	}

	pos := s.pos()
	switch {
	case s.ch < 0:
		return s.eof(pos)

	case isLetter(s.ch):
		return s.scanName(pos), nil

	case isDigit(s.ch):
		return s.scanNumber(pos)

	case s.ch == ',' || s.ch == ';':
		lit := string(s.ch)
		s.nextch()
		return Token{Kind: _Punct, Punct: Separator, Lit: lit, Pos: pos}, nil

	case s.ch == '(' || s.ch == '{':
		return s.open(pos), nil

	case s.ch == ')' || s.ch == '}':
		return s.close(pos)

	case isOperatorChar(s.ch):
		return s.scanOperator(pos), nil
	}

	ch := s.ch
	s.nextch()
	return Token{}, &LexError{Pos: pos, Kind: UnexpectedCharacter, Msg: fmt.Sprintf("%q", ch)}
}

// Depth returns the number of currently open parentheses and braces.
func (s *Scanner) Depth() (parens, braces int) {
	return len(s.parens), len(s.braces)
}

// eof produces the EOF token, or an error for the innermost bracket that
// was never closed. Both bracket counters are reset in the error case.
func (s *Scanner) eof(pos Pos) (Token, error) {
	if len(s.parens) == 0 && len(s.braces) == 0 {
		return Token{Kind: _EOF, Pos: pos}, nil
	}

	open, lit := innermost(s.parens, s.braces)
	s.parens = s.parens[:0]
	s.braces = s.braces[:0]
	return Token{}, &LexError{
		Pos:  open,
		Kind: UnevenParentheses,
		Msg:  fmt.Sprintf("%q is never closed", lit),
		EOF:  true,
	}
}

// innermost returns the most recently opened of the unclosed brackets.
func innermost(parens, braces []Pos) (Pos, string) {
	switch {
	case len(braces) == 0:
		return parens[len(parens)-1], "("
	case len(parens) == 0:
		return braces[len(braces)-1], "{"
	}
	p, b := parens[len(parens)-1], braces[len(braces)-1]
	if p.line > b.line || p.line == b.line && p.col > b.col {
		return p, "("
	}
	return b, "{"
}

// scanName scans an identifier. Keywords are scanned as names too.
func (s *Scanner) scanName(pos Pos) Token {
	s.litBuf.Reset()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	return Token{Kind: _Name, Lit: s.litBuf.String(), Pos: pos}
}

// scanNumber scans a run of decimal digits. A letter directly after the
// digits is an error: numbers may not run into names.
func (s *Scanner) scanNumber(pos Pos) (Token, error) {
	s.litBuf.Reset()
	for isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	lit := s.litBuf.String()

	if isLetter(s.ch) {
		return Token{}, &LexError{
			Pos:  pos,
			Kind: IncorrectNumber,
			Msg:  fmt.Sprintf("%q runs into %q", lit, s.ch),
		}
	}
	return Token{Kind: _Number, Lit: lit, Pos: pos}, nil
}

// open scans '(' or '{'. The token carries the depth before the bracket.
func (s *Scanner) open(pos Pos) Token {
	lit := string(s.ch)
	stack := &s.parens
	if s.ch == '{' {
		stack = &s.braces
	}
	s.nextch()

	tok := Token{Kind: _Punct, Punct: OpenBracket, Depth: len(*stack), Lit: lit, Pos: pos}
	*stack = append(*stack, pos)
	return tok
}

// close scans ')' or '}'. The token carries the depth of the bracket it
// closes, which is the depth after popping.
func (s *Scanner) close(pos Pos) (Token, error) {
	lit := string(s.ch)
	stack := &s.parens
	if s.ch == '}' {
		stack = &s.braces
	}
	s.nextch()

	if len(*stack) == 0 {
		return Token{}, &LexError{
			Pos:  pos,
			Kind: UnevenParentheses,
			Msg:  fmt.Sprintf("%q without matching opening bracket", lit),
		}
	}
	*stack = (*stack)[:len(*stack)-1]
	return Token{Kind: _Punct, Punct: CloseBracket, Depth: len(*stack), Lit: lit, Pos: pos}, nil
}

// scanOperator scans one operator character, and a second one if it
// follows immediately: "=", "==", "&&", "+=", and also runs like "=-".
func (s *Scanner) scanOperator(pos Pos) Token {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
	s.nextch()
	if isOperatorChar(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	return Token{Kind: _Operator, Lit: s.litBuf.String(), Pos: pos}
}
