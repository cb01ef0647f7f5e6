package syntax

import (
	"io"
	"unicode/utf8"
)

// source is a character reader with position tracking.
// The whole input is held in memory; the cursor only moves forward.
type source struct {
	buf      []byte
	filename string
	line     int // line of ch (1-based)
	col      int // column of ch (1-based)

	ch   rune // current character, -1 at EOF
	offs int  // byte offset of the character after ch
}

// newSource reads src fully and positions the cursor on its first character.
func newSource(filename string, src io.Reader) (*source, error) {
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return newSourceBytes(filename, buf), nil
}

func newSourceBytes(filename string, buf []byte) *source {
	s := &source{
		buf:      buf,
		filename: filename,
		line:     1,
		col:      0, // bumped to 1 by the first nextch
		ch:       -1,
	}
	s.nextch()
	return s
}

// nextch advances to the next character.
//
// (line, col) always describe s.ch: a newline is reported at the end of its
// line and the character after it starts the next line at column 1.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	s.ch = r
	s.offs += width
}

// pos returns the position of the current character.
func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

// isLetter reports whether r may start an identifier (a-z, A-Z, or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

// isOperatorChar reports whether r can be part of an operator.
func isOperatorChar(r rune) bool {
	switch r {
	case '+', '=', '-', '*', '/', '>', '<', '!', '&', '|':
		return true
	}
	return false
}
