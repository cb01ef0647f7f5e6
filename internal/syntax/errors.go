package syntax

import (
	"errors"
	"fmt"
	"strings"
)

// LexErrorKind classifies lexical errors.
type LexErrorKind uint8

const (
	UnevenParentheses   LexErrorKind = iota // unmatched closing bracket, or bracket left open at EOF
	IncorrectNumber                         // digit run immediately followed by a letter
	UnexpectedCharacter                     // character outside the language alphabet
)

var lexErrorNames = [...]string{
	UnevenParentheses:   "uneven parentheses",
	IncorrectNumber:     "incorrect number",
	UnexpectedCharacter: "unexpected character",
}

func (k LexErrorKind) String() string {
	if int(k) < len(lexErrorNames) {
		return lexErrorNames[k]
	}
	return fmt.Sprintf("LexErrorKind(%d)", k)
}

// LexError is returned by the scanner. Scanning stops at the first one.
type LexError struct {
	Pos  Pos
	Kind LexErrorKind
	Msg  string
	EOF  bool // raised because the input ended
}

func (e *LexError) Error() string {
	if e.Msg == "" {
		return e.Pos.String() + ": " + e.Kind.String()
	}
	return e.Pos.String() + ": " + e.Kind.String() + ": " + e.Msg
}

// SyntaxErrorKind classifies parse errors.
type SyntaxErrorKind uint8

const (
	MalformedStatement  SyntaxErrorKind = iota // bad token at statement start
	MalformedExpression                        // bad operand, operator or terminator
	MalformedLoopCount                         // loop not followed by a number
	MalformedIf                                // else not followed by a body
	MalformedPrint                             // print not followed by one value and ';'
	MalformedBody                              // missing '{' or mismatched '}'
	UnterminatedBlock                          // EOF before the closing '}'
)

var syntaxErrorNames = [...]string{
	MalformedStatement:  "malformed statement",
	MalformedExpression: "malformed expression",
	MalformedLoopCount:  "malformed loop count",
	MalformedIf:         "malformed if",
	MalformedPrint:      "malformed print",
	MalformedBody:       "malformed body",
	UnterminatedBlock:   "unterminated block",
}

func (k SyntaxErrorKind) String() string {
	if int(k) < len(syntaxErrorNames) {
		return syntaxErrorNames[k]
	}
	return fmt.Sprintf("SyntaxErrorKind(%d)", k)
}

// SyntaxError represents a syntax error at the offending token.
type SyntaxError struct {
	Pos  Pos
	Kind SyntaxErrorKind
	Msg  string
	EOF  bool // the offending token was EOF
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Kind.String() + ": " + e.Msg
}

// IsIncomplete reports whether err was caused only by the input ending too
// early, so that more input could still make it valid.
func IsIncomplete(err error) bool {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.EOF
	}
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		return synErr.EOF
	}
	return false
}

// ErrorPos returns the position carried by a lexical or syntax error.
func ErrorPos(err error) (Pos, bool) {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.Pos, true
	}
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		return synErr.Pos, true
	}
	return Pos{}, false
}

// FormatError renders err followed by a snippet of src with a caret under
// the offending column:
//
//	prog.loo:2:6: malformed loop count: expected number after loop, found "n"
//
//	  1 | x = 1;
//	  2 | loop n {
//	    |      ^
//	  3 |     print x;
//
// Errors without a position are returned as err.Error().
func FormatError(err error, src string) string {
	pos, ok := ErrorPos(err)
	if !ok || !pos.IsValid() {
		return err.Error()
	}

	lines := strings.Split(src, "\n")
	line := pos.Line()
	if line > len(lines) {
		line = len(lines)
	}
	col := pos.Col()
	if col < 1 {
		col = 1
	}

	width := len(fmt.Sprint(line + 1))
	var b strings.Builder
	b.WriteString(err.Error())
	b.WriteString("\n\n")

	writeLine := func(n int) {
		fmt.Fprintf(&b, "  %*d | %s\n", width, n, strings.TrimRight(lines[n-1], "\r"))
	}
	if line > 1 {
		writeLine(line - 1)
	}
	writeLine(line)
	fmt.Fprintf(&b, "  %*s | %s^\n", width, "", caretPad(lines[line-1], col))
	if line < len(lines) && strings.TrimSpace(lines[line]) != "" {
		writeLine(line + 1)
	}
	return strings.TrimRight(b.String(), "\n")
}

// caretPad returns the padding that puts a caret under column col of text.
// Tabs are kept so the caret lines up with the echoed line.
func caretPad(text string, col int) string {
	var b strings.Builder
	n := 1
	for _, r := range text {
		if n >= col {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		n++
	}
	for ; n < col; n++ {
		b.WriteRune(' ')
	}
	return b.String()
}
