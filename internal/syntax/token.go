// Package syntax implements lexical and syntactic analysis for the loo
// scripting language.
package syntax

import "fmt"

// Kind represents the class of a lexical token.
type Kind uint8

const (
	_EOF      Kind = iota // end of input
	_Name                 // identifier or keyword: foo, x1, while
	_Number               // decimal digits: 42
	_Operator             // one or two operator characters: + == &&
	_Punct                // ( ) { } , ;

	kindCount
)

var kindNames = [...]string{
	_EOF:      "EOF",
	_Name:     "NAME",
	_Number:   "NUMBER",
	_Operator: "OP",
	_Punct:    "PUNCT",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// PunctKind distinguishes the three kinds of punctuation token.
type PunctKind uint8

const (
	Separator    PunctKind = iota // , ;
	OpenBracket                   // ( {
	CloseBracket                  // ) }
)

var punctNames = [...]string{
	Separator:    "sep",
	OpenBracket:  "open",
	CloseBracket: "close",
}

func (k PunctKind) String() string {
	if int(k) < len(punctNames) {
		return punctNames[k]
	}
	return fmt.Sprintf("punct(%d)", k)
}

// Token is a classified lexical unit. Tokens are plain values; the scanner
// hands them out and nobody modifies them afterwards.
type Token struct {
	Kind  Kind
	Punct PunctKind // only meaningful when Kind is _Punct
	Depth int       // nesting index of an open/close bracket among brackets of its kind
	Lit   string    // raw source text, "" for EOF
	Pos   Pos       // position of the first character
}

// IsEOF reports whether t is the end-of-input token.
func (t Token) IsEOF() bool { return t.Kind == _EOF }

// IsName reports whether t is an identifier (keywords included).
func (t Token) IsName() bool { return t.Kind == _Name }

// IsNumber reports whether t is a number literal.
func (t Token) IsNumber() bool { return t.Kind == _Number }

// IsOperator reports whether t is an operator.
func (t Token) IsOperator() bool { return t.Kind == _Operator }

// is reports whether t is the punctuation lit.
func (t Token) is(lit string) bool {
	return t.Kind == _Punct && t.Lit == lit
}

// isKeyword reports whether t is the keyword kw.
func (t Token) isKeyword(kw string) bool {
	return t.Kind == _Name && t.Lit == kw
}

// Describe returns a short label for listings and diagnostics,
// e.g. "NAME", "PUNCT open(1)" or "PUNCT sep".
func (t Token) Describe() string {
	if t.Kind != _Punct {
		return t.Kind.String()
	}
	if t.Punct == Separator {
		return fmt.Sprintf("%s %s", t.Kind, t.Punct)
	}
	return fmt.Sprintf("%s %s(%d)", t.Kind, t.Punct, t.Depth)
}

func (t Token) String() string {
	if t.IsEOF() {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Describe(), t.Lit)
}

// keywords is the fixed keyword set. The scanner never looks at it:
// keywords are scanned as names and told apart by the parser.
var keywords = map[string]bool{
	"while": true,
	"loop":  true,
	"if":    true,
	"else":  true,
	"print": true,
}

// IsKeyword reports whether ident is a reserved word.
func IsKeyword(ident string) bool {
	return keywords[ident]
}
