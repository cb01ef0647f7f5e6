package syntax

import (
	"errors"
	"strings"
	"testing"
	"unicode"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := Tokenize("test", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return toks
}

func tokenizeErr(t *testing.T, src string) *LexError {
	t.Helper()
	_, err := Tokenize("test", strings.NewReader(src))
	if err == nil {
		t.Fatalf("Tokenize(%q): expected error", src)
	}
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("Tokenize(%q): error %v is %T, want *LexError", src, err, err)
	}
	return lexErr
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []Kind
		lits  []string
	}{
		// Names
		{"ident", "foo", []Kind{_Name}, []string{"foo"}},
		{"ident_underscore", "_bar", []Kind{_Name}, []string{"_bar"}},
		{"ident_digits", "foo123", []Kind{_Name}, []string{"foo123"}},
		{"ident_caps", "FooBar", []Kind{_Name}, []string{"FooBar"}},
		{"keyword_is_name", "while", []Kind{_Name}, []string{"while"}},

		// Numbers
		{"number", "123", []Kind{_Number}, []string{"123"}},
		{"number_zero", "0", []Kind{_Number}, []string{"0"}},
		{"number_leading_zero", "007", []Kind{_Number}, []string{"007"}},

		// Single-char operators
		{"op_add", "+", []Kind{_Operator}, []string{"+"}},
		{"op_sub", "-", []Kind{_Operator}, []string{"-"}},
		{"op_mul", "*", []Kind{_Operator}, []string{"*"}},
		{"op_div", "/", []Kind{_Operator}, []string{"/"}},
		{"op_assign", "=", []Kind{_Operator}, []string{"="}},
		{"op_gtr", ">", []Kind{_Operator}, []string{">"}},
		{"op_lss", "<", []Kind{_Operator}, []string{"<"}},
		{"op_not", "!", []Kind{_Operator}, []string{"!"}},
		{"op_and", "&", []Kind{_Operator}, []string{"&"}},
		{"op_or", "|", []Kind{_Operator}, []string{"|"}},

		// Two-char operators
		{"op_eql", "==", []Kind{_Operator}, []string{"=="}},
		{"op_neq", "!=", []Kind{_Operator}, []string{"!="}},
		{"op_geq", ">=", []Kind{_Operator}, []string{">="}},
		{"op_andand", "&&", []Kind{_Operator}, []string{"&&"}},
		{"op_oror", "||", []Kind{_Operator}, []string{"||"}},
		{"op_add_assign", "+=", []Kind{_Operator}, []string{"+="}},
		{"op_any_pair", "=-", []Kind{_Operator}, []string{"=-"}},

		// At most two characters per operator
		{"op_triple", "===", []Kind{_Operator, _Operator}, []string{"==", "="}},

		// Punctuation
		{"semi", ";", []Kind{_Punct}, []string{";"}},
		{"comma", ",", []Kind{_Punct}, []string{","}},
		{"parens", "()", []Kind{_Punct, _Punct}, []string{"(", ")"}},
		{"braces", "{}", []Kind{_Punct, _Punct}, []string{"{", "}"}},

		// Whitespace
		{"whitespace_mixed", " \t a \r\n b \n", []Kind{_Name, _Name}, []string{"a", "b"}},

		// Compound
		{"assign", "a = 1;", []Kind{_Name, _Operator, _Number, _Punct}, []string{"a", "=", "1", ";"}},
		{"no_spaces", "a=b+1;", []Kind{_Name, _Operator, _Name, _Operator, _Number, _Punct}, []string{"a", "=", "b", "+", "1", ";"}},
		{"condition", "if a==b {}", []Kind{_Name, _Name, _Operator, _Name, _Punct, _Punct}, []string{"if", "a", "==", "b", "{", "}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScanner("test", strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			for i, want := range tt.kinds {
				tok, err := s.Next()
				if err != nil {
					t.Fatalf("token %d: %v", i, err)
				}
				if tok.Kind != want {
					t.Errorf("token %d: got %v, want %v", i, tok.Kind, want)
				}
				if tok.Lit != tt.lits[i] {
					t.Errorf("literal %d: got %q, want %q", i, tok.Lit, tt.lits[i])
				}
			}
			tok, err := s.Next()
			if err != nil {
				t.Fatalf("trailing token: %v", err)
			}
			if !tok.IsEOF() {
				t.Errorf("expected EOF, got %v", tok)
			}
		})
	}
}

func TestScanEOFRepeats(t *testing.T) {
	s, err := NewScanner("test", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	if tok, _ := s.Next(); tok.Lit != "x" {
		t.Fatalf("first token = %v", tok)
	}
	for i := 0; i < 3; i++ {
		tok, err := s.Next()
		if err != nil || !tok.IsEOF() {
			t.Fatalf("call %d: got %v, %v; want EOF", i, tok, err)
		}
	}
}

func TestScanPositions(t *testing.T) {
	src := "x = 1;\nif x {\n  print x;\n}"
	toks := tokenize(t, src)

	want := []struct {
		lit       string
		line, col int
	}{
		{"x", 1, 1}, {"=", 1, 3}, {"1", 1, 5}, {";", 1, 6},
		{"if", 2, 1}, {"x", 2, 4}, {"{", 2, 6},
		{"print", 3, 3}, {"x", 3, 9}, {";", 3, 10},
		{"}", 4, 1},
		{"", 4, 2}, // EOF
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		tok := toks[i]
		if tok.Lit != w.lit || tok.Pos.Line() != w.line || tok.Pos.Col() != w.col {
			t.Errorf("token %d: got %q at %s, want %q at %d:%d",
				i, tok.Lit, tok.Pos, w.lit, w.line, w.col)
		}
	}
}

func TestScanBracketDepth(t *testing.T) {
	toks := tokenize(t, "{ ( { ( ) } ) } ;")

	want := []struct {
		punct PunctKind
		depth int
	}{
		{OpenBracket, 0},  // {
		{OpenBracket, 0},  // ( : parens are counted separately
		{OpenBracket, 1},  // {
		{OpenBracket, 1},  // (
		{CloseBracket, 1}, // )
		{CloseBracket, 1}, // }
		{CloseBracket, 0}, // )
		{CloseBracket, 0}, // }
		{Separator, 0},    // ;
	}

	for i, w := range want {
		tok := toks[i]
		if tok.Kind != _Punct || tok.Punct != w.punct || tok.Depth != w.depth {
			t.Errorf("token %d %q: got %v depth %d, want %v depth %d",
				i, tok.Lit, tok.Punct, tok.Depth, w.punct, w.depth)
		}
	}
	if !toks[len(toks)-1].IsEOF() {
		t.Errorf("last token = %v, want EOF", toks[len(toks)-1])
	}
}

func TestScanDepthReturnsToZero(t *testing.T) {
	s, err := NewScanner("test", strings.NewReader("while a { loop 2 { (b) } }"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.All(); err != nil {
		t.Fatal(err)
	}
	if parens, braces := s.Depth(); parens != 0 || braces != 0 {
		t.Errorf("Depth() = %d, %d, want 0, 0", parens, braces)
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		kind      LexErrorKind
		line, col int
		eof       bool
	}{
		{"close_paren_unopened", "a = 1)", UnevenParentheses, 1, 6, false},
		{"close_brace_unopened", "}", UnevenParentheses, 1, 1, false},
		{"kinds_not_shared", "( }", UnevenParentheses, 1, 3, false},
		{"unclosed_brace", "while a { a = 1;", UnevenParentheses, 1, 9, true},
		{"unclosed_paren", "x = (1;", UnevenParentheses, 1, 5, true},
		{"innermost_reported", "{\n  (\n  {", UnevenParentheses, 3, 3, true},
		{"number_into_name", "x = 12ab;", IncorrectNumber, 1, 5, false},
		{"number_into_underscore", "7_", IncorrectNumber, 1, 1, false},
		{"unexpected_hash", "a = 1; # note", UnexpectedCharacter, 1, 8, false},
		{"unexpected_quote", `print "hi";`, UnexpectedCharacter, 1, 7, false},
		{"unexpected_dot", "x = 1.5;", UnexpectedCharacter, 1, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tokenizeErr(t, tt.src)
			if err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", err.Kind, tt.kind)
			}
			if err.Pos.Line() != tt.line || err.Pos.Col() != tt.col {
				t.Errorf("Pos = %s, want %d:%d", err.Pos, tt.line, tt.col)
			}
			if err.EOF != tt.eof {
				t.Errorf("EOF = %v, want %v", err.EOF, tt.eof)
			}
		})
	}
}

func TestScanResetsAfterUnclosedBracket(t *testing.T) {
	s, err := NewScanner("test", strings.NewReader("{ ("))
	if err != nil {
		t.Fatal(err)
	}
	s.Next()
	s.Next()

	if _, err := s.Next(); err == nil {
		t.Fatal("expected UnevenParentheses at EOF")
	}
	if parens, braces := s.Depth(); parens != 0 || braces != 0 {
		t.Errorf("Depth() after error = %d, %d, want 0, 0", parens, braces)
	}
	tok, err := s.Next()
	if err != nil || !tok.IsEOF() {
		t.Errorf("after reset got %v, %v; want EOF", tok, err)
	}
}

func TestScanContinuesAfterError(t *testing.T) {
	s, err := NewScanner("test", strings.NewReader("a ) b"))
	if err != nil {
		t.Fatal(err)
	}
	if tok, _ := s.Next(); tok.Lit != "a" {
		t.Fatalf("got %v, want a", tok)
	}
	if _, err := s.Next(); err == nil {
		t.Fatal("expected error for ')'")
	}
	if tok, err := s.Next(); err != nil || tok.Lit != "b" {
		t.Errorf("got %v, %v; want b", tok, err)
	}
}

// Concatenating the raw text of all tokens gives back the input without
// its whitespace.
func TestScanReconstructsSource(t *testing.T) {
	programs := []string{
		"a = 1;",
		"x = 1; y = x; x = 2;",
		"if a == b { a = 1; } else { a = 2; }",
		"loop 3 { print x; }",
		"while i < 10 {\n\ti = i + 1;\n\tif i >= 5 { print i; }\n}\n",
		"a=b&&c||!d;",
		"f = (g, h);",
	}

	for _, src := range programs {
		t.Run(src, func(t *testing.T) {
			var got strings.Builder
			for _, tok := range tokenize(t, src) {
				got.WriteString(tok.Lit)
			}
			want := strings.Map(func(r rune) rune {
				if unicode.IsSpace(r) {
					return -1
				}
				return r
			}, src)
			if got.String() != want {
				t.Errorf("reconstructed %q, want %q", got.String(), want)
			}
		})
	}
}

func TestTokenDescribe(t *testing.T) {
	toks := tokenize(t, "a 1 + ( ) ;")

	want := []string{
		`NAME "a"`,
		`NUMBER "1"`,
		`OP "+"`,
		`PUNCT open(0) "("`,
		`PUNCT close(0) ")"`,
		`PUNCT sep ";"`,
		`EOF`,
	}
	for i, w := range want {
		if got := toks[i].String(); got != w {
			t.Errorf("token %d: String() = %s, want %s", i, got, w)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	for _, kw := range []string{"while", "loop", "if", "else", "print"} {
		if !IsKeyword(kw) {
			t.Errorf("IsKeyword(%q) = false", kw)
		}
	}
	for _, name := range []string{"for", "While", "printx", "x"} {
		if IsKeyword(name) {
			t.Errorf("IsKeyword(%q) = true", name)
		}
	}
}
